//-----------------------------------------------------------------------------
/*

Topology Audit

AuditSolid walks a Solid's shells checking the invariants every Euler
operator and primitive constructor is supposed to preserve: the
Euler-Poincare relation per shell, closed loops, and half-edge twin
consistency. It is the structural (L0) layer of validation; geometric,
spatial and continuity checks build on top of it elsewhere.

*/
//-----------------------------------------------------------------------------

package brep

import "github.com/sequoia-hope/waffle-iron-sub001/geom"

// TopologyError describes one structural defect found by AuditSolid.
type TopologyError struct {
	Kind          TopologyErrorKind
	Shell         ShellId
	V, E, F       int
	ExpectedChi   int
	ActualChi     int
	Loop          LoopId
	Vertex        VertexId
	Edge          EdgeId
	HalfEdge      HalfEdgeId
	Expected      geom.Point3d
	Actual        geom.Point3d
	Distance      float64
}

// TopologyErrorKind distinguishes the structural defect a TopologyError
// reports; only the fields relevant to the kind are populated.
type TopologyErrorKind int

const (
	EulerViolation TopologyErrorKind = iota
	OpenLoop
	DanglingVertex
	HalfEdgeTwinMismatch
	VertexPositionMismatch
	FreeEdge
	NonManifoldEdge
)

// TopologyAudit is the result of a structural consistency check on a Solid.
type TopologyAudit struct {
	EulerValid         bool
	AllEdgesTwoFaced   bool
	AllFacesClosed     bool
	NoDanglingVertices bool
	ShellsClosed       bool
	NormalsConsistent  bool
	Errors             []TopologyError
}

// AllValid reports whether every check the audit performed passed.
func (a TopologyAudit) AllValid() bool {
	return a.EulerValid && a.AllEdgesTwoFaced && a.AllFacesClosed && a.NoDanglingVertices && a.ShellsClosed && a.NormalsConsistent
}

// CountTopology returns the number of distinct vertices, distinct edges and
// faces reachable from shellID's faces, for use in the Euler-Poincare
// check.
func (s *EntityStore) CountTopology(shellID ShellId) (v, e, f int) {
	shell := s.Shell(shellID)
	f = len(shell.Faces)

	edgeSet := make(map[EdgeId]struct{})
	vertexSet := make(map[VertexId]struct{})

	collect := func(loopID LoopId) {
		l := s.Loop(loopID)
		for _, heID := range l.HalfEdges {
			he := s.HalfEdge(heID)
			edgeSet[he.Edge] = struct{}{}
			vertexSet[he.StartVertex] = struct{}{}
			vertexSet[he.EndVertex] = struct{}{}
		}
	}

	for _, faceID := range shell.Faces {
		face := s.Face(faceID)
		collect(face.OuterLoop)
		for _, inner := range face.InnerLoops {
			collect(inner)
		}
	}

	return len(vertexSet), len(edgeSet), f
}

// SolidBoundingBox returns the axis-aligned bounding box of every vertex and
// sampled curve point reachable from solidID's shells.
func (s *EntityStore) SolidBoundingBox(solidID SolidId) geom.BoundingBox {
	bb := geom.EmptyBoundingBox()
	solid := s.Solid(solidID)
	for _, shellID := range solid.Shells {
		shell := s.Shell(shellID)
		for _, faceID := range shell.Faces {
			face := s.Face(faceID)
			s.expandBoxWithLoop(&bb, face.OuterLoop)
			for _, inner := range face.InnerLoops {
				s.expandBoxWithLoop(&bb, inner)
			}
		}
	}
	return bb
}

func (s *EntityStore) expandBoxWithLoop(bb *geom.BoundingBox, loopID LoopId) {
	l := s.Loop(loopID)
	const numSamples = 8
	for _, heID := range l.HalfEdges {
		he := s.HalfEdge(heID)
		*bb = bb.ExpandToInclude(s.Vertex(he.StartVertex).Point)
		*bb = bb.ExpandToInclude(s.Vertex(he.EndVertex).Point)
		edge := s.Edge(he.Edge)
		for i := 1; i < numSamples; i++ {
			t := he.TStart + (he.TEnd-he.TStart)*(float64(i)/float64(numSamples))
			*bb = bb.ExpandToInclude(edge.Curve.Evaluate(t))
		}
	}
}

func isLoopClosed(store *EntityStore, loopID LoopId) bool {
	l := store.Loop(loopID)
	if len(l.HalfEdges) == 0 {
		return false
	}
	first := store.HalfEdge(l.HalfEdges[0])
	last := store.HalfEdge(l.HalfEdges[len(l.HalfEdges)-1])
	return first.StartVertex == last.EndVertex
}

// vertexDegree returns, for every vertex of shellID's faces, the set of
// distinct edges incident to it among those faces' half-edges.
func (s *EntityStore) vertexDegree(shellID ShellId) map[VertexId]map[EdgeId]struct{} {
	degree := make(map[VertexId]map[EdgeId]struct{})
	touch := func(v VertexId, e EdgeId) {
		set, ok := degree[v]
		if !ok {
			set = make(map[EdgeId]struct{})
			degree[v] = set
		}
		set[e] = struct{}{}
	}
	collect := func(loopID LoopId) {
		l := s.Loop(loopID)
		for _, heID := range l.HalfEdges {
			he := s.HalfEdge(heID)
			touch(he.StartVertex, he.Edge)
			touch(he.EndVertex, he.Edge)
		}
	}
	shell := s.Shell(shellID)
	for _, faceID := range shell.Faces {
		face := s.Face(faceID)
		collect(face.OuterLoop)
		for _, inner := range face.InnerLoops {
			collect(inner)
		}
	}
	return degree
}

// newellNormal computes the Newell's-method normal of a (possibly
// non-planar) polygon from its vertex positions, which for a genuinely
// planar face matches the surface normal up to sign and for a curved
// facet is a reasonable flat approximation.
func newellNormal(pts []geom.Point3d) geom.Vec3 {
	var n geom.Vec3
	count := len(pts)
	for i := 0; i < count; i++ {
		cur := pts[i]
		next := pts[(i+1)%count]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// AuditSolid performs a full structural audit of solidID: the
// Euler-Poincare relation per shell, loop closure, half-edge twin
// consistency (free edges whose twin doesn't resolve, and non-manifold
// edges claimed by more than two half-edges), dangling-vertex detection
// (any vertex touching fewer than two distinct edges cannot belong to a
// closed 2-manifold), and a Newell's-method cross-check that each face's
// winding order agrees with its stored surface normal.
func AuditSolid(store *EntityStore, solidID SolidId) TopologyAudit {
	solid := store.Solid(solidID)
	var errs []TopologyError
	eulerValid := true
	allFacesClosed := true
	allEdgesTwoFaced := true
	noDanglingVertices := true
	normalsConsistent := true

	for _, shellID := range solid.Shells {
		v, e, f := store.CountTopology(shellID)
		chi := v - e + f
		if chi != 2 {
			eulerValid = false
			errs = append(errs, TopologyError{
				Kind: EulerViolation, Shell: shellID,
				V: v, E: e, F: f, ExpectedChi: 2, ActualChi: chi,
			})
		}

		shell := store.Shell(shellID)
		for _, faceID := range shell.Faces {
			face := store.Face(faceID)
			if !isLoopClosed(store, face.OuterLoop) {
				allFacesClosed = false
				errs = append(errs, TopologyError{Kind: OpenLoop, Loop: face.OuterLoop})
			}
			for _, inner := range face.InnerLoops {
				if !isLoopClosed(store, inner) {
					allFacesClosed = false
					errs = append(errs, TopologyError{Kind: OpenLoop, Loop: inner})
				}
			}

			pts := store.LoopVertices(face.OuterLoop)
			if len(pts) >= 3 {
				newell := newellNormal(pts)
				stated := face.Surface.NormalAt(0, 0)
				if !face.SameSense {
					stated = stated.Neg()
				}
				if newell.Dot(stated) <= 0 {
					normalsConsistent = false
					errs = append(errs, TopologyError{Kind: VertexPositionMismatch, Loop: face.OuterLoop})
				}
			}
		}

		for vID, edges := range store.vertexDegree(shellID) {
			if len(edges) < 2 {
				noDanglingVertices = false
				errs = append(errs, TopologyError{Kind: DanglingVertex, Vertex: vID})
			}
		}
	}

	inSolid := make(map[ShellId]bool)
	for _, shellID := range solid.Shells {
		inSolid[shellID] = true
	}
	pairHalfEdges := make(map[vertexPairKey][]HalfEdgeId)
	store.HalfEdges.Each(func(heID HalfEdgeId, he *HalfEdge) {
		if face, ok := store.Faces.Get(he.Face); !ok || !inSolid[face.Shell] {
			return
		}
		switch twin, ok := store.HalfEdges.Get(he.Twin); {
		case !ok:
			// No twin resolves for this half-edge: its edge borders only
			// one face, exactly the free-edge condition a closed solid
			// must not have.
			allEdgesTwoFaced = false
			errs = append(errs, TopologyError{Kind: FreeEdge, HalfEdge: heID, Edge: he.Edge})
		case twin.Twin != heID:
			allEdgesTwoFaced = false
			errs = append(errs, TopologyError{Kind: HalfEdgeTwinMismatch, HalfEdge: heID})
		}
		key := canonicalPair(he.StartVertex, he.EndVertex)
		pairHalfEdges[key] = append(pairHalfEdges[key], heID)
	})

	// A manifold edge contributes exactly two half-edges (the twin pair)
	// to its vertex pair. More than two means a third face also claims
	// that edge, i.e. non-manifold multi-connexity.
	for _, hes := range pairHalfEdges {
		if len(hes) > 2 {
			allEdgesTwoFaced = false
			errs = append(errs, TopologyError{Kind: NonManifoldEdge, HalfEdge: hes[0]})
		}
	}

	return TopologyAudit{
		EulerValid:         eulerValid,
		AllEdgesTwoFaced:   allEdgesTwoFaced,
		AllFacesClosed:     allFacesClosed,
		NoDanglingVertices: noDanglingVertices,
		ShellsClosed:       eulerValid && allFacesClosed,
		NormalsConsistent:  normalsConsistent,
		Errors:             errs,
	}
}
