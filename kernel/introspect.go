//-----------------------------------------------------------------------------
/*

Introspection

ListFaces/ListEdges/ListVertices, FaceSignature/EdgeSignature/
VertexSignature, EdgeEndpoints and FaceIndex give the feature engine what
naming.ResolveRef needs to turn a GeomRef into a KernelId against the
current rebuild's state, without the engine reaching into brep directly.
Candidates builds the candidate list naming.Resolve consumes; the roles
come from the ops.Provenance a feature operation returned. There is no
face-to-edges or edge-to-faces adjacency query.

*/
//-----------------------------------------------------------------------------

package kernel

import (
	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
	"github.com/sequoia-hope/waffle-iron-sub001/ops"
)

func encodeFace(id brep.FaceId) KernelId     { return KernelId(brep.EncodeKey(id)) }
func encodeEdge(id brep.EdgeId) KernelId     { return KernelId(brep.EncodeKey(id)) }
func encodeVertex(id brep.VertexId) KernelId { return KernelId(brep.EncodeKey(id)) }

func decodeFace(id KernelId) brep.FaceId     { return brep.DecodeKey[brep.Face](uint64(id)) }
func decodeEdge(id KernelId) brep.EdgeId     { return brep.DecodeKey[brep.Edge](uint64(id)) }
func decodeVertex(id KernelId) brep.VertexId { return brep.DecodeKey[brep.Vertex](uint64(id)) }

// ListFaces returns every face id reachable from handle's shells.
func (k *Kernel) ListFaces(handle KernelSolidHandle) []KernelId {
	var out []KernelId
	solid := k.store.Solid(handle.id)
	for _, shellID := range solid.Shells {
		shell := k.store.Shell(shellID)
		for _, faceID := range shell.Faces {
			out = append(out, encodeFace(faceID))
		}
	}
	return out
}

// ListEdges returns every distinct edge id reachable from handle's faces.
func (k *Kernel) ListEdges(handle KernelSolidHandle) []KernelId {
	seen := make(map[brep.EdgeId]bool)
	var out []KernelId
	k.walkHalfEdges(handle, func(he *brep.HalfEdge) {
		if !seen[he.Edge] {
			seen[he.Edge] = true
			out = append(out, encodeEdge(he.Edge))
		}
	})
	return out
}

// ListVertices returns every distinct vertex id reachable from handle's
// faces.
func (k *Kernel) ListVertices(handle KernelSolidHandle) []KernelId {
	seen := make(map[brep.VertexId]bool)
	var out []KernelId
	k.walkHalfEdges(handle, func(he *brep.HalfEdge) {
		for _, v := range [2]brep.VertexId{he.StartVertex, he.EndVertex} {
			if !seen[v] {
				seen[v] = true
				out = append(out, encodeVertex(v))
			}
		}
	})
	return out
}

func (k *Kernel) walkHalfEdges(handle KernelSolidHandle, visit func(he *brep.HalfEdge)) {
	solid := k.store.Solid(handle.id)
	walkLoop := func(loopID brep.LoopId) {
		l := k.store.Loop(loopID)
		for _, heID := range l.HalfEdges {
			visit(k.store.HalfEdge(heID))
		}
	}
	for _, shellID := range solid.Shells {
		shell := k.store.Shell(shellID)
		for _, faceID := range shell.Faces {
			face := k.store.Face(faceID)
			walkLoop(face.OuterLoop)
			for _, inner := range face.InnerLoops {
				walkLoop(inner)
			}
		}
	}
}

// FaceSignature computes the best-effort TopoSignature for a face id
// produced by this Kernel.
func (k *Kernel) FaceSignature(id KernelId) naming.TopoSignature {
	faceID := decodeFace(id)
	face := k.store.Face(faceID)
	pts := k.store.LoopVertices(face.OuterLoop)
	bb := geom.BoundingBoxFromPoints(pts)
	normal := face.Surface.NormalAt(0, 0)
	if !face.SameSense {
		normal = normal.Neg()
	}
	centroid := bb.Center()

	return naming.TopoSignature{
		HasSurfaceType: true,
		SurfaceType:    surfaceTypeName(face.Surface),
		HasArea:        true,
		Area:           polygonArea(pts),
		HasCentroid:    true,
		Centroid:       [3]float64{centroid.X, centroid.Y, centroid.Z},
		HasNormal:      true,
		Normal:         [3]float64{normal.X, normal.Y, normal.Z},
		HasBBox:        true,
		BBox:           [6]float64{bb.Min.X, bb.Min.Y, bb.Min.Z, bb.Max.X, bb.Max.Y, bb.Max.Z},
	}
}

func surfaceTypeName(s geom.Surface) string {
	switch s.(type) {
	case geom.Plane:
		return "Plane"
	case geom.Cylinder:
		return "Cylinder"
	case geom.Cone:
		return "Cone"
	case geom.Sphere:
		return "Sphere"
	case geom.Torus:
		return "Torus"
	default:
		return "Nurbs"
	}
}

func polygonArea(pts []geom.Point3d) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum geom.Vec3
	for i := range pts {
		cur := pts[i]
		next := pts[(i+1)%len(pts)]
		sum.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		sum.Y += (cur.Z - next.Z) * (cur.X + next.X)
		sum.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return sum.Length() / 2
}

// EdgeSignature computes the best-effort TopoSignature for an edge id
// produced by this Kernel: its chord length and midpoint as a stand-in
// centroid, enough for Selector::Signature matching since Role carries no
// edge variants (spec.md §3.4's Role set only tags faces).
func (k *Kernel) EdgeSignature(id KernelId) naming.TopoSignature {
	edge := k.store.Edge(decodeEdge(id))
	p0 := k.store.Vertex(edge.StartVertex).Point
	p1 := k.store.Vertex(edge.EndVertex).Point
	mid := geom.Point3d{X: (p0.X + p1.X) / 2, Y: (p0.Y + p1.Y) / 2, Z: (p0.Z + p1.Z) / 2}
	return naming.TopoSignature{
		HasLength:   true,
		Length:      p0.DistanceTo(p1),
		HasCentroid: true,
		Centroid:    [3]float64{mid.X, mid.Y, mid.Z},
	}
}

// VertexSignature computes the best-effort TopoSignature for a vertex id,
// carrying only its position as a degenerate centroid.
func (k *Kernel) VertexSignature(id KernelId) naming.TopoSignature {
	p := k.store.Vertex(decodeVertex(id)).Point
	return naming.TopoSignature{HasCentroid: true, Centroid: [3]float64{p.X, p.Y, p.Z}}
}

// EdgeEndpoints returns the two vertex positions id's half-edges span, in
// the (V0, V1) shape ops.FilletEdge/ops.ChamferEdge and kernel.EdgeRef
// expect.
func (k *Kernel) EdgeEndpoints(id KernelId) (geom.Point3d, geom.Point3d) {
	edge := k.store.Edge(decodeEdge(id))
	return k.store.Vertex(edge.StartVertex).Point, k.store.Vertex(edge.EndVertex).Point
}

// FaceIndex returns the position of id within ListFaces(handle), the index
// space ops.ShellSolid's openFaceIndices parameter addresses.
func (k *Kernel) FaceIndex(handle KernelSolidHandle, id KernelId) (int, bool) {
	for i, f := range k.ListFaces(handle) {
		if f == id {
			return i, true
		}
	}
	return 0, false
}

// Candidates builds the naming.Candidate list for every vertex, edge and
// face produced by handle, for use by naming.Resolve's
// SelectByQuery/SelectBySignature paths. Resolve filters by TopoKind
// itself, so handing back all three kinds in one list keeps this a single
// call site for the engine regardless of which kind a GeomRef names.
func (k *Kernel) Candidates(handle KernelSolidHandle) []naming.Candidate {
	faceIDs := k.ListFaces(handle)
	edgeIDs := k.ListEdges(handle)
	vertexIDs := k.ListVertices(handle)
	out := make([]naming.Candidate, 0, len(faceIDs)+len(edgeIDs)+len(vertexIDs))
	for _, id := range faceIDs {
		out = append(out, naming.Candidate{ID: id, Kind: naming.KindFace, Signature: k.FaceSignature(id)})
	}
	for _, id := range edgeIDs {
		out = append(out, naming.Candidate{ID: id, Kind: naming.KindEdge, Signature: k.EdgeSignature(id)})
	}
	for _, id := range vertexIDs {
		out = append(out, naming.Candidate{ID: id, Kind: naming.KindVertex, Signature: k.VertexSignature(id)})
	}
	return out
}

// RoleAssignments converts an ops.Provenance body's EntityRecords into
// naming.RoleAssignment values keyed by this Kernel's KernelId encoding.
func RoleAssignments(body ops.BodyOutput) []naming.RoleAssignment {
	out := make([]naming.RoleAssignment, len(body.Faces))
	for i, r := range body.Faces {
		out[i] = naming.RoleAssignment{ID: encodeFace(r.Face), Role: r.Role}
	}
	return out
}
