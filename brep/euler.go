//-----------------------------------------------------------------------------
/*

Euler Operators

The three primitive topology constructors for building a solid up one
vertex, edge and face at a time:

  Mvfs - make vertex, face, solid: the minimal non-empty solid.
  Mev  - make edge, vertex: split a loop by adding a vertex and an edge.
  Mef  - make edge, face: close a loop into two by adding an edge and a face.

Each preserves the Euler-Poincare invariant for a genus-0 shell (V - E + F
== 2) by construction. The primitives and the modeling operations do not
call these; they build whole faces directly through newPlanarFace /
NewPlanarFace.

*/
//-----------------------------------------------------------------------------

package brep

import (
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/internal/telemetry"
)

// Mvfs (make vertex, face, solid) creates the minimal topology: a new Solid
// containing one Shell, one Face with a single-vertex Loop, and the vertex
// itself. It is the starting point for every solid built from scratch via
// repeated Mev/Mef calls: the degenerate loop gives Mev somewhere to insert
// its first edge.
func Mvfs(store *EntityStore, point geom.Point3d) (SolidId, ShellId, VertexId) {
	vertexID := store.Vertices.Insert(Vertex{Point: point, Tolerance: geom.DefaultTolerance().Coincidence})

	solidID := store.Solids.Insert(Solid{})
	shellID := store.Shells.Insert(Shell{Orientation: ShellOutward, Solid: solidID})
	solid := store.Solid(solidID)
	solid.Shells = append(solid.Shells, shellID)

	faceID := store.Faces.Insert(Face{Shell: shellID, SameSense: true})
	loopID := store.Loops.Insert(Loop{Face: faceID})
	store.Face(faceID).OuterLoop = loopID
	store.Shell(shellID).Faces = append(store.Shell(shellID).Faces, faceID)

	telemetry.L().Debug("mvfs")
	return solidID, shellID, vertexID
}

// Mev (make edge, vertex) adds a new vertex and a new edge connecting it to
// an existing vertex. Both half-edges reference the named loop, but only
// the forward one (existing -> new) is appended to its half-edge list.
// Returns the new edge and vertex.
func Mev(store *EntityStore, existingVertex VertexId, newPoint geom.Point3d, loopID LoopId) (EdgeId, VertexId) {
	newVertexID := store.Vertices.Insert(Vertex{Point: newPoint, Tolerance: geom.DefaultTolerance().Coincidence})

	startPoint := store.Vertex(existingVertex).Point
	curve := geom.Line3dFromPoints(startPoint, newPoint)

	he1ID := store.HalfEdges.Insert(HalfEdge{})
	he2ID := store.HalfEdges.Insert(HalfEdge{})

	edgeID := store.Edges.Insert(Edge{
		Curve:       curve,
		HalfEdges:   [2]HalfEdgeId{he1ID, he2ID},
		StartVertex: existingVertex,
		EndVertex:   newVertexID,
	})

	length := startPoint.DistanceTo(newPoint)

	l := store.Loop(loopID)

	he1 := store.HalfEdge(he1ID)
	*he1 = HalfEdge{
		Edge:        edgeID,
		Twin:        he2ID,
		Face:        l.Face,
		Loop:        loopID,
		StartVertex: existingVertex,
		EndVertex:   newVertexID,
		TStart:      0,
		TEnd:        length,
		Forward:     true,
	}
	he2 := store.HalfEdge(he2ID)
	*he2 = HalfEdge{
		Edge:        edgeID,
		Twin:        he1ID,
		Face:        l.Face,
		Loop:        loopID,
		StartVertex: newVertexID,
		EndVertex:   existingVertex,
		TStart:      length,
		TEnd:        0,
		Forward:     false,
	}

	l.HalfEdges = append(l.HalfEdges, he1ID)

	telemetry.L().Debug("mev")
	return edgeID, newVertexID
}

// Mef (make edge, face) closes an existing loop into two by inserting a new
// edge between two of its vertices, partitioning existingLoop's half-edges
// between the unchanged existingLoop and a new Loop/Face pair added to
// shellID. v1 and v2 must both already start a half-edge in existingLoop (a
// loop with only one vertex, as Mvfs produces, is closed by calling Mev
// first). Returns the new edge and face.
func Mef(store *EntityStore, v1, v2 VertexId, existingLoop LoopId, shellID ShellId, surface geom.Surface) (EdgeId, FaceId) {
	p1 := store.Vertex(v1).Point
	p2 := store.Vertex(v2).Point
	curve := geom.Line3dFromPoints(p1, p2)
	length := p1.DistanceTo(p2)

	l := store.Loop(existingLoop)
	i1, i2 := -1, -1
	for i, heID := range l.HalfEdges {
		he := store.HalfEdge(heID)
		if he.StartVertex == v1 {
			i1 = i
		}
		if he.StartVertex == v2 {
			i2 = i
		}
	}
	if i1 < 0 || i2 < 0 {
		panic("brep: Mef requires v1 and v2 to each start a half-edge in existingLoop")
	}

	n := len(l.HalfEdges)
	pathV1ToV2 := wrapSlice(l.HalfEdges, i1, i2, n)
	pathV2ToV1 := wrapSlice(l.HalfEdges, i2, i1, n)

	newLoopID := store.Loops.Insert(Loop{})
	newFaceID := store.Faces.Insert(Face{Surface: surface, OuterLoop: newLoopID, Shell: shellID, SameSense: true})
	store.Loop(newLoopID).Face = newFaceID
	existingFace := l.Face

	he1ID := store.HalfEdges.Insert(HalfEdge{})
	he2ID := store.HalfEdges.Insert(HalfEdge{})

	edgeID := store.Edges.Insert(Edge{
		Curve:       curve,
		HalfEdges:   [2]HalfEdgeId{he1ID, he2ID},
		StartVertex: v1,
		EndVertex:   v2,
	})

	he1 := store.HalfEdge(he1ID)
	*he1 = HalfEdge{
		Edge:        edgeID,
		Twin:        he2ID,
		Face:        existingFace,
		Loop:        existingLoop,
		StartVertex: v1,
		EndVertex:   v2,
		TStart:      0,
		TEnd:        length,
		Forward:     true,
	}
	he2 := store.HalfEdge(he2ID)
	*he2 = HalfEdge{
		Edge:        edgeID,
		Twin:        he1ID,
		Face:        newFaceID,
		Loop:        newLoopID,
		StartVertex: v2,
		EndVertex:   v1,
		TStart:      length,
		TEnd:        0,
		Forward:     false,
	}

	// pathV2ToV1, closed by he1 (v1->v2), stays the existing loop/face;
	// pathV1ToV2, closed by he2 (v2->v1), becomes the new loop/face.
	for _, heID := range pathV1ToV2 {
		he := store.HalfEdge(heID)
		he.Face = newFaceID
		he.Loop = newLoopID
	}
	store.Loop(existingLoop).HalfEdges = append(append([]HalfEdgeId{}, pathV2ToV1...), he1ID)
	store.Loop(newLoopID).HalfEdges = append(append([]HalfEdgeId{}, pathV1ToV2...), he2ID)

	shell := store.Shell(shellID)
	shell.Faces = append(shell.Faces, newFaceID)

	telemetry.L().Debug("mef")
	return edgeID, newFaceID
}

// wrapSlice returns the elements of s from index start up to (not
// including) index end, wrapping around modulo n if end <= start.
func wrapSlice(s []HalfEdgeId, start, end, n int) []HalfEdgeId {
	if start == end {
		return nil
	}
	out := make([]HalfEdgeId, 0, n)
	for i := start; i != end; i = (i + 1) % n {
		out = append(out, s[i])
	}
	return out
}
