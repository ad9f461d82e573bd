//-----------------------------------------------------------------------------
/*

Primitive Solids

MakeBox, MakeCylinder and MakeSphere build closed, genus-0 solids directly
(rather than via repeated Mev/Mef calls) because their topology is known
up front. All three share createFaceEdgeTwinned: a per-solid edge map keyed
by an unordered vertex pair guarantees that when two adjacent faces both
walk the edge between the same two vertices, the second call finds the
first call's half-edge and links itself as its twin instead of creating a
duplicate edge.

*/
//-----------------------------------------------------------------------------

package brep

import (
	"math"

	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/internal/telemetry"
)

type vertexPairKey struct {
	a, b VertexId
}

// EdgeMap tracks half-edges already created for a vertex pair during the
// construction of a solid, so the second face walking a shared edge can
// twin-link to the first instead of duplicating it. Operations that build
// several faces against one EntityStore (extrude, revolve, loft, sweep)
// share one EdgeMap across the whole solid.
type EdgeMap = map[vertexPairKey]HalfEdgeId

// NewEdgeMap returns an empty EdgeMap.
func NewEdgeMap() EdgeMap {
	return make(EdgeMap)
}

func canonicalPair(a, b VertexId) vertexPairKey {
	if keyLess(a, b) {
		return vertexPairKey{a, b}
	}
	return vertexPairKey{b, a}
}

func keyLess[T any](a, b Key[T]) bool {
	if a.idx != b.idx {
		return a.idx < b.idx
	}
	return a.gen < b.gen
}

// createFaceEdgeTwinned returns a half-edge from vStart to vEnd bound to
// faceID/loopID, reusing and twin-linking an existing half-edge from
// edgeMap if one was already created (by an adjacent face) for the same
// unordered vertex pair.
func createFaceEdgeTwinned(store *EntityStore, vStart, vEnd VertexId, faceID FaceId, loopID LoopId, edgeMap map[vertexPairKey]HalfEdgeId) HalfEdgeId {
	key := canonicalPair(vStart, vEnd)
	p1 := store.Vertex(vStart).Point
	p2 := store.Vertex(vEnd).Point
	length := p1.DistanceTo(p2)

	if existingID, ok := edgeMap[key]; ok {
		existing := store.HalfEdge(existingID)
		edge := store.Edge(existing.Edge)

		heID := store.HalfEdges.Insert(HalfEdge{
			Edge:        existing.Edge,
			Twin:        existingID,
			Face:        faceID,
			Loop:        loopID,
			StartVertex: vStart,
			EndVertex:   vEnd,
			TStart:      0,
			TEnd:        length,
			Forward:     vStart == edge.StartVertex,
		})
		existing.Twin = heID
		if edge.HalfEdges[0] == existingID {
			edge.HalfEdges[1] = heID
		} else {
			edge.HalfEdges[0] = heID
		}
		store.Loop(loopID).HalfEdges = append(store.Loop(loopID).HalfEdges, heID)
		delete(edgeMap, key)
		return heID
	}

	curve := geom.Line3dFromPoints(p1, p2)
	heID := store.HalfEdges.Insert(HalfEdge{})
	edgeID := store.Edges.Insert(Edge{
		Curve:       curve,
		HalfEdges:   [2]HalfEdgeId{heID, HalfEdgeId{}},
		StartVertex: vStart,
		EndVertex:   vEnd,
	})
	*store.HalfEdge(heID) = HalfEdge{
		Edge:        edgeID,
		Face:        faceID,
		Loop:        loopID,
		StartVertex: vStart,
		EndVertex:   vEnd,
		TStart:      0,
		TEnd:        length,
		Forward:     true,
	}
	store.Loop(loopID).HalfEdges = append(store.Loop(loopID).HalfEdges, heID)
	edgeMap[key] = heID
	return heID
}

// CreateFaceEdgeTwinned is the exported form of createFaceEdgeTwinned, used
// by package ops to build faces face-by-face against a shared EdgeMap for
// operations (extrude, revolve, loft, sweep) whose topology isn't known
// fully up front the way a primitive's is.
func CreateFaceEdgeTwinned(store *EntityStore, vStart, vEnd VertexId, faceID FaceId, loopID LoopId, edgeMap EdgeMap) HalfEdgeId {
	return createFaceEdgeTwinned(store, vStart, vEnd, faceID, loopID, edgeMap)
}

// NewPlanarFace is the exported form of newPlanarFace.
func NewPlanarFace(store *EntityStore, shellID ShellId, verts []VertexId, normal geom.Vec3, edgeMap EdgeMap) FaceId {
	return newPlanarFace(store, shellID, verts, normal, edgeMap)
}

// newPlanarFace allocates a face+loop pair for a planar polygon and walks
// verts (in CCW order around the given outward normal) through
// createFaceEdgeTwinned, appending the face to shellID.
func newPlanarFace(store *EntityStore, shellID ShellId, verts []VertexId, normal geom.Vec3, edgeMap map[vertexPairKey]HalfEdgeId) FaceId {
	origin := store.Vertex(verts[0]).Point
	surface := geom.NewPlane(origin, normal)

	faceID := store.Faces.Insert(Face{Surface: surface, Shell: shellID, SameSense: true})
	loopID := store.Loops.Insert(Loop{Face: faceID})
	store.Face(faceID).OuterLoop = loopID

	n := len(verts)
	for i := 0; i < n; i++ {
		createFaceEdgeTwinned(store, verts[i], verts[(i+1)%n], faceID, loopID, edgeMap)
	}

	store.Shell(shellID).Faces = append(store.Shell(shellID).Faces, faceID)
	return faceID
}

// MakeBox builds an axis-aligned box solid spanning [x0,x1] x [y0,y1] x
// [z0,z1].
func MakeBox(store *EntityStore, x0, y0, z0, x1, y1, z1 float64) SolidId {
	corners := [8]geom.Point3d{
		geom.NewPoint3d(x0, y0, z0), // 0
		geom.NewPoint3d(x1, y0, z0), // 1
		geom.NewPoint3d(x1, y1, z0), // 2
		geom.NewPoint3d(x0, y1, z0), // 3
		geom.NewPoint3d(x0, y0, z1), // 4
		geom.NewPoint3d(x1, y0, z1), // 5
		geom.NewPoint3d(x1, y1, z1), // 6
		geom.NewPoint3d(x0, y1, z1), // 7
	}

	var cv [8]VertexId
	for i, c := range corners {
		cv[i] = store.Vertices.Insert(Vertex{Point: c, Tolerance: geom.DefaultTolerance().Coincidence})
	}

	solidID := store.Solids.Insert(Solid{})
	shellID := store.Shells.Insert(Shell{Orientation: ShellOutward, Solid: solidID})
	store.Solid(solidID).Shells = append(store.Solid(solidID).Shells, shellID)

	edgeMap := make(map[vertexPairKey]HalfEdgeId)

	faceDefs := []struct {
		idx    [4]int
		normal geom.Vec3
	}{
		{[4]int{0, 3, 2, 1}, geom.Vec3Z.Neg()}, // front, z = z0
		{[4]int{4, 5, 6, 7}, geom.Vec3Z},       // back, z = z1
		{[4]int{0, 4, 7, 3}, geom.Vec3X.Neg()}, // left, x = x0
		{[4]int{1, 2, 6, 5}, geom.Vec3X},       // right, x = x1
		{[4]int{0, 1, 5, 4}, geom.Vec3Y.Neg()}, // bottom, y = y0
		{[4]int{3, 7, 6, 2}, geom.Vec3Y},       // top, y = y1
	}

	for _, fd := range faceDefs {
		verts := []VertexId{cv[fd.idx[0]], cv[fd.idx[1]], cv[fd.idx[2]], cv[fd.idx[3]]}
		newPlanarFace(store, shellID, verts, fd.normal, edgeMap)
	}

	telemetry.L().Debug("make_box")
	return solidID
}

// MakeCylinder builds a closed circular cylinder of the given radius and
// height, centered at center with its axis along +Z, approximated by
// numSegments side faces.
func MakeCylinder(store *EntityStore, center geom.Point3d, radius, height float64, numSegments int) SolidId {
	bottom := make([]VertexId, numSegments)
	top := make([]VertexId, numSegments)

	for i := 0; i < numSegments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(numSegments)
		x := center.X + radius*math.Cos(theta)
		y := center.Y + radius*math.Sin(theta)
		bottom[i] = store.Vertices.Insert(Vertex{Point: geom.NewPoint3d(x, y, center.Z), Tolerance: geom.DefaultTolerance().Coincidence})
		top[i] = store.Vertices.Insert(Vertex{Point: geom.NewPoint3d(x, y, center.Z+height), Tolerance: geom.DefaultTolerance().Coincidence})
	}

	solidID := store.Solids.Insert(Solid{})
	shellID := store.Shells.Insert(Shell{Orientation: ShellOutward, Solid: solidID})
	store.Solid(solidID).Shells = append(store.Solid(solidID).Shells, shellID)

	edgeMap := make(map[vertexPairKey]HalfEdgeId)

	// Bottom cap: reversed winding so the outward normal points -Z.
	bottomVerts := make([]VertexId, numSegments)
	for i := 0; i < numSegments; i++ {
		from := (numSegments - i) % numSegments
		bottomVerts[i] = bottom[from]
	}
	newPlanarFace(store, shellID, bottomVerts, geom.Vec3Z.Neg(), edgeMap)

	// Top cap: forward winding, outward normal +Z.
	newPlanarFace(store, shellID, top, geom.Vec3Z, edgeMap)

	// Side quads.
	for i := 0; i < numSegments; i++ {
		j := (i + 1) % numSegments
		quad := []VertexId{bottom[i], bottom[j], top[j], top[i]}
		outward := store.Vertex(bottom[i]).Point.Sub(center)
		outward.Z = 0
		outward = outward.Normalize()
		newPlanarFace(store, shellID, quad, outward, edgeMap)
	}

	telemetry.L().Debug("make_cylinder")
	return solidID
}

// MakeSphere builds a closed sphere of the given radius centered at center,
// approximated by numMeridians longitude divisions and numParallels
// latitude divisions.
func MakeSphere(store *EntityStore, center geom.Point3d, radius float64, numMeridians, numParallels int) SolidId {
	solidID := store.Solids.Insert(Solid{})
	shellID := store.Shells.Insert(Shell{Orientation: ShellOutward, Solid: solidID})
	store.Solid(solidID).Shells = append(store.Solid(solidID).Shells, shellID)

	edgeMap := make(map[vertexPairKey]HalfEdgeId)

	northID := store.Vertices.Insert(Vertex{Point: center.Add(geom.NewVec3(0, 0, radius)), Tolerance: geom.DefaultTolerance().Coincidence})
	southID := store.Vertices.Insert(Vertex{Point: center.Add(geom.NewVec3(0, 0, -radius)), Tolerance: geom.DefaultTolerance().Coincidence})

	ringVerts := make([][]VertexId, numParallels-1)
	for ring := 1; ring < numParallels; ring++ {
		phi := math.Pi * float64(ring) / float64(numParallels) // colatitude, 0=north pole
		z := radius * math.Cos(phi)
		r := radius * math.Sin(phi)
		row := make([]VertexId, numMeridians)
		for m := 0; m < numMeridians; m++ {
			theta := 2 * math.Pi * float64(m) / float64(numMeridians)
			x := center.X + r*math.Cos(theta)
			y := center.Y + r*math.Sin(theta)
			row[m] = store.Vertices.Insert(Vertex{Point: geom.NewPoint3d(x, y, center.Z+z), Tolerance: geom.DefaultTolerance().Coincidence})
		}
		ringVerts[ring-1] = row
	}

	faceNormal := func(verts []geom.Point3d) geom.Vec3 {
		var cx, cy, cz float64
		for _, p := range verts {
			cx += p.X
			cy += p.Y
			cz += p.Z
		}
		n := float64(len(verts))
		centroid := geom.NewPoint3d(cx/n, cy/n, cz/n)
		return centroid.Sub(center).Normalize()
	}

	// North cap: triangle fan between the pole and the first ring.
	firstRing := ringVerts[0]
	for m := 0; m < numMeridians; m++ {
		j := (m + 1) % numMeridians
		tri := []VertexId{northID, firstRing[m], firstRing[j]}
		normal := faceNormal([]geom.Point3d{store.Vertex(tri[0]).Point, store.Vertex(tri[1]).Point, store.Vertex(tri[2]).Point})
		newPlanarFace(store, shellID, tri, normal, edgeMap)
	}

	// Middle quad strips between consecutive rings.
	for ring := 0; ring < numParallels-2; ring++ {
		a := ringVerts[ring]
		b := ringVerts[ring+1]
		for m := 0; m < numMeridians; m++ {
			j := (m + 1) % numMeridians
			quad := []VertexId{a[m], b[m], b[j], a[j]}
			normal := faceNormal([]geom.Point3d{
				store.Vertex(quad[0]).Point, store.Vertex(quad[1]).Point,
				store.Vertex(quad[2]).Point, store.Vertex(quad[3]).Point,
			})
			newPlanarFace(store, shellID, quad, normal, edgeMap)
		}
	}

	// South cap: triangle fan between the last ring and the south pole.
	lastRing := ringVerts[len(ringVerts)-1]
	for m := 0; m < numMeridians; m++ {
		j := (m + 1) % numMeridians
		tri := []VertexId{southID, lastRing[j], lastRing[m]}
		normal := faceNormal([]geom.Point3d{store.Vertex(tri[0]).Point, store.Vertex(tri[1]).Point, store.Vertex(tri[2]).Point})
		newPlanarFace(store, shellID, tri, normal, edgeMap)
	}

	telemetry.L().Debug("make_sphere")
	return solidID
}
