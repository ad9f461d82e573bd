//-----------------------------------------------------------------------------
/*

Revolve

Sweeps an open polyline profile around an axis by an angle, producing
either a fully closed solid of revolution (angle == 2*pi, no caps needed
since the last ring of vertices reuses the first) or a partial wedge
capped at both ends.

*/
//-----------------------------------------------------------------------------

package ops

import (
	"math"

	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
)

func rotatePointAroundAxis(point, axisOrigin geom.Point3d, axisDir geom.Vec3, angle float64) geom.Point3d {
	v := point.Sub(axisOrigin)
	k := axisDir.Normalize()
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	rotated := v.Scale(cosA).Add(k.Cross(v).Scale(sinA)).Add(k.Scale(k.Dot(v) * (1 - cosA)))
	return axisOrigin.Add(rotated)
}

func isFullRevolution(angle float64) bool {
	return math.Abs(math.Abs(angle)-2*math.Pi) < geom.DefaultTolerance().Angular
}

func computeCapNormal(store *brep.EntityStore, verts []brep.VertexId) geom.Vec3 {
	if len(verts) < 3 {
		if len(verts) == 2 {
			p0 := store.Vertex(verts[0]).Point
			p1 := store.Vertex(verts[1]).Point
			edge := p1.Sub(p0)
			var n geom.Vec3
			var ok bool
			if math.Abs(edge.X) < 0.9*edge.Length() {
				n, ok = edge.Cross(geom.Vec3X).Normalized()
			} else {
				n, ok = edge.Cross(geom.Vec3Y).Normalized()
			}
			if !ok {
				return geom.Vec3Z
			}
			return n
		}
		return geom.Vec3Z
	}
	p0 := store.Vertex(verts[0]).Point
	p1 := store.Vertex(verts[1]).Point
	p2 := store.Vertex(verts[2]).Point
	n, ok := p1.Sub(p0).Cross(p2.Sub(p0)).Normalized()
	if !ok {
		return geom.Vec3Z
	}
	return n
}

// RevolveProfile sweeps an open polyline profile around the axis through
// axisOrigin in direction axisDirection by angle radians, subdivided into
// numSegments angular steps. A full 2*pi revolution produces a closed solid
// with no caps; any other angle produces a wedge capped by the profile at
// both ends (when the profile has at least 3 points; a 2-point profile
// cannot form a cap polygon and is left open there).
func RevolveProfile(store *brep.EntityStore, profile []geom.Point3d, axisOrigin geom.Point3d, axisDirection geom.Vec3, angle float64, numSegments int) (OpResult, error) {
	nProfile := len(profile)
	if nProfile < 2 {
		return OpResult{}, errInsufficientProfile(2, nProfile)
	}
	if numSegments < 3 {
		return OpResult{}, errInsufficientSegments(3, numSegments)
	}
	if math.Abs(angle) < 1e-15 {
		return OpResult{}, errInvalidDimension("angle", angle)
	}
	if axisDirection.Length() < 1e-15 {
		return OpResult{}, errZeroDirection()
	}

	fullRev := isFullRevolution(angle)

	numRings := numSegments
	if !fullRev {
		numRings = numSegments + 1
	}

	rings := make([][]brep.VertexId, numRings)
	for ringIdx := 0; ringIdx < numRings; ringIdx++ {
		theta := angle * float64(ringIdx) / float64(numSegments)
		ring := make([]brep.VertexId, nProfile)
		for i, p := range profile {
			rotated := rotatePointAroundAxis(p, axisOrigin, axisDirection, theta)
			ring[i] = store.Vertices.Insert(brep.Vertex{Point: rotated, Tolerance: geom.DefaultTolerance().Coincidence})
		}
		rings[ringIdx] = ring
	}

	solidID := store.Solids.Insert(brep.Solid{})
	shellID := store.Shells.Insert(brep.Shell{Orientation: brep.ShellOutward, Solid: solidID})
	store.Solid(solidID).Shells = append(store.Solid(solidID).Shells, shellID)

	edgeMap := brep.NewEdgeMap()

	var faces []EntityRecord
	sideIdx := 0
	for seg := 0; seg < numSegments; seg++ {
		ringA := seg
		ringB := seg + 1
		if fullRev {
			ringB = (seg + 1) % numSegments
		}

		for profEdge := 0; profEdge < nProfile-1; profEdge++ {
			v0 := rings[ringA][profEdge]
			v1 := rings[ringA][profEdge+1]
			v2 := rings[ringB][profEdge+1]
			v3 := rings[ringB][profEdge]

			p0 := store.Vertex(v0).Point
			p1 := store.Vertex(v1).Point
			p3 := store.Vertex(v3).Point
			normal, ok := p1.Sub(p0).Cross(p3.Sub(p0)).Normalized()
			if !ok {
				normal = geom.Vec3Z
			}

			f := brep.NewPlanarFace(store, shellID, []brep.VertexId{v0, v1, v2, v3}, normal, edgeMap)
			faces = append(faces, EntityRecord{Face: f, Role: naming.SideFace(sideIdx)})
			sideIdx++
		}
	}

	if !fullRev && nProfile >= 3 {
		startCapVerts := make([]brep.VertexId, nProfile)
		for i, v := range rings[0] {
			startCapVerts[nProfile-1-i] = v
		}
		startFace := brep.NewPlanarFace(store, shellID, startCapVerts, computeCapNormal(store, startCapVerts), edgeMap)
		faces = append(faces, EntityRecord{Face: startFace, Role: naming.RevStartFace})

		endCapVerts := append([]brep.VertexId(nil), rings[numRings-1]...)
		endFace := brep.NewPlanarFace(store, shellID, endCapVerts, computeCapNormal(store, endCapVerts), edgeMap)
		faces = append(faces, EntityRecord{Face: endFace, Role: naming.RevEndFace})
	}

	return mainBody(solidID, faces), nil
}
