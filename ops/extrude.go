//-----------------------------------------------------------------------------
/*

Extrude

Sweeps a closed planar profile along a straight direction by a fixed
distance, producing a prism: two caps plus one quad side face per profile
edge, all sharing one EdgeMap so adjacent faces twin-link correctly.

*/
//-----------------------------------------------------------------------------

package ops

import (
	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
)

// Profile is a closed polygon, typically lying in a single plane, used as
// the cross-section for extrude, revolve, loft and sweep.
type Profile struct {
	Points []geom.Point3d
}

// RectangleProfile returns a centered rectangular profile on the XY plane.
func RectangleProfile(width, height float64) Profile {
	hw, hh := width/2, height/2
	return Profile{Points: []geom.Point3d{
		geom.NewPoint3d(-hw, -hh, 0),
		geom.NewPoint3d(hw, -hh, 0),
		geom.NewPoint3d(hw, hh, 0),
		geom.NewPoint3d(-hw, hh, 0),
	}}
}

// ProfileFromPoints wraps an arbitrary point list as a Profile.
func ProfileFromPoints(points []geom.Point3d) Profile {
	return Profile{Points: points}
}

func computeCentroid(pts []geom.Point3d) geom.Point3d {
	var cx, cy, cz float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
		cz += p.Z
	}
	n := float64(len(pts))
	return geom.NewPoint3d(cx/n, cy/n, cz/n)
}

// ExtrudeProfile sweeps profile along direction by distance, producing a
// closed solid: a bottom cap facing -direction, a top cap facing
// +direction, and one quad side face per profile edge.
func ExtrudeProfile(store *brep.EntityStore, profile Profile, direction geom.Vec3, distance float64) (OpResult, error) {
	n := len(profile.Points)
	if n < 3 {
		return OpResult{}, errInsufficientProfile(3, n)
	}
	if distance <= 0 {
		return OpResult{}, errInvalidDimension("distance", distance)
	}
	if direction.Length() < 1e-15 {
		return OpResult{}, errZeroDirection()
	}

	dir := direction.Normalize()
	extrusion := dir.Scale(distance)

	bottomVerts := make([]brep.VertexId, n)
	topVerts := make([]brep.VertexId, n)
	bottomPts := make([]geom.Point3d, n)
	topPts := make([]geom.Point3d, n)
	for i, p := range profile.Points {
		bp := p
		tp := p.Add(extrusion)
		bottomPts[i] = bp
		topPts[i] = tp
		bottomVerts[i] = store.Vertices.Insert(brep.Vertex{Point: bp, Tolerance: geom.DefaultTolerance().Coincidence})
		topVerts[i] = store.Vertices.Insert(brep.Vertex{Point: tp, Tolerance: geom.DefaultTolerance().Coincidence})
	}

	solidID := store.Solids.Insert(brep.Solid{})
	shellID := store.Shells.Insert(brep.Shell{Orientation: brep.ShellOutward, Solid: solidID})
	store.Solid(solidID).Shells = append(store.Solid(solidID).Shells, shellID)

	edgeMap := brep.NewEdgeMap()

	// Bottom cap: reversed winding so the outward normal points against
	// the extrusion direction.
	bottomReversed := make([]brep.VertexId, n)
	for i := 0; i < n; i++ {
		from := (n - i) % n
		bottomReversed[i] = bottomVerts[from]
	}
	var faces []EntityRecord
	bottomFace := brep.NewPlanarFace(store, shellID, bottomReversed, dir.Neg(), edgeMap)
	faces = append(faces, EntityRecord{Face: bottomFace, Role: naming.EndCapNegative})

	// Top cap: forward winding, outward normal along the extrusion
	// direction.
	topFace := brep.NewPlanarFace(store, shellID, topVerts, dir, edgeMap)
	faces = append(faces, EntityRecord{Face: topFace, Role: naming.EndCapPositive})

	// Side quads, one per profile edge.
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		quad := []brep.VertexId{bottomVerts[i], bottomVerts[next], topVerts[next], topVerts[i]}

		p0, p1, p3 := bottomPts[i], bottomPts[next], topPts[i]
		edge1 := p1.Sub(p0)
		edge2 := p3.Sub(p0)
		normal, ok := edge1.Cross(edge2).Normalized()
		if !ok {
			normal = geom.Vec3Z
		}
		sideFace := brep.NewPlanarFace(store, shellID, quad, normal, edgeMap)
		faces = append(faces, EntityRecord{Face: sideFace, Role: naming.SideFace(i)})
	}

	return mainBody(solidID, faces), nil
}
