//-----------------------------------------------------------------------------
/*

Loft

Connects two same-sized profiles with straight side quads, capping each
end with the profile itself. The cap normals are estimated from the line
between the two profile centroids rather than a fixed axis, since loft
places no constraint on how the profiles are oriented relative to each
other.

*/
//-----------------------------------------------------------------------------

package ops

import (
	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
)

func estimateCapNormal(center, otherCenter geom.Point3d, verts []geom.Point3d, outward bool) geom.Vec3 {
	up := otherCenter.Sub(center)
	if up.Length() > 1e-15 {
		n := up.Normalize()
		if outward {
			return n.Neg()
		}
		return n
	}
	e1 := verts[1].Sub(verts[0])
	e2 := verts[2].Sub(verts[0])
	n, ok := e1.Cross(e2).Normalized()
	if !ok {
		n = geom.Vec3Z
	}
	if outward {
		return n.Neg()
	}
	return n
}

// LoftProfiles connects bottomProfile and topProfile (each >= 3 points, same
// length) with one side quad per corresponding edge pair, capping the
// bottom and top with the profiles themselves.
func LoftProfiles(store *brep.EntityStore, bottomProfile, topProfile []geom.Point3d) (OpResult, error) {
	n := len(bottomProfile)
	if n < 3 {
		return OpResult{}, errInsufficientProfile(3, n)
	}
	if len(topProfile) < 3 {
		return OpResult{}, errInsufficientProfile(3, len(topProfile))
	}
	if n != len(topProfile) {
		return OpResult{}, errProfileMismatch(n, len(topProfile))
	}

	bottomVerts := make([]brep.VertexId, n)
	topVerts := make([]brep.VertexId, n)
	for i := 0; i < n; i++ {
		bottomVerts[i] = store.Vertices.Insert(brep.Vertex{Point: bottomProfile[i], Tolerance: geom.DefaultTolerance().Coincidence})
		topVerts[i] = store.Vertices.Insert(brep.Vertex{Point: topProfile[i], Tolerance: geom.DefaultTolerance().Coincidence})
	}

	solidID := store.Solids.Insert(brep.Solid{})
	shellID := store.Shells.Insert(brep.Shell{Orientation: brep.ShellOutward, Solid: solidID})
	store.Solid(solidID).Shells = append(store.Solid(solidID).Shells, shellID)

	edgeMap := brep.NewEdgeMap()

	bottomCenter := computeCentroid(bottomProfile)
	topCenter := computeCentroid(topProfile)

	// Bottom cap: reversed winding, normal estimated outward (away from the
	// top profile).
	bottomReversed := make([]brep.VertexId, n)
	for i := 0; i < n; i++ {
		from := (n - i) % n
		bottomReversed[i] = bottomVerts[from]
	}
	bottomNormal := estimateCapNormal(bottomCenter, topCenter, bottomProfile, true)
	var faces []EntityRecord
	bottomFace := brep.NewPlanarFace(store, shellID, bottomReversed, bottomNormal, edgeMap)
	faces = append(faces, EntityRecord{Face: bottomFace, Role: naming.EndCapNegative})

	// Top cap: forward winding, normal estimated outward (away from the
	// bottom profile).
	topNormal := estimateCapNormal(topCenter, bottomCenter, topProfile, true)
	topFace := brep.NewPlanarFace(store, shellID, topVerts, topNormal, edgeMap)
	faces = append(faces, EntityRecord{Face: topFace, Role: naming.EndCapPositive})

	// Side quads, one per corresponding edge pair.
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		v0, v1 := bottomVerts[i], bottomVerts[next]
		v2, v3 := topVerts[next], topVerts[i]

		p0, p1, p3 := bottomProfile[i], bottomProfile[next], topProfile[i]
		normal, ok := p1.Sub(p0).Cross(p3.Sub(p0)).Normalized()
		if !ok {
			normal = geom.Vec3Z
		}
		sideFace := brep.NewPlanarFace(store, shellID, []brep.VertexId{v0, v1, v2, v3}, normal, edgeMap)
		faces = append(faces, EntityRecord{Face: sideFace, Role: naming.SideFace(i)})
	}

	return mainBody(solidID, faces), nil
}
