//-----------------------------------------------------------------------------
/*

Shell

Hollows a solid: the faces named in openFaces are removed entirely
(becoming the opening(s) into the cavity), every other face gets an
inward-offset twin at distance thickness, and a ring of wall quads
connects each opening's rim to its offset counterpart, closing the
cavity everywhere except at the openings. Reuses fillet's face-polygon
and vertex-dedup machinery rather than duplicating it.

*/
//-----------------------------------------------------------------------------

package ops

import (
	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
)

// ShellSolid hollows solidID to thickness, removing the faces at
// openFaceIndices (indices into the solid's single shell's Faces slice)
// to form the cavity's opening(s). Fails if thickness is not positive or
// every face would be removed.
func ShellSolid(store *brep.EntityStore, solidID brep.SolidId, thickness float64, openFaceIndices []int) (OpResult, error) {
	if thickness <= 0 {
		return OpResult{}, errInvalidDimension("thickness", thickness)
	}

	solid := store.Solid(solidID)
	shellID := solid.Shells[0]
	facePolys := facePolygonsOf(store, shellID)

	open := make(map[int]bool, len(openFaceIndices))
	for _, i := range openFaceIndices {
		open[i] = true
	}
	if len(open) >= len(facePolys) {
		return OpResult{}, errInvalidDimension("openFaceIndices", float64(len(open)))
	}

	newSolidID := store.Solids.Insert(brep.Solid{})
	newShellID := store.Shells.Insert(brep.Shell{Orientation: brep.ShellOutward, Solid: newSolidID})
	store.Solid(newSolidID).Shells = append(store.Solid(newSolidID).Shells, newShellID)

	vertexMap := make(map[quantizedPoint]brep.VertexId)
	edgeMap := brep.NewEdgeMap()

	var faces []EntityRecord
	innerIdx := 0

	buildFace := func(verts []geom.Point3d, normal geom.Vec3) brep.FaceId {
		ids := make([]brep.VertexId, len(verts))
		for i, p := range verts {
			ids[i] = getOrCreateVertex(store, vertexMap, p)
		}
		return brep.NewPlanarFace(store, newShellID, ids, normal, edgeMap)
	}

	// Outer skin: every kept face, unchanged. Shell does not have access to
	// the prior feature's role assignments (it only sees brep geometry), so
	// these are not recorded as Rewrites; a GeomRef into them falls back to
	// signature matching, which succeeds since the geometry is identical.
	for fi, poly := range facePolys {
		if open[fi] {
			continue
		}
		buildFace(poly.Verts, poly.Normal)
	}

	// Inner skin: kept faces offset inward by thickness, reversed winding.
	for fi, poly := range facePolys {
		if open[fi] {
			continue
		}
		offset := poly.Normal.Scale(-thickness)
		inner := make([]geom.Point3d, len(poly.Verts))
		n := len(poly.Verts)
		for i, p := range poly.Verts {
			inner[n-1-i] = p.Add(offset)
		}
		f := buildFace(inner, poly.Normal.Neg())
		faces = append(faces, EntityRecord{Face: f, Role: naming.ShellInnerFace(innerIdx)})
		innerIdx++
	}

	// Wall quads around each opening's rim, connecting the outer boundary
	// to its own inward offset.
	for fi, poly := range facePolys {
		if !open[fi] {
			continue
		}
		offset := poly.Normal.Scale(-thickness)
		n := len(poly.Verts)
		for i := 0; i < n; i++ {
			next := (i + 1) % n
			a0, a1 := poly.Verts[i], poly.Verts[next]
			b0, b1 := a0.Add(offset), a1.Add(offset)
			quad := []geom.Point3d{a0, a1, b1, b0}
			edge := a1.Sub(a0)
			normal, ok := edge.Cross(offset).Normalized()
			if !ok {
				normal = poly.Normal
			}
			f := buildFace(quad, normal)
			faces = append(faces, EntityRecord{Face: f, Role: naming.ShellInnerFace(innerIdx)})
			innerIdx++
		}
	}

	return mainBody(newSolidID, faces), nil
}
