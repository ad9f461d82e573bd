//-----------------------------------------------------------------------------
/*

Chamfer

Cuts an edge at a fixed distance along each adjacent face's normal,
replacing the sharp edge with a single flat bevel face. Shares its
face-polygon collection, vertex dedup and non-adjacent-face vertex
substitution machinery with fillet; the difference is a single straight
bevel quad rather than an arc of segments.

*/
//-----------------------------------------------------------------------------

package ops

import (
	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
)

func replaceVertexWithChamferPair(verts []geom.Point3d, edgeV0, edgeV1, a0, a1, b0, b1 geom.Point3d, tol float64) []geom.Point3d {
	n := len(verts)
	var result []geom.Point3d
	for i := 0; i < n; i++ {
		v := verts[i]
		switch {
		case v.DistanceTo(edgeV0) < tol:
			pred := verts[(i+n-1)%n]
			if pred.DistanceTo(a0) <= pred.DistanceTo(b0) {
				result = append(result, a0, b0)
			} else {
				result = append(result, b0, a0)
			}
		case v.DistanceTo(edgeV1) < tol:
			pred := verts[(i+n-1)%n]
			if pred.DistanceTo(a1) <= pred.DistanceTo(b1) {
				result = append(result, a1, b1)
			} else {
				result = append(result, b1, a1)
			}
		default:
			result = append(result, v)
		}
	}
	return result
}

// ChamferEdge cuts the edge running between edgeV0 and edgeV1 on solidID at
// distance along each adjacent face's inward normal, replacing it with a
// single flat bevel face, and returns a new solid. Fails if distance is not
// positive or the edge cannot be found.
func ChamferEdge(store *brep.EntityStore, solidID brep.SolidId, edgeV0, edgeV1 geom.Point3d, distance float64) (OpResult, error) {
	if distance <= 0 {
		return OpResult{}, errInvalidDimension("distance", distance)
	}

	solid := store.Solid(solidID)
	shellID := solid.Shells[0]
	facePolys := facePolygonsOf(store, shellID)

	tol := geom.DefaultTolerance().Coincidence
	var adjacent []int
	for fi, poly := range facePolys {
		n := len(poly.Verts)
		for i := 0; i < n; i++ {
			a := poly.Verts[i]
			b := poly.Verts[(i+1)%n]
			matchFwd := a.DistanceTo(edgeV0) < tol && b.DistanceTo(edgeV1) < tol
			matchRev := a.DistanceTo(edgeV1) < tol && b.DistanceTo(edgeV0) < tol
			if matchFwd || matchRev {
				adjacent = append(adjacent, fi)
				break
			}
		}
	}
	if len(adjacent) != 2 {
		return OpResult{}, errEdgeNotFound()
	}
	fiA, fiB := adjacent[0], adjacent[1]
	normalA, normalB := facePolys[fiA].Normal, facePolys[fiB].Normal

	chamferA0 := edgeV0.Add(normalA.Scale(-distance))
	chamferA1 := edgeV1.Add(normalA.Scale(-distance))
	chamferB0 := edgeV0.Add(normalB.Scale(-distance))
	chamferB1 := edgeV1.Add(normalB.Scale(-distance))

	newSolidID := store.Solids.Insert(brep.Solid{})
	newShellID := store.Shells.Insert(brep.Shell{Orientation: brep.ShellOutward, Solid: newSolidID})
	store.Solid(newSolidID).Shells = append(store.Solid(newSolidID).Shells, newShellID)

	vertexMap := make(map[quantizedPoint]brep.VertexId)
	edgeMap := brep.NewEdgeMap()

	var newFacePolys []facePolygon
	for fi, poly := range facePolys {
		switch fi {
		case fiA:
			newFacePolys = append(newFacePolys, facePolygon{
				Verts:  replaceEdgeVerts(poly.Verts, edgeV0, edgeV1, chamferB0, chamferB1, tol),
				Normal: poly.Normal,
				Origin: poly.Origin,
			})
		case fiB:
			newFacePolys = append(newFacePolys, facePolygon{
				Verts:  replaceEdgeVerts(poly.Verts, edgeV0, edgeV1, chamferA0, chamferA1, tol),
				Normal: poly.Normal,
				Origin: poly.Origin,
			})
		default:
			newFacePolys = append(newFacePolys, facePolygon{
				Verts:  replaceVertexWithChamferPair(poly.Verts, edgeV0, edgeV1, chamferA0, chamferA1, chamferB0, chamferB1, tol),
				Normal: poly.Normal,
				Origin: poly.Origin,
			})
		}
	}

	bevelNormal, ok := normalA.Add(normalB).Normalized()
	if !ok {
		bevelNormal = geom.Vec3Z
	}
	newFacePolys = append(newFacePolys, facePolygon{
		Verts:  []geom.Point3d{chamferA0, chamferA1, chamferB1, chamferB0},
		Normal: bevelNormal,
	})

	var faces []EntityRecord
	var rewrites []Rewrite
	for _, poly := range newFacePolys {
		if len(poly.Verts) < 3 {
			continue
		}
		vertexIDs := make([]brep.VertexId, len(poly.Verts))
		for i, p := range poly.Verts {
			vertexIDs[i] = getOrCreateVertex(store, vertexMap, p)
		}
		newFace := brep.NewPlanarFace(store, newShellID, vertexIDs, poly.Normal, edgeMap)
		if poly.Origin.IsValid() {
			rewrites = append(rewrites, Rewrite{From: poly.Origin, To: []brep.FaceId{newFace}, Reason: RewriteChamferReplaced})
		} else {
			faces = append(faces, EntityRecord{Face: newFace, Role: naming.ChamferFace(0)})
		}
	}

	result := mainBody(newSolidID, faces)
	result.Provenance.Rewrites = rewrites
	return result, nil
}
