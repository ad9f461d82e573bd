//-----------------------------------------------------------------------------
/*

Fillet

Rounds an edge of a solid with a circular arc approximated by straight
segments. Builds an entirely new solid: the two faces adjacent to the
edge are trimmed back to the arc's tangent points, any other face that
touches one of the edge's endpoints has that vertex replaced with the
full arc point chain, and one quad strip per arc segment closes the gap.

*/
//-----------------------------------------------------------------------------

package ops

import (
	"math"

	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
)

type arcPointPair struct {
	P0, P1 geom.Point3d
}

func slerpVec3(a, b geom.Vec3, t float64) geom.Vec3 {
	denom := a.Length() * b.Length()
	if denom < 1e-15 {
		denom = 1e-15
	}
	dot := a.Dot(b) / denom
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	theta := math.Acos(dot)

	if math.Abs(theta) < geom.DefaultTolerance().Angular {
		return a.Scale(1 - t).Add(b.Scale(t))
	}
	sinTheta := math.Sin(theta)
	return a.Scale(math.Sin((1-t)*theta) / sinTheta).Add(b.Scale(math.Sin(t*theta) / sinTheta))
}

func computeFilletArcPoints(edgeV0, edgeV1 geom.Point3d, normalA, normalB geom.Vec3, radius float64, segments int) []arcPointPair {
	result := make([]arcPointPair, 0, segments+1)
	offsetA := normalA.Scale(-radius)
	offsetB := normalB.Scale(-radius)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		offset := slerpVec3(offsetA, offsetB, t)
		result = append(result, arcPointPair{P0: edgeV0.Add(offset), P1: edgeV1.Add(offset)})
	}
	return result
}

func replaceEdgeVerts(verts []geom.Point3d, edgeV0, edgeV1, newV0, newV1 geom.Point3d, tol float64) []geom.Point3d {
	out := make([]geom.Point3d, len(verts))
	for i, v := range verts {
		switch {
		case v.DistanceTo(edgeV0) < tol:
			out[i] = newV0
		case v.DistanceTo(edgeV1) < tol:
			out[i] = newV1
		default:
			out[i] = v
		}
	}
	return out
}

func replaceVertexWithArcChain(verts []geom.Point3d, edgeV0, edgeV1 geom.Point3d, arcPoints []arcPointPair, tol float64) []geom.Point3d {
	n := len(verts)
	var result []geom.Point3d

	for i := 0; i < n; i++ {
		v := verts[i]
		switch {
		case v.DistanceTo(edgeV0) < tol:
			pred := verts[(i+n-1)%n]
			arcFirst, arcLast := arcPoints[0].P0, arcPoints[len(arcPoints)-1].P0
			if pred.DistanceTo(arcFirst) <= pred.DistanceTo(arcLast) {
				for _, ap := range arcPoints {
					result = append(result, ap.P0)
				}
			} else {
				for j := len(arcPoints) - 1; j >= 0; j-- {
					result = append(result, arcPoints[j].P0)
				}
			}
		case v.DistanceTo(edgeV1) < tol:
			pred := verts[(i+n-1)%n]
			arcFirst, arcLast := arcPoints[0].P1, arcPoints[len(arcPoints)-1].P1
			if pred.DistanceTo(arcFirst) <= pred.DistanceTo(arcLast) {
				for _, ap := range arcPoints {
					result = append(result, ap.P1)
				}
			} else {
				for j := len(arcPoints) - 1; j >= 0; j-- {
					result = append(result, arcPoints[j].P1)
				}
			}
		default:
			result = append(result, v)
		}
	}

	return result
}

type quantizedPoint struct {
	x, y, z int64
}

func quantizePoint(p geom.Point3d) quantizedPoint {
	const scale = 1e8
	return quantizedPoint{
		x: int64(math.Round(p.X * scale)),
		y: int64(math.Round(p.Y * scale)),
		z: int64(math.Round(p.Z * scale)),
	}
}

func getOrCreateVertex(store *brep.EntityStore, vertexMap map[quantizedPoint]brep.VertexId, point geom.Point3d) brep.VertexId {
	key := quantizePoint(point)
	if id, ok := vertexMap[key]; ok {
		return id
	}
	id := store.Vertices.Insert(brep.Vertex{Point: point, Tolerance: geom.DefaultTolerance().Coincidence})
	vertexMap[key] = id
	return id
}

type facePolygon struct {
	Verts  []geom.Point3d
	Normal geom.Vec3
	Origin brep.FaceId // zero value for a newly synthesized face (e.g. a fillet strip quad)
}

func facePolygonsOf(store *brep.EntityStore, shellID brep.ShellId) []facePolygon {
	shell := store.Shell(shellID)
	polys := make([]facePolygon, 0, len(shell.Faces))
	for _, faceID := range shell.Faces {
		face := store.Face(faceID)
		normal := face.Surface.NormalAt(0, 0)
		loopData := store.Loop(face.OuterLoop)
		verts := make([]geom.Point3d, len(loopData.HalfEdges))
		for i, heID := range loopData.HalfEdges {
			verts[i] = store.Vertex(store.HalfEdge(heID).StartVertex).Point
		}
		polys = append(polys, facePolygon{Verts: verts, Normal: normal, Origin: faceID})
	}
	return polys
}

// FilletEdge rounds the edge running between edgeV0 and edgeV1 on solidID
// with a circular arc of the given radius, approximated by segments
// straight pieces, and returns a new solid (the original is left
// untouched). Fails if the radius is not positive or the edge cannot be
// found (exactly two faces of the solid must meet at it).
func FilletEdge(store *brep.EntityStore, solidID brep.SolidId, edgeV0, edgeV1 geom.Point3d, radius float64, segments int) (OpResult, error) {
	if radius <= 0 {
		return OpResult{}, errInvalidDimension("radius", radius)
	}
	if segments < 2 {
		segments = 2
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

	arcPoints := computeFilletArcPoints(edgeV0, edgeV1, normalA, normalB, radius, segments)
	lastArc := len(arcPoints) - 1

	newSolidID := store.Solids.Insert(brep.Solid{})
	newShellID := store.Shells.Insert(brep.Shell{Orientation: brep.ShellOutward, Solid: newSolidID})
	store.Solid(newSolidID).Shells = append(store.Solid(newSolidID).Shells, newShellID)

	vertexMap := make(map[quantizedPoint]brep.VertexId)
	edgeMap := brep.NewEdgeMap()

	var newFacePolys []facePolygon

	for fi, poly := range facePolys {
		switch fi {
		case fiA:
			newV0, newV1 := arcPoints[lastArc].P0, arcPoints[lastArc].P1
			newFacePolys = append(newFacePolys, facePolygon{
				Verts:  replaceEdgeVerts(poly.Verts, edgeV0, edgeV1, newV0, newV1, tol),
				Normal: poly.Normal,
				Origin: poly.Origin,
			})
		case fiB:
			newV0, newV1 := arcPoints[0].P0, arcPoints[0].P1
			newFacePolys = append(newFacePolys, facePolygon{
				Verts:  replaceEdgeVerts(poly.Verts, edgeV0, edgeV1, newV0, newV1, tol),
				Normal: poly.Normal,
				Origin: poly.Origin,
			})
		default:
			newFacePolys = append(newFacePolys, facePolygon{
				Verts:  replaceVertexWithArcChain(poly.Verts, edgeV0, edgeV1, arcPoints, tol),
				Normal: poly.Normal,
				Origin: poly.Origin,
			})
		}
	}

	edgeMid := geom.NewPoint3d((edgeV0.X+edgeV1.X)/2, (edgeV0.Y+edgeV1.Y)/2, (edgeV0.Z+edgeV1.Z)/2)
	for i := 0; i < lastArc; i++ {
		a0, a1 := arcPoints[i].P0, arcPoints[i].P1
		b0, b1 := arcPoints[i+1].P0, arcPoints[i+1].P1

		mid := geom.NewPoint3d((a0.X+a1.X+b0.X+b1.X)/4, (a0.Y+a1.Y+b0.Y+b1.Y)/4, (a0.Z+a1.Z+b0.Z+b1.Z)/4)
		outward, ok := mid.Sub(edgeMid).Normalized()
		if !ok {
			if fallback, fok := normalA.Add(normalB).Normalized(); fok {
				outward = fallback
			} else {
				outward = geom.Vec3Z
			}
		}

		v1 := a1.Sub(a0)
		v2 := b0.Sub(a0)
		geoNormal := v1.Cross(v2)

		var quad []geom.Point3d
		if geoNormal.Dot(outward) >= 0 {
			quad = []geom.Point3d{a0, a1, b1, b0}
		} else {
			quad = []geom.Point3d{b0, b1, a1, a0}
		}
		newFacePolys = append(newFacePolys, facePolygon{Verts: quad, Normal: outward})
	}

	var faces []EntityRecord
	var rewrites []Rewrite
	stripIdx := 0
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
			rewrites = append(rewrites, Rewrite{From: poly.Origin, To: []brep.FaceId{newFace}, Reason: RewriteFilletReplaced})
		} else {
			faces = append(faces, EntityRecord{Face: newFace, Role: naming.FilletFace(stripIdx)})
			stripIdx++
		}
	}

	result := mainBody(newSolidID, faces)
	result.Provenance.Rewrites = rewrites
	return result, nil
}
