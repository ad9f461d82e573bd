//-----------------------------------------------------------------------------
/*

Boolean

Union, Subtract and Intersect classify each face of one solid against
the other by ray-casting from its centroid in several diversified
directions and taking a majority vote, then keep, drop, or flip each
face whole according to the combination rule for the requested
operation. This does not split a face that straddles the other solid's
boundary; such a face is classified by its centroid alone and kept or
dropped in its entirety, which is an approximation worth knowing about
for thin or deeply interpenetrating inputs.

EstimateVolume is the Monte Carlo oracle used to sanity-check a boolean's
result volume against the two input volumes (union >= max(a,b),
intersect <= min(a,b), and so on) without needing exact integration.

*/
//-----------------------------------------------------------------------------

package ops

import (
	"math"
	"math/rand"

	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
)

// PointClassification is the result of classifying a point against a
// closed solid's boundary.
type PointClassification int

const (
	Outside PointClassification = iota
	Inside
	OnBoundary
)

var classifyRayDirections = func() [5]geom.Vec3 {
	raw := [5]geom.Vec3{
		geom.NewVec3(1, 0.3, 0.1),
		geom.NewVec3(-0.2, 1, 0.4),
		geom.NewVec3(0.4, -0.3, 1),
		geom.NewVec3(-1, -0.5, 0.2),
		geom.NewVec3(0.2, 0.6, -1),
	}
	var out [5]geom.Vec3
	for i, d := range raw {
		out[i] = d.Normalize()
	}
	return out
}()

// classifyPoint classifies point against the closed boundary described by
// facePolys, using tol as both the on-boundary distance tolerance and the
// ray-hit deduplication tolerance.
func classifyPoint(point geom.Point3d, facePolys []facePolygon, tol float64) PointClassification {
	for _, poly := range facePolys {
		if onFace(point, poly, tol) {
			return OnBoundary
		}
	}

	insideVotes := 0
	for _, dir := range classifyRayDirections {
		ray := geom.Ray{Origin: point, Direction: dir}
		hits := rayPolygonHits(ray, facePolys)
		hits = deduplicateHits(hits, tol)
		if len(hits)%2 == 1 {
			insideVotes++
		}
	}
	if insideVotes*2 > len(classifyRayDirections) {
		return Inside
	}
	return Outside
}

func onFace(point geom.Point3d, poly facePolygon, tol float64) bool {
	plane := geom.NewPlane(poly.Verts[0], poly.Normal)
	if math.Abs(plane.DistanceToPoint(point)) > tol {
		return false
	}
	u, v := plane.ParametersOf(point)
	return pointInPolygon2D(u, v, poly, plane)
}

// pointInPolygon2D tests containment by projecting poly's vertices into
// the same (u, v) plane parameterization used for point.
func pointInPolygon2D(u, v float64, poly facePolygon, plane geom.Plane) bool {
	n := len(poly.Verts)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		ui, vi := plane.ParametersOf(poly.Verts[i])
		uj, vj := plane.ParametersOf(poly.Verts[j])
		if (vi > v) != (vj > v) {
			uCross := ui + (v-vi)/(vj-vi)*(uj-ui)
			if u < uCross {
				inside = !inside
			}
		}
	}
	return inside
}

func rayPolygonHits(ray geom.Ray, facePolys []facePolygon) []geom.RaySurfaceHit {
	var hits []geom.RaySurfaceHit
	for _, poly := range facePolys {
		plane := geom.NewPlane(poly.Verts[0], poly.Normal)
		hit, ok := geom.RayPlane(ray, plane)
		if !ok {
			continue
		}
		u, v := plane.ParametersOf(hit.Point)
		if pointInPolygon2D(u, v, poly, plane) {
			hits = append(hits, hit)
		}
	}
	return hits
}

func deduplicateHits(hits []geom.RaySurfaceHit, tol float64) []geom.RaySurfaceHit {
	var out []geom.RaySurfaceHit
	for _, h := range hits {
		dup := false
		for _, o := range out {
			if math.Abs(h.T-o.T) < tol {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, h)
		}
	}
	return out
}

func solidFacePolys(store *brep.EntityStore, solidID brep.SolidId) []facePolygon {
	solid := store.Solid(solidID)
	var polys []facePolygon
	for _, shellID := range solid.Shells {
		polys = append(polys, facePolygonsOf(store, shellID)...)
	}
	return polys
}

func centroidOf(verts []geom.Point3d) geom.Point3d {
	return computeCentroid(verts)
}

func emitFace(store *brep.EntityStore, newShellID brep.ShellId, vertexMap map[quantizedPoint]brep.VertexId, edgeMap brep.EdgeMap, poly facePolygon) brep.FaceId {
	ids := make([]brep.VertexId, len(poly.Verts))
	for i, p := range poly.Verts {
		ids[i] = getOrCreateVertex(store, vertexMap, p)
	}
	return brep.NewPlanarFace(store, newShellID, ids, poly.Normal, edgeMap)
}

func flip(poly facePolygon) facePolygon {
	n := len(poly.Verts)
	rev := make([]geom.Point3d, n)
	for i, p := range poly.Verts {
		rev[n-1-i] = p
	}
	return facePolygon{Verts: rev, Normal: poly.Normal.Neg(), Origin: poly.Origin}
}

type booleanKeep int

const (
	keepOutsideOther booleanKeep = iota
	keepInsideOther
	dropInsideOther
)

func booleanCombine(store *brep.EntityStore, solidA, solidB brep.SolidId, tol float64,
	keepA, keepB booleanKeep, flipB bool) OpResult {

	polysA := solidFacePolys(store, solidA)
	polysB := solidFacePolys(store, solidB)

	newSolidID := store.Solids.Insert(brep.Solid{})
	newShellID := store.Shells.Insert(brep.Shell{Orientation: brep.ShellOutward, Solid: newSolidID})
	store.Solid(newSolidID).Shells = append(store.Solid(newSolidID).Shells, newShellID)

	vertexMap := make(map[quantizedPoint]brep.VertexId)
	edgeMap := brep.NewEdgeMap()

	var faces []EntityRecord
	var rewrites []Rewrite
	idxA, idxB := 0, 0

	keep := func(classification PointClassification, rule booleanKeep) bool {
		switch rule {
		case keepOutsideOther:
			return classification == Outside || classification == OnBoundary
		case keepInsideOther:
			return classification == Inside || classification == OnBoundary
		case dropInsideOther:
			return classification != Inside
		default:
			return false
		}
	}

	for _, poly := range polysA {
		c := classifyPoint(centroidOf(poly.Verts), polysB, tol)
		if !keep(c, keepA) {
			if poly.Origin.IsValid() {
				rewrites = append(rewrites, Rewrite{From: poly.Origin, Reason: RewriteBooleanConsumed})
			}
			continue
		}
		f := emitFace(store, newShellID, vertexMap, edgeMap, poly)
		faces = append(faces, EntityRecord{Face: f, Role: naming.BooleanBodyAFace(idxA)})
		if poly.Origin.IsValid() {
			rewrites = append(rewrites, Rewrite{From: poly.Origin, To: []brep.FaceId{f}, Reason: RewriteBooleanSplit})
		}
		idxA++
	}

	for _, poly := range polysB {
		c := classifyPoint(centroidOf(poly.Verts), polysA, tol)
		if !keep(c, keepB) {
			if poly.Origin.IsValid() {
				rewrites = append(rewrites, Rewrite{From: poly.Origin, Reason: RewriteBooleanConsumed})
			}
			continue
		}
		out := poly
		if flipB {
			out = flip(poly)
		}
		f := emitFace(store, newShellID, vertexMap, edgeMap, out)
		faces = append(faces, EntityRecord{Face: f, Role: naming.BooleanBodyBFace(idxB)})
		if poly.Origin.IsValid() {
			rewrites = append(rewrites, Rewrite{From: poly.Origin, To: []brep.FaceId{f}, Reason: RewriteBooleanSplit})
		}
		idxB++
	}

	result := mainBody(newSolidID, faces)
	result.Provenance.Rewrites = rewrites
	return result
}

// Union keeps every face of A outside B and every face of B outside A.
func Union(store *brep.EntityStore, solidA, solidB brep.SolidId) (OpResult, error) {
	tol := geom.DefaultTolerance().Coincidence
	return booleanCombine(store, solidA, solidB, tol, keepOutsideOther, keepOutsideOther, false), nil
}

// Subtract removes the part of A inside B, and adds B's surface where it
// lies inside A, flipped to face into the resulting cavity.
func Subtract(store *brep.EntityStore, solidA, solidB brep.SolidId) (OpResult, error) {
	tol := geom.DefaultTolerance().Coincidence
	return booleanCombine(store, solidA, solidB, tol, keepOutsideOther, keepInsideOther, true), nil
}

// Intersect keeps only the faces of A inside (or on) B and of B inside
// (or on) A.
func Intersect(store *brep.EntityStore, solidA, solidB brep.SolidId) (OpResult, error) {
	tol := geom.DefaultTolerance().Coincidence
	return booleanCombine(store, solidA, solidB, tol, keepInsideOther, keepInsideOther, false), nil
}

// EstimateVolume Monte Carlo estimates the enclosed volume of solidID by
// sampling samples random points uniformly in its bounding box (expanded
// by a small margin) and scaling the inside fraction by the box volume.
// seed makes repeated calls deterministic for tests and for the
// cross-check this function exists to serve (comparing a boolean
// result's volume against its inputs).
func EstimateVolume(store *brep.EntityStore, solidID brep.SolidId, samples int, seed int64) float64 {
	bbox := store.SolidBoundingBox(solidID)
	margin := bbox.Max.DistanceTo(bbox.Min) * 0.01
	minP := geom.NewPoint3d(bbox.Min.X-margin, bbox.Min.Y-margin, bbox.Min.Z-margin)
	maxP := geom.NewPoint3d(bbox.Max.X+margin, bbox.Max.Y+margin, bbox.Max.Z+margin)
	boxVolume := (maxP.X - minP.X) * (maxP.Y - minP.Y) * (maxP.Z - minP.Z)

	polys := solidFacePolys(store, solidID)
	tol := geom.DefaultTolerance().Coincidence

	rng := rand.New(rand.NewSource(seed))
	inside := 0
	for i := 0; i < samples; i++ {
		p := geom.NewPoint3d(
			minP.X+rng.Float64()*(maxP.X-minP.X),
			minP.Y+rng.Float64()*(maxP.Y-minP.Y),
			minP.Z+rng.Float64()*(maxP.Z-minP.Z),
		)
		if classifyPoint(p, polys, tol) != Outside {
			inside++
		}
	}
	if samples == 0 {
		return 0
	}
	return boxVolume * float64(inside) / float64(samples)
}
