//-----------------------------------------------------------------------------
/*

Intersections

Curve-curve closest approach and ray-surface intersection routines. These
back the boolean engine's point classifier (ray casting against planes,
spheres and cylinders) and are useful standalone for snapping/constraint
resolution in the sketch layer. TriangleTriangleIntersect backs the
shell self-intersection check in validate's L2 spatial level.

*/
//-----------------------------------------------------------------------------

package geom

import "math"

// CurveCurveHit is the result of a curve-curve intersection.
type CurveCurveHit struct {
	Point  Point3d
	T1, T2 float64
}

// RaySurfaceHit is the result of a ray-surface intersection.
type RaySurfaceHit struct {
	Point  Point3d
	T      float64
	Normal Vec3
}

// LineLineClosest returns the closest points between two lines, or false if
// the lines are parallel.
func LineLineClosest(l1, l2 Line3d) (p1 Point3d, t1 float64, p2 Point3d, t2 float64, dist float64, ok bool) {
	w := l1.Origin.Sub(l2.Origin)
	a := l1.Direction.Dot(l1.Direction)
	b := l1.Direction.Dot(l2.Direction)
	c := l2.Direction.Dot(l2.Direction)
	d := l1.Direction.Dot(w)
	e := l2.Direction.Dot(w)

	denom := a*c - b*b
	if math.Abs(denom) < 1e-15 {
		return Point3d{}, 0, Point3d{}, 0, 0, false
	}

	t1 = (b*e - c*d) / denom
	t2 = (a*e - b*d) / denom
	p1 = l1.Evaluate(t1)
	p2 = l2.Evaluate(t2)
	dist = p1.DistanceTo(p2)
	return p1, t1, p2, t2, dist, true
}

// LineLineIntersection returns the intersection point of l1 and l2 if their
// closest approach is within tol, or nil.
func LineLineIntersection(l1, l2 Line3d, tol float64) []CurveCurveHit {
	p1, t1, _, t2, dist, ok := LineLineClosest(l1, l2)
	if !ok || dist >= tol {
		return nil
	}
	return []CurveCurveHit{{Point: p1, T1: t1, T2: t2}}
}

// RayPlane intersects a ray with a plane. Returns false if the ray is
// parallel to the plane or the intersection lies behind the ray origin.
func RayPlane(ray Ray, plane Plane) (RaySurfaceHit, bool) {
	denom := ray.Direction.Dot(plane.Normal)
	if math.Abs(denom) < 1e-15 {
		return RaySurfaceHit{}, false
	}
	t := plane.Origin.Sub(ray.Origin).Dot(plane.Normal) / denom
	if t < 0 {
		return RaySurfaceHit{}, false
	}
	normal := plane.Normal
	if denom > 0 {
		normal = normal.Neg()
	}
	return RaySurfaceHit{Point: ray.At(t), T: t, Normal: normal}, true
}

// RaySphere intersects a ray with a sphere, returning up to two hits ordered
// by increasing t.
func RaySphere(ray Ray, sphere Sphere) []RaySurfaceHit {
	oc := ray.Origin.Sub(sphere.Center)
	a := ray.Direction.Dot(ray.Direction)
	if a < 1e-15 {
		return nil
	}
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - sphere.Radius*sphere.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)

	var hits []RaySurfaceHit
	for _, t := range []float64{t0, t1} {
		if t < 0 {
			continue
		}
		p := ray.At(t)
		n := p.Sub(sphere.Center).Normalize()
		hits = append(hits, RaySurfaceHit{Point: p, T: t, Normal: n})
	}
	return hits
}

// RayCylinder intersects a ray with an infinite circular cylinder, returning
// up to two hits ordered by increasing t.
func RayCylinder(ray Ray, cyl Cylinder) []RaySurfaceHit {
	axis := cyl.Axis.Normalize()
	deltaP := ray.Origin.Sub(cyl.Origin)

	dPerp := ray.Direction.Sub(axis.Scale(ray.Direction.Dot(axis)))
	deltaPerp := deltaP.Sub(axis.Scale(deltaP.Dot(axis)))

	a := dPerp.Dot(dPerp)
	if a < 1e-15 {
		return nil
	}
	b := 2 * dPerp.Dot(deltaPerp)
	c := deltaPerp.Dot(deltaPerp) - cyl.Radius*cyl.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)

	var hits []RaySurfaceHit
	for _, t := range []float64{t0, t1} {
		if t < 0 {
			continue
		}
		p := ray.At(t)
		radial := p.Sub(cyl.Origin)
		radial = radial.Sub(axis.Scale(radial.Dot(axis)))
		n := radial.Normalize()
		hits = append(hits, RaySurfaceHit{Point: p, T: t, Normal: n})
	}
	return hits
}

// Triangle3 is a flat facet, used by TriangleTriangleIntersect to test
// tessellated shells for self-intersection.
type Triangle3 struct {
	A, B, C Point3d
}

// segmentTriangleIntersect reports whether the segment p0-p1 pierces the
// interior of tri, via the Moller-Trumbore ray-triangle test restricted
// to t in (tol, 1-tol) so a segment endpoint lying in tri's plane (the
// common case for adjacent facets) isn't reported as a crossing.
func segmentTriangleIntersect(p0, p1 Point3d, tri Triangle3, tol float64) bool {
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	dir := p1.Sub(p0)
	h := dir.Cross(e2)
	a := e1.Dot(h)
	if math.Abs(a) < 1e-15 {
		return false
	}
	f := 1 / a
	s := p0.Sub(tri.A)
	u := f * s.Dot(h)
	if u < -tol || u > 1+tol {
		return false
	}
	q := s.Cross(e1)
	v := f * dir.Dot(q)
	if v < -tol || u+v > 1+tol {
		return false
	}
	t := f * e2.Dot(q)
	return t > tol && t < 1-tol
}

// TriangleTriangleIntersect reports whether t1 and t2 cross in space, by
// testing each of one triangle's edges against the other and vice versa.
// Callers that already know the triangles share a vertex (adjacent
// facets of a watertight mesh) should skip this call entirely: shared
// vertices and edges are expected contact, not a self-intersection.
func TriangleTriangleIntersect(t1, t2 Triangle3, tol float64) bool {
	edgesOf := func(t Triangle3) [3][2]Point3d {
		return [3][2]Point3d{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
	}
	for _, e := range edgesOf(t1) {
		if segmentTriangleIntersect(e[0], e[1], t2, tol) {
			return true
		}
	}
	for _, e := range edgesOf(t2) {
		if segmentTriangleIntersect(e[0], e[1], t1, tol) {
			return true
		}
	}
	return false
}
