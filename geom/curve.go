//-----------------------------------------------------------------------------
/*

Curves

Curve is the closed set of 3D curve geometries an edge can carry. Line3d
and Circle3d are evaluated analytically; NurbsCurve falls back to
Cox-de Boor evaluation. Ray is a half-infinite line used by the boolean
point-classification ray caster.

*/
//-----------------------------------------------------------------------------

package geom

import "math"

// Curve is the tagged union of supported 3D curve geometries.
type Curve interface {
	// Evaluate returns the point at arc-length-ish parameter t (for Line3d,
	// t is literal distance from the origin along direction).
	Evaluate(t float64) Point3d
	// Derivative returns the first derivative (tangent, unnormalized) at t.
	Derivative(t float64) Vec3
	// IsDegenerate reports whether the curve has no meaningful extent.
	IsDegenerate(tol Tolerance) bool
}

// Line3d is an infinite line through Origin in Direction.
type Line3d struct {
	Origin    Point3d
	Direction Vec3
}

// NewLine3d builds a line from an origin and (not necessarily normalized)
// direction.
func NewLine3d(origin Point3d, direction Vec3) Line3d {
	return Line3d{Origin: origin, Direction: direction}
}

// Line3dFromPoints builds a line through a and b, directed from a to b,
// with a unit-length direction so that t is the distance from a.
func Line3dFromPoints(a, b Point3d) Line3d {
	return Line3d{Origin: a, Direction: b.Sub(a).Normalize()}
}

// Evaluate returns Origin + Direction*t.
func (l Line3d) Evaluate(t float64) Point3d {
	return l.Origin.Add(l.Direction.Scale(t))
}

// Derivative returns Direction (constant for a line).
func (l Line3d) Derivative(_ float64) Vec3 {
	return l.Direction
}

// IsDegenerate reports whether Direction is (near) zero length.
func (l Line3d) IsDegenerate(tol Tolerance) bool {
	return IsZeroLength(l.Direction.Length(), tol)
}

// Circle3d is a circle of Radius centered at Center, lying in the plane
// spanned by U and V (both unit length and perpendicular).
type Circle3d struct {
	Center Point3d
	U, V   Vec3
	Radius float64
}

// Evaluate returns the point at angle t (radians).
func (c Circle3d) Evaluate(t float64) Point3d {
	return c.Center.Add(c.U.Scale(c.Radius * math.Cos(t))).Add(c.V.Scale(c.Radius * math.Sin(t)))
}

// Derivative returns the tangent at angle t.
func (c Circle3d) Derivative(t float64) Vec3 {
	return c.U.Scale(-c.Radius * math.Sin(t)).Add(c.V.Scale(c.Radius * math.Cos(t)))
}

// IsDegenerate reports whether the radius is (near) zero.
func (c Circle3d) IsDegenerate(tol Tolerance) bool {
	return IsZeroLength(c.Radius, tol)
}

// Ray is a half-infinite line used for point-in-solid classification.
type Ray struct {
	Origin    Point3d
	Direction Vec3
}

// NewRay builds a ray from an origin and direction; the direction is
// stored as given, not normalized.
func NewRay(origin Point3d, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns Origin + Direction*t.
func (r Ray) At(t float64) Point3d {
	return r.Origin.Add(r.Direction.Scale(t))
}
