//-----------------------------------------------------------------------------
/*

Surfaces

Surface is the closed set of surface geometries a face can carry: Plane,
Cylinder, Cone, Sphere, Torus, and the NURBS fallback. Each implements
Evaluate/NormalAt/IsDegenerate so generic code (validation, point
classification) never needs a type switch for those three operations.

*/
//-----------------------------------------------------------------------------

package geom

import "math"

// Surface is the tagged union of supported surface geometries.
type Surface interface {
	// Evaluate returns the 3D point at surface parameters (u, v).
	Evaluate(u, v float64) Point3d
	// NormalAt returns the outward unit normal at (u, v).
	NormalAt(u, v float64) Vec3
	// IsDegenerate reports whether the surface has no meaningful extent.
	IsDegenerate(tol Tolerance) bool
}

// Plane is an infinite plane given by an origin and orthonormal in-plane
// axes (u_axis, v_axis) plus the unit normal.
type Plane struct {
	Origin Point3d
	Normal Vec3
	UAxis  Vec3
	VAxis  Vec3
}

// NewPlane builds a plane through origin with the given normal, deriving
// consistent in-plane axes.
func NewPlane(origin Point3d, normal Vec3) Plane {
	n := normal.Normalize()
	var u Vec3
	if math.Abs(n.X) < 0.9 {
		u = Vec3X.Cross(n).Normalize()
	} else {
		u = Vec3Y.Cross(n).Normalize()
	}
	v := n.Cross(u)
	return Plane{Origin: origin, Normal: n, UAxis: u, VAxis: v}
}

// PlaneXY is the standard XY construction plane.
func PlaneXY() Plane {
	return Plane{Origin: Point3dOrigin, Normal: Vec3Z, UAxis: Vec3X, VAxis: Vec3Y}
}

// PlaneXZ is the standard XZ construction plane.
func PlaneXZ() Plane {
	return Plane{Origin: Point3dOrigin, Normal: Vec3Y, UAxis: Vec3X, VAxis: Vec3Z}
}

// PlaneYZ is the standard YZ construction plane.
func PlaneYZ() Plane {
	return Plane{Origin: Point3dOrigin, Normal: Vec3X, UAxis: Vec3Y, VAxis: Vec3Z}
}

// Evaluate returns Origin + UAxis*u + VAxis*v.
func (p Plane) Evaluate(u, v float64) Point3d {
	return p.Origin.Add(p.UAxis.Scale(u)).Add(p.VAxis.Scale(v))
}

// NormalAt returns the plane's (constant) normal.
func (p Plane) NormalAt(_, _ float64) Vec3 {
	return p.Normal
}

// DistanceToPoint returns the signed distance from pt to the plane.
func (p Plane) DistanceToPoint(pt Point3d) float64 {
	return pt.Sub(p.Origin).Dot(p.Normal)
}

// ProjectPoint returns pt projected orthogonally onto the plane.
func (p Plane) ProjectPoint(pt Point3d) Point3d {
	return pt.SubVec(p.Normal.Scale(p.DistanceToPoint(pt)))
}

// ParametersOf returns the (u, v) coordinates of pt projected onto the plane.
func (p Plane) ParametersOf(pt Point3d) (float64, float64) {
	rel := pt.Sub(p.Origin)
	return rel.Dot(p.UAxis), rel.Dot(p.VAxis)
}

// IsDegenerate reports whether the normal has zero length.
func (p Plane) IsDegenerate(tol Tolerance) bool {
	return IsZeroLength(p.Normal.Length(), tol)
}

// Cylinder is an infinite circular cylinder.
type Cylinder struct {
	Origin Point3d
	Axis   Vec3 // unit direction along the cylinder's axis
	Radius float64
}

// Evaluate returns the point at (angle u around the axis, distance v along it).
func (c Cylinder) Evaluate(u, v float64) Point3d {
	axis := c.Axis.Normalize()
	ref := Vec3X
	if math.Abs(axis.X) > 0.9 {
		ref = Vec3Y
	}
	xAxis := ref.Cross(axis).Normalize()
	yAxis := axis.Cross(xAxis)
	radial := xAxis.Scale(c.Radius * math.Cos(u)).Add(yAxis.Scale(c.Radius * math.Sin(u)))
	return c.Origin.Add(radial).Add(axis.Scale(v))
}

// NormalAt returns the outward radial normal at parameters (u, v).
func (c Cylinder) NormalAt(u, _ float64) Vec3 {
	axis := c.Axis.Normalize()
	ref := Vec3X
	if math.Abs(axis.X) > 0.9 {
		ref = Vec3Y
	}
	xAxis := ref.Cross(axis).Normalize()
	yAxis := axis.Cross(xAxis)
	return xAxis.Scale(math.Cos(u)).Add(yAxis.Scale(math.Sin(u))).Normalize()
}

// IsDegenerate reports whether the radius is (near) zero.
func (c Cylinder) IsDegenerate(tol Tolerance) bool {
	return IsZeroLength(c.Radius, tol)
}

// Cone is an infinite circular cone.
type Cone struct {
	Apex      Point3d
	Axis      Vec3
	HalfAngle float64
}

// Evaluate returns the point at (angle u around the axis, distance v from the apex).
func (c Cone) Evaluate(u, v float64) Point3d {
	axis := c.Axis.Normalize()
	ref := Vec3X
	if math.Abs(axis.X) > 0.9 {
		ref = Vec3Y
	}
	xAxis := ref.Cross(axis).Normalize()
	yAxis := axis.Cross(xAxis)
	radius := v * math.Tan(c.HalfAngle)
	radial := xAxis.Scale(radius * math.Cos(u)).Add(yAxis.Scale(radius * math.Sin(u)))
	return c.Apex.Add(axis.Scale(v)).Add(radial)
}

// NormalAt returns the outward surface normal at parameters (u, v).
func (c Cone) NormalAt(u, _ float64) Vec3 {
	axis := c.Axis.Normalize()
	ref := Vec3X
	if math.Abs(axis.X) > 0.9 {
		ref = Vec3Y
	}
	xAxis := ref.Cross(axis).Normalize()
	yAxis := axis.Cross(xAxis)
	radial := xAxis.Scale(math.Cos(u)).Add(yAxis.Scale(math.Sin(u)))
	return radial.Scale(math.Cos(c.HalfAngle)).Sub(axis.Scale(math.Sin(c.HalfAngle))).Normalize()
}

// IsDegenerate reports whether the half angle is (near) zero (a cylinder's
// degenerate limit) or a right angle (a plane's degenerate limit).
func (c Cone) IsDegenerate(tol Tolerance) bool {
	return IsZeroAngle(c.HalfAngle, tol) || IsZeroAngle(c.HalfAngle-math.Pi/2, tol)
}

// Sphere is a sphere given by center and radius.
type Sphere struct {
	Center Point3d
	Radius float64
}

// Evaluate returns the point at (longitude u, latitude v).
func (s Sphere) Evaluate(u, v float64) Point3d {
	x := s.Radius * math.Cos(v) * math.Cos(u)
	y := s.Radius * math.Cos(v) * math.Sin(u)
	z := s.Radius * math.Sin(v)
	return s.Center.Add(Vec3{X: x, Y: y, Z: z})
}

// NormalAt returns the outward radial normal at parameters (u, v).
func (s Sphere) NormalAt(u, v float64) Vec3 {
	return Vec3{
		X: math.Cos(v) * math.Cos(u),
		Y: math.Cos(v) * math.Sin(u),
		Z: math.Sin(v),
	}
}

// IsDegenerate reports whether the radius is (near) zero.
func (s Sphere) IsDegenerate(tol Tolerance) bool {
	return IsZeroLength(s.Radius, tol)
}

// Torus is a torus of revolution: MajorRadius from Center to the tube's
// centerline, MinorRadius of the tube itself, about Axis.
type Torus struct {
	Center      Point3d
	Axis        Vec3
	MajorRadius float64
	MinorRadius float64
}

// Evaluate returns the point at (major angle u, minor angle v).
func (t Torus) Evaluate(u, v float64) Point3d {
	axis := t.Axis.Normalize()
	ref := Vec3X
	if math.Abs(axis.X) > 0.9 {
		ref = Vec3Y
	}
	xAxis := ref.Cross(axis).Normalize()
	yAxis := axis.Cross(xAxis)

	ringCenter := xAxis.Scale(t.MajorRadius * math.Cos(u)).Add(yAxis.Scale(t.MajorRadius * math.Sin(u)))
	outward := xAxis.Scale(math.Cos(u)).Add(yAxis.Scale(math.Sin(u)))
	tube := outward.Scale(t.MinorRadius * math.Cos(v)).Add(axis.Scale(t.MinorRadius * math.Sin(v)))
	return t.Center.Add(ringCenter).Add(tube)
}

// NormalAt returns the outward surface normal at parameters (u, v).
func (t Torus) NormalAt(u, v float64) Vec3 {
	axis := t.Axis.Normalize()
	ref := Vec3X
	if math.Abs(axis.X) > 0.9 {
		ref = Vec3Y
	}
	xAxis := ref.Cross(axis).Normalize()
	yAxis := axis.Cross(xAxis)
	outward := xAxis.Scale(math.Cos(u)).Add(yAxis.Scale(math.Sin(u)))
	return outward.Scale(math.Cos(v)).Add(axis.Scale(math.Sin(v))).Normalize()
}

// IsDegenerate reports whether either radius is (near) zero.
func (t Torus) IsDegenerate(tol Tolerance) bool {
	return IsZeroLength(t.MajorRadius, tol) || IsZeroLength(t.MinorRadius, tol)
}
