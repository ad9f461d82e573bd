//-----------------------------------------------------------------------------
/*

Points

Point3d is an affine point: the difference of two points is a vector, and
a point plus a vector is a point. Point2d is the analogous type for the
parametric (u, v) plane used by sketches and planar face parameterization.

*/
//-----------------------------------------------------------------------------

package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point3d is a point in 3D space.
type Point3d v3.Vec

// Point3dOrigin is the origin of the world coordinate system.
var Point3dOrigin = Point3d{X: 0, Y: 0, Z: 0}

// NewPoint3d builds a point from components.
func NewPoint3d(x, y, z float64) Point3d {
	return Point3d{X: x, Y: y, Z: z}
}

// ToSDFX converts to the sdfx mesh vector type.
func (p Point3d) ToSDFX() v3.Vec {
	return v3.Vec(p)
}

// ToVec3 reinterprets the point as a vector rooted at the origin.
func (p Point3d) ToVec3() Vec3 {
	return Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// Add returns p + v.
func (p Point3d) Add(v Vec3) Point3d {
	return Point3d{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Sub returns the vector p - o.
func (p Point3d) Sub(o Point3d) Vec3 {
	return Vec3{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// SubVec returns p - v as a point.
func (p Point3d) SubVec(v Vec3) Point3d {
	return Point3d{X: p.X - v.X, Y: p.Y - v.Y, Z: p.Z - v.Z}
}

// DistanceTo returns the Euclidean distance between p and o.
func (p Point3d) DistanceTo(o Point3d) float64 {
	return p.Sub(o).Length()
}

// DistanceSquaredTo returns the squared Euclidean distance between p and o.
func (p Point3d) DistanceSquaredTo(o Point3d) float64 {
	return p.Sub(o).LengthSquared()
}

// Midpoint returns the point halfway between p and o.
func (p Point3d) Midpoint(o Point3d) Point3d {
	return p.Lerp(o, 0.5)
}

// Lerp linearly interpolates between p and o at parameter t in [0, 1].
func (p Point3d) Lerp(o Point3d, t float64) Point3d {
	return Point3d{
		X: p.X + (o.X-p.X)*t,
		Y: p.Y + (o.Y-p.Y)*t,
		Z: p.Z + (o.Z-p.Z)*t,
	}
}

// Array returns the point as [3]float64.
func (p Point3d) Array() [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}

// Point3dFromArray builds a point from [3]float64.
func Point3dFromArray(a [3]float64) Point3d {
	return Point3d{X: a[0], Y: a[1], Z: a[2]}
}

// Point2d is a point in the 2D parametric plane.
type Point2d v2.Vec

// Point2dOrigin is the origin of the 2D parametric plane.
var Point2dOrigin = Point2d{X: 0, Y: 0}

// NewPoint2d builds a 2D point from components.
func NewPoint2d(x, y float64) Point2d {
	return Point2d{X: x, Y: y}
}

// ToSDFX converts to the sdfx 2D vector type.
func (p Point2d) ToSDFX() v2.Vec {
	return v2.Vec(p)
}

// DistanceTo returns the Euclidean distance between p and o.
func (p Point2d) DistanceTo(o Point2d) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Sqrt(dx*dx + dy*dy)
}
