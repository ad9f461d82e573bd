//-----------------------------------------------------------------------------
/*

Vectors

Vec3 is a free (linear) vector in three dimensions. It is distinct from
Point3d: vectors subtract to vectors, points subtract to vectors, and a
point plus a vector is a point. Vec3 is defined over the same memory
layout as the sdfx mesh vector type so it converts to/from a mesh
triangle with a plain type conversion, no copy loop required.

*/
//-----------------------------------------------------------------------------

package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vec3 is a 3D free vector.
type Vec3 v3.Vec

// Zero, X, Y and Z are the standard basis vectors.
var (
	Vec3Zero = Vec3{X: 0, Y: 0, Z: 0}
	Vec3X    = Vec3{X: 1, Y: 0, Z: 0}
	Vec3Y    = Vec3{X: 0, Y: 1, Z: 0}
	Vec3Z    = Vec3{X: 0, Y: 0, Z: 1}
)

// NewVec3 builds a vector from components.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// ToSDFX converts to the sdfx mesh vector type used by the STEP/STL writers.
func (v Vec3) ToSDFX() v3.Vec {
	return v3.Vec(v)
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the scalar (dot) product.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the vector (cross) product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns |v|^2.
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns |v|.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalized returns v/|v| and false if v is (near) zero length.
func (v Vec3) Normalized() (Vec3, bool) {
	l := v.Length()
	if l < 1e-15 {
		return Vec3Zero, false
	}
	return v.Scale(1.0 / l), true
}

// Normalize returns v/|v|, or the zero vector if v has (near) zero length.
// Use Normalized when a zero-length direction must be distinguished from a
// valid unit vector.
func (v Vec3) Normalize() Vec3 {
	n, ok := v.Normalized()
	if !ok {
		return Vec3Zero
	}
	return n
}

// AngleTo returns the unsigned angle between v and o, in radians.
func (v Vec3) AngleTo(o Vec3) float64 {
	ln, lo := v.Length(), o.Length()
	if ln < 1e-15 || lo < 1e-15 {
		return 0
	}
	cos := v.Dot(o) / (ln * lo)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// IsParallelTo reports whether v and o are parallel within angularTol radians.
func (v Vec3) IsParallelTo(o Vec3, angularTol float64) bool {
	a := v.AngleTo(o)
	return a < angularTol || math.Abs(a-math.Pi) < angularTol
}

// IsPerpendicularTo reports whether v and o are perpendicular within angularTol radians.
func (v Vec3) IsPerpendicularTo(o Vec3, angularTol float64) bool {
	return math.Abs(v.AngleTo(o)-math.Pi/2) < angularTol
}

// ProjectOnto returns the projection of v onto o.
func (v Vec3) ProjectOnto(o Vec3) Vec3 {
	ls := o.LengthSquared()
	if ls < 1e-30 {
		return Vec3Zero
	}
	return o.Scale(v.Dot(o) / ls)
}

// Reflect returns v reflected about the plane whose normal is n (n must be
// unit length).
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Triple returns the scalar triple product v . (b x c).
func (v Vec3) Triple(b, c Vec3) float64 {
	return v.Dot(b.Cross(c))
}

// Equal reports whether v and o are equal within tolerance, component-wise.
func (v Vec3) Equal(o Vec3, tolerance float64) bool {
	return math.Abs(v.X-o.X) <= tolerance &&
		math.Abs(v.Y-o.Y) <= tolerance &&
		math.Abs(v.Z-o.Z) <= tolerance
}

// Array returns the vector as [3]float64.
func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Vec3FromArray builds a vector from [3]float64.
func Vec3FromArray(a [3]float64) Vec3 {
	return Vec3{X: a[0], Y: a[1], Z: a[2]}
}
