//-----------------------------------------------------------------------------
/*

Affine Transforms

Transform is a 4x4 affine transformation matrix stored column-major, so
that m[col*4+row] addresses row, col. Composition, inversion and the
standard family of translate/scale/rotate constructors mirror what a
parametric modeling kernel needs to place primitives and drive feature
rebuilds.

*/
//-----------------------------------------------------------------------------

package geom

import "math"

// Transform is a 4x4 affine transformation matrix, column-major.
type Transform struct {
	m [16]float64
}

// Identity returns the identity transform.
func Identity() Transform {
	var t Transform
	t.m[0], t.m[5], t.m[10], t.m[15] = 1, 1, 1, 1
	return t
}

func (t Transform) at(row, col int) float64 {
	return t.m[col*4+row]
}

func (t *Transform) set(row, col int, v float64) {
	t.m[col*4+row] = v
}

// Translation returns a transform that translates by (dx, dy, dz).
func Translation(dx, dy, dz float64) Transform {
	t := Identity()
	t.set(0, 3, dx)
	t.set(1, 3, dy)
	t.set(2, 3, dz)
	return t
}

// TranslationVec returns a transform that translates by v.
func TranslationVec(v Vec3) Transform {
	return Translation(v.X, v.Y, v.Z)
}

// Scaling returns a transform that scales independently along each axis.
func Scaling(sx, sy, sz float64) Transform {
	t := Identity()
	t.set(0, 0, sx)
	t.set(1, 1, sy)
	t.set(2, 2, sz)
	return t
}

// UniformScaling returns a transform that scales uniformly by s.
func UniformScaling(s float64) Transform {
	return Scaling(s, s, s)
}

// RotationX returns a transform that rotates about the X axis by angle radians.
func RotationX(angle float64) Transform {
	t := Identity()
	c, s := math.Cos(angle), math.Sin(angle)
	t.set(1, 1, c)
	t.set(1, 2, -s)
	t.set(2, 1, s)
	t.set(2, 2, c)
	return t
}

// RotationY returns a transform that rotates about the Y axis by angle radians.
func RotationY(angle float64) Transform {
	t := Identity()
	c, s := math.Cos(angle), math.Sin(angle)
	t.set(0, 0, c)
	t.set(0, 2, s)
	t.set(2, 0, -s)
	t.set(2, 2, c)
	return t
}

// RotationZ returns a transform that rotates about the Z axis by angle radians.
func RotationZ(angle float64) Transform {
	t := Identity()
	c, s := math.Cos(angle), math.Sin(angle)
	t.set(0, 0, c)
	t.set(0, 1, -s)
	t.set(1, 0, s)
	t.set(1, 1, c)
	return t
}

// RotationAxisAngle returns a transform that rotates by angle radians about
// an arbitrary axis, using Rodrigues' rotation formula. The axis is
// normalized internally; if it is zero-length, Identity is returned.
func RotationAxisAngle(axis Vec3, angle float64) Transform {
	k, ok := axis.Normalized()
	if !ok {
		return Identity()
	}
	c, s := math.Cos(angle), math.Sin(angle)
	ic := 1 - c

	t := Identity()
	t.set(0, 0, c+k.X*k.X*ic)
	t.set(0, 1, k.X*k.Y*ic-k.Z*s)
	t.set(0, 2, k.X*k.Z*ic+k.Y*s)
	t.set(1, 0, k.Y*k.X*ic+k.Z*s)
	t.set(1, 1, c+k.Y*k.Y*ic)
	t.set(1, 2, k.Y*k.Z*ic-k.X*s)
	t.set(2, 0, k.Z*k.X*ic-k.Y*s)
	t.set(2, 1, k.Z*k.Y*ic+k.X*s)
	t.set(2, 2, c+k.Z*k.Z*ic)
	return t
}

// TransformPoint applies the transform to an affine point.
func (t Transform) TransformPoint(p Point3d) Point3d {
	x := t.at(0, 0)*p.X + t.at(0, 1)*p.Y + t.at(0, 2)*p.Z + t.at(0, 3)
	y := t.at(1, 0)*p.X + t.at(1, 1)*p.Y + t.at(1, 2)*p.Z + t.at(1, 3)
	z := t.at(2, 0)*p.X + t.at(2, 1)*p.Y + t.at(2, 2)*p.Z + t.at(2, 3)
	return Point3d{X: x, Y: y, Z: z}
}

// TransformVector applies the linear part of the transform to a free vector
// (translation is not applied).
func (t Transform) TransformVector(v Vec3) Vec3 {
	x := t.at(0, 0)*v.X + t.at(0, 1)*v.Y + t.at(0, 2)*v.Z
	y := t.at(1, 0)*v.X + t.at(1, 1)*v.Y + t.at(1, 2)*v.Z
	z := t.at(2, 0)*v.X + t.at(2, 1)*v.Y + t.at(2, 2)*v.Z
	return Vec3{X: x, Y: y, Z: z}
}

// Then composes t followed by other: Then(other).TransformPoint(p) equals
// other.TransformPoint(t.TransformPoint(p)).
func (t Transform) Then(other Transform) Transform {
	var r Transform
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += other.at(row, k) * t.at(k, col)
			}
			r.set(row, col, sum)
		}
	}
	return r
}

// Inverse returns the inverse of t, or false if t is singular.
func (t Transform) Inverse() (Transform, bool) {
	m := t.m
	var inv [16]float64

	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]

	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]

	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]

	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if math.Abs(det) < 1e-15 {
		return Transform{}, false
	}

	invDet := 1.0 / det
	var r Transform
	for i := range inv {
		r.m[i] = inv[i] * invDet
	}
	return r, true
}

// BoundingBox is an axis-aligned bounding box.
type BoundingBox struct {
	Min, Max Point3d
}

// NewBoundingBox builds a bounding box from explicit min/max corners.
func NewBoundingBox(min, max Point3d) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// EmptyBoundingBox returns a bounding box that contains nothing: its Min is
// +infinity and its Max is -infinity, so the first ExpandToInclude call
// establishes real bounds.
func EmptyBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: Point3d{X: inf, Y: inf, Z: inf},
		Max: Point3d{X: -inf, Y: -inf, Z: -inf},
	}
}

// BoundingBoxFromPoints computes the bounding box of a set of points.
func BoundingBoxFromPoints(pts []Point3d) BoundingBox {
	bb := EmptyBoundingBox()
	for _, p := range pts {
		bb = bb.ExpandToInclude(p)
	}
	return bb
}

// ExpandToInclude returns a box enlarged (if necessary) to contain p.
func (b BoundingBox) ExpandToInclude(p Point3d) BoundingBox {
	return BoundingBox{
		Min: Point3d{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: Point3d{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		Min: Point3d{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y), Z: math.Min(b.Min.Z, o.Min.Z)},
		Max: Point3d{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y), Z: math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Intersects reports whether b and o overlap (touching counts as overlap).
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// ContainsPoint reports whether p lies within b.
func (b BoundingBox) ContainsPoint(p Point3d) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point3d {
	return b.Min.Midpoint(b.Max)
}

// Size returns the extent of the box along each axis.
func (b BoundingBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Volume returns the box volume, or 0 if the box is empty/invalid.
func (b BoundingBox) Volume() float64 {
	if !b.IsValid() {
		return 0
	}
	s := b.Size()
	return s.X * s.Y * s.Z
}

// IsValid reports whether Min <= Max on every axis.
func (b BoundingBox) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Expanded returns a copy of b grown by margin on every side.
func (b BoundingBox) Expanded(margin float64) BoundingBox {
	m := Vec3{X: margin, Y: margin, Z: margin}
	return BoundingBox{Min: b.Min.SubVec(m), Max: b.Max.Add(m)}
}
