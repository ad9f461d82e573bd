package geom

import (
	"math"
	"testing"
)

func TestIdentityTransform(t *testing.T) {
	p := NewPoint3d(1, 2, 3)
	got := Identity().TransformPoint(p)
	if got != p {
		t.Errorf("Identity().TransformPoint() = %v, want %v", got, p)
	}
}

func TestTranslation(t *testing.T) {
	tr := Translation(1, 2, 3)
	got := tr.TransformPoint(Point3dOrigin)
	want := NewPoint3d(1, 2, 3)
	if got != want {
		t.Errorf("Translation() = %v, want %v", got, want)
	}
}

func TestRotationZ90(t *testing.T) {
	tr := RotationZ(math.Pi / 2)
	got := tr.TransformPoint(NewPoint3d(1, 0, 0))
	want := NewPoint3d(0, 1, 0)
	if !got.ToVec3().Equal(want.ToVec3(), 1e-9) {
		t.Errorf("RotationZ(pi/2) = %v, want %v", got, want)
	}
}

func TestTransformCompose(t *testing.T) {
	t1 := Translation(1, 0, 0)
	t2 := Translation(0, 1, 0)
	composed := t1.Then(t2)
	got := composed.TransformPoint(Point3dOrigin)
	want := NewPoint3d(1, 1, 0)
	if got != want {
		t.Errorf("composed transform = %v, want %v", got, want)
	}
}

func TestTransformInverseRoundTrip(t *testing.T) {
	tr := RotationAxisAngle(NewVec3(1, 1, 1), 0.7).Then(Translation(3, -2, 5))
	inv, ok := tr.Inverse()
	if !ok {
		t.Fatalf("expected invertible transform")
	}
	p := NewPoint3d(2, 3, -1)
	roundTrip := inv.TransformPoint(tr.TransformPoint(p))
	if !roundTrip.ToVec3().Equal(p.ToVec3(), 1e-9) {
		t.Errorf("round trip = %v, want %v", roundTrip, p)
	}
}

func TestBoundingBoxFromPoints(t *testing.T) {
	bb := BoundingBoxFromPoints([]Point3d{
		NewPoint3d(0, 0, 0),
		NewPoint3d(2, -1, 5),
		NewPoint3d(-3, 4, 1),
	})
	if bb.Min != (NewPoint3d(-3, -1, 0)) {
		t.Errorf("Min = %v, want (-3,-1,0)", bb.Min)
	}
	if bb.Max != (NewPoint3d(2, 4, 5)) {
		t.Errorf("Max = %v, want (2,4,5)", bb.Max)
	}
}

func TestBoundingBoxIntersects(t *testing.T) {
	a := NewBoundingBox(NewPoint3d(0, 0, 0), NewPoint3d(1, 1, 1))
	b := NewBoundingBox(NewPoint3d(0.5, 0.5, 0.5), NewPoint3d(2, 2, 2))
	c := NewBoundingBox(NewPoint3d(5, 5, 5), NewPoint3d(6, 6, 6))
	if !a.Intersects(b) {
		t.Errorf("expected a and b to intersect")
	}
	if a.Intersects(c) {
		t.Errorf("expected a and c not to intersect")
	}
}
