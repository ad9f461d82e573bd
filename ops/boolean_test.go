package ops

import (
	"testing"

	"github.com/sequoia-hope/waffle-iron-sub001/brep"
)

func TestUnionVolumeAtLeastAsLargeAsEitherInput(t *testing.T) {
	store := brep.NewEntityStore()
	a := brep.MakeBox(store, 0, 0, 0, 10, 10, 10)
	b := brep.MakeBox(store, 5, 5, 5, 15, 15, 15)

	volA := EstimateVolume(store, a, 20000, 1)
	volB := EstimateVolume(store, b, 20000, 2)

	res, err := Union(store, a, b)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	volUnion := EstimateVolume(store, res.Solid, 20000, 3)

	maxInput := volA
	if volB > maxInput {
		maxInput = volB
	}
	if volUnion < maxInput*0.85 {
		t.Errorf("union volume %v should be at least close to max input volume %v", volUnion, maxInput)
	}
}

func TestSubtractVolumeNoLargerThanMinuend(t *testing.T) {
	store := brep.NewEntityStore()
	a := brep.MakeBox(store, 0, 0, 0, 10, 10, 10)
	b := brep.MakeBox(store, 5, 5, 5, 15, 15, 15)

	volA := EstimateVolume(store, a, 20000, 1)

	res, err := Subtract(store, a, b)
	if err != nil {
		t.Fatalf("Subtract: %v", err)
	}
	volDiff := EstimateVolume(store, res.Solid, 20000, 4)

	if volDiff > volA*1.15 {
		t.Errorf("subtract volume %v should not exceed the minuend's volume %v", volDiff, volA)
	}
}
