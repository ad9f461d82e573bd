package validate

import (
	"testing"

	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
)

func TestValidateBoxPassesThroughContinuity(t *testing.T) {
	store := brep.NewEntityStore()
	solidID := brep.MakeBox(store, 0, 0, 0, 10, 10, 10)

	report := Validate(store, solidID, L3Continuity)
	if !report.Valid() {
		t.Fatalf("box should pass every validation level, got errors: %+v", report.Errors)
	}
	if report.ErrorCount() != 0 {
		t.Errorf("ErrorCount() = %d, want 0", report.ErrorCount())
	}
}

func TestValidateTopologyCatchesNothingOnWellFormedSolid(t *testing.T) {
	store := brep.NewEntityStore()
	solidID := brep.MakeCylinder(store, geom.Point3dOrigin, 5, 10, 12)

	report := ValidateTopology(store, solidID)
	if !report.Valid() {
		t.Errorf("cylinder should pass L0 topology, got: %+v", report.Errors)
	}
}
