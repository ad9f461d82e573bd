package ops

import (
	"math"
	"testing"

	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
)

func TestExtrudeProfileBoxTopology(t *testing.T) {
	store := brep.NewEntityStore()
	profile := RectangleProfile(10, 10)

	res, err := ExtrudeProfile(store, profile, geom.Vec3Z, 10)
	if err != nil {
		t.Fatalf("ExtrudeProfile: %v", err)
	}

	audit := brep.AuditSolid(store, res.Solid)
	if !audit.AllValid() {
		t.Fatalf("extruded box failed audit: %+v", audit.Errors)
	}

	shellID := store.Solid(res.Solid).Shells[0]
	v, e, f := store.CountTopology(shellID)
	if v != 8 || e != 12 || f != 6 {
		t.Errorf("extruded box topology = (V=%d E=%d F=%d), want (8,12,6)", v, e, f)
	}

	vol := EstimateVolume(store, res.Solid, 20000, 1)
	want := 10.0 * 10.0 * 10.0
	if math.Abs(vol-want) > want*0.15 {
		t.Errorf("EstimateVolume = %v, want close to %v", vol, want)
	}
}

func TestExtrudeProfileRejectsDegenerateProfile(t *testing.T) {
	store := brep.NewEntityStore()
	profile := ProfileFromPoints(nil)
	if _, err := ExtrudeProfile(store, profile, geom.Vec3Z, 10); err == nil {
		t.Errorf("expected an error for a profile with too few points")
	}
}
