package ops

import (
	"testing"

	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
)

func TestFilletEdgeOnExtrudedBox(t *testing.T) {
	store := brep.NewEntityStore()
	box, err := ExtrudeProfile(store, RectangleProfile(10, 10), geom.Vec3Z, 10)
	if err != nil {
		t.Fatalf("ExtrudeProfile: %v", err)
	}

	// RectangleProfile is centered, so its (-5,-5,0)-(5,-5,0) edge is a
	// bottom edge of the box before extrusion along +Z.
	v0 := geom.NewPoint3d(-5, -5, 0)
	v1 := geom.NewPoint3d(5, -5, 0)

	res, err := FilletEdge(store, box.Solid, v0, v1, 1, 4)
	if err != nil {
		t.Fatalf("FilletEdge: %v", err)
	}

	audit := brep.AuditSolid(store, res.Solid)
	if !audit.AllValid() {
		t.Fatalf("filleted box failed audit: %+v", audit.Errors)
	}
}

func TestFilletEdgeRejectsNonPositiveRadius(t *testing.T) {
	store := brep.NewEntityStore()
	box, err := ExtrudeProfile(store, RectangleProfile(10, 10), geom.Vec3Z, 10)
	if err != nil {
		t.Fatalf("ExtrudeProfile: %v", err)
	}
	if _, err := FilletEdge(store, box.Solid, geom.NewPoint3d(-5, -5, 0), geom.NewPoint3d(5, -5, 0), 0, 4); err == nil {
		t.Errorf("expected an error for a zero radius")
	}
}
