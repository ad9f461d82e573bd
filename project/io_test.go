package project

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sequoia-hope/waffle-iron-sub001/feature"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
)

func sampleTree() *feature.FeatureTree {
	sketchID := uuid.New()
	extrudeID := uuid.New()
	return &feature.FeatureTree{
		Features: []feature.Feature{
			{
				ID:   sketchID,
				Name: "Sketch1",
				Operation: feature.SketchOp(feature.SketchParams{
					PlaneOrigin: geom.Point3dOrigin,
					PlaneNormal: geom.Vec3Z,
					UAxis:       geom.Vec3X,
				}),
			},
			{
				ID:   extrudeID,
				Name: "Extrude1",
				Operation: feature.ExtrudeOp(feature.ExtrudeParams{
					Sketch:    sketchID,
					Direction: geom.Vec3Z,
					Distance:  10,
				}),
				Suppressed: true,
			},
		},
		HasRollback:   true,
		RollbackIndex: 1,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tree := sampleTree()
	doc := FromTree("widget", tree, 1000, 2000)

	data, err := Save(doc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := loaded.ToTree()
	if len(got.Features) != len(tree.Features) {
		t.Fatalf("feature count = %d, want %d", len(got.Features), len(tree.Features))
	}
	for i, f := range tree.Features {
		gf := got.Features[i]
		if gf.ID != f.ID || gf.Name != f.Name || gf.Suppressed != f.Suppressed {
			t.Errorf("feature %d = %+v, want %+v", i, gf, f)
		}
		if gf.Operation.Kind != f.Operation.Kind {
			t.Errorf("feature %d operation kind = %v, want %v", i, gf.Operation.Kind, f.Operation.Kind)
		}
	}
	if got.HasRollback != tree.HasRollback || got.RollbackIndex != tree.RollbackIndex {
		t.Errorf("rollback state = (%v,%d), want (%v,%d)", got.HasRollback, got.RollbackIndex, tree.HasRollback, tree.RollbackIndex)
	}

	extrudeGot := got.Features[1].Operation.Extrude
	extrudeWant := tree.Features[1].Operation.Extrude
	if extrudeGot.Sketch != extrudeWant.Sketch || extrudeGot.Distance != extrudeWant.Distance {
		t.Errorf("extrude params = %+v, want %+v", extrudeGot, extrudeWant)
	}

	if loaded.Project.Name != "widget" {
		t.Errorf("project name = %q, want %q", loaded.Project.Name, "widget")
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	_, err := Load([]byte(`{"format":"something-else","version":1}`))
	le, ok := err.(*LoadError)
	if !ok || le.Kind != UnknownFormat {
		t.Fatalf("Load with wrong format = %v, want UnknownFormat", err)
	}
}

func TestLoadRejectsFutureVersion(t *testing.T) {
	_, err := Load([]byte(`{"format":"waffle-cad-project","version":99}`))
	le, ok := err.(*LoadError)
	if !ok || le.Kind != FutureVersion {
		t.Fatalf("Load with future version = %v, want FutureVersion", err)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := Load([]byte(`not json`))
	le, ok := err.(*LoadError)
	if !ok || le.Kind != ParseError {
		t.Fatalf("Load with malformed JSON = %v, want ParseError", err)
	}
}
