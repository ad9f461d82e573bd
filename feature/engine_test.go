package feature

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
	"github.com/sequoia-hope/waffle-iron-sub001/sketch"
)

func rectangleSketch(w, h float64) SketchParams {
	return SketchParams{
		PlaneOrigin: geom.Point3dOrigin,
		PlaneNormal: geom.Vec3Z,
		UAxis:       geom.Vec3X,
		Solved: sketch.SolvedSketch{
			Positions: map[uint32]geom.Point2d{
				0: geom.NewPoint2d(0, 0),
				1: geom.NewPoint2d(w, 0),
				2: geom.NewPoint2d(w, h),
				3: geom.NewPoint2d(0, h),
			},
			Profiles: []sketch.ClosedProfile{{PointIDs: []uint32{0, 1, 2, 3}}},
			Status:   sketch.Solved,
		},
	}
}

func TestAddFeatureBoxExtrude(t *testing.T) {
	e := New()
	sketchID := e.AddFeature("Sketch1", SketchOp(rectangleSketch(10, 10)))
	if err, ok := e.Errors[sketchID]; ok {
		t.Fatalf("sketch feature failed: %v", err)
	}

	extrudeID := e.AddFeature("Extrude1", ExtrudeOp(ExtrudeParams{
		Sketch:    sketchID,
		Direction: geom.Vec3Z,
		Distance:  10,
	}))
	if err, ok := e.Errors[extrudeID]; ok {
		t.Fatalf("extrude feature failed: %v", err)
	}

	res := e.GetResult(extrudeID)
	if res == nil || res.Bodies == nil {
		t.Fatalf("extrude produced no body output")
	}
	body := res.Bodies[naming.Main]
	v := len(e.Kernel().ListVertices(body.Handle))
	edges := len(e.Kernel().ListEdges(body.Handle))
	f := len(e.Kernel().ListFaces(body.Handle))
	if v != 8 || edges != 12 || f != 6 {
		t.Errorf("box extrude topology = (V=%d E=%d F=%d), want (8,12,6)", v, edges, f)
	}

	ref := naming.GeomRef{
		Kind:     naming.KindFace,
		Anchor:   naming.FeatureOutput(extrudeID, naming.Main),
		Selector: naming.ByRole(naming.EndCapPositive, 0),
		Policy:   naming.Strict,
	}
	if _, err := e.resolveGeomRef(ref); err != nil {
		t.Errorf("resolving EndCapPositive failed: %v", err)
	}
}

func TestParametricEditChangesExtrudeDepth(t *testing.T) {
	e := New()
	sketchID := e.AddFeature("Sketch1", SketchOp(rectangleSketch(10, 10)))
	extrudeID := e.AddFeature("Extrude1", ExtrudeOp(ExtrudeParams{
		Sketch: sketchID, Direction: geom.Vec3Z, Distance: 10,
	}))
	if err, ok := e.Errors[extrudeID]; ok {
		t.Fatalf("initial extrude failed: %v", err)
	}

	if err := e.EditFeature(extrudeID, ExtrudeOp(ExtrudeParams{
		Sketch: sketchID, Direction: geom.Vec3Z, Distance: 20,
	})); err != nil {
		t.Fatalf("EditFeature: %v", err)
	}
	if err, ok := e.Errors[extrudeID]; ok {
		t.Fatalf("edited extrude failed: %v", err)
	}

	ref := naming.GeomRef{
		Kind:     naming.KindFace,
		Anchor:   naming.FeatureOutput(extrudeID, naming.Main),
		Selector: naming.ByRole(naming.EndCapPositive, 0),
		Policy:   naming.Strict,
	}
	if _, err := e.resolveGeomRef(ref); err != nil {
		t.Errorf("EndCapPositive should still resolve after edit: %v", err)
	}
}

func TestUndoRedoChain(t *testing.T) {
	e := New()
	a := e.AddFeature("Sketch1", SketchOp(rectangleSketch(10, 10)))
	b := e.AddFeature("Extrude1", ExtrudeOp(ExtrudeParams{Sketch: a, Direction: geom.Vec3Z, Distance: 5}))

	if err := e.EditFeature(b, ExtrudeOp(ExtrudeParams{Sketch: a, Direction: geom.Vec3Z, Distance: 20})); err != nil {
		t.Fatalf("edit: %v", err)
	}

	if err := e.Undo(); err != nil { // undo the edit
		t.Fatalf("undo 1: %v", err)
	}
	if err := e.Undo(); err != nil { // undo adding b
		t.Fatalf("undo 2: %v", err)
	}
	if len(e.tree.Features) != 1 || e.tree.Features[0].ID != a {
		t.Fatalf("after two undos, tree should be [A], got %v", e.tree.Features)
	}

	if err := e.Redo(); err != nil { // redo adding b back
		t.Fatalf("redo: %v", err)
	}
	if len(e.tree.Features) != 2 || e.tree.Features[1].ID != b {
		t.Fatalf("after one redo, tree should be [A, B], got %v", e.tree.Features)
	}
	extParams := e.tree.Features[1].Operation.Extrude
	if extParams.Distance != 5 {
		t.Errorf("redo should restore the pre-edit operation (distance 5), got %v", extParams.Distance)
	}
}

func TestBrokenSketchReferenceIsCapturedNotFatal(t *testing.T) {
	e := New()
	extrudeID := e.AddFeature("Extrude1", ExtrudeOp(ExtrudeParams{
		Sketch: uuid.New(), Direction: geom.Vec3Z, Distance: 5,
	}))

	if e.GetResult(extrudeID) != nil {
		t.Errorf("GetResult should be nil for a feature with a broken reference")
	}
	if _, ok := e.Errors[extrudeID]; !ok {
		t.Errorf("Errors map should record the broken-reference failure")
	}

	if err := e.RemoveFeature(extrudeID); err != nil {
		t.Errorf("RemoveFeature on a failed feature should still succeed: %v", err)
	}
}

func TestUndoWithEmptyStackFails(t *testing.T) {
	e := New()
	if err := e.Undo(); err == nil {
		t.Errorf("Undo on empty stack should fail")
	}
}
