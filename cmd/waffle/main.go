// Command waffle is a thin end-to-end demonstration of the feature
// engine: build a box by sketch + extrude, fillet one of its edges,
// validate the result, save and reload the project file, then export
// STEP and STL. It is deliberately not a UI: per spec.md §1 the worker
// dispatch/rendering pipeline is an external collaborator, so this is
// the minimum driver needed to show the pieces fit together, in the
// style of the teacher's examples/step_export demo.
package main

import (
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/sequoia-hope/waffle-iron-sub001/feature"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/internal/telemetry"
	"github.com/sequoia-hope/waffle-iron-sub001/mesh"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
	"github.com/sequoia-hope/waffle-iron-sub001/project"
	"github.com/sequoia-hope/waffle-iron-sub001/sketch"
	"github.com/sequoia-hope/waffle-iron-sub001/validate"
)

func main() {
	projectPath := flag.String("project", "box.waffle", "project file to write")
	stepPath := flag.String("step", "box.step", "STEP export path")
	stlPath := flag.String("stl", "box.stl", "STL export path")
	flag.Parse()

	if l, err := zap.NewDevelopment(); err == nil {
		telemetry.SetLogger(l)
	}

	eng := feature.New()

	rectProfile := sketch.SolvedSketch{
		Positions: map[uint32]geom.Point2d{
			0: geom.NewPoint2d(0, 0),
			1: geom.NewPoint2d(10, 0),
			2: geom.NewPoint2d(10, 10),
			3: geom.NewPoint2d(0, 10),
		},
		Profiles: []sketch.ClosedProfile{{PointIDs: []uint32{0, 1, 2, 3}}},
		Status:   sketch.Solved,
	}
	sketchID := eng.AddFeature("Sketch1", feature.SketchOp(feature.SketchParams{
		PlaneOrigin: geom.Point3dOrigin,
		PlaneNormal: geom.Vec3Z,
		UAxis:       geom.Vec3X,
		Solved:      rectProfile,
	}))

	extrudeID := eng.AddFeature("Extrude1", feature.ExtrudeOp(feature.ExtrudeParams{
		Sketch:       sketchID,
		ProfileIndex: 0,
		Direction:    geom.Vec3Z,
		Distance:     10,
	}))
	if err := eng.Errors[extrudeID]; err != nil {
		log.Fatalf("extrude failed: %v", err)
	}

	// Fillet the bottom edge running from (0,0,0) to (10,0,0): select it
	// by signature (its centroid is the edge midpoint, its length is the
	// edge length) since no Role names an arbitrary extrude side edge.
	edgeRef := naming.GeomRef{
		Kind:   naming.KindEdge,
		Anchor: naming.FeatureOutput(extrudeID, naming.Main),
		Selector: naming.BySignature(naming.TopoSignature{
			HasCentroid: true,
			Centroid:    [3]float64{5, 0, 0},
			HasLength:   true,
			Length:      10,
		}),
		Policy: naming.BestEffort,
	}
	filletID := eng.AddFeature("Fillet1", feature.FilletOp(feature.FilletParams{
		Body:     naming.FeatureOutput(extrudeID, naming.Main),
		Edges:    []naming.GeomRef{edgeRef},
		Radius:   2,
		Segments: 4,
	}))
	if err := eng.Errors[filletID]; err != nil {
		log.Fatalf("fillet failed: %v", err)
	}

	result := eng.GetResult(filletID)
	handle := result.Bodies[naming.Main].Handle
	store := eng.Kernel().Store()

	report := validate.Validate(store, handle.SolidID(), validate.L2Spatial)
	telemetry.L().Sugar().Infof("validation: valid=%v errors=%d warnings=%d",
		report.Valid(), report.ErrorCount(), report.WarningCount())

	now := time.Now().Unix()
	doc := project.FromTree("fillet-box", eng.Tree(), now, now)
	if err := project.SaveFile(*projectPath, doc); err != nil {
		log.Fatalf("save project: %v", err)
	}

	reloadedTree, meta, err := project.LoadTree(*projectPath)
	if err != nil {
		log.Fatalf("load project: %v", err)
	}
	telemetry.L().Sugar().Infof("reloaded project %q with %d features", meta.Name, len(reloadedTree.Features))

	if err := eng.Kernel().ExportSTEP(handle, *stepPath, "fillet-box"); err != nil {
		log.Fatalf("export STEP: %v", err)
	}
	renderMesh := mesh.ToRenderMesh(store, handle.SolidID(), 0.1)
	if err := eng.Kernel().ExportSTL(handle, *stlPath, 0.1); err != nil {
		log.Fatalf("export STL: %v", err)
	}

	// Demonstrate a parametric edit, then undo/redo (testable property
	// "undo then redo is the identity").
	if err := eng.EditFeature(extrudeID, feature.ExtrudeOp(feature.ExtrudeParams{
		Sketch: sketchID, ProfileIndex: 0, Direction: geom.Vec3Z, Distance: 20,
	})); err != nil {
		log.Fatalf("edit feature: %v", err)
	}
	if err := eng.Undo(); err != nil {
		log.Fatalf("undo: %v", err)
	}
	if err := eng.Redo(); err != nil {
		log.Fatalf("redo: %v", err)
	}

	log.Printf("done: %d triangles tessellated, project saved to %s, STEP at %s, STL at %s",
		len(renderMesh.Triangles), *projectPath, *stepPath, *stlPath)
}
