//-----------------------------------------------------------------------------
/*

Feature Results

FeatureResult is the per-feature cache entry the engine keys by feature
UUID: either a sketch's published profile bundle, or the kernel-backed
bodies a constructive operation produced, each carrying the
ops.Provenance needed to keep GeomRefs into it resolvable on later
rebuilds (§3.5 OpResult, §4.6 role assignment).

*/
//-----------------------------------------------------------------------------

package feature

import (
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/kernel"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
	"github.com/sequoia-hope/waffle-iron-sub001/ops"
	"github.com/sequoia-hope/waffle-iron-sub001/sketch"
)

// SketchOutput is the feature output a Sketch operation publishes: the
// plane it was solved on plus the solved positions/profiles themselves,
// everything Extrude/Revolve need to place a 2D profile into 3D.
type SketchOutput struct {
	PlaneOrigin geom.Point3d
	PlaneNormal geom.Vec3
	UAxis       geom.Vec3
	Solved      sketch.SolvedSketch
}

// BodyOutput is one kernel-backed output body of a feature's result: the
// handle the kernel façade returned plus the provenance recorded when it
// was built.
type BodyOutput struct {
	Handle     kernel.KernelSolidHandle
	Provenance ops.Provenance
}

// FeatureResult is the cached outcome of successfully running one
// feature's operation. Exactly one of Sketch or Bodies is populated,
// matching whether the feature was a Sketch (publishes a profile bundle,
// never touches the kernel) or a constructive operation (publishes one or
// more kernel-backed bodies keyed by naming.OutputKey).
type FeatureResult struct {
	Sketch      *SketchOutput
	Bodies      map[naming.OutputKey]BodyOutput
	Diagnostics ops.Diagnostics
}

// mainBody is a convenience for the overwhelmingly common single-body
// result (every constructive operation, BooleanCombine included,
// produces exactly one Main output).
func mainBody(handle kernel.KernelSolidHandle, prov ops.Provenance) *FeatureResult {
	return &FeatureResult{Bodies: map[naming.OutputKey]BodyOutput{
		naming.Main: {Handle: handle, Provenance: prov},
	}}
}

func sketchResult(out SketchOutput) *FeatureResult {
	return &FeatureResult{Sketch: &out}
}

// DatumRecord is a standalone, feature-less named reference (e.g. a
// reference plane or axis) a GeomRef can anchor on via Anchor::Datum
// instead of a feature output.
type DatumRecord struct {
	Name       string
	Candidates []naming.Candidate
}
