//-----------------------------------------------------------------------------
/*

Rebuild

buildFeature dispatches one feature's Operation against the kernel
façade, resolving whatever GeomRef/Anchor inputs it carries first
(§4.8 "Downstream dispatch"). rebuildFrom re-runs every active feature
from index k onward, discarding stale cached results/errors first, which
is both the incremental-rebuild path (k = the single affected index) and
the full-rebuild path (k = 0 against a fresh Kernel).

*/
//-----------------------------------------------------------------------------

package feature

import (
	"github.com/google/uuid"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/internal/telemetry"
	"github.com/sequoia-hope/waffle-iron-sub001/kernel"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
	"go.uber.org/zap"
)

// buildFeature runs f's operation against e.kernel and the accumulated
// e.results, returning the FeatureResult to cache on success.
func (e *Engine) buildFeature(f Feature) (*FeatureResult, error) {
	switch f.Operation.Kind {
	case OpSketch:
		return e.buildSketch(f.Operation.Sketch), nil

	case OpExtrude:
		return e.buildExtrude(f.Operation.Extrude)

	case OpRevolve:
		return e.buildRevolve(f.Operation.Revolve)

	case OpFillet:
		return e.buildFillet(f.Operation.Fillet)

	case OpChamfer:
		return e.buildChamfer(f.Operation.Chamfer)

	case OpShell:
		return e.buildShell(f.Operation.Shell)

	case OpBoolean:
		return e.buildBoolean(f.Operation.Boolean)

	default:
		return nil, &EngineError{Kind: FeatureNotFound}
	}
}

func (e *Engine) buildSketch(p *SketchParams) *FeatureResult {
	return sketchResult(SketchOutput{
		PlaneOrigin: p.PlaneOrigin,
		PlaneNormal: p.PlaneNormal,
		UAxis:       p.UAxis,
		Solved:      p.Solved,
	})
}

func (e *Engine) buildExtrude(p *ExtrudeParams) (*FeatureResult, error) {
	sk, err := e.resolveSketch(p.Sketch)
	if err != nil {
		return nil, err
	}
	pts2d := sk.Solved.Points(p.ProfileIndex)
	if pts2d == nil {
		return nil, &naming.ResolveError{Kind: naming.OutputNotFound}
	}
	faces, err := e.kernel.MakeFacesFromProfiles([][]geom.Point2d{pts2d}, sk.PlaneOrigin, sk.PlaneNormal, sk.UAxis)
	if err != nil {
		return nil, err
	}
	handle, prov, err := e.kernel.ExtrudeFace(faces[0], p.Direction, p.Distance)
	if err != nil {
		return nil, err
	}
	telemetry.L().Debug("feature: extrude built", zap.Float64("distance", p.Distance))
	return mainBody(handle, prov), nil
}

func (e *Engine) buildRevolve(p *RevolveParams) (*FeatureResult, error) {
	sk, err := e.resolveSketch(p.Sketch)
	if err != nil {
		return nil, err
	}
	pts2d := sk.Solved.Points(p.ProfileIndex)
	if pts2d == nil {
		return nil, &naming.ResolveError{Kind: naming.OutputNotFound}
	}
	faces, err := e.kernel.MakeFacesFromProfiles([][]geom.Point2d{pts2d}, sk.PlaneOrigin, sk.PlaneNormal, sk.UAxis)
	if err != nil {
		return nil, err
	}
	handle, prov, err := e.kernel.RevolveFace(faces[0], p.AxisOrigin, p.AxisDir, p.Angle, p.Segments)
	if err != nil {
		return nil, err
	}
	telemetry.L().Debug("feature: revolve built", zap.Float64("angle", p.Angle))
	return mainBody(handle, prov), nil
}

func (e *Engine) buildFillet(p *FilletParams) (*FeatureResult, error) {
	handle, err := e.resolveBodyAnchor(p.Body)
	if err != nil {
		return nil, err
	}
	edges, warnings, err := e.resolveEdges(e.kernel, p.Edges)
	if err != nil {
		return nil, err
	}
	newHandle, prov, err := e.kernel.FilletEdges(handle, edges, p.Radius, p.Segments)
	if err != nil {
		return nil, err
	}
	fr := mainBody(newHandle, prov)
	fr.Diagnostics.Warnings = warnings
	return fr, nil
}

func (e *Engine) buildChamfer(p *ChamferParams) (*FeatureResult, error) {
	handle, err := e.resolveBodyAnchor(p.Body)
	if err != nil {
		return nil, err
	}
	edges, warnings, err := e.resolveEdges(e.kernel, p.Edges)
	if err != nil {
		return nil, err
	}
	newHandle, prov, err := e.kernel.ChamferEdges(handle, edges, p.Distance)
	if err != nil {
		return nil, err
	}
	fr := mainBody(newHandle, prov)
	fr.Diagnostics.Warnings = warnings
	return fr, nil
}

func (e *Engine) buildShell(p *ShellParams) (*FeatureResult, error) {
	handle, err := e.resolveBodyAnchor(p.Body)
	if err != nil {
		return nil, err
	}
	indices, warnings, err := e.resolveFaceIndices(e.kernel, handle, p.OpenFaces)
	if err != nil {
		return nil, err
	}
	newHandle, prov, err := e.kernel.Shell(handle, indices, p.Thickness)
	if err != nil {
		return nil, err
	}
	fr := mainBody(newHandle, prov)
	fr.Diagnostics.Warnings = warnings
	return fr, nil
}

func (e *Engine) buildBoolean(p *BooleanParams) (*FeatureResult, error) {
	a, err := e.resolveBodyAnchor(p.A)
	if err != nil {
		return nil, err
	}
	b, err := e.resolveBodyAnchor(p.B)
	if err != nil {
		return nil, err
	}
	handle, prov, err := e.kernel.Boolean(a, b, p.Kind)
	if err != nil {
		return nil, err
	}
	telemetry.L().Debug("feature: boolean built", zap.Int("kind", int(p.Kind)))
	return mainBody(handle, prov), nil
}

// rebuildFrom re-runs every active feature from index k onward against
// e.kernel, which callers are expected to have already prepared (either
// the live accumulated kernel for an incremental rebuild, or a fresh one
// for a full rebuild). Stale cached results and errors for every feature
// at or after k are discarded first, matching §4.8's "earlier feature
// results are reused" / "rebuild every non-suppressed feature from that
// point onward" rule. The tree itself is never mutated here.
func (e *Engine) rebuildFrom(k int) {
	if k < 0 {
		k = 0
	}
	for i := k; i < len(e.tree.Features); i++ {
		id := e.tree.Features[i].ID
		delete(e.results, id)
		delete(e.Errors, id)
	}
	for i := k; i < len(e.tree.Features); i++ {
		if !e.tree.IsActive(i) {
			continue
		}
		f := e.tree.Features[i]
		res, err := e.buildFeature(f)
		if err != nil {
			telemetry.L().Warn("feature: rebuild failed", zap.String("feature", f.Name), zap.Error(err))
			e.Errors[f.ID] = err
			continue
		}
		e.results[f.ID] = res
	}
}

// rebuildFromScratch discards every cached result, every captured error,
// and the kernel's entire EntityStore (any KernelSolidHandle a caller
// still holds from before this call is no longer valid), then replays
// every active feature from the start.
func (e *Engine) rebuildFromScratch() {
	e.kernel = kernel.New()
	e.results = make(map[uuid.UUID]*FeatureResult)
	e.Errors = make(map[uuid.UUID]error)
	e.rebuildFrom(0)
}

