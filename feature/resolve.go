//-----------------------------------------------------------------------------
/*

GeomRef Resolution

The engine is the naming.OutputLookup implementation spec.md §4.6
describes: it owns feature_results, so it is the only thing that can
turn an Anchor into the (roles, candidates) pair naming.Resolve needs.
resolveBodyAnchor is the simpler sibling used where a param names a
whole body rather than a specific entity within it (Fillet/Chamfer/Shell/
BooleanCombine's body references): a solid needs no Selector to
disambiguate, since exactly one lives at a given OutputKey.

*/
//-----------------------------------------------------------------------------

package feature

import (
	"github.com/google/uuid"
	"github.com/sequoia-hope/waffle-iron-sub001/kernel"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
)

// outputLookup implements naming.OutputLookup against e.results and
// e.datums.
func (e *Engine) outputLookup(a naming.Anchor) (roles []naming.RoleAssignment, candidates []naming.Candidate, found bool) {
	if a.Kind == naming.AnchorDatum {
		d, ok := e.datums[a.DatumID]
		if !ok {
			return nil, nil, false
		}
		return nil, d.Candidates, true
	}
	fr, ok := e.results[a.FeatureID]
	if !ok || fr.Bodies == nil {
		return nil, nil, false
	}
	bo, ok := fr.Bodies[a.OutputKey]
	if !ok {
		return nil, nil, false
	}
	return bo.Provenance.RoleAssignments(a.OutputKey), e.kernel.Candidates(bo.Handle), true
}

// signatureCacheKey identifies a SelectByRole GeomRef for the purpose of
// remembering what it last resolved to. GeomRef itself isn't comparable
// (Selector embeds a TopoQuery holding a slice), so this narrows down to
// just the fields that matter for a role lookup: which output, and which
// role within it.
type signatureCacheKey struct {
	anchor naming.Anchor
	role   naming.Role
	index  int
}

// roleCacheKey returns ref's signatureCacheKey and true if ref is a
// SelectByRole reference (the only selector kind resolveBestEffort can
// improve on with a recorded signature); other selector kinds report
// false and are never cached.
func roleCacheKey(ref naming.GeomRef) (signatureCacheKey, bool) {
	if ref.Selector.Kind != naming.SelectByRole {
		return signatureCacheKey{}, false
	}
	return signatureCacheKey{anchor: ref.Anchor, role: ref.Selector.Role, index: ref.Selector.RoleIndex}, true
}

// resolveGeomRef turns ref into a naming.ResolvedEntity against the
// engine's current feature_results. For a SelectByRole ref, it threads
// through whatever TopoSignature that same ref resolved to the last time
// it succeeded, so a BestEffort fallback degrading a missing role has a
// recorded signature to score candidates against instead of an empty one.
func (e *Engine) resolveGeomRef(ref naming.GeomRef) (naming.ResolvedEntity, error) {
	key, cacheable := roleCacheKey(ref)
	var recorded *naming.TopoSignature
	if cacheable {
		if sig, ok := e.recordedSignatures[key]; ok {
			recorded = &sig
		}
	}
	resolved, err := naming.ResolveRef(ref, e.outputLookup, recorded)
	if err == nil && cacheable && resolved.HasSignature {
		e.recordedSignatures[key] = resolved.Signature
	}
	return resolved, err
}

// resolveBodyAnchor looks up the kernel handle a (a whole-body reference,
// not an entity within one) names.
func (e *Engine) resolveBodyAnchor(a naming.Anchor) (kernel.KernelSolidHandle, error) {
	if a.Kind == naming.AnchorDatum {
		return kernel.KernelSolidHandle{}, &naming.ResolveError{Kind: naming.OutputNotFound}
	}
	fr, ok := e.results[a.FeatureID]
	if !ok || fr.Bodies == nil {
		return kernel.KernelSolidHandle{}, &naming.ResolveError{Kind: naming.FeatureNotFound}
	}
	bo, ok := fr.Bodies[a.OutputKey]
	if !ok {
		return kernel.KernelSolidHandle{}, &naming.ResolveError{Kind: naming.OutputNotFound}
	}
	return bo.Handle, nil
}

// resolveSketch looks up the SketchOutput published by the feature sid.
func (e *Engine) resolveSketch(sid uuid.UUID) (*SketchOutput, error) {
	fr, ok := e.results[sid]
	if !ok || fr.Sketch == nil {
		return nil, &naming.ResolveError{Kind: naming.FeatureNotFound}
	}
	return fr.Sketch, nil
}

// resolveEdges resolves every ref in refs against body (all anchored on
// the same Anchor a Fillet/Chamfer's Body names) into kernel.EdgeRef
// values ops.FilletEdge/ops.ChamferEdge consume, and reports any
// resolution warnings collected along the way.
func (e *Engine) resolveEdges(k *kernel.Kernel, refs []naming.GeomRef) ([]kernel.EdgeRef, []string, error) {
	edges := make([]kernel.EdgeRef, 0, len(refs))
	var warnings []string
	for _, ref := range refs {
		resolved, err := e.resolveGeomRef(ref)
		if err != nil {
			return nil, warnings, err
		}
		if resolved.Warning != "" {
			warnings = append(warnings, resolved.Warning)
		}
		v0, v1 := k.EdgeEndpoints(kernel.KernelId(resolved.ID))
		edges = append(edges, kernel.EdgeRef{V0: v0, V1: v1})
	}
	return edges, warnings, nil
}

// resolveFaceIndices resolves every ref in refs against handle into the
// face-index space ops.ShellSolid's openFaceIndices parameter addresses.
func (e *Engine) resolveFaceIndices(k *kernel.Kernel, handle kernel.KernelSolidHandle, refs []naming.GeomRef) ([]int, []string, error) {
	indices := make([]int, 0, len(refs))
	var warnings []string
	for _, ref := range refs {
		resolved, err := e.resolveGeomRef(ref)
		if err != nil {
			return nil, warnings, err
		}
		if resolved.Warning != "" {
			warnings = append(warnings, resolved.Warning)
		}
		idx, ok := k.FaceIndex(handle, kernel.KernelId(resolved.ID))
		if !ok {
			return nil, warnings, &naming.ResolveError{Kind: naming.NoMatch}
		}
		indices = append(indices, idx)
	}
	return indices, warnings, nil
}
