//-----------------------------------------------------------------------------
/*

Resolution

Resolve turns a GeomRef into a kernel id valid for the current rebuild.
It never touches a live kernel: callers hand it the RoleAssignments and
Candidates already produced by the referenced feature's OpResult, so
this package stays free of any dependency on the feature engine or
kernel façade (both of which depend on naming, not the other way
around).

Strict resolution fails outright when a selector does not name exactly
one entity. BestEffort degrades through Resolve once, and on failure
falls back to the closest signature match, logging the degradation as a
warning on the returned ResolvedEntity rather than failing the feature.
For SelectByRole, "closest" is scored against a signature the caller
recorded from this same ref's last successful resolution — Resolve
itself is stateless, so that bookkeeping is the caller's job (see
feature.Engine.resolveGeomRef).

*/
//-----------------------------------------------------------------------------

package naming

import (
	"fmt"
	"math"
)

// KernelID is the opaque, transient backend entity id a Resolve call
// returns. It is never persisted; only the GeomRef that resolved to it is.
type KernelID uint64

// RoleAssignment pairs a kernel id with the role a modeling operation
// assigned to it at construction time, in the order the operation
// assigned them (this is also the order OpResult.Provenance.RoleAssignments
// is expected to preserve).
type RoleAssignment struct {
	ID   KernelID
	Role Role
}

// Candidate is one entity available for Signature/Query selection or
// best-effort fallback: its kernel id, kind, and best-effort signature.
type Candidate struct {
	ID        KernelID
	Kind      TopoKind
	Signature TopoSignature
}

// ResolveErrorKind distinguishes the ways resolution can fail.
type ResolveErrorKind int

const (
	FeatureNotFound ResolveErrorKind = iota
	OutputNotFound
	RoleNotFound
	NoMatch
	Ambiguous
)

// ResolveError is returned by Resolve under ResolvePolicy Strict, and
// captured (never returned) as a warning under BestEffort.
type ResolveError struct {
	Kind ResolveErrorKind
	Role Role
}

func (e *ResolveError) Error() string {
	switch e.Kind {
	case FeatureNotFound:
		return "geomref: anchor feature not found"
	case OutputNotFound:
		return "geomref: anchor output not found"
	case RoleNotFound:
		return fmt.Sprintf("geomref: no entity with role %v", e.Role)
	case NoMatch:
		return "geomref: no candidate matched the selector"
	case Ambiguous:
		return "geomref: selector matched more than one candidate"
	default:
		return "geomref: resolution failed"
	}
}

// ResolvedEntity is the result of a successful Resolve call: the kernel id
// it found, that entity's signature (for the caller to record for a future
// BestEffort fallback), and, for a BestEffort degradation, a non-empty
// warning explaining what was relaxed.
type ResolvedEntity struct {
	ID           KernelID
	Signature    TopoSignature
	HasSignature bool
	Warning      string
}

// Resolve finds the kernel id ref.Selector names among candidates/roles,
// honoring ref.Policy. roles and candidates must both describe the single
// anchor output ref.Anchor points at; callers are responsible for having
// already looked up that output (ResolveRef below does this when given an
// OutputLookup).
//
// recorded is the TopoSignature of the entity a prior resolution of this
// same ref found, or nil if none is on record (first resolution ever, or
// the caller doesn't track one). It is only consulted by the BestEffort
// SelectByRole fallback, where it is what "most similar to the recorded
// one" compares candidates against; every other selector kind already
// carries its own comparison signature (SelectBySignature) or doesn't
// need one (SelectByQuery's filter relaxation).
func Resolve(ref GeomRef, roles []RoleAssignment, candidates []Candidate, recorded *TopoSignature) (ResolvedEntity, error) {
	id, err := resolveStrict(ref.Kind, ref.Selector, roles, candidates)
	if err == nil {
		return withSignature(id, candidates), nil
	}
	if ref.Policy == Strict {
		return ResolvedEntity{}, err
	}
	return resolveBestEffort(ref.Kind, ref.Selector, roles, candidates, recorded, err)
}

// withSignature attaches the signature candidates records for id, if any,
// to a successful resolution.
func withSignature(id KernelID, candidates []Candidate) ResolvedEntity {
	for _, c := range candidates {
		if c.ID == id {
			return ResolvedEntity{ID: id, Signature: c.Signature, HasSignature: true}
		}
	}
	return ResolvedEntity{ID: id}
}

// OutputLookup resolves an Anchor to the (roles, candidates) pair describing
// that output's entities. Implemented by the feature engine, which owns
// feature_results; kept as a function type here to avoid a package
// dependency from naming onto feature.
type OutputLookup func(a Anchor) (roles []RoleAssignment, candidates []Candidate, found bool)

// ResolveRef is the entry point the feature engine calls: it looks up the
// anchor via lookup, then resolves the selector against that output.
// recorded is passed straight through to Resolve; see its doc comment.
func ResolveRef(ref GeomRef, lookup OutputLookup, recorded *TopoSignature) (ResolvedEntity, error) {
	roles, candidates, found := lookup(ref.Anchor)
	if !found {
		// The lookup does not distinguish "feature missing" from "feature
		// present, output missing"; both report as OutputNotFound since
		// neither policy can do anything useful with the distinction.
		return ResolvedEntity{}, &ResolveError{Kind: OutputNotFound}
	}
	return Resolve(ref, roles, candidates, recorded)
}

func resolveStrict(kind TopoKind, sel Selector, roles []RoleAssignment, candidates []Candidate) (KernelID, error) {
	switch sel.Kind {
	case SelectByRole:
		matches := rolesMatching(roles, sel.Role)
		if sel.RoleIndex < 0 || sel.RoleIndex >= len(matches) {
			return 0, &ResolveError{Kind: RoleNotFound, Role: sel.Role}
		}
		return matches[sel.RoleIndex], nil

	case SelectBySignature:
		var found []KernelID
		for _, c := range candidates {
			if c.Kind != kind {
				continue
			}
			if signatureEqual(c.Signature, sel.Signature) {
				found = append(found, c.ID)
			}
		}
		switch len(found) {
		case 0:
			return 0, &ResolveError{Kind: NoMatch}
		case 1:
			return found[0], nil
		default:
			return 0, &ResolveError{Kind: Ambiguous}
		}

	case SelectByQuery:
		filtered := filterCandidates(candidates, kind, sel.Query.Filters)
		if len(filtered) == 0 {
			return 0, &ResolveError{Kind: NoMatch}
		}
		if len(filtered) == 1 {
			return filtered[0].ID, nil
		}
		return breakTie(filtered, sel.Query.TieBreak), nil

	default:
		return 0, &ResolveError{Kind: NoMatch}
	}
}

func resolveBestEffort(kind TopoKind, sel Selector, roles []RoleAssignment, candidates []Candidate, recorded *TopoSignature, cause error) (ResolvedEntity, error) {
	switch sel.Kind {
	case SelectByRole:
		// Degrade: find the candidate of the right kind whose signature is
		// most similar to the recorded signature of whatever this role used
		// to resolve to. With nothing recorded, every candidate scores
		// equally and the first one found wins — a real "give me anything of
		// this kind" fallback, not a silent stand-in for a similarity search.
		var sig TopoSignature
		haveRecorded := false
		if recorded != nil {
			sig = *recorded
			haveRecorded = true
		}
		best, ok := bestSignatureMatch(candidates, kind, sig, haveRecorded)
		if !ok {
			return ResolvedEntity{}, cause
		}
		re := withSignature(best, candidates)
		re.Warning = fmt.Sprintf("role %v not found; used closest %v candidate by signature", sel.Role, kind)
		return re, nil

	case SelectBySignature:
		best, ok := bestSignatureMatch(candidates, kind, sel.Signature, true)
		if !ok {
			return ResolvedEntity{}, cause
		}
		re := withSignature(best, candidates)
		re.Warning = "signature did not match exactly; used highest-similarity candidate"
		return re, nil

	case SelectByQuery:
		// Relax: drop filters one at a time (weakest discriminator last) until
		// something matches, then break the tie as usual.
		filters := append([]Filter(nil), sel.Query.Filters...)
		for len(filters) > 0 {
			filtered := filterCandidates(candidates, kind, filters)
			if len(filtered) > 0 {
				id := breakTie(filtered, sel.Query.TieBreak)
				re := withSignature(id, candidates)
				re.Warning = "query over-constrained; matched with fewer filters"
				return re, nil
			}
			filters = filters[:len(filters)-1]
		}
		var all []Candidate
		for _, c := range candidates {
			if c.Kind == kind {
				all = append(all, c)
			}
		}
		if len(all) == 0 {
			return ResolvedEntity{}, cause
		}
		re := withSignature(breakTie(all, sel.Query.TieBreak), candidates)
		re.Warning = "query matched nothing; accepted best tie-break candidate"
		return re, nil

	default:
		return ResolvedEntity{}, cause
	}
}

func rolesMatching(roles []RoleAssignment, role Role) []KernelID {
	var out []KernelID
	for _, ra := range roles {
		if ra.Role.Equal(role) {
			out = append(out, ra.ID)
		}
	}
	return out
}

func bestSignatureMatch(candidates []Candidate, kind TopoKind, recorded TopoSignature, haveRecorded bool) (KernelID, bool) {
	var bestID KernelID
	bestScore := -1.0
	found := false
	for _, c := range candidates {
		if c.Kind != kind {
			continue
		}
		score := 1.0
		if haveRecorded {
			score = SignatureSimilarity(c.Signature, recorded)
		}
		if score > bestScore {
			bestScore = score
			bestID = c.ID
			found = true
		}
	}
	return bestID, found
}

func filterCandidates(candidates []Candidate, kind TopoKind, filters []Filter) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if c.Kind != kind {
			continue
		}
		if matchesAll(c.Signature, filters) {
			out = append(out, c)
		}
	}
	return out
}

func matchesAll(sig TopoSignature, filters []Filter) bool {
	for _, f := range filters {
		if !matchesFilter(sig, f) {
			return false
		}
	}
	return true
}

func matchesFilter(sig TopoSignature, f Filter) bool {
	switch f.Kind {
	case FilterSurfaceType:
		return sig.HasSurfaceType && sig.SurfaceType == f.SurfaceType
	case FilterNormalDirection:
		if !sig.HasNormal {
			return false
		}
		return angleBetween(sig.Normal, f.Direction) <= f.Tolerance
	case FilterNearPoint:
		if !sig.HasCentroid {
			return false
		}
		return distance(sig.Centroid, f.Point) <= f.Distance
	case FilterAreaRange:
		if !sig.HasArea {
			return false
		}
		return sig.Area >= f.MinArea && sig.Area <= f.MaxArea
	default:
		return false
	}
}

func breakTie(candidates []Candidate, tb TieBreak) KernelID {
	switch tb.Kind {
	case TieBreakLargestArea:
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.Signature.HasArea && (!best.Signature.HasArea || c.Signature.Area > best.Signature.Area) {
				best = c
			}
		}
		return best.ID
	case TieBreakNearestTo:
		best := candidates[0]
		bestDist := distanceOrInf(best.Signature, tb.Point)
		for _, c := range candidates[1:] {
			d := distanceOrInf(c.Signature, tb.Point)
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
		return best.ID
	case TieBreakSmallestIndex:
		fallthrough
	default:
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.ID < best.ID {
				best = c
			}
		}
		return best.ID
	}
}

func distanceOrInf(sig TopoSignature, p Direction3) float64 {
	if !sig.HasCentroid {
		return 1e300
	}
	return distance(sig.Centroid, p)
}

func distance(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func angleBetween(a, b [3]float64) float64 {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
	la, lb := math.Sqrt(a[0]*a[0]+a[1]*a[1]+a[2]*a[2]), math.Sqrt(b[0]*b[0]+b[1]*b[1]+b[2]*b[2])
	if la < 1e-15 || lb < 1e-15 {
		return 0
	}
	cos := dot / (la * lb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}
