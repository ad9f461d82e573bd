//-----------------------------------------------------------------------------
/*

Feature Tree

A Feature pairs a durable UUID with the Operation it runs and whatever
GeomRefs that operation's own parameters embed. FeatureTree is the
ordered list plus an optional rollback index: "active" features are
every non-suppressed feature strictly before the rollback point (or the
whole tree, with no rollback set).

*/
//-----------------------------------------------------------------------------

package feature

import "github.com/google/uuid"

// Feature is one node of the feature tree: a durable identity, a
// human-readable name, the operation it runs, and whether it is
// currently suppressed (hidden from rebuilds without being removed).
type Feature struct {
	ID         uuid.UUID
	Name       string
	Operation  Operation
	Suppressed bool
}

// FeatureTree is the ordered list of Features plus an optional rollback
// index. Features at or after RollbackIndex are hidden from rebuilds
// without being deleted, the same way Suppressed hides a feature without
// removing it.
type FeatureTree struct {
	Features      []Feature
	RollbackIndex int  // index into Features; HasRollback false means "no limit"
	HasRollback   bool
}

// indexOf returns the slice index of the feature with id, or -1.
func (t *FeatureTree) indexOf(id uuid.UUID) int {
	for i, f := range t.Features {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// activeLimit returns the exclusive upper bound of feature indices a
// rebuild should consider: len(Features) with no rollback set, else
// RollbackIndex.
func (t *FeatureTree) activeLimit() int {
	if t.HasRollback {
		return t.RollbackIndex
	}
	return len(t.Features)
}

// IsActive reports whether the feature at index i is active: before the
// rollback point (if any) and not suppressed.
func (t *FeatureTree) IsActive(i int) bool {
	if i < 0 || i >= len(t.Features) {
		return false
	}
	return i < t.activeLimit() && !t.Features[i].Suppressed
}

// ActiveFeatures returns every active Feature in tree order.
func (t *FeatureTree) ActiveFeatures() []Feature {
	limit := t.activeLimit()
	out := make([]Feature, 0, limit)
	for i := 0; i < limit && i < len(t.Features); i++ {
		if !t.Features[i].Suppressed {
			out = append(out, t.Features[i])
		}
	}
	return out
}

// Clone returns a deep-enough copy of t (the
// Features slice and its header are copied; Operation's own pointee
// params are treated as immutable once attached to a Feature, so they
// are shared rather than deep-copied).
func (t *FeatureTree) Clone() *FeatureTree {
	out := &FeatureTree{
		RollbackIndex: t.RollbackIndex,
		HasRollback:   t.HasRollback,
	}
	out.Features = append([]Feature(nil), t.Features...)
	return out
}
