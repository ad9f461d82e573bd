//-----------------------------------------------------------------------------
/*

Feature Engine

Engine owns the FeatureTree, the live Kernel backing it, the
feature_results cache keyed by feature UUID, the per-feature captured
errors map, and the undo/redo stacks. Every mutation method is the
closed surface §4.8 names (AddFeature, EditFeature, RemoveFeature,
ReorderFeature, SetSuppressed, SetRollback); each but SetRollback records
its inverse on the undo stack and clears the redo stack.

*/
//-----------------------------------------------------------------------------

package feature

import (
	"github.com/google/uuid"
	"github.com/sequoia-hope/waffle-iron-sub001/internal/telemetry"
	"github.com/sequoia-hope/waffle-iron-sub001/kernel"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
	"github.com/sequoia-hope/waffle-iron-sub001/sketch"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Engine is the feature-tree rebuild engine: the sole mutation surface
// over a FeatureTree, driving a Kernel and keeping feature_results and
// per-feature errors current after every mutation.
type Engine struct {
	tree   *FeatureTree
	kernel *kernel.Kernel

	results map[uuid.UUID]*FeatureResult
	datums  map[uuid.UUID]DatumRecord

	// Errors is the per-feature captured-error map §7 describes: a
	// feature with an entry here produced no FeatureResult on the last
	// rebuild, but the tree itself is unaffected and downstream features
	// were still attempted.
	Errors map[uuid.UUID]error

	undo []undoEntry
	redo []undoEntry

	// sketches holds in-progress sketch sessions keyed by session id,
	// live between a BeginSketch and the matching FinishSketch command.
	sketches map[uuid.UUID]*sketch.Session

	// recordedSignatures holds, for every SelectByRole GeomRef the engine
	// has ever resolved, the TopoSignature of the entity it last resolved
	// to. A later rebuild where that role no longer exists (the feature
	// that assigned it was edited away) passes this signature into
	// naming.Resolve's BestEffort fallback, so "most similar to the
	// recorded one" has something recorded to compare against instead of
	// degrading to "first candidate of the right kind". Deliberately
	// survives RebuildFromScratch: the whole point is to remember what a
	// rebuild prior to this one resolved to.
	recordedSignatures map[signatureCacheKey]naming.TopoSignature
}

// New returns an Engine over an empty FeatureTree and a fresh Kernel.
func New() *Engine {
	return &Engine{
		tree:               &FeatureTree{},
		kernel:             kernel.New(),
		results:            make(map[uuid.UUID]*FeatureResult),
		datums:             make(map[uuid.UUID]DatumRecord),
		Errors:             make(map[uuid.UUID]error),
		sketches:           make(map[uuid.UUID]*sketch.Session),
		recordedSignatures: make(map[signatureCacheKey]naming.TopoSignature),
	}
}

// Tree exposes the current FeatureTree for read-only inspection (save,
// UI listing); callers must not mutate it directly.
func (e *Engine) Tree() *FeatureTree { return e.tree }

// Kernel exposes the live kernel for callers that need direct
// introspection (tessellation, STEP export) of the latest rebuild.
func (e *Engine) Kernel() *kernel.Kernel { return e.kernel }

// GetResult returns the cached FeatureResult for id, or nil if id has no
// result (never rebuilt, suppressed, rolled back, or its last rebuild
// failed and is recorded in Errors instead).
func (e *Engine) GetResult(id uuid.UUID) *FeatureResult { return e.results[id] }

// AddDatum registers a standalone, feature-less named reference datum
// accessible via Anchor::Datum.
func (e *Engine) AddDatum(id uuid.UUID, rec DatumRecord) { e.datums[id] = rec }

// AddFeature appends a new feature named name running op to the end of
// the tree, builds it against the current accumulated state (the only
// feature affected — §4.8's incremental-rebuild rule for add), and
// returns its assigned UUID.
func (e *Engine) AddFeature(name string, op Operation) uuid.UUID {
	id := uuid.New()
	e.tree.Features = append(e.tree.Features, Feature{ID: id, Name: name, Operation: op})
	idx := len(e.tree.Features) - 1
	e.rebuildFrom(idx)
	e.pushUndo(undoRemove{feature: e.tree.Features[idx], index: idx})
	telemetry.L().Info("feature: added", zap.String("name", name), zap.String("id", id.String()))
	return id
}

// EditFeature replaces id's operation with op and rebuilds from id's
// index onward, reusing every earlier feature's cached result.
func (e *Engine) EditFeature(id uuid.UUID, op Operation) error {
	idx := e.tree.indexOf(id)
	if idx < 0 {
		return errFeatureNotFound()
	}
	prior := e.tree.Features[idx].Operation
	e.tree.Features[idx].Operation = op
	e.rebuildFrom(idx)
	e.pushUndo(undoEdit{id: id, priorOp: prior})
	telemetry.L().Info("feature: edited", zap.String("id", id.String()))
	return nil
}

// RemoveFeature deletes id from the tree and rebuilds from its former
// index onward. The removed feature (including its references and UUID)
// is kept in the undo entry so Undo can restore it exactly.
func (e *Engine) RemoveFeature(id uuid.UUID) error {
	idx := e.tree.indexOf(id)
	if idx < 0 {
		return errFeatureNotFound()
	}
	removed := e.tree.Features[idx]
	e.tree.Features = append(e.tree.Features[:idx], e.tree.Features[idx+1:]...)
	if e.tree.HasRollback && e.tree.RollbackIndex > idx {
		e.tree.RollbackIndex--
	}
	delete(e.results, id)
	delete(e.Errors, id)
	e.rebuildFrom(idx)
	e.pushUndo(undoAdd{feature: removed, index: idx})
	telemetry.L().Info("feature: removed", zap.String("id", id.String()))
	return nil
}

// ReorderFeature moves id to position in the tree and rebuilds from
// min(old, new) position onward, since either direction can change what
// an intervening feature sees as "earlier".
func (e *Engine) ReorderFeature(id uuid.UUID, position int) error {
	idx := e.tree.indexOf(id)
	if idx < 0 {
		return errFeatureNotFound()
	}
	if position < 0 || position >= len(e.tree.Features) {
		return errInvalidPosition()
	}
	f := e.tree.Features[idx]
	e.tree.Features = append(e.tree.Features[:idx], e.tree.Features[idx+1:]...)
	rest := make([]Feature, 0, len(e.tree.Features)+1)
	rest = append(rest, e.tree.Features[:position]...)
	rest = append(rest, f)
	rest = append(rest, e.tree.Features[position:]...)
	e.tree.Features = rest

	earliest := idx
	if position < earliest {
		earliest = position
	}
	e.rebuildFrom(earliest)
	e.pushUndo(undoReorder{id: id, priorIndex: idx})
	telemetry.L().Info("feature: reordered", zap.String("id", id.String()), zap.Int("to", position))
	return nil
}

// SetSuppressed sets id's suppressed flag to flag and rebuilds from id's
// index onward.
func (e *Engine) SetSuppressed(id uuid.UUID, flag bool) error {
	idx := e.tree.indexOf(id)
	if idx < 0 {
		return errFeatureNotFound()
	}
	prior := e.tree.Features[idx].Suppressed
	e.tree.Features[idx].Suppressed = flag
	e.rebuildFrom(idx)
	e.pushUndo(undoSuppress{id: id, priorFlag: prior})
	return nil
}

// SetRollback sets the tree's rollback index to idx (features at or
// after idx are hidden from rebuilds without being deleted) and rebuilds
// from the earliest index whose activity changed. Per §4.8, set_rollback
// is intentionally not recorded on the undo stack: it is a view control,
// not a model edit.
func (e *Engine) SetRollback(idx int) {
	oldLimit := e.tree.activeLimit()
	e.tree.HasRollback = true
	e.tree.RollbackIndex = idx
	newLimit := e.tree.activeLimit()
	earliest := oldLimit
	if newLimit < earliest {
		earliest = newLimit
	}
	e.rebuildFrom(earliest)
}

// ClearRollback removes any rollback index, making every non-suppressed
// feature active again.
func (e *Engine) ClearRollback() {
	oldLimit := e.tree.activeLimit()
	e.tree.HasRollback = false
	e.rebuildFrom(oldLimit)
}

// RebuildFromScratch discards every cached result, every captured error
// and the kernel's entire EntityStore, then replays every active feature
// from the start. Any KernelSolidHandle a caller still holds becomes
// invalid the moment this returns.
func (e *Engine) RebuildFromScratch() {
	e.rebuildFromScratch()
	telemetry.L().Info("feature: full rebuild", zap.Int("errors", len(e.Errors)))
	if combined := e.combinedErrors(); combined != nil {
		telemetry.L().Warn("feature: full rebuild had soft failures", zap.Error(combined))
	}
}

// combinedErrors batches every feature's captured rebuild error into one
// multierr.Error for a single diagnostic log line, without discarding any
// individual feature's entry from e.Errors (§7's per-feature error map is
// still the source of truth callers inspect).
func (e *Engine) combinedErrors() error {
	var combined error
	for _, f := range e.tree.Features {
		if err, ok := e.Errors[f.ID]; ok {
			combined = multierr.Append(combined, err)
		}
	}
	return combined
}
