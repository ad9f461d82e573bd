//-----------------------------------------------------------------------------
/*

Undo / Redo

Per §4.8 and the "Undo stack as inverse commands" design note: the
engine never snapshots full state. Each mutation (save for SetRollback,
a view control rather than an edit) pushes the smallest inverse command
that undoes it. Undo pops and applies one; applying any undo/redo entry
returns its own inverse, which is pushed onto the opposite stack, so
Undo-then-Redo is always available and Redo-then-Undo is symmetric.
Any freshly recorded command clears the redo stack.

*/
//-----------------------------------------------------------------------------

package feature

import "github.com/google/uuid"

// undoEntry is the closed set of inverse commands the undo/redo stacks
// hold, one per mutation kind except SetRollback.
type undoEntry interface{ isUndoEntry() }

// undoAdd reverses a RemoveFeature: re-insert feature at index.
type undoAdd struct {
	feature Feature
	index   int
}

// undoRemove reverses an AddFeature: remove the feature with this id.
type undoRemove struct {
	feature Feature
	index   int
}

// undoEdit reverses an EditFeature: set id's operation back to priorOp.
type undoEdit struct {
	id      uuid.UUID
	priorOp Operation
}

// undoSuppress reverses a SetSuppressed: set id's flag back to priorFlag.
type undoSuppress struct {
	id        uuid.UUID
	priorFlag bool
}

// undoReorder reverses a ReorderFeature: move id back to priorIndex.
type undoReorder struct {
	id         uuid.UUID
	priorIndex int
}

func (undoAdd) isUndoEntry()      {}
func (undoRemove) isUndoEntry()   {}
func (undoEdit) isUndoEntry()     {}
func (undoSuppress) isUndoEntry() {}
func (undoReorder) isUndoEntry()  {}

// pushUndo records entry as the next undoable action and clears the redo
// stack, per "any recorded command clears the redo stack".
func (e *Engine) pushUndo(entry undoEntry) {
	e.undo = append(e.undo, entry)
	e.redo = nil
}

// Undo reverses the most recent undoable mutation, moving its inverse
// onto the redo stack.
func (e *Engine) Undo() error {
	if len(e.undo) == 0 {
		return errNothingToUndo()
	}
	n := len(e.undo) - 1
	entry := e.undo[n]
	e.undo = e.undo[:n]
	rev := e.applyInverse(entry)
	e.redo = append(e.redo, rev)
	return nil
}

// Redo re-applies the most recently undone mutation, moving its inverse
// back onto the undo stack.
func (e *Engine) Redo() error {
	if len(e.redo) == 0 {
		return errNothingToRedo()
	}
	n := len(e.redo) - 1
	entry := e.redo[n]
	e.redo = e.redo[:n]
	rev := e.applyInverse(entry)
	e.undo = append(e.undo, rev)
	return nil
}

// applyInverse performs the raw structural edit entry names, rebuilds
// from the earliest affected index, and returns the entry that would
// reverse what it just did (used to populate the opposite stack).
func (e *Engine) applyInverse(entry undoEntry) undoEntry {
	switch v := entry.(type) {
	case undoAdd:
		idx := v.index
		if idx > len(e.tree.Features) {
			idx = len(e.tree.Features)
		}
		features := make([]Feature, 0, len(e.tree.Features)+1)
		features = append(features, e.tree.Features[:idx]...)
		features = append(features, v.feature)
		features = append(features, e.tree.Features[idx:]...)
		e.tree.Features = features
		if e.tree.HasRollback && e.tree.RollbackIndex >= idx {
			e.tree.RollbackIndex++
		}
		e.rebuildFrom(idx)
		return undoRemove{feature: v.feature, index: idx}

	case undoRemove:
		idx := e.tree.indexOf(v.feature.ID)
		if idx < 0 {
			idx = v.index
		}
		e.tree.Features = append(e.tree.Features[:idx], e.tree.Features[idx+1:]...)
		if e.tree.HasRollback && e.tree.RollbackIndex > idx {
			e.tree.RollbackIndex--
		}
		delete(e.results, v.feature.ID)
		delete(e.Errors, v.feature.ID)
		e.rebuildFrom(idx)
		return undoAdd{feature: v.feature, index: idx}

	case undoEdit:
		idx := e.tree.indexOf(v.id)
		cur := e.tree.Features[idx].Operation
		e.tree.Features[idx].Operation = v.priorOp
		e.rebuildFrom(idx)
		return undoEdit{id: v.id, priorOp: cur}

	case undoSuppress:
		idx := e.tree.indexOf(v.id)
		cur := e.tree.Features[idx].Suppressed
		e.tree.Features[idx].Suppressed = v.priorFlag
		e.rebuildFrom(idx)
		return undoSuppress{id: v.id, priorFlag: cur}

	case undoReorder:
		idx := e.tree.indexOf(v.id)
		cur := idx
		target := v.priorIndex
		f := e.tree.Features[idx]
		e.tree.Features = append(e.tree.Features[:idx], e.tree.Features[idx+1:]...)
		rest := make([]Feature, 0, len(e.tree.Features)+1)
		rest = append(rest, e.tree.Features[:target]...)
		rest = append(rest, f)
		rest = append(rest, e.tree.Features[target:]...)
		e.tree.Features = rest
		earliest := idx
		if target < earliest {
			earliest = target
		}
		e.rebuildFrom(earliest)
		return undoReorder{id: v.id, priorIndex: cur}

	default:
		return nil
	}
}
