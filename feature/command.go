//-----------------------------------------------------------------------------
/*

Command / Event Dispatch

Command and Event implement §6.4's tagged enumerations: external drivers
(a UI, a script, the cmd/waffle CLI) interact with the engine through
Dispatch, which applies each command atomically and returns exactly one
Event. SaveProject/LoadProject/ExportStep name file-IO operations this
package cannot perform without importing project/render (which both
import feature); callers intercept those three kinds before calling
Dispatch and handle them directly against the project/render packages,
same engine underneath. Dispatch still accepts them so the enumeration
stays the single source of truth for the wire protocol; it reports them
unhandled here rather than silently doing nothing.

*/
//-----------------------------------------------------------------------------

package feature

import (
	"github.com/google/uuid"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/sketch"
)

// CommandKind enumerates §6.4's closed command set.
type CommandKind int

const (
	CmdAddFeature CommandKind = iota
	CmdEditFeature
	CmdDeleteFeature
	CmdSuppressFeature
	CmdSetRollbackIndex
	CmdUndo
	CmdRedo
	CmdSaveProject
	CmdLoadProject
	CmdExportStep
	CmdBeginSketch
	CmdAddSketchEntity
	CmdAddConstraint
	CmdFinishSketch
)

// Command is the single payload type carrying every command kind's
// parameters; only the fields relevant to Kind are read.
type Command struct {
	Kind CommandKind

	// AddFeature / EditFeature
	Name      string
	Operation Operation

	// EditFeature / DeleteFeature / SuppressFeature
	FeatureID uuid.UUID
	Suppress  bool

	// SetRollbackIndex
	RollbackIndex int
	ClearRollback bool

	// BeginSketch / AddSketchEntity / AddConstraint / FinishSketch all key
	// off SketchID, the session id the caller picks when it issues
	// BeginSketch.
	SketchID    uuid.UUID
	PlaneOrigin geom.Point3d
	PlaneNormal geom.Vec3
	UAxis       geom.Vec3

	EntityKind   sketch.EntityKind
	EntityPoints []uint32

	ConstraintKind    sketch.ConstraintKind
	ConstraintValue   float64
	ConstraintTargets []uint32

	Solved sketch.SolvedSketch

	// SaveProject / LoadProject / ExportStep
	Path string
}

// EventKind enumerates §6.4's closed event set.
type EventKind int

const (
	EvtModelUpdated EventKind = iota
	EvtSketchSolved
	EvtError
	EvtSaveReady
	EvtProjectLoaded
	EvtExportReady
	EvtUnhandled
)

// Event is the single response type Dispatch returns; exactly one per
// Command, matching §6.4's "each command is dispatched atomically and
// produces exactly one response".
type Event struct {
	Kind      EventKind
	FeatureID uuid.UUID
	Sketch    sketch.SolvedSketch
	Err       error
}

// Dispatch applies cmd and returns the single resulting Event.
func (e *Engine) Dispatch(cmd Command) Event {
	switch cmd.Kind {
	case CmdAddFeature:
		id := e.AddFeature(cmd.Name, cmd.Operation)
		return e.modelUpdatedOrError(id)

	case CmdEditFeature:
		if err := e.EditFeature(cmd.FeatureID, cmd.Operation); err != nil {
			return Event{Kind: EvtError, Err: err}
		}
		return e.modelUpdatedOrError(cmd.FeatureID)

	case CmdDeleteFeature:
		if err := e.RemoveFeature(cmd.FeatureID); err != nil {
			return Event{Kind: EvtError, Err: err}
		}
		return Event{Kind: EvtModelUpdated, FeatureID: cmd.FeatureID}

	case CmdSuppressFeature:
		if err := e.SetSuppressed(cmd.FeatureID, cmd.Suppress); err != nil {
			return Event{Kind: EvtError, Err: err}
		}
		return e.modelUpdatedOrError(cmd.FeatureID)

	case CmdSetRollbackIndex:
		if cmd.ClearRollback {
			e.ClearRollback()
		} else {
			e.SetRollback(cmd.RollbackIndex)
		}
		return Event{Kind: EvtModelUpdated}

	case CmdUndo:
		if err := e.Undo(); err != nil {
			return Event{Kind: EvtError, Err: err}
		}
		return Event{Kind: EvtModelUpdated}

	case CmdRedo:
		if err := e.Redo(); err != nil {
			return Event{Kind: EvtError, Err: err}
		}
		return Event{Kind: EvtModelUpdated}

	case CmdBeginSketch:
		e.sketches[cmd.SketchID] = sketch.Begin(cmd.PlaneOrigin, cmd.PlaneNormal, cmd.UAxis)
		return Event{Kind: EvtModelUpdated, FeatureID: cmd.SketchID}

	case CmdAddSketchEntity:
		sess, ok := e.sketches[cmd.SketchID]
		if !ok {
			return Event{Kind: EvtError, Err: errFeatureNotFound()}
		}
		sess.AddEntity(cmd.EntityKind, cmd.EntityPoints...)
		return Event{Kind: EvtModelUpdated, FeatureID: cmd.SketchID}

	case CmdAddConstraint:
		sess, ok := e.sketches[cmd.SketchID]
		if !ok {
			return Event{Kind: EvtError, Err: errFeatureNotFound()}
		}
		sess.AddConstraint(cmd.ConstraintKind, cmd.ConstraintValue, cmd.ConstraintTargets...)
		return Event{Kind: EvtModelUpdated, FeatureID: cmd.SketchID}

	case CmdFinishSketch:
		sess, ok := e.sketches[cmd.SketchID]
		if !ok {
			return Event{Kind: EvtError, Err: errFeatureNotFound()}
		}
		solved := sess.Finish(cmd.Solved)
		delete(e.sketches, cmd.SketchID)
		return Event{Kind: EvtSketchSolved, FeatureID: cmd.SketchID, Sketch: solved}

	case CmdSaveProject, CmdLoadProject, CmdExportStep:
		return Event{Kind: EvtUnhandled}

	default:
		return Event{Kind: EvtError, Err: errFeatureNotFound()}
	}
}

func (e *Engine) modelUpdatedOrError(id uuid.UUID) Event {
	if err, ok := e.Errors[id]; ok {
		return Event{Kind: EvtError, FeatureID: id, Err: err}
	}
	return Event{Kind: EvtModelUpdated, FeatureID: id}
}
