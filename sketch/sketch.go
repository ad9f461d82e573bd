//-----------------------------------------------------------------------------
/*

Sketch Solver Contract

This package carries only the consumed side of the 2D sketch constraint
solver spec.md §6.1 places out of scope: the SolvedSketch shape the
feature engine's Sketch operation publishes as its output, and a
Session that represents an in-progress sketch edit (BeginSketch,
AddSketchEntity, AddConstraint, FinishSketch from §6.4's command
enumeration). The constraint solver itself — turning entities and
constraints into solved positions — remains an external collaborator;
Session.Finish here accepts an already-solved result rather than running
one, matching "sketch + constraints -> solved point positions + closed
profiles" as a black box.

*/
//-----------------------------------------------------------------------------

package sketch

import "github.com/sequoia-hope/waffle-iron-sub001/geom"

// SolveStatus reports whether a sketch's constraint system solved fully,
// partially, or not at all.
type SolveStatus int

const (
	Solved SolveStatus = iota
	UnderConstrained
	OverConstrained
	Inconsistent
)

// ClosedProfile is one closed wire in a solved sketch, given as indices
// into SolvedSketch.Positions in traversal order.
type ClosedProfile struct {
	PointIDs []uint32
}

// SolvedSketch is the external solver's output: solved 2D positions for
// every sketch entity point, plus the closed profiles they form.
type SolvedSketch struct {
	Positions map[uint32]geom.Point2d
	Profiles  []ClosedProfile
	Status    SolveStatus
}

// Points returns profile i's vertex positions in traversal order, the
// shape ops.ExtrudeProfile/ops.RevolveProfile consume once placed into
// 3D by the sketch plane transform.
func (s SolvedSketch) Points(profileIndex int) []geom.Point2d {
	if profileIndex < 0 || profileIndex >= len(s.Profiles) {
		return nil
	}
	prof := s.Profiles[profileIndex]
	pts := make([]geom.Point2d, len(prof.PointIDs))
	for i, id := range prof.PointIDs {
		pts[i] = s.Positions[id]
	}
	return pts
}

// EntityKind distinguishes the sketch primitives AddSketchEntity can add.
type EntityKind int

const (
	EntityPoint EntityKind = iota
	EntityLine
	EntityCircle
	EntityArc
)

// Entity is one unsolved sketch primitive, identified by an engine-assigned
// id and referring to its endpoint/point ids rather than owning geometry
// directly (the solver owns position, not this session).
type Entity struct {
	ID     uint32
	Kind   EntityKind
	Points []uint32
}

// ConstraintKind is the closed set of constraint types a sketch session can
// record; solving them is the external collaborator's job.
type ConstraintKind int

const (
	ConstraintCoincident ConstraintKind = iota
	ConstraintHorizontal
	ConstraintVertical
	ConstraintParallel
	ConstraintPerpendicular
	ConstraintEqual
	ConstraintDistance
	ConstraintAngle
	ConstraintRadius
)

// Constraint is one recorded constraint, naming the entities/points it
// applies to and, for dimensional constraints, a numeric value.
type Constraint struct {
	Kind    ConstraintKind
	Targets []uint32
	Value   float64
}

// Session accumulates entities and constraints for one in-progress sketch
// edit, driven by BeginSketch/AddSketchEntity/AddConstraint/FinishSketch.
// It never solves anything itself: FinishSketch is handed the already
// solved result by the caller (the out-of-scope solver), and simply
// freezes it as the session's output.
type Session struct {
	PlaneOrigin geom.Point3d
	PlaneNormal geom.Vec3
	UAxis       geom.Vec3

	entities    []Entity
	constraints []Constraint
	nextID      uint32
}

// Begin starts a new sketch session on the plane described by origin,
// normal and uAxis (uAxis must be perpendicular to normal; the caller is
// responsible for that, matching the plane contract geom.Plane assumes
// elsewhere in this module).
func Begin(origin geom.Point3d, normal, uAxis geom.Vec3) *Session {
	return &Session{PlaneOrigin: origin, PlaneNormal: normal, UAxis: uAxis}
}

// AddEntity appends a new sketch primitive of kind referencing the given
// point ids, returning the id assigned to it.
func (s *Session) AddEntity(kind EntityKind, points ...uint32) uint32 {
	s.nextID++
	s.entities = append(s.entities, Entity{ID: s.nextID, Kind: kind, Points: points})
	return s.nextID
}

// AddConstraint appends a constraint to the session.
func (s *Session) AddConstraint(kind ConstraintKind, value float64, targets ...uint32) {
	s.constraints = append(s.constraints, Constraint{Kind: kind, Targets: targets, Value: value})
}

// Entities returns every entity recorded so far.
func (s *Session) Entities() []Entity { return append([]Entity(nil), s.entities...) }

// Constraints returns every constraint recorded so far.
func (s *Session) Constraints() []Constraint { return append([]Constraint(nil), s.constraints...) }

// Finish freezes solved as this session's published output. The solver
// producing solved is the external collaborator spec.md §6.1 places out
// of scope; Session only carries the contract, not the math.
func (s *Session) Finish(solved SolvedSketch) SolvedSketch {
	return solved
}
