//-----------------------------------------------------------------------------
/*

Operation

Operation is the closed tagged variant spec.md §3.3 names: each Feature
carries exactly one, naming the modeling step and its typed parameters.
Sketch never touches the kernel; every other variant resolves its
GeomRef/Anchor inputs against the accumulated feature_results (§4.8
"Downstream dispatch") before calling the kernel façade.

*/
//-----------------------------------------------------------------------------

package feature

import (
	"github.com/google/uuid"
	"github.com/sequoia-hope/waffle-iron-sub001/geom"
	"github.com/sequoia-hope/waffle-iron-sub001/kernel"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
	"github.com/sequoia-hope/waffle-iron-sub001/sketch"
)

// OperationKind distinguishes which of the seven variants an Operation
// carries.
type OperationKind int

const (
	OpSketch OperationKind = iota
	OpExtrude
	OpRevolve
	OpFillet
	OpChamfer
	OpShell
	OpBoolean
)

func (k OperationKind) String() string {
	switch k {
	case OpSketch:
		return "Sketch"
	case OpExtrude:
		return "Extrude"
	case OpRevolve:
		return "Revolve"
	case OpFillet:
		return "Fillet"
	case OpChamfer:
		return "Chamfer"
	case OpShell:
		return "Shell"
	case OpBoolean:
		return "BooleanCombine"
	default:
		return "Unknown"
	}
}

// SketchParams wraps an already-solved sketch (the external solver's
// output, per §6.1) plus the plane it was solved on, as the Sketch
// operation's sole parameter.
type SketchParams struct {
	PlaneOrigin geom.Point3d
	PlaneNormal geom.Vec3
	UAxis       geom.Vec3
	Solved      sketch.SolvedSketch
}

// ExtrudeParams extrudes profile ProfileIndex of the sketch feature named
// by Sketch along Direction by Distance.
type ExtrudeParams struct {
	Sketch       uuid.UUID
	ProfileIndex int
	Direction    geom.Vec3
	Distance     float64
}

// RevolveParams revolves profile ProfileIndex of the sketch feature named
// by Sketch around the given axis by Angle radians, in Segments steps.
type RevolveParams struct {
	Sketch       uuid.UUID
	ProfileIndex int
	AxisOrigin   geom.Point3d
	AxisDir      geom.Vec3
	Angle        float64
	Segments     int
}

// FilletParams rounds every edge Edges resolves to on Body by Radius,
// chained in order (kernel.FilletEdges' contract). Body names which
// feature output the edges (and the solid they sit on) come from; Edges
// themselves are Selector::Signature/Query GeomRefs, since Role carries
// no edge variants.
type FilletParams struct {
	Body     naming.Anchor
	Edges    []naming.GeomRef
	Radius   float64
	Segments int
}

// ChamferParams bevels every edge Edges resolves to on Body by Distance.
type ChamferParams struct {
	Body     naming.Anchor
	Edges    []naming.GeomRef
	Distance float64
}

// ShellParams hollows Body to Thickness, opening it at every face
// OpenFaces resolves to.
type ShellParams struct {
	Body      naming.Anchor
	OpenFaces []naming.GeomRef
	Thickness float64
}

// BooleanParams combines the outputs A and B name, per Kind.
type BooleanParams struct {
	A, B naming.Anchor
	Kind kernel.BooleanKind
}

// Operation is the tagged variant a Feature carries; exactly one of the
// pointer fields matching Kind is non-nil.
type Operation struct {
	Kind OperationKind

	Sketch  *SketchParams
	Extrude *ExtrudeParams
	Revolve *RevolveParams
	Fillet  *FilletParams
	Chamfer *ChamferParams
	Shell   *ShellParams
	Boolean *BooleanParams
}

// Sketch builds a Sketch operation.
func SketchOp(p SketchParams) Operation { return Operation{Kind: OpSketch, Sketch: &p} }

// Extrude builds an Extrude operation.
func ExtrudeOp(p ExtrudeParams) Operation { return Operation{Kind: OpExtrude, Extrude: &p} }

// Revolve builds a Revolve operation.
func RevolveOp(p RevolveParams) Operation { return Operation{Kind: OpRevolve, Revolve: &p} }

// Fillet builds a Fillet operation.
func FilletOp(p FilletParams) Operation { return Operation{Kind: OpFillet, Fillet: &p} }

// Chamfer builds a Chamfer operation.
func ChamferOp(p ChamferParams) Operation { return Operation{Kind: OpChamfer, Chamfer: &p} }

// Shell builds a Shell operation.
func ShellOp(p ShellParams) Operation { return Operation{Kind: OpShell, Shell: &p} }

// Boolean builds a BooleanCombine operation.
func BooleanOp(p BooleanParams) Operation { return Operation{Kind: OpBoolean, Boolean: &p} }
