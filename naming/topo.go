//-----------------------------------------------------------------------------
/*

Topological Kind, Signature and Query

TopoKind names what kind of entity a GeomRef points at. TopoSignature is
a best-effort geometric fingerprint of an entity, populated field by
field as the caller has data for it; an unset field never participates
in matching or scoring. TopoQuery lets a caller select an entity by
geometric predicate instead of by role, for ad-hoc references that have
no natural semantic name.

*/
//-----------------------------------------------------------------------------

package naming

// TopoKind distinguishes the five kinds of topological entity a GeomRef
// can reference.
type TopoKind int

const (
	KindVertex TopoKind = iota
	KindEdge
	KindFace
	KindShell
	KindSolid
)

func (k TopoKind) String() string {
	switch k {
	case KindVertex:
		return "Vertex"
	case KindEdge:
		return "Edge"
	case KindFace:
		return "Face"
	case KindShell:
		return "Shell"
	case KindSolid:
		return "Solid"
	default:
		return "Unknown"
	}
}

// TopoSignature is a best-effort bag of geometric descriptors for one
// topological entity. Every field is optional; Resolve only compares the
// fields both the recorded and the candidate signature populate.
type TopoSignature struct {
	SurfaceType   string // "" means unset
	HasSurfaceType bool
	Area          float64
	HasArea       bool
	Centroid      [3]float64
	HasCentroid   bool
	Normal        [3]float64
	HasNormal     bool
	BBox          [6]float64 // minX,minY,minZ,maxX,maxY,maxZ
	HasBBox       bool
	AdjacencyHash uint64
	HasAdjacency  bool
	Length        float64
	HasLength     bool
}

// EmptySignature returns a TopoSignature with every field unset.
func EmptySignature() TopoSignature {
	return TopoSignature{}
}

// Filter is one predicate in a TopoQuery.
type Filter struct {
	Kind FilterKind

	// SurfaceType
	SurfaceType string

	// NormalDirection
	Direction Direction3
	Tolerance float64 // radians

	// NearPoint
	Point    Direction3
	Distance float64

	// AreaRange
	MinArea, MaxArea float64
}

// Direction3 is a plain [x,y,z] triple, used instead of geom.Vec3 so this
// package does not need to import geom for what is really just a query
// parameter.
type Direction3 [3]float64

// FilterKind enumerates the supported TopoQuery predicates.
type FilterKind int

const (
	FilterSurfaceType FilterKind = iota
	FilterNormalDirection
	FilterNearPoint
	FilterAreaRange
)

// TieBreakKind enumerates the supported tie-break strategies for a
// TopoQuery that matches more than one candidate.
type TieBreakKind int

const (
	TieBreakLargestArea TieBreakKind = iota
	TieBreakNearestTo
	TieBreakSmallestIndex
)

// TieBreak configures how TopoQuery resolves ties; Point is only used by
// TieBreakNearestTo.
type TieBreak struct {
	Kind  TieBreakKind
	Point Direction3
}

// TopoQuery selects an entity by filtering candidates and breaking ties.
type TopoQuery struct {
	Filters  []Filter
	TieBreak TieBreak
}
