//-----------------------------------------------------------------------------
/*

GeomRef

GeomRef is the sole persistent entity identifier in the system: it is
built from an Anchor (which feature output to look in) and a Selector
(how to find the entity within that output), never from a kernel id.
Kernel ids and handles are opaque, transient, and never serialized; any
reference that must survive a save/load round trip or a parametric
rebuild speaks GeomRef.

*/
//-----------------------------------------------------------------------------

package naming

import "github.com/google/uuid"

// ResolvePolicy controls what happens when a GeomRef's Selector cannot be
// uniquely resolved against the current rebuild's results.
type ResolvePolicy int

const (
	// Strict fails the rebuild if the reference cannot be uniquely resolved.
	Strict ResolvePolicy = iota
	// BestEffort accepts the closest match and emits a warning instead of
	// failing outright.
	BestEffort
)

// OutputKeyKind distinguishes the four shapes an OutputKey can take.
type OutputKeyKind int

const (
	OutputMain OutputKeyKind = iota
	OutputBody
	OutputProfile
	OutputDatum
)

// OutputKey identifies which output of a feature's OpResult to look in.
type OutputKey struct {
	Kind  OutputKeyKind
	Index int    // Body{i} / Profile{i}
	Name  string // Datum{name}
}

// Main is the primary solid body output every single-body operation
// produces.
var Main = OutputKey{Kind: OutputMain}

// Body returns the OutputKey for the i-th secondary body (e.g. from a
// boolean split).
func Body(i int) OutputKey { return OutputKey{Kind: OutputBody, Index: i} }

// Profile returns the OutputKey for the i-th sketch profile.
func Profile(i int) OutputKey { return OutputKey{Kind: OutputProfile, Index: i} }

// Datum returns the OutputKey for a named datum output.
func Datum(name string) OutputKey { return OutputKey{Kind: OutputDatum, Name: name} }

// AnchorKind distinguishes a reference into a feature's output from a
// reference to a standalone datum.
type AnchorKind int

const (
	AnchorFeatureOutput AnchorKind = iota
	AnchorDatum
)

// Anchor identifies which feature output (or datum) contains the target
// entity.
type Anchor struct {
	Kind      AnchorKind
	FeatureID uuid.UUID // AnchorFeatureOutput
	OutputKey OutputKey // AnchorFeatureOutput
	DatumID   uuid.UUID // AnchorDatum
}

// FeatureOutput builds an Anchor pointing at outputKey of featureID's
// result.
func FeatureOutput(featureID uuid.UUID, outputKey OutputKey) Anchor {
	return Anchor{Kind: AnchorFeatureOutput, FeatureID: featureID, OutputKey: outputKey}
}

// DatumAnchor builds an Anchor pointing at a standalone datum.
func DatumAnchor(datumID uuid.UUID) Anchor {
	return Anchor{Kind: AnchorDatum, DatumID: datumID}
}

// SelectorKind distinguishes the three ways to pick an entity out of an
// anchor's output.
type SelectorKind int

const (
	SelectByRole SelectorKind = iota
	SelectBySignature
	SelectByQuery
)

// Selector names how to find a specific entity within an anchor's output.
type Selector struct {
	Kind SelectorKind

	Role      Role          // SelectByRole
	RoleIndex int           // SelectByRole: the index-th entity with Role
	Signature TopoSignature // SelectBySignature
	Query     TopoQuery     // SelectByQuery
}

// ByRole builds a Selector matching the index-th entity assigned role.
func ByRole(role Role, index int) Selector {
	return Selector{Kind: SelectByRole, Role: role, RoleIndex: index}
}

// BySignature builds a Selector matching the unique entity whose signature
// equals sig within tolerance.
func BySignature(sig TopoSignature) Selector {
	return Selector{Kind: SelectBySignature, Signature: sig}
}

// ByQuery builds a Selector matching entities against an ad-hoc geometric
// query.
func ByQuery(q TopoQuery) Selector {
	return Selector{Kind: SelectByQuery, Query: q}
}

// GeomRef is a persistent, rebuild-surviving reference to a topological
// entity: what kind of entity, which feature output it lives in, how to
// find it there, and what to do if that lookup is ambiguous.
type GeomRef struct {
	Kind     TopoKind
	Anchor   Anchor
	Selector Selector
	Policy   ResolvePolicy
}
