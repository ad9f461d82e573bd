//-----------------------------------------------------------------------------
/*

Operation Results

OpResult is the uniform value every modeling operation in this package
returns alongside its error: not just the solid it built, but the
Provenance a feature needs to keep GeomRefs into that solid resolvable
after a future rebuild. OpResult carries no diagnostics; the Diagnostics
type declared here is filled in by the feature engine's FeatureResult.

*/
//-----------------------------------------------------------------------------

package ops

import (
	"github.com/sequoia-hope/waffle-iron-sub001/brep"
	"github.com/sequoia-hope/waffle-iron-sub001/naming"
)

// RewriteReason explains why an entity a prior feature produced no
// longer appears unchanged in this operation's output.
type RewriteReason int

const (
	RewriteFilletReplaced RewriteReason = iota
	RewriteChamferReplaced
	RewriteBooleanConsumed
	RewriteBooleanSplit
)

func (r RewriteReason) String() string {
	switch r {
	case RewriteFilletReplaced:
		return "FilletReplaced"
	case RewriteChamferReplaced:
		return "ChamferReplaced"
	case RewriteBooleanConsumed:
		return "BooleanConsumed"
	case RewriteBooleanSplit:
		return "BooleanSplit"
	default:
		return "Unknown"
	}
}

// Rewrite records that the face From (produced by some earlier feature)
// was replaced by zero or more faces To, for Reason. A GeomRef anchored
// on From's feature whose selector still names From's role must instead
// resolve against To; an empty To means From's role no longer exists at
// all (e.g. the face was entirely consumed by a boolean union).
type Rewrite struct {
	From   brep.FaceId
	To     []brep.FaceId
	Reason RewriteReason
}

// EntityRecord pairs one face of an operation's output with the role
// assigned to it at construction time.
type EntityRecord struct {
	Face brep.FaceId
	Role naming.Role
}

// BodyOutput is one named output body of an operation's result: the
// solid itself, plus the role assignment for every one of its faces that
// carries semantic meaning.
type BodyOutput struct {
	Key   naming.OutputKey
	Solid brep.SolidId
	Faces []EntityRecord
}

// Diagnostics carries non-fatal information about an operation's
// execution that is worth keeping with the result without failing the
// feature: degraded tolerance, a resolution that fell back to
// best-effort, anything a user might want surfaced.
type Diagnostics struct {
	Warnings []string
}

// Provenance is everything a feature must remember about one operation's
// execution to keep downstream GeomRefs resolvable: the bodies it
// produced, and the rewrites it applied to bodies consumed from earlier
// features.
type Provenance struct {
	Bodies   []BodyOutput
	Rewrites []Rewrite
}

// RoleAssignments flattens every BodyOutput's EntityRecords for the body
// identified by key into the (id, role) pairs naming.Resolve expects.
func (p Provenance) RoleAssignments(key naming.OutputKey) []naming.RoleAssignment {
	for _, b := range p.Bodies {
		if b.Key == key {
			out := make([]naming.RoleAssignment, len(b.Faces))
			for i, r := range b.Faces {
				out[i] = naming.RoleAssignment{ID: encodeFaceID(r.Face), Role: r.Role}
			}
			return out
		}
	}
	return nil
}

// encodeFaceID packs a brep.FaceId into the opaque naming.KernelID space.
// It only needs to be stable within a single rebuild (naming.KernelID is
// never persisted), so a pointer-free value encoding via the arena's
// generation-tagged identity, taken through Face's own bookkeeping, is
// enough; the kernel façade owns the canonical encoding once it exists,
// this is the provisional one used directly by ops' own tests and by
// callers that have not yet gone through a Kernel.
func encodeFaceID(id brep.FaceId) naming.KernelID {
	return naming.KernelID(brep.EncodeKey(id))
}

// OpResult is the value every operation constructor in this package
// returns on success: the primary solid plus full Provenance.
type OpResult struct {
	Solid      brep.SolidId
	Provenance Provenance
}

// mainBody builds the single-body Provenance nearly every constructive
// operation (extrude, revolve, loft, sweep) produces.
func mainBody(solid brep.SolidId, faces []EntityRecord) OpResult {
	return OpResult{
		Solid: solid,
		Provenance: Provenance{
			Bodies: []BodyOutput{{Key: naming.Main, Solid: solid, Faces: faces}},
		},
	}
}
