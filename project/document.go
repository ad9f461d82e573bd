//-----------------------------------------------------------------------------
/*

Project Document

Document is the textual, versioned file format §6.2 specifies: a
constant format identifier, an integer version, project metadata, and
the FeatureTree itself (UUIDs, names, operations with full parameter
payloads, suppressed flags, GeomRef references, and the rollback index).
Kernel handles, kernel ids, feature results, error maps, tessellated
meshes and undo/redo stacks are never part of it — everything the engine
reconstructs from a fresh rebuild stays out.

*/
//-----------------------------------------------------------------------------

package project

import "github.com/sequoia-hope/waffle-iron-sub001/feature"

// CurrentFormat is the format identifier Load requires an exact match
// against.
const CurrentFormat = "waffle-cad-project"

// CurrentVersion is the document version this build writes and reads
// without migration.
const CurrentVersion = 1

// Metadata is the document's project-level bookkeeping.
type Metadata struct {
	Name              string `json:"name"`
	CreatedTimestamp  int64  `json:"created_timestamp"`
	ModifiedTimestamp int64  `json:"modified_timestamp"`
}

// FeaturesPayload is the serialized shape of a feature.FeatureTree.
type FeaturesPayload struct {
	Features      []feature.Feature `json:"features"`
	HasRollback   bool              `json:"has_rollback"`
	RollbackIndex int               `json:"rollback_index"`
}

// Document is the complete on-disk shape of one project file.
type Document struct {
	Format   string          `json:"format"`
	Version  int             `json:"version"`
	Project  Metadata        `json:"project"`
	Features FeaturesPayload `json:"features"`
}

// ToTree reconstructs the FeatureTree d.Features describes.
func (d Document) ToTree() *feature.FeatureTree {
	return &feature.FeatureTree{
		Features:      append([]feature.Feature(nil), d.Features.Features...),
		HasRollback:   d.Features.HasRollback,
		RollbackIndex: d.Features.RollbackIndex,
	}
}

// FromTree builds a current-version Document wrapping tree under name,
// with the given created/modified Unix timestamps.
func FromTree(name string, tree *feature.FeatureTree, created, modified int64) Document {
	return Document{
		Format:  CurrentFormat,
		Version: CurrentVersion,
		Project: Metadata{Name: name, CreatedTimestamp: created, ModifiedTimestamp: modified},
		Features: FeaturesPayload{
			Features:      append([]feature.Feature(nil), tree.Features...),
			HasRollback:   tree.HasRollback,
			RollbackIndex: tree.RollbackIndex,
		},
	}
}
