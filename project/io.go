//-----------------------------------------------------------------------------
/*

Save / Load

Save and Load round-trip a Document through JSON (encoding/json, per
SPEC_FULL.md's ambient-stack note: the schema is a half-dozen struct
fields plus an already-JSON-friendly FeatureTree, not enough surface to
justify pulling a configuration-language evaluator like cuelang.org/go
into the module for it). Load never hands back a partially-migrated
Document: it decodes into a generic map first, checks format and
version, walks the migration chain on that map, then re-decodes the
migrated map into the current Document shape in one shot.

*/
//-----------------------------------------------------------------------------

package project

import (
	"encoding/json"
	"os"

	"github.com/sequoia-hope/waffle-iron-sub001/feature"
	"github.com/sequoia-hope/waffle-iron-sub001/internal/telemetry"
	"go.uber.org/zap"
)

// Save renders doc as indented JSON.
func Save(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// SaveFile writes doc to path.
func SaveFile(path string, doc Document) error {
	data, err := Save(doc)
	if err != nil {
		return err
	}
	telemetry.L().Info("project: saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return os.WriteFile(path, data, 0o644)
}

// Load parses data into a Document, migrating it to CurrentVersion first
// if it was written by an older build.
func Load(data []byte) (Document, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, &LoadError{Kind: ParseError, Wrapped: err}
	}

	format, _ := raw["format"].(string)
	if format != CurrentFormat {
		return Document{}, &LoadError{Kind: UnknownFormat}
	}

	versionF, _ := raw["version"].(float64)
	version := int(versionF)
	if version > CurrentVersion {
		return Document{}, &LoadError{Kind: FutureVersion, Version: version}
	}

	migrated, err := migrateChain(raw, version)
	if err != nil {
		return Document{}, err
	}

	migratedBytes, err := json.Marshal(migrated)
	if err != nil {
		return Document{}, &LoadError{Kind: ParseError, Wrapped: err}
	}
	var doc Document
	if err := json.Unmarshal(migratedBytes, &doc); err != nil {
		return Document{}, &LoadError{Kind: ParseError, Wrapped: err}
	}
	telemetry.L().Info("project: loaded", zap.String("format", doc.Format), zap.Int("version", doc.Version))
	return doc, nil
}

// LoadFile reads and parses path.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &LoadError{Kind: ParseError, Wrapped: err}
	}
	return Load(data)
}

// LoadTree is a convenience combining LoadFile with Document.ToTree for
// callers that only want the FeatureTree.
func LoadTree(path string) (*feature.FeatureTree, Metadata, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, Metadata{}, err
	}
	return doc.ToTree(), doc.Project, nil
}
