/*

STEP export

ToSTEP/ToSTEPWithOptions drive the teacher's step.Writer with a
pre-tessellated triangle mesh (produced by mesh.Tessellate from a
brep.EntityStore solid, not by an implicit-surface renderer). The wire
format itself is unrelated to how the triangles were produced, so the
teacher's AP214 writer and entity converter (step/writer.go,
step/converter.go, step/entities.go) are reused unchanged.

*/

package render

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"

	"github.com/sequoia-hope/waffle-iron-sub001/internal/telemetry"
	"github.com/sequoia-hope/waffle-iron-sub001/step"
	"go.uber.org/zap"
)

// STEPOptions configures STEP export.
type STEPOptions struct {
	Author       string // Author name
	Organization string // Organization name
	ProductName  string // Product name (defaults to filename)
}

// ToSTEP writes a pre-computed triangle mesh to a STEP AP214 file.
func ToSTEP(path string, mesh []*sdf.Triangle3) error {
	return ToSTEPWithOptions(path, mesh, STEPOptions{})
}

// ToSTEPWithOptions writes mesh to path as a STEP AP214 file, applying
// opts for author/organization/product-name metadata.
func ToSTEPWithOptions(path string, mesh []*sdf.Triangle3, opts STEPOptions) error {
	writer, err := step.NewWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create STEP writer: %w", err)
	}
	defer writer.Close()

	if opts.Author != "" || opts.Organization != "" {
		author := opts.Author
		if author == "" {
			author = "Unknown"
		}
		org := opts.Organization
		if org == "" {
			org = "Unknown"
		}
		writer.SetAuthor(author, org)
	}

	productName := opts.ProductName
	if productName == "" {
		productName = "waffle_model"
	}

	if err := writer.WriteMesh(mesh, productName); err != nil {
		return fmt.Errorf("failed to write mesh: %w", err)
	}

	telemetry.L().Info("render: STEP export complete", zap.String("path", path), zap.Int("triangles", len(mesh)))
	return nil
}

// SaveSTEP is an alias for ToSTEP kept for callers that prefer the
// "Save" verb used by project.Save/project.Load.
func SaveSTEP(path string, mesh []*sdf.Triangle3) error {
	return ToSTEP(path, mesh)
}

// SaveSTEPWithOptions is an alias for ToSTEPWithOptions.
func SaveSTEPWithOptions(path string, mesh []*sdf.Triangle3, opts STEPOptions) error {
	return ToSTEPWithOptions(path, mesh, opts)
}
