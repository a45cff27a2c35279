package storage

import (
	"fmt"
	"strings"

	"github.com/uetools/propscan/entity"
)

// AssetFilter narrows a QueryAssets call. Zero fields do not filter.
type AssetFilter struct {
	// Kinds keeps only the listed asset kinds.
	Kinds []entity.AssetKind

	// Source keeps scans from one source.
	Source string

	// PathPrefix keeps assets whose dump path starts with the prefix,
	// e.g. "Game/Environment/".
	PathPrefix string

	// UsesTexture keeps materials binding exactly this texture object
	// path.
	UsesTexture string

	// UsesMaterial keeps static meshes with a slot referencing exactly
	// this material object path.
	UsesMaterial string

	// Limit caps the number of returned scans; zero means no cap.
	Limit uint64
}

const assetColumns = "id, source, path, kind, parent, materials, texture_params, texture_paths, texture_maps, blend_mode, two_sided, opacity_mask_clip, warnings, scanned_at"

// buildAssetQuery renders a filter into a parameterized SELECT.
func buildAssetQuery(f AssetFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	if f.Source != "" {
		where = append(where, "source = ?")
		args = append(args, f.Source)
	}

	if len(f.Kinds) > 0 {
		marks := make([]string, len(f.Kinds))
		for i, k := range f.Kinds {
			marks[i] = "?"
			args = append(args, k.String())
		}
		where = append(where, fmt.Sprintf("kind IN (%s)", strings.Join(marks, ", ")))
	}

	if f.PathPrefix != "" {
		where = append(where, "path LIKE ?")
		args = append(args, escapeLike(f.PathPrefix)+"%")
	}

	if f.UsesTexture != "" {
		where = append(where, "has(texture_paths, ?)")
		args = append(args, f.UsesTexture)
	}

	if f.UsesMaterial != "" {
		where = append(where, "has(materials, ?)")
		args = append(args, f.UsesMaterial)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(assetColumns)
	b.WriteString(" FROM assets")

	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	b.WriteString(" ORDER BY scanned_at DESC")

	if f.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}

	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE metacharacters so a path prefix matches
// literally. Underscores are common in asset names.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
