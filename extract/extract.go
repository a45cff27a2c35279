// Package extract interprets parsed property dumps as concrete asset
// descriptors: the material paths referenced by a static mesh, or the
// texture parameters and base property overrides of a material instance.
// It consumes the tree produced by props/parser and never touches the
// source text itself.
package extract

import (
	"github.com/uetools/propscan/entity"
	"github.com/uetools/propscan/props/ast"
)

// Classify guesses the asset kind described by a property dump from its
// top-level definition names. UModel dumps carry no explicit type marker,
// so the parameter tables of a material instance and the material slots
// of a static mesh are the most reliable signals. Documents matching
// neither are Unknown; callers usually skip those.
func Classify(doc *ast.Document) entity.AssetKind {
	has := func(name string) bool { return doc.Find(name) != nil }

	switch {
	case has("TextureParameterValues"), has("BasePropertyOverrides"),
		has("ScalarParameterValues"), has("VectorParameterValues"):
		return entity.AssetKindMaterial
	case has("Materials"), has("StaticMaterials"):
		return entity.AssetKindStaticMesh
	case has("Parent"):
		return entity.AssetKindMaterial
	default:
		return entity.AssetKindUnknown
	}
}
