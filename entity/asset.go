package entity

import (
	"time"

	"github.com/google/uuid"
)

type AssetKind uint8

const (
	AssetKindUnknown AssetKind = iota
	AssetKindStaticMesh
	AssetKindMaterial
)

func (k AssetKind) String() string {
	return [...]string{"UNKNOWN", "STATIC_MESH", "MATERIAL"}[k]
}

func ParseAssetKind(s string) AssetKind {
	switch s {
	case "STATIC_MESH":
		return AssetKindStaticMesh
	case "MATERIAL":
		return AssetKindMaterial
	default:
		return AssetKindUnknown
	}
}

// TextureMap identifies which material slot a texture feeds.
type TextureMap uint8

const (
	TextureMapUnknown TextureMap = iota
	TextureMapDiffuse
	TextureMapNormal
	// TextureMapSRO packs specular, roughness and ambient occlusion.
	TextureMapSRO
	// TextureMapMRO packs metallic, roughness and ambient occlusion.
	TextureMapMRO
	// TextureMapMROH is MRO with a height channel in the alpha.
	TextureMapMROH
)

func (m TextureMap) String() string {
	return [...]string{"UNKNOWN", "DIFFUSE", "NORMAL", "SRO", "MRO", "MROH"}[m]
}

func ParseTextureMap(s string) TextureMap {
	switch s {
	case "DIFFUSE":
		return TextureMapDiffuse
	case "NORMAL":
		return TextureMapNormal
	case "SRO":
		return TextureMapSRO
	case "MRO":
		return TextureMapMRO
	case "MROH":
		return TextureMapMROH
	default:
		return TextureMapUnknown
	}
}

// AssetFile is a property dump handed to the scan workers by a source,
// not yet parsed.
type AssetFile struct {
	Source string    `json:"source"`
	Path   string    `json:"path"`
	Data   []byte    `json:"data"`
	Seen   time.Time `json:"seen"`
}

// TextureBinding is one texture parameter of a material: the parameter
// name from ParameterInfo, the referenced texture object path, and the
// slot the game profile classified it into.
type TextureBinding struct {
	Param   string     `json:"param"`
	Texture string     `json:"texture"`
	Map     TextureMap `json:"map"`
}

// MaterialOverrides mirrors the BasePropertyOverrides block of a
// material instance. Pointer fields distinguish an override that was
// absent from one explicitly set to the zero value.
type MaterialOverrides struct {
	BlendMode            string   `json:"blend_mode,omitempty"`
	TwoSided             *bool    `json:"two_sided,omitempty"`
	OpacityMaskClipValue *float64 `json:"opacity_mask_clip_value,omitempty"`
}

// MaterialDesc is everything extracted from a material instance dump.
// Overrides is nil when the dump has no BasePropertyOverrides block at
// all; an empty block yields a non-nil zero value.
type MaterialDesc struct {
	Parent    string             `json:"parent,omitempty"`
	Textures  []TextureBinding   `json:"textures,omitempty"`
	Overrides *MaterialOverrides `json:"overrides,omitempty"`
}

// AssetRecord is a fully scanned asset ready for storage.
type AssetRecord struct {
	ID        uuid.UUID          `json:"id"`
	Source    string             `json:"source"`
	Path      string             `json:"path"`
	Kind      AssetKind          `json:"kind"`
	Parent    string             `json:"parent,omitempty"`
	Materials []string           `json:"materials,omitempty"`
	Textures  []TextureBinding   `json:"textures,omitempty"`
	Overrides *MaterialOverrides `json:"overrides,omitempty"`
	Warnings  uint32             `json:"warnings"`
	ScannedAt time.Time          `json:"scanned_at"`
}
