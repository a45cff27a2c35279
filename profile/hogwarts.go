package profile

import "github.com/uetools/propscan/entity"

type HogwartsLegacyConfig struct {
	Name string `yaml:"-"`
}

// hogwartsParams maps Hogwarts Legacy texture parameter names to the
// map slot they feed. The table looks irregular because the game is:
// several "MRO" parameters actually carry a height channel and belong
// in the MROH slot, and "MRO/SRO Map" holds an SRO texture.
var hogwartsParams = map[string]entity.TextureMap{
	"Diffuse":           entity.TextureMapDiffuse,
	"Normal":            entity.TextureMapNormal,
	"SRO":               entity.TextureMapSRO,
	"MRO":               entity.TextureMapMRO,
	"MROH":              entity.TextureMapMROH,
	"MROH/SROH":         entity.TextureMapMROH,
	"MRO/SRO":           entity.TextureMapMRO,
	"Diffuse Map":       entity.TextureMapDiffuse,
	"Normal Map":        entity.TextureMapNormal,
	"MRO/SRO Map":       entity.TextureMapSRO,
	"SRO Map":           entity.TextureMapSRO,
	"MROH Map":          entity.TextureMapMROH,
	"MROH/SROH Map":     entity.TextureMapMROH,
	"MRO Map":           entity.TextureMapMRO,
	"Diffuse A":         entity.TextureMapDiffuse,
	"Normal A":          entity.TextureMapNormal,
	"SRO A":             entity.TextureMapSRO,
	"MROH A":            entity.TextureMapMROH,
	"MROH/SROH A":       entity.TextureMapMROH,
	"MRO/SRO A":         entity.TextureMapMRO,
	"MRO A":             entity.TextureMapMROH,
	"Diffuse Map A":     entity.TextureMapDiffuse,
	"Normal Map A":      entity.TextureMapNormal,
	"SRO Map A":         entity.TextureMapSRO,
	"MROH Map A":        entity.TextureMapMROH,
	"MROH/SROH Map A":   entity.TextureMapMROH,
	"MRO/SRO Map A":     entity.TextureMapMRO,
	"MRO Map A":         entity.TextureMapMROH,
	"Diffuse A Map":     entity.TextureMapDiffuse,
	"Normal A Map":      entity.TextureMapNormal,
	"SRO A Map":         entity.TextureMapSRO,
	"MRO/SRO A Map":     entity.TextureMapSRO,
	"MROH A Map":        entity.TextureMapMROH,
	"MROH/SROH A Map":   entity.TextureMapMROH,
	"MRO A Map":         entity.TextureMapMROH,
	"Color Glass":       entity.TextureMapDiffuse,
	"Base color":        entity.TextureMapDiffuse,
	"Base Color":        entity.TextureMapDiffuse,
	"MROA":              entity.TextureMapMRO,
	"Color Mask":        entity.TextureMapDiffuse,
	"Worn Diffuse":      entity.TextureMapDiffuse,
	"Worn Normal":       entity.TextureMapNormal,
	"Worn SRO":          entity.TextureMapSRO,
	"Worn MRO":          entity.TextureMapMRO,
	"Worn MROH":         entity.TextureMapMROH,
	"Worn MROH/SROH":    entity.TextureMapMROH,
	"Worn MRO/SRO":      entity.TextureMapMRO,
}

// HogwartsLegacy classifies bindings by parameter name alone; the
// game's materials name their parameters consistently enough that the
// texture name never has to be consulted.
type HogwartsLegacy struct {
	cfg HogwartsLegacyConfig
}

func NewHogwartsLegacy(cfg HogwartsLegacyConfig) (*HogwartsLegacy, error) {
	return &HogwartsLegacy{cfg: cfg}, nil
}

func (h *HogwartsLegacy) Name() string {
	return h.cfg.Name
}

func (h *HogwartsLegacy) ClassifyTexture(param, texture string) (entity.TextureMap, error) {
	return hogwartsParams[param], nil
}
