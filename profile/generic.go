package profile

import (
	"path"
	"strings"

	"github.com/uetools/propscan/entity"
)

type GenericConfig struct {
	Name string `yaml:"-"`
}

// suffixMap keys are the lowercased segment after the last underscore
// of a texture's short name, e.g. "d" for T_Rock_D.
var suffixMap = map[string]entity.TextureMap{
	"d":    entity.TextureMapDiffuse,
	"n":    entity.TextureMapNormal,
	"mro":  entity.TextureMapMRO,
	"sro":  entity.TextureMapSRO,
	"mroh": entity.TextureMapMROH,
	"mroa": entity.TextureMapMRO,
	"sroh": entity.TextureMapMROH,
}

// Generic guesses the purpose of a texture from its own name rather
// than the parameter it is bound to. That convention holds across most
// titles, so this is the profile to start a new game with.
type Generic struct {
	cfg GenericConfig
}

func NewGeneric(cfg GenericConfig) (*Generic, error) {
	return &Generic{cfg: cfg}, nil
}

func (g *Generic) Name() string {
	return g.cfg.Name
}

func (g *Generic) ClassifyTexture(param, texture string) (entity.TextureMap, error) {
	short := shortName(texture)
	suffix := short[strings.LastIndexByte(short, '_')+1:]
	return suffixMap[strings.ToLower(suffix)], nil
}

// shortName reduces an object path such as
// /Game/Textures/T_Rock_D.T_Rock_D to T_Rock_D.
func shortName(objectPath string) string {
	base, _, _ := strings.Cut(path.Base(objectPath), ".")
	return base
}
