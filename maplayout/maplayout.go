// Package maplayout decodes FModel .json map dumps into scene-unit
// placements: static mesh components with their transforms (including
// per-instance data of instanced components) and light components.
// Placements that fail the dump's validity checks are kept with a skip
// reason instead of being dropped, so callers can report what a map
// import would leave out.
package maplayout

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/uetools/propscan/fault"
)

// SkipReason explains why a placement would not import.
type SkipReason uint8

const (
	SkipNone SkipReason = iota
	SkipNoProperties
	SkipNoMesh
	SkipNoPath
	SkipBasicShape
	SkipNotRendered
	SkipInvisible
	SkipNoInstanceData
)

func (r SkipReason) String() string {
	return [...]string{
		"",
		"no properties",
		"no static mesh",
		"no object path",
		"basic shape",
		"not rendered",
		"invisible",
		"no per-instance data",
	}[r]
}

func (r SkipReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// LightKind is the light component flavor of a placement.
type LightKind uint8

const (
	LightSpot LightKind = iota
	LightPoint
	LightAnimated
)

func (k LightKind) String() string {
	return [...]string{"spot", "point", "animated"}[k]
}

func (k LightKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MeshPlacement is one static mesh component of the map. Instanced
// components carry the shared component transform plus one transform per
// instance; the world placement of an instance is the composition of the
// two.
type MeshPlacement struct {
	Entity     string      `json:"entity"`
	ObjectPath string      `json:"object_path,omitempty"`
	AssetPath  string      `json:"asset_path,omitempty"`
	Instanced  bool        `json:"instanced,omitempty"`
	Transform  Transform   `json:"transform"`
	Instances  []Transform `json:"instances,omitempty"`
	Skip       SkipReason  `json:"skip,omitempty"`
}

// Valid reports whether the placement passed every check.
func (p *MeshPlacement) Valid() bool { return p.Skip == SkipNone }

// LightPlacement is one light component of the map.
type LightPlacement struct {
	Entity    string     `json:"entity"`
	Kind      LightKind  `json:"kind"`
	Transform Transform  `json:"transform"`
	Skip      SkipReason `json:"skip,omitempty"`
}

// Valid reports whether the placement passed every check.
func (p *LightPlacement) Valid() bool { return p.Skip == SkipNone }

// Layout is everything placeable read out of one map dump.
type Layout struct {
	Meshes []MeshPlacement  `json:"meshes,omitempty"`
	Lights []LightPlacement `json:"lights,omitempty"`
}

// meshComponentTypes maps a component type to whether it is instanced.
var meshComponentTypes = map[string]bool{
	"StaticMeshComponent":                      false,
	"InstancedStaticMeshComponent":             true,
	"HierarchicalInstancedStaticMeshComponent": true,
}

var lightComponentTypes = map[string]LightKind{
	"SpotLightComponent":     LightSpot,
	"PointLightComponent":    LightPoint,
	"AnimatedLightComponent": LightAnimated,
}

// Decode reads an FModel map dump, a JSON array of exported components.
// Entities without a Type and component types that are neither meshes
// nor lights are ignored.
func Decode(r io.Reader) (*Layout, error) {
	var entities []mapEntity
	if err := json.NewDecoder(r).Decode(&entities); err != nil {
		return nil, fault.New(fault.BadInputCode, "Map dump is not a JSON entity array.").WithOriginal(err)
	}

	layout := &Layout{}

	for _, e := range entities {
		if e.Type == "" {
			continue
		}

		if instanced, ok := meshComponentTypes[e.Type]; ok {
			layout.Meshes = append(layout.Meshes, decodeMesh(e, instanced))
			continue
		}

		if kind, ok := lightComponentTypes[e.Type]; ok {
			layout.Lights = append(layout.Lights, decodeLight(e, kind))
		}
	}

	return layout, nil
}

func decodeMesh(e mapEntity, instanced bool) MeshPlacement {
	p := MeshPlacement{
		Entity:    e.Outer,
		Instanced: instanced,
		Transform: Identity(),
	}

	props := e.Properties
	if props == nil {
		p.Skip = SkipNoProperties
		return p
	}

	if props.StaticMesh == nil {
		p.Skip = SkipNoMesh
		return p
	}

	p.ObjectPath = props.StaticMesh.ObjectPath
	if p.ObjectPath == "" {
		p.Skip = SkipNoPath
		return p
	}

	// Editor helper geometry, never part of the real map.
	if strings.Contains(p.ObjectPath, "BasicShapes") {
		p.Skip = SkipBasicShape
		return p
	}

	if props.RenderInMainPass != nil && !*props.RenderInMainPass {
		p.Skip = SkipNotRendered
		return p
	}

	// Invisible placements keep their transform; they are still skipped
	// by Valid but callers may want to know where they sit.
	if props.Visible != nil && !*props.Visible {
		p.Skip = SkipInvisible
	}

	p.AssetPath = AssetPath(p.ObjectPath)

	if instanced && e.PerInstanceSMData == nil {
		if p.Skip == SkipNone {
			p.Skip = SkipNoInstanceData
		}

		return p
	}

	p.Transform = componentTransform(props)

	if instanced {
		p.Instances = make([]Transform, 0, len(e.PerInstanceSMData))
		for _, inst := range e.PerInstanceSMData {
			p.Instances = append(p.Instances, instanceTransform(inst.TransformData))
		}
	}

	return p
}

func decodeLight(e mapEntity, kind LightKind) LightPlacement {
	p := LightPlacement{
		Entity:    e.Outer,
		Kind:      kind,
		Transform: Identity(),
	}

	if e.Properties == nil {
		p.Skip = SkipNoProperties
		return p
	}

	p.Transform = componentTransform(e.Properties)

	return p
}

func componentTransform(props *entityProps) Transform {
	t := Identity()

	if pos := props.RelativeLocation; pos != nil {
		t.Pos = positionFromUE(pos.X, pos.Y, pos.Z)
	}

	if rot := props.RelativeRotation; rot != nil {
		t.Euler = eulerFromRotator(rot.Pitch, rot.Yaw, rot.Roll)
	}

	if s := props.RelativeScale3D; s != nil {
		t.Scale = s.vec()
	}

	return t
}

// instanceTransform reads one PerInstanceSMData entry. Entries without
// TransformData place an untransformed instance.
func instanceTransform(td *transformData) Transform {
	t := Identity()
	if td == nil {
		return t
	}

	if pos := td.Translation; pos != nil {
		t.Pos = positionFromUE(pos.X, pos.Y, pos.Z)
	}

	if rot := td.Rotation; rot != nil {
		t.Euler = eulerFromQuat(rot.X, rot.Y, rot.Z, rot.W)
	}

	if s := td.Scale3D; s != nil {
		t.Scale = s.vec()
	}

	return t
}

type mapEntity struct {
	Type              string          `json:"Type"`
	Outer             string          `json:"Outer"`
	Properties        *entityProps    `json:"Properties"`
	PerInstanceSMData []instanceEntry `json:"PerInstanceSMData"`
}

type entityProps struct {
	StaticMesh       *objectRef `json:"StaticMesh"`
	RenderInMainPass *bool      `json:"bRenderInMainPass"`
	Visible          *bool      `json:"bVisible"`
	RelativeLocation *vec       `json:"RelativeLocation"`
	RelativeRotation *rotator   `json:"RelativeRotation"`
	RelativeScale3D  *scale     `json:"RelativeScale3D"`
}

type objectRef struct {
	ObjectPath string `json:"ObjectPath"`
}

type instanceEntry struct {
	TransformData *transformData `json:"TransformData"`
}

type transformData struct {
	Translation *vec   `json:"Translation"`
	Rotation    *quat  `json:"Rotation"`
	Scale3D     *scale `json:"Scale3D"`
}

type vec struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
	Z float64 `json:"Z"`
}

type rotator struct {
	Pitch float64 `json:"Pitch"`
	Yaw   float64 `json:"Yaw"`
	Roll  float64 `json:"Roll"`
}

type quat struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
	Z float64 `json:"Z"`
	W float64 `json:"W"`
}

// scale carries per-component defaults: a missing axis means 1, and a
// fully absent Scale3D leaves the identity scale in place.
type scale struct {
	X *float64 `json:"X"`
	Y *float64 `json:"Y"`
	Z *float64 `json:"Z"`
}

func (s *scale) vec() Vec3 {
	v := Vec3{1, 1, 1}

	if s.X != nil {
		v[0] = *s.X
	}
	if s.Y != nil {
		v[1] = *s.Y
	}
	if s.Z != nil {
		v[2] = *s.Z
	}

	return v
}
