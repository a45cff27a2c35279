package extract

import (
	"fmt"

	"github.com/uetools/propscan/entity"
	"github.com/uetools/propscan/fault"
	"github.com/uetools/propscan/props/ast"
)

// Material interprets a material instance dump: the parent material
// reference, the texture parameter bindings, and the base property
// overrides. Bindings keep the parameter order of the dump; a parameter
// repeated later replaces the texture of its earlier occurrence, which is
// how the engine applies the values. Bindings come back unclassified,
// with Map left at TextureMapUnknown; naming conventions differ per game,
// so mapping parameters to texture map kinds is a profile concern.
func Material(doc *ast.Document) (*entity.MaterialDesc, error) {
	desc := &entity.MaterialDesc{}

	if parent := doc.Find("Parent"); parent != nil {
		if p, ok := parent.Value.(*ast.Path); ok {
			desc.Parent = p.Target
		}
	}

	bound := map[string]int{}

	for _, def := range doc.FindAll("TextureParameterValues") {
		if !def.Indexed {
			return nil, fault.New(fault.BadInputCode, "TextureParameterValues definition has no array qualifier.")
		}

		switch v := def.Value.(type) {
		case *ast.EmptyList:
		case *ast.Block:
			for _, entry := range v.Defs {
				param, texture, ok, err := textureParameter(entry)
				if err != nil {
					return nil, err
				}

				if !ok {
					continue
				}

				if i, seen := bound[param]; seen {
					desc.Textures[i].Texture = texture
					continue
				}

				bound[param] = len(desc.Textures)
				desc.Textures = append(desc.Textures, entity.TextureBinding{Param: param, Texture: texture})
			}
		default:
			return nil, fault.New(fault.BadInputCode, "TextureParameterValues definition is not a block.")
		}
	}

	if err := applyOverrides(desc, doc); err != nil {
		return nil, err
	}

	return desc, nil
}

// textureParameter pulls the parameter name and texture path out of a
// single TextureParameterValues entry. Entries whose ParameterValue is
// missing or not an object path are unused slots and are skipped, not
// errors; dumps routinely carry them for parameters left at defaults.
func textureParameter(entry *ast.Definition) (param, texture string, ok bool, err error) {
	blk, isBlock := entry.Value.(*ast.Block)
	if !isBlock {
		return "", "", false, fault.New(fault.BadInputCode,
			fmt.Sprintf("Texture parameter entry %q is not a block.", entry.Name))
	}

	value := blk.Find("ParameterValue")
	if value == nil {
		return "", "", false, nil
	}

	path, isPath := value.Value.(*ast.Path)
	if !isPath {
		return "", "", false, nil
	}

	info := blk.Find("ParameterInfo")
	if info == nil {
		return "", "", false, fault.New(fault.BadInputCode,
			fmt.Sprintf("Texture parameter entry %q has no ParameterInfo.", entry.Name))
	}

	infoBlk, isBlock := info.Value.(*ast.Block)
	if !isBlock {
		return "", "", false, fault.New(fault.BadInputCode,
			fmt.Sprintf("ParameterInfo of entry %q is not a block.", entry.Name))
	}

	name := infoBlk.Find("Name")
	if name == nil {
		return "", "", false, fault.New(fault.BadInputCode,
			fmt.Sprintf("ParameterInfo of entry %q has no Name.", entry.Name))
	}

	c, isConst := name.Value.(*ast.Const)
	if !isConst {
		return "", "", false, fault.New(fault.BadInputCode,
			fmt.Sprintf("Parameter name of entry %q is not a constant.", entry.Name))
	}

	return c.Text(), path.Target, true, nil
}

// applyOverrides reads the BasePropertyOverrides block. An absent block
// leaves desc.Overrides nil; a present-but-empty one yields a non-nil
// zero value, so callers can tell "no overrides section" from "overrides
// section with nothing set". Only the three keys the importer consumes
// are read; anything else in the block is ignored.
func applyOverrides(desc *entity.MaterialDesc, doc *ast.Document) error {
	def := doc.Find("BasePropertyOverrides")
	if def == nil {
		return nil
	}

	if def.Indexed {
		return fault.New(fault.BadInputCode, "BasePropertyOverrides must not carry an array qualifier.")
	}

	ov := &entity.MaterialOverrides{}

	switch v := def.Value.(type) {
	case *ast.EmptyList:
	case *ast.Block:
		for _, d := range v.Defs {
			c, isConst := d.Value.(*ast.Const)

			switch d.Name {
			case "BlendMode":
				if !isConst {
					return fault.New(fault.BadInputCode, "BlendMode override is not a constant.")
				}

				ov.BlendMode = c.Text()
			case "TwoSided":
				if !isConst {
					return fault.New(fault.BadInputCode, "TwoSided override is not a constant.")
				}

				two := c.Kind == ast.BoolLit && c.Bool
				ov.TwoSided = &two
			case "OpacityMaskClipValue":
				if !isConst {
					return fault.New(fault.BadInputCode, "OpacityMaskClipValue override is not a constant.")
				}

				switch c.Kind {
				case ast.IntLit:
					f := float64(c.Int)
					ov.OpacityMaskClipValue = &f
				case ast.FloatLit:
					f := c.Float
					ov.OpacityMaskClipValue = &f
				default:
					return fault.New(fault.BadInputCode,
						fmt.Sprintf("OpacityMaskClipValue override %q is not numeric.", c.Raw))
				}
			}
		}
	default:
		return fault.New(fault.BadInputCode, "BasePropertyOverrides is not a block.")
	}

	desc.Overrides = ov

	return nil
}
