package extract

import (
	"fmt"

	"github.com/uetools/propscan/fault"
	"github.com/uetools/propscan/props/ast"
)

// MeshMaterials collects the material object paths referenced by a static
// mesh dump, in declaration order. A Materials entry holding an empty
// list contributes nothing, so a mesh with zero material slots still
// extracts cleanly; a dump without Materials yields a nil slice.
func MeshMaterials(doc *ast.Document) ([]string, error) {
	var paths []string

	for _, def := range doc.FindAll("Materials") {
		if !def.Indexed {
			return nil, fault.New(fault.BadInputCode, "Materials definition has no array qualifier.")
		}

		switch v := def.Value.(type) {
		case *ast.EmptyList:
		case *ast.Block:
			for _, entry := range v.Defs {
				p, ok := entry.Value.(*ast.Path)
				if !ok {
					return nil, fault.New(fault.BadInputCode,
						fmt.Sprintf("Materials entry %q is not an object path.", entry.Name))
				}

				paths = append(paths, p.Target)
			}
		default:
			return nil, fault.New(fault.BadInputCode, "Materials definition is not a block.")
		}
	}

	return paths, nil
}
