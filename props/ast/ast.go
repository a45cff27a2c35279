// Package ast defines the tree produced by parsing an Unreal Engine
// textual property dump. The tree is an ordered sequence of definitions,
// not a map: repeated names (most commonly indexed ones such as
// Materials[0], Materials[1]) are all preserved in source order.
package ast

// Document is the root of a parsed property dump.
type Document struct {
	// Defs holds every top-level definition in source order.
	Defs []*Definition

	// Warnings collects non-fatal resolution problems, such as integer
	// literals that exceeded the representable range. A document with
	// warnings is still fully usable.
	Warnings []Warning
}

// Find returns the first top-level definition with the given name, or nil.
func (d *Document) Find(name string) *Definition {
	return findDef(d.Defs, name)
}

// FindAll returns every top-level definition with the given name,
// in source order.
func (d *Document) FindAll(name string) []*Definition {
	return findDefs(d.Defs, name)
}

// Definition is a single `Name = value` entry, optionally carrying an
// array qualifier as in `Materials[2] = ...`.
type Definition struct {
	Name string

	// Index is the array qualifier. It is only meaningful when Indexed
	// is true; an unqualified definition and `Name[0]` are distinct.
	Index   int
	Indexed bool

	Value Value
}

// Value is the sum of everything that may appear on the right-hand side
// of a definition. The private marker method keeps the set of variants
// closed to this package.
type Value interface {
	value()
}

// Block is a brace-enclosed sequence of nested definitions.
type Block struct {
	Defs []*Definition
}

// Find returns the first definition in the block with the given name, or nil.
func (b *Block) Find(name string) *Definition {
	return findDef(b.Defs, name)
}

// FindAll returns every definition in the block with the given name.
func (b *Block) FindAll(name string) []*Definition {
	return findDefs(b.Defs, name)
}

// Path is an engine object reference of the form Class'/Game/Some/Object'.
type Path struct {
	// Class is the engine class name, e.g. "Texture2D" or "MaterialInstanceConstant".
	Class string

	// Target is the referenced object path with the surrounding quotes removed.
	Target string
}

// ConstList is a brace-enclosed list holding at least one constant.
type ConstList struct {
	Items []*Const
}

// EmptyList is a brace pair with no constants inside, including the
// comma-only form `{,,}`. It is distinct from both an absent definition
// and a populated ConstList; consumers rely on the difference.
type EmptyList struct{}

func (*Block) value()     {}
func (*Path) value()      {}
func (*ConstList) value() {}
func (*Const) value()     {}
func (*EmptyList) value() {}

func findDef(defs []*Definition, name string) *Definition {
	for _, d := range defs {
		if d.Name == name {
			return d
		}
	}

	return nil
}

func findDefs(defs []*Definition, name string) []*Definition {
	var out []*Definition
	for _, d := range defs {
		if d.Name == name {
			out = append(out, d)
		}
	}

	return out
}
