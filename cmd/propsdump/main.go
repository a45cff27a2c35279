// propsdump parses a single UModel property dump (or an FModel JSON
// map dump) and prints the result as JSON, for inspecting exports
// without a running scanner.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/uetools/propscan/entity"
	"github.com/uetools/propscan/extract"
	"github.com/uetools/propscan/fault"
	"github.com/uetools/propscan/maplayout"
	"github.com/uetools/propscan/props/ast"
	"github.com/uetools/propscan/props/lexer"
	"github.com/uetools/propscan/props/parser"
)

type options struct {
	Dialect  string `long:"dialect" default:"modern" description:"dump dialect (legacy or modern)"`
	MaxDepth int    `long:"max-depth" description:"override the block nesting limit"`
	Extract  string `long:"extract" default:"tree" choice:"tree" choice:"mesh" choice:"material" choice:"auto" description:"what to emit: the raw tree or an extracted descriptor"`
	Layout   bool   `long:"layout" description:"decode the file as an FModel JSON map dump instead of a property dump"`
	Pretty   bool   `short:"p" long:"pretty" description:"indent the JSON output"`

	Args struct {
		File string `positional-arg-name:"FILE"`
	} `positional-args:"yes" required:"yes"`
}

// dumpResult is the --extract=auto output: the sniffed kind plus
// whatever that kind carries.
type dumpResult struct {
	Kind      string               `json:"kind"`
	Materials []string             `json:"materials,omitempty"`
	Material  *entity.MaterialDesc `json:"material,omitempty"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	out, err := run(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}

	enc := json.NewEncoder(os.Stdout)
	if opts.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) (any, error) {
	data, err := os.ReadFile(opts.Args.File)
	if err != nil {
		return nil, fault.New(fault.NotFoundCode, "cannot read dump file").WithOriginal(err)
	}

	if opts.Layout {
		return maplayout.Decode(bytes.NewReader(data))
	}

	dialect, ok := lexer.ByName(opts.Dialect)
	if !ok {
		return nil, fault.New(fault.UnsupportedCode, fmt.Sprintf("unknown dialect %q", opts.Dialect))
	}

	doc, err := parser.ParseWith(string(data), parser.Options{Dialect: dialect, MaxDepth: opts.MaxDepth})
	if err != nil {
		return nil, err
	}

	switch opts.Extract {
	case "tree":
		return doc, nil
	case "mesh":
		return extract.MeshMaterials(doc)
	case "material":
		return extract.Material(doc)
	case "auto":
		return extractAuto(doc)
	default:
		return nil, fault.New(fault.UnsupportedCode, fmt.Sprintf("unknown extract mode %q", opts.Extract))
	}
}

func extractAuto(doc *ast.Document) (*dumpResult, error) {
	kind := extract.Classify(doc)
	res := &dumpResult{Kind: kind.String()}

	switch kind {
	case entity.AssetKindStaticMesh:
		materials, err := extract.MeshMaterials(doc)
		if err != nil {
			return nil, err
		}
		res.Materials = materials
	case entity.AssetKindMaterial:
		desc, err := extract.Material(doc)
		if err != nil {
			return nil, err
		}
		res.Material = desc
	}

	return res, nil
}

// exitCode maps error classes to exit statuses: 2 for malformed input
// (parse failures included), 3 for missing files, 4 for unsupported
// modes, 1 for everything else.
func exitCode(err error) int {
	var perr *ast.ParseError
	if errors.As(err, &perr) {
		return 2
	}

	var f fault.Fault
	if errors.As(err, &f) {
		switch f.Code() {
		case fault.BadInputCode:
			return 2
		case fault.NotFoundCode:
			return 3
		case fault.UnsupportedCode:
			return 4
		}
	}

	return 1
}
