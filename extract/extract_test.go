package extract

import (
	"errors"
	"testing"

	"github.com/go-test/deep"

	"github.com/uetools/propscan/entity"
	"github.com/uetools/propscan/fault"
	"github.com/uetools/propscan/props/ast"
	"github.com/uetools/propscan/props/lexer"
	"github.com/uetools/propscan/props/parser"
)

func mustParse(t *testing.T, input string) *ast.Document {
	t.Helper()

	doc, err := parser.Parse(input, lexer.Modern())
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}

	return doc
}

func badInput(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error, got nil")
	}

	var f fault.Fault
	if !errors.As(err, &f) {
		t.Fatalf("expected a fault, got %T: %v", err, err)
	}

	if f.Code() != fault.BadInputCode {
		t.Fatalf("expected code %q, got %q (%v)", fault.BadInputCode, f.Code(), err)
	}
}

const meshDump = `NumLODs = 1
Materials[2] =
{
	Materials[0] = MaterialInstanceConstant'/Game/Env/Rocks/MI_Rock_A.MI_Rock_A'
	Materials[1] = MaterialInstanceConstant'/Game/Env/Rocks/MI_Rock_B.MI_Rock_B'
}
Bounds =
{
	Origin = { 0, 0, 0 }
	SphereRadius = 421.375
}
`

const materialDump = `Parent = Material'/Game/Environment/Materials/M_RockBase.M_RockBase'
TextureParameterValues[3] =
{
	TextureParameterValues[0] =
	{
		ParameterInfo =
		{
			Name = Diffuse
			Association = GlobalParameter (0)
			Index = -1
		}
		ParameterValue = Texture2D'/Game/Textures/T_Rock_D.T_Rock_D'
		ExpressionGUID = 00000000-0000-0000-0000-000000000000
	}
	TextureParameterValues[1] =
	{
		ParameterInfo =
		{
			Name = Normal
			Association = GlobalParameter (0)
			Index = -1
		}
		ParameterValue = Texture2D'/Game/Textures/T_Rock_N.T_Rock_N'
		ExpressionGUID = 00000000-0000-0000-0000-000000000000
	}
	TextureParameterValues[2] =
	{
		ParameterInfo =
		{
			Name = Emissive
			Association = GlobalParameter (0)
			Index = -1
		}
		ParameterValue = None
	}
}
BasePropertyOverrides =
{
	BlendMode = BLEND_Masked (1)
	TwoSided = true
	OpacityMaskClipValue = 0.3333
	ShadingModel = MSM_DefaultLit (1)
}
`

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		expected entity.AssetKind
	}{
		{meshDump, entity.AssetKindStaticMesh},
		{materialDump, entity.AssetKindMaterial},
		{"StaticMaterials[1] =\n{\n}\n", entity.AssetKindStaticMesh},
		{"ScalarParameterValues[0] = {}", entity.AssetKindMaterial},
		{"Parent = Material'/Game/M.M'", entity.AssetKindMaterial},
		{"NumLODs = 1\nSphereRadius = 2.5", entity.AssetKindUnknown},
		{"", entity.AssetKindUnknown},
	}

	for _, tt := range tests {
		if got := Classify(mustParse(t, tt.input)); got != tt.expected {
			t.Fatalf("Classify(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestMeshMaterials(t *testing.T) {
	paths, err := MeshMaterials(mustParse(t, meshDump))
	if err != nil {
		t.Fatalf("MeshMaterials failed: %v", err)
	}

	expected := []string{
		"/Game/Env/Rocks/MI_Rock_A.MI_Rock_A",
		"/Game/Env/Rocks/MI_Rock_B.MI_Rock_B",
	}
	if diff := deep.Equal(paths, expected); diff != nil {
		t.Fatalf("unexpected material paths: %v", diff)
	}
}

func TestMeshMaterialsEmptySlots(t *testing.T) {
	doc := mustParse(t, "Materials[0] = {}\n")

	if got := Classify(doc); got != entity.AssetKindStaticMesh {
		t.Fatalf("Classify = %v, want %v", got, entity.AssetKindStaticMesh)
	}

	paths, err := MeshMaterials(doc)
	if err != nil {
		t.Fatalf("MeshMaterials failed: %v", err)
	}

	if len(paths) != 0 {
		t.Fatalf("expected no material paths, got %v", paths)
	}
}

func TestMeshMaterialsAbsent(t *testing.T) {
	paths, err := MeshMaterials(mustParse(t, "NumLODs = 1\n"))
	if err != nil {
		t.Fatalf("MeshMaterials failed: %v", err)
	}

	if paths != nil {
		t.Fatalf("expected nil paths, got %v", paths)
	}
}

func TestMeshMaterialsBadShape(t *testing.T) {
	tests := []string{
		"Materials = { Materials[0] = Material'/Game/M.M' }",
		"Materials[1] = { Materials[0] = 5 }",
		"Materials[1] = 5",
	}

	for _, input := range tests {
		_, err := MeshMaterials(mustParse(t, input))
		badInput(t, err)
	}
}

func TestMaterial(t *testing.T) {
	desc, err := Material(mustParse(t, materialDump))
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}

	two := true
	clip := 0.3333
	expected := &entity.MaterialDesc{
		Parent: "/Game/Environment/Materials/M_RockBase.M_RockBase",
		Textures: []entity.TextureBinding{
			{Param: "Diffuse", Texture: "/Game/Textures/T_Rock_D.T_Rock_D"},
			{Param: "Normal", Texture: "/Game/Textures/T_Rock_N.T_Rock_N"},
		},
		Overrides: &entity.MaterialOverrides{
			BlendMode:            "BLEND_Masked (1)",
			TwoSided:             &two,
			OpacityMaskClipValue: &clip,
		},
	}

	if diff := deep.Equal(desc, expected); diff != nil {
		t.Fatalf("unexpected material descriptor: %v", diff)
	}
}

func TestMaterialDuplicateParamKeepsLastTexture(t *testing.T) {
	input := `TextureParameterValues[2] =
{
	TextureParameterValues[0] =
	{
		ParameterInfo = { Name = Diffuse }
		ParameterValue = Texture2D'/Game/T_Old.T_Old'
	}
	TextureParameterValues[1] =
	{
		ParameterInfo = { Name = Diffuse }
		ParameterValue = Texture2D'/Game/T_New.T_New'
	}
}
`

	desc, err := Material(mustParse(t, input))
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}

	expected := []entity.TextureBinding{
		{Param: "Diffuse", Texture: "/Game/T_New.T_New"},
	}
	if diff := deep.Equal(desc.Textures, expected); diff != nil {
		t.Fatalf("unexpected bindings: %v", diff)
	}
}

func TestMaterialOverridesTriState(t *testing.T) {
	absent, err := Material(mustParse(t, "Parent = Material'/Game/M.M'"))
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}
	if absent.Overrides != nil {
		t.Fatalf("expected nil overrides for an absent block, got %+v", absent.Overrides)
	}

	empty, err := Material(mustParse(t, "BasePropertyOverrides = {}"))
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}
	if empty.Overrides == nil {
		t.Fatal("expected non-nil overrides for an empty block")
	}
	if diff := deep.Equal(empty.Overrides, &entity.MaterialOverrides{}); diff != nil {
		t.Fatalf("expected zero overrides: %v", diff)
	}

	unknownOnly, err := Material(mustParse(t, "BasePropertyOverrides = { ShadingModel = MSM_Unlit (0) }"))
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}
	if unknownOnly.Overrides == nil {
		t.Fatal("expected non-nil overrides when only unknown keys are present")
	}
	if diff := deep.Equal(unknownOnly.Overrides, &entity.MaterialOverrides{}); diff != nil {
		t.Fatalf("expected zero overrides: %v", diff)
	}
}

func TestMaterialOverrideValueForms(t *testing.T) {
	input := `BasePropertyOverrides =
{
	BlendMode = BLEND_Opaque
	TwoSided = 1
	OpacityMaskClipValue = 1
}
`

	desc, err := Material(mustParse(t, input))
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}

	ov := desc.Overrides
	if ov == nil {
		t.Fatal("expected overrides")
	}

	if ov.BlendMode != "BLEND_Opaque" {
		t.Fatalf("BlendMode = %q, want %q", ov.BlendMode, "BLEND_Opaque")
	}

	// Anything but the literal word true reads as false, the way the
	// original importer compared the raw token text.
	if ov.TwoSided == nil || *ov.TwoSided {
		t.Fatalf("TwoSided = %v, want false", ov.TwoSided)
	}

	if ov.OpacityMaskClipValue == nil || *ov.OpacityMaskClipValue != 1.0 {
		t.Fatalf("OpacityMaskClipValue = %v, want 1.0", ov.OpacityMaskClipValue)
	}
}

func TestMaterialSpacedParamName(t *testing.T) {
	input := `TextureParameterValues[1] =
{
	TextureParameterValues[0] =
	{
		ParameterInfo = { Name = Diffuse Map A }
		ParameterValue = Texture2D'/Game/T_D.T_D'
	}
}
`

	doc, err := parser.Parse(input, lexer.Legacy())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	desc, err := Material(doc)
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}

	expected := []entity.TextureBinding{
		{Param: "Diffuse Map A", Texture: "/Game/T_D.T_D"},
	}
	if diff := deep.Equal(desc.Textures, expected); diff != nil {
		t.Fatalf("unexpected bindings: %v", diff)
	}
}

func TestMaterialBadShape(t *testing.T) {
	tests := []string{
		"TextureParameterValues = { TextureParameterValues[0] = {} }",
		"TextureParameterValues[1] = 5",
		"TextureParameterValues[1] = { TextureParameterValues[0] = 5 }",
		`TextureParameterValues[1] =
{
	TextureParameterValues[0] = { ParameterValue = Texture2D'/Game/T.T' }
}
`,
		`TextureParameterValues[1] =
{
	TextureParameterValues[0] =
	{
		ParameterInfo = { Index = -1 }
		ParameterValue = Texture2D'/Game/T.T'
	}
}
`,
		"BasePropertyOverrides[0] = {}",
		"BasePropertyOverrides = { OpacityMaskClipValue = 'high' }",
		"BasePropertyOverrides = 5",
	}

	for _, input := range tests {
		_, err := Material(mustParse(t, input))
		badInput(t, err)
	}
}

func TestMaterialSkipsUnusedSlots(t *testing.T) {
	input := `TextureParameterValues[2] =
{
	TextureParameterValues[0] =
	{
		ParameterInfo = { Name = Diffuse }
		ParameterValue = None
	}
	TextureParameterValues[1] =
	{
		ParameterInfo = { Name = Normal }
	}
}
`

	desc, err := Material(mustParse(t, input))
	if err != nil {
		t.Fatalf("Material failed: %v", err)
	}

	if len(desc.Textures) != 0 {
		t.Fatalf("expected no bindings, got %v", desc.Textures)
	}
}
