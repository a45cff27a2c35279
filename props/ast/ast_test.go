package ast

import (
	"encoding/json"
	"testing"
)

func sampleDoc() *Document {
	return &Document{Defs: []*Definition{
		{Name: "Parent", Value: &Path{Class: "Material", Target: "/Game/Base.Base"}},
		{Name: "Materials", Index: 0, Indexed: true, Value: &Path{Class: "MI", Target: "/Game/A.A"}},
		{Name: "Materials", Index: 1, Indexed: true, Value: &Path{Class: "MI", Target: "/Game/B.B"}},
		{Name: "Tags", Value: &EmptyList{}},
	}}
}

func TestFind(t *testing.T) {
	doc := sampleDoc()

	if got := doc.Find("Parent"); got == nil || got.Value.(*Path).Target != "/Game/Base.Base" {
		t.Fatalf("Find(Parent) = %+v", got)
	}
	if got := doc.Find("Missing"); got != nil {
		t.Fatalf("Find(Missing) = %+v, want nil", got)
	}

	all := doc.FindAll("Materials")
	if len(all) != 2 {
		t.Fatalf("FindAll(Materials) returned %d definitions, want 2", len(all))
	}
	if all[0].Index != 0 || all[1].Index != 1 {
		t.Fatalf("FindAll(Materials) indexes = %d, %d; want 0, 1", all[0].Index, all[1].Index)
	}
}

func TestConstText(t *testing.T) {
	tests := []struct {
		c    *Const
		want string
	}{
		{&Const{Kind: IntLit, Raw: "0x1F", Int: 31}, "0x1F"},
		{&Const{Kind: FloatLit, Raw: "2.5", Float: 2.5}, "2.5"},
		{&Const{Kind: BoolLit, Raw: "true", Bool: true}, "true"},
		{&Const{Kind: DoubleQuotedLit, Raw: `"hi"`, Str: "hi"}, "hi"},
		{&Const{Kind: SingleQuotedLit, Raw: "'hi'", Str: "hi"}, "hi"},
		{&Const{Kind: UnquotedLit, Raw: "Diffuse Map", Str: "Diffuse Map"}, "Diffuse Map"},
		{&Const{Kind: CallLit, Raw: "BLEND_Masked (1)", Call: &Call{Callee: "BLEND_Masked", Arg: &Const{Kind: IntLit, Raw: "1", Int: 1}}}, "BLEND_Masked (1)"},
	}

	for _, tt := range tests {
		if got := tt.c.Text(); got != tt.want {
			t.Fatalf("Text(%v const %q) = %q, want %q", tt.c.Kind, tt.c.Raw, got, tt.want)
		}
	}
}

func TestDocumentJSON(t *testing.T) {
	doc := &Document{Defs: []*Definition{
		{Name: "Flags", Value: &Const{Kind: IntLit, Raw: "0x1F", Int: 31}},
		{Name: "Materials", Index: 2, Indexed: true, Value: &ConstList{Items: []*Const{
			{Kind: DoubleQuotedLit, Raw: `"A"`, Str: "A"},
		}}},
		{Name: "Tags", Value: &EmptyList{}},
	}}

	got, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"defs":[` +
		`{"name":"Flags","value":{"kind":"int","raw":"0x1F","value":31}},` +
		`{"name":"Materials","index":2,"value":{"kind":"list","items":[{"kind":"double_quoted","raw":"\"A\"","value":"A"}]}},` +
		`{"name":"Tags","value":{"kind":"empty_list"}}]}`

	if string(got) != want {
		t.Fatalf("Marshal =\n%s\nwant\n%s", got, want)
	}
}
