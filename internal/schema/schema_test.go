package schema

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/studiowebux/restadmin/internal/types"
)

func TestFields_ExcludesID(t *testing.T) {
	inputs := []types.Field{
		{Name: "id", InputType: "hidden"},
		{Name: "name", InputType: "text"},
		{Name: "", InputType: "submit"},
		{Name: "email", InputType: "email"},
	}

	want := []types.Field{
		{Name: "name", InputType: "text"},
		{Name: "email", InputType: "email"},
	}

	if diff := cmp.Diff(want, Fields(inputs)); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_PrefersConfiguredModel(t *testing.T) {
	defs := map[string]types.ModelDef{
		"user": {Name: "user", Fields: []types.FieldDef{{Name: "name"}, {Name: "age", Type: "number"}}},
	}
	records := []types.Record{{"id": json.Number("1"), "zzz": "x"}}

	got := Resolve("user", defs, records)
	want := []types.Field{{Name: "name", InputType: "text"}, {Name: "age", InputType: "number"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestInfer(t *testing.T) {
	records := []types.Record{
		{"id": json.Number("1"), "name": "a", "note": nil},
		{"id": json.Number("2"), "active": true, "note": "n", "age": json.Number("4")},
	}

	want := []types.Field{
		{Name: "active", InputType: "checkbox"},
		{Name: "age", InputType: "number"},
		{Name: "name", InputType: "text"},
		{Name: "note", InputType: "text"},
	}

	if diff := cmp.Diff(want, Infer(records)); diff != "" {
		t.Errorf("Infer() mismatch (-want +got):\n%s", diff)
	}
}

func TestInfer_Empty(t *testing.T) {
	if got := Infer(nil); len(got) != 0 {
		t.Errorf("Expected no inputs, got %v", got)
	}
}
