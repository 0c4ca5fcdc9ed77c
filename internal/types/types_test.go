package types

import (
	"encoding/json"
	"testing"
)

func TestRecord_ID(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{"json number", Record{"id": json.Number("7")}, "7"},
		{"string id", Record{"id": "abc"}, "abc"},
		{"float id", Record{"id": float64(3)}, "3"},
		{"missing", Record{"name": "x"}, ""},
		{"null", Record{"id": nil}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.ID(); got != tt.want {
				t.Errorf("ID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecord_Text(t *testing.T) {
	r := Record{"name": "jo", "note": "", "age": json.Number("0"), "active": false, "gone": nil}

	if got, ok := r.Text("name"); !ok || got != "jo" {
		t.Errorf("Text(name) = %q, %v", got, ok)
	}
	if _, ok := r.Text("note"); ok {
		t.Error("empty string should report no value")
	}
	if _, ok := r.Text("gone"); ok {
		t.Error("null should report no value")
	}
	if _, ok := r.Text("missing"); ok {
		t.Error("missing field should report no value")
	}
	if got, ok := r.Text("age"); !ok || got != "0" {
		t.Errorf("Text(age) = %q, %v, want 0", got, ok)
	}
	if got, ok := r.Text("active"); !ok || got != "false" {
		t.Errorf("Text(active) = %q, %v, want false", got, ok)
	}
}

func TestDecodeRecords(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"id":1,"name":"a"},{"id":2,"name":"b"}]`))
	if err != nil {
		t.Fatalf("DecodeRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[1].ID() != "2" {
		t.Errorf("Expected id 2, got %s", records[1].ID())
	}

	if _, err := DecodeRecords([]byte(`{"detail":"nope"}`)); err == nil {
		t.Error("Expected error for non-array body")
	}
	if _, err := DecodeRecords([]byte(`[1,2]`)); err == nil {
		t.Error("Expected error for non-object items")
	}
}

func TestFormState(t *testing.T) {
	closed := FormClosed()
	if closed.IsOpen() {
		t.Error("closed form should not be open")
	}
	if _, ok := closed.EditingID(); ok {
		t.Error("closed form should not report an edit id")
	}

	creating := FormCreating()
	if !creating.IsOpen() || creating.Mode() != FormModeCreating {
		t.Errorf("unexpected creating state: %s", creating)
	}

	editing := FormEditing("9")
	id, ok := editing.EditingID()
	if !ok || id != "9" {
		t.Errorf("EditingID() = %q, %v", id, ok)
	}
	if editing.String() != "editing(9)" {
		t.Errorf("String() = %q", editing.String())
	}
}

func TestModelDef_FormInputs(t *testing.T) {
	m := ModelDef{Name: "user", Fields: []FieldDef{
		{Name: "id", Type: "hidden"},
		{Name: "name"},
		{Name: "age", Type: "number"},
	}}

	inputs := m.FormInputs()
	if len(inputs) != 3 {
		t.Fatalf("Expected 3 inputs, got %d", len(inputs))
	}
	if inputs[1].InputType != "text" {
		t.Errorf("Expected default type text, got %s", inputs[1].InputType)
	}
	if !m.HasField("age") || m.HasField("email") {
		t.Error("HasField returned unexpected result")
	}
}
