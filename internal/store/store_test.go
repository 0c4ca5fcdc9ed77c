package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/studiowebux/restadmin/internal/types"
)

var testModels = []types.ModelDef{
	{Name: "user", Fields: []types.FieldDef{
		{Name: "id", Type: "hidden"},
		{Name: "name", Required: true},
		{Name: "age", Type: "number"},
		{Name: "active", Type: "checkbox"},
	}},
	{Name: "product", Fields: []types.FieldDef{
		{Name: "title"},
	}},
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "admin.db"), testModels)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Models(t *testing.T) {
	s := openTestStore(t)

	got := s.Models()
	if len(got) != 2 || got[0] != "product" || got[1] != "user" {
		t.Errorf("Expected [product user], got %v", got)
	}
	if _, err := s.Model("order"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("Expected ErrUnknownModel, got %v", err)
	}
}

func TestStore_CRUDRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.Create(ctx, "user", types.Record{
		"id":      "999",
		"name":    "Ada",
		"age":     json.Number("36"),
		"active":  true,
		"ignored": "not declared",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id != 1 {
		t.Errorf("Expected generated id 1, got %d", id)
	}

	rec, err := s.Get(ctx, "user", id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec["name"] != "Ada" {
		t.Errorf("Expected name Ada, got %v", rec["name"])
	}
	if rec["age"] != int64(36) {
		t.Errorf("Expected age 36, got %#v", rec["age"])
	}
	if rec["active"] != true {
		t.Errorf("Expected active true, got %#v", rec["active"])
	}
	if _, ok := rec["ignored"]; ok {
		t.Error("Undeclared field should not be stored")
	}

	if err := s.Update(ctx, "user", id, types.Record{"name": "Grace"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	records, err := s.List(ctx, "user")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0]["name"] != "Grace" {
		t.Errorf("Expected updated record, got %v", records)
	}
	if records[0]["age"] != int64(36) {
		t.Errorf("Update should keep other fields, got %v", records[0]["age"])
	}

	if err := s.Delete(ctx, "user", id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "user", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestStore_ListEmpty(t *testing.T) {
	records, err := openTestStore(t).List(context.Background(), "product")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", records)
	}
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.Update(ctx, "user", 1, types.Record{"unknown": "x"}); !errors.Is(err, ErrNoFields) {
		t.Errorf("Expected ErrNoFields, got %v", err)
	}
	if err := s.Update(ctx, "user", 42, types.Record{"name": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for update, got %v", err)
	}
	if err := s.Delete(ctx, "user", 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for delete, got %v", err)
	}
	if _, err := s.List(ctx, "order"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("Expected ErrUnknownModel, got %v", err)
	}
	// name is NOT NULL
	if _, err := s.Create(ctx, "user", types.Record{"age": json.Number("3")}); err == nil {
		t.Error("Expected constraint error for missing required field")
	}
}

func TestStore_NestedValuesStoredAsJSON(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.Create(ctx, "product", types.Record{"title": map[string]any{"en": "Chair"}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	rec, err := s.Get(ctx, "product", id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec["title"] != `{"en":"Chair"}` {
		t.Errorf("Expected JSON text, got %v", rec["title"])
	}
}

func TestStore_MigrationsRecorded(t *testing.T) {
	s := openTestStore(t)

	history, err := s.Migrations(context.Background())
	if err != nil {
		t.Fatalf("Migrations failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected one migration per model, got %+v", history)
	}
	if history[0].Version != 1 || history[0].Name != "create table user" {
		t.Errorf("Unexpected first migration %+v", history[0])
	}
}
