package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/studiowebux/restadmin/internal/api"
	"github.com/studiowebux/restadmin/internal/types"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func newTestClient(t *testing.T, status int, response string) (*api.Client, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := recordedRequest{Method: r.Method, Path: r.URL.Path}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			json.Unmarshal(data, &req.Body)
		}
		requests = append(requests, req)
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(api.Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client, &requests
}

const usersJSON = `[{"id":1,"name":"Ada","age":36},{"id":2,"name":"Grace"}]`

func TestList_TextTable(t *testing.T) {
	client, requests := newTestClient(t, http.StatusOK, usersJSON)

	var out bytes.Buffer
	err := List(context.Background(), client, ListOptions{Model: "user"}, &out)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if (*requests)[0].Path != "/api/user" {
		t.Errorf("Expected GET /api/user, got %s", (*requests)[0].Path)
	}

	text := out.String()
	for _, want := range []string{"id", "name", "age", "Ada", "36", "Grace", "-"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, text)
		}
	}
}

func TestList_ConfiguredColumns(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, usersJSON)
	models := map[string]types.ModelDef{
		"user": {Name: "user", Fields: []types.FieldDef{{Name: "name"}}},
	}

	var out bytes.Buffer
	if err := List(context.Background(), client, ListOptions{Model: "user", Models: models}, &out); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if strings.Contains(out.String(), "age") {
		t.Errorf("Expected only configured columns:\n%s", out.String())
	}
}

func TestList_JSONWithQuery(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, usersJSON)

	var out bytes.Buffer
	err := List(context.Background(), client, ListOptions{Model: "user", Query: "[].name"}, &out)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	var names []string
	if err := json.Unmarshal(out.Bytes(), &names); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out.String(), err)
	}
	if diff := cmp.Diff([]string{"Ada", "Grace"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestList_YAML(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `[{"id":1,"age":36}]`)

	var out bytes.Buffer
	if err := List(context.Background(), client, ListOptions{Model: "user", OutputFormat: "yaml"}, &out); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "age: 36") {
		t.Errorf("Expected unquoted number in YAML, got:\n%s", out.String())
	}
}

func TestCreate_DropsEmptyAssignments(t *testing.T) {
	client, requests := newTestClient(t, http.StatusOK, `{"id":3,"message":"user created successfully"}`)

	var out bytes.Buffer
	opts := WriteOptions{Model: "user", Assignments: []string{"name=Ada", "age=36", "email="}}
	if err := Create(context.Background(), client, opts, &out); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := (*requests)[0]
	if req.Method != http.MethodPost || req.Path != "/api/user" {
		t.Errorf("Unexpected request %s %s", req.Method, req.Path)
	}
	want := map[string]any{"name": "Ada", "age": "36"}
	if diff := cmp.Diff(want, req.Body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "message: user created successfully") {
		t.Errorf("Unexpected output %q", out.String())
	}
}

func TestUpdate_ReportsServerDetail(t *testing.T) {
	client, requests := newTestClient(t, http.StatusBadRequest, `{"detail":"No fields to update"}`)

	opts := WriteOptions{Model: "user", ID: "7", Assignments: []string{"name=x"}}
	err := Update(context.Background(), client, opts, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "No fields to update") {
		t.Errorf("Expected server detail in error, got %v", err)
	}
	if (*requests)[0].Method != http.MethodPut || (*requests)[0].Path != "/api/user/7" {
		t.Errorf("Unexpected request %+v", (*requests)[0])
	}
}

func TestDelete_Confirmation(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		yes          bool
		wantRequests int
	}{
		{"confirmed", "y\n", false, 1},
		{"declined", "n\n", false, 0},
		{"empty answer", "\n", false, 0},
		{"skip prompt", "", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, requests := newTestClient(t, http.StatusOK, `{"message":"user deleted successfully"}`)

			var out bytes.Buffer
			opts := DeleteOptions{Model: "user", ID: "9", Yes: tt.yes, In: strings.NewReader(tt.input)}
			if err := Delete(context.Background(), client, opts, &out); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if len(*requests) != tt.wantRequests {
				t.Errorf("Expected %d requests, got %d", tt.wantRequests, len(*requests))
			}
			if !tt.yes && !strings.Contains(out.String(), "Delete user 9? This cannot be undone. Proceed? [y/N]") {
				t.Errorf("Expected confirmation prompt, got %q", out.String())
			}
		})
	}
}

func TestDelete_RefusesPipedStdinWithoutYes(t *testing.T) {
	original := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	defer func() { stdinIsTerminal = original }()

	client, requests := newTestClient(t, http.StatusOK, `{}`)

	var out bytes.Buffer
	err := Delete(context.Background(), client, DeleteOptions{Model: "user", ID: "9"}, &out)
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Errorf("Expected error mentioning --yes, got %v", err)
	}
	if len(*requests) != 0 {
		t.Errorf("Expected no requests, got %d", len(*requests))
	}
}

func TestList_RejectsInvalidExpressions(t *testing.T) {
	tests := []struct {
		name string
		opts ListOptions
	}{
		{"filter", ListOptions{Model: "user", Filter: "[?name=="}},
		{"query", ListOptions{Model: "user", Query: "[].["}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, requests := newTestClient(t, http.StatusOK, usersJSON)

			var out bytes.Buffer
			err := List(context.Background(), client, tt.opts, &out)
			if err == nil || !strings.Contains(err.Error(), "--"+tt.name) {
				t.Errorf("Expected invalid --%s error, got %v", tt.name, err)
			}
			if len(*requests) != 0 {
				t.Errorf("Expected no request before validation, got %d", len(*requests))
			}
		})
	}
}

func TestParseAssignments(t *testing.T) {
	rec, err := ParseAssignments([]string{"a=1", "b=x=y", "c="})
	if err != nil {
		t.Fatalf("ParseAssignments failed: %v", err)
	}
	want := types.Record{"a": "1", "b": "x=y"}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseAssignments([]string{"novalue"}); err == nil {
		t.Error("Expected error for missing '='")
	}
}

func TestSelectorModel(t *testing.T) {
	m := newSelectorModel([]string{"product", "user"})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := next.(selectorModel)
	if result.choice != "user" {
		t.Errorf("Expected user, got %q", result.choice)
	}
	if cmd == nil {
		t.Error("Expected quit command")
	}
}

func TestSelectorModel_Cancel(t *testing.T) {
	m := newSelectorModel([]string{"product", "user"})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	result := next.(selectorModel)
	if result.choice != "" || !result.done {
		t.Errorf("choice = %q, done = %v, want empty and true", result.choice, result.done)
	}
}

func TestSelectModel_SingleModel(t *testing.T) {
	got, err := SelectModel([]string{"user"})
	if err != nil {
		t.Fatalf("SelectModel() error = %v", err)
	}
	if got != "user" {
		t.Errorf("SelectModel() = %q, want %q", got, "user")
	}
	if _, err := SelectModel(nil); err == nil {
		t.Error("SelectModel(nil) error = nil, want error")
	}
}
