package tui

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/studiowebux/restadmin/internal/types"
)

type fakeAPI struct {
	mu       sync.Mutex
	records  string
	requests []string
	bodies   []map[string]any
	// status/body returned for writes
	writeStatus int
	writeBody   string
}

func (f *fakeAPI) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	if r.Method == http.MethodGet {
		w.Write([]byte(f.records))
		return
	}

	data, _ := io.ReadAll(r.Body)
	var body map[string]any
	json.Unmarshal(data, &body)
	f.bodies = append(f.bodies, body)

	status := f.writeStatus
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if f.writeBody != "" {
		w.Write([]byte(f.writeBody))
	} else {
		w.Write([]byte(`{"message":"ok"}`))
	}
}

var userInputs = []types.Field{
	{Name: "id", InputType: "hidden"},
	{Name: "name", InputType: "text"},
	{Name: "email", InputType: "email"},
	{Name: "active", InputType: "checkbox"},
}

const twoUsers = `[{"id":1,"name":"Ada","email":"ada@x.io","active":true},{"id":2,"name":"Grace"}]`

func TestNew_LoadsRecords(t *testing.T) {
	api := &fakeAPI{records: twoUsers}
	m, _ := CreateTestModel(t, api.handler, userInputs)

	AssertModelField(t, "mode", m.mode(), ModeTable)
	AssertModelField(t, "loaded", m.state.Loaded, true)
	AssertModelField(t, "records", len(m.state.Records), 2)
	AssertModelField(t, "selected", m.selectedID(), "1")

	view := m.View()
	for _, want := range []string{"Admin: user", "2 records", "Ada", "Grace", "name", "email"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q:\n%s", want, view)
		}
	}
}

func TestNew_LoadFailureNotifies(t *testing.T) {
	m, _ := CreateTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"db down"}`))
	}, userInputs)

	if len(m.state.Notifications) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(m.state.Notifications))
	}
	AssertModelField(t, "message", m.state.Notifications[0].Message, "Failed to load data: db down")
	if !strings.Contains(m.View(), "Failed to load data: db down") {
		t.Error("Expected notification in view")
	}
}

func TestAdd_SubmitPostsNonEmptyFields(t *testing.T) {
	api := &fakeAPI{records: twoUsers}
	m, _ := CreateTestModel(t, api.handler, userInputs)

	next := PressKey(t, *m, "a")
	AssertModelField(t, "mode", next.mode(), ModeForm)
	if !strings.Contains(next.View(), "Add item") {
		t.Errorf("Expected create modal title:\n%s", next.View())
	}

	next = TypeText(t, next, "Linus")
	next = PressKey(t, next, "tab")
	next = PressKey(t, next, "tab")
	next = PressKey(t, next, " ") // toggle active
	next = PressKey(t, next, "enter")

	AssertModelField(t, "mode after save", next.mode(), ModeTable)

	api.mu.Lock()
	defer api.mu.Unlock()
	if diff := cmp.Diff([]string{"GET /api/user", "POST /api/user", "GET /api/user"}, api.requests); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
	want := map[string]any{"name": "Linus", "active": "true"}
	if diff := cmp.Diff(want, api.bodies[0]); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
	AssertModelField(t, "notification", next.state.Notifications[0].Message, "Saved successfully")
}

func TestSubmitFailure_KeepsModalOpen(t *testing.T) {
	api := &fakeAPI{records: twoUsers, writeStatus: http.StatusBadRequest, writeBody: `{"detail":"bad"}`}
	m, _ := CreateTestModel(t, api.handler, userInputs)

	next := PressKey(t, *m, "a")
	next = TypeText(t, next, "x")
	next = PressKey(t, next, "enter")

	AssertModelField(t, "mode", next.mode(), ModeForm)
	AssertModelField(t, "submitting", next.state.Submitting, false)
	AssertModelField(t, "input kept", next.inputs[0].Value(), "x")
	AssertModelField(t, "notification", next.state.Notifications[0].Message, "Save failed: bad")

	if !strings.Contains(next.View(), "Save failed: bad") {
		t.Errorf("Expected error inside modal view:\n%s", next.View())
	}
}

func TestEdit_PopulatesInputsAndPuts(t *testing.T) {
	api := &fakeAPI{records: twoUsers}
	m, _ := CreateTestModel(t, api.handler, userInputs)

	next := PressKey(t, *m, "e")
	AssertModelField(t, "mode", next.mode(), ModeForm)
	AssertModelField(t, "name", next.inputs[0].Value(), "Ada")
	AssertModelField(t, "email", next.inputs[1].Value(), "ada@x.io")
	AssertModelField(t, "active", next.inputs[2].Value(), "true")

	next = PressKey(t, next, "enter")

	api.mu.Lock()
	defer api.mu.Unlock()
	if api.requests[1] != "PUT /api/user/1" {
		t.Errorf("Expected PUT /api/user/1, got %s", api.requests[1])
	}
}

func TestEsc_ClosesModalWithoutRequest(t *testing.T) {
	api := &fakeAPI{records: twoUsers}
	m, _ := CreateTestModel(t, api.handler, userInputs)

	next := PressKey(t, *m, "a")
	next = PressKey(t, next, "esc")

	AssertModelField(t, "mode", next.mode(), ModeTable)
	AssertModelField(t, "requests", len(api.requests), 1)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	api := &fakeAPI{records: twoUsers}
	m, _ := CreateTestModel(t, api.handler, userInputs)

	next := PressKey(t, *m, "j")
	next = PressKey(t, next, "d")
	AssertModelField(t, "mode", next.mode(), ModeConfirm)
	if !strings.Contains(next.View(), "Delete record 2? This cannot be undone.") {
		t.Errorf("Expected confirmation dialog:\n%s", next.View())
	}

	cancelled := PressKey(t, next, "n")
	AssertModelField(t, "mode after cancel", cancelled.mode(), ModeTable)
	AssertModelField(t, "requests after cancel", len(api.requests), 1)

	confirmed := PressKey(t, next, "y")
	AssertModelField(t, "mode after confirm", confirmed.mode(), ModeTable)

	api.mu.Lock()
	defer api.mu.Unlock()
	if diff := cmp.Diff([]string{"GET /api/user", "DELETE /api/user/2", "GET /api/user"}, api.requests); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
	AssertModelField(t, "notification", confirmed.state.Notifications[0].Message, "Deleted successfully")
}

func TestSearch_FiltersLive(t *testing.T) {
	api := &fakeAPI{records: twoUsers}
	m, _ := CreateTestModel(t, api.handler, userInputs)

	next := PressKey(t, *m, "/")
	AssertModelField(t, "mode", next.mode(), ModeSearch)

	next = TypeText(t, next, "grace")
	AssertModelField(t, "visible", len(next.visibleRows()), 1)
	AssertModelField(t, "selected", next.selectedID(), "2")
	AssertModelField(t, "requests", len(api.requests), 1)

	next = PressKey(t, next, "enter")
	AssertModelField(t, "mode after enter", next.mode(), ModeTable)
	AssertModelField(t, "search kept", next.state.Search, "grace")

	next = PressKey(t, next, "esc")
	AssertModelField(t, "visible after clear", len(next.visibleRows()), 2)
}

func TestSearch_RefreshMarksTermNotApplied(t *testing.T) {
	api := &fakeAPI{records: twoUsers}
	m, _ := CreateTestModel(t, api.handler, userInputs)

	next := PressKey(t, *m, "/")
	next = TypeText(t, next, "grace")
	next = PressKey(t, next, "enter")
	if !strings.Contains(next.View(), "1 of 2 records") {
		t.Errorf("Expected filtered count in header:\n%s", next.View())
	}

	next = PressKey(t, next, "r")
	AssertModelField(t, "visible after refresh", len(next.visibleRows()), 2)
	view := next.View()
	if !strings.Contains(view, "Search: grace (not applied)") {
		t.Errorf("Expected stale search marker in header:\n%s", view)
	}
	if !strings.Contains(view, "2 records") || strings.Contains(view, "of 2 records") {
		t.Errorf("Expected unfiltered count in header:\n%s", view)
	}
}

func TestCopy_WritesSelectedRecord(t *testing.T) {
	api := &fakeAPI{records: twoUsers}
	m, copied := CreateTestModel(t, api.handler, userInputs)

	next := PressKey(t, *m, "y")

	if len(*copied) != 1 || !strings.Contains((*copied)[0], `"name": "Ada"`) {
		t.Errorf("Unexpected clipboard contents %v", *copied)
	}
	AssertModelField(t, "notification", next.state.Notifications[0].Message, "Record 1 copied to clipboard")
}

func TestEmptyTable_ShowsNoData(t *testing.T) {
	m, _ := CreateTestModel(t, (&fakeAPI{records: `[]`}).handler, userInputs)

	if !strings.Contains(m.View(), "No data") {
		t.Errorf("Expected placeholder:\n%s", m.View())
	}

	// edit on an empty table reports the missing row
	next := PressKey(t, *m, "e")
	AssertModelField(t, "mode", next.mode(), ModeTable)
	AssertModelField(t, "notification", next.state.Notifications[0].Kind, types.NotificationError)
}

func TestQuit(t *testing.T) {
	m, _ := CreateTestModel(t, (&fakeAPI{records: `[]`}).handler, userInputs)

	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	AssertModelField(t, "quitting", next.(Model).quitting, true)
}
