package keybinds

import "testing"

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		issue Issue
		want  string
	}{
		{
			Issue{Severity: SeverityWarning, Context: ContextTable, Key: "ctrl+c", Message: "reserved"},
			`warning: table "ctrl+c": reserved`,
		},
		{
			Issue{Severity: SeverityError, Context: ContextForm, Message: "submit has no key"},
			"error: form: submit has no key",
		},
	}

	for _, tt := range tests {
		if got := tt.issue.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestValidator_DefaultsAreClean(t *testing.T) {
	report := NewValidator().Validate(NewDefaultRegistry())
	if len(report.Issues) != 0 {
		t.Errorf("Expected no issues, got:\n%s", report.String())
	}
	if report.String() != "No issues found" {
		t.Errorf("String() = %q, want %q", report.String(), "No issues found")
	}
	if err := report.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestValidator_Warnings(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(ContextTable, "ctrl+c", ActionQuit)

	report := NewValidator().Validate(r)
	if len(report.Errors()) != 0 {
		t.Fatalf("Unexpected errors: %s", report.String())
	}
	// reserved rebinding + shadowing of the global ctrl+c
	if got := len(report.Warnings()); got != 2 {
		t.Errorf("len(Warnings()) = %d, want 2:\n%s", got, report.String())
	}
}

func TestValidator_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *Registry)
	}{
		{"unknown context", func(r *Registry) { r.Register(Context("bogus"), "x", ActionQuit) }},
		{"form without submit", func(r *Registry) { r.Unbind(ContextForm, ActionSubmit) }},
		{"confirm without cancel", func(r *Registry) { r.Unbind(ContextConfirm, ActionCancel) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewDefaultRegistry()
			tt.setup(r)

			report := NewValidator().Validate(r)
			if len(report.Errors()) != 1 {
				t.Errorf("len(Errors()) = %d, want 1:\n%s", len(report.Errors()), report.String())
			}
			if report.Err() == nil {
				t.Error("Err() = nil, want error")
			}
			if report.Issues[0].Severity != SeverityError {
				t.Errorf("first issue severity = %s, want errors sorted first", report.Issues[0].Severity)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"a", false},
		{"ctrl+s", false},
		{" ", false},
		{"", true},
		{"ctrl+", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := ValidateKey(tt.key); (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAction(t *testing.T) {
	if err := ValidateAction("submit"); err != nil {
		t.Errorf("ValidateAction(submit) error = %v", err)
	}
	for _, name := range []string{"", "execute"} {
		if err := ValidateAction(name); err == nil {
			t.Errorf("ValidateAction(%q) error = nil, want error", name)
		}
	}
}
