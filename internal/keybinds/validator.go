package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// Severity ranks a validation issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one problem found in a registry
type Issue struct {
	Severity Severity
	Context  Context
	Key      string // empty when the issue concerns an action or context
	Message  string
}

func (i Issue) Error() string {
	subject := string(i.Context)
	if i.Key != "" {
		subject = fmt.Sprintf("%s %q", i.Context, i.Key)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, subject, i.Message)
}

// Report collects the issues of one validation run, errors first
type Report struct {
	Issues []Issue
}

func (r *Report) add(severity Severity, context Context, key, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Severity: severity,
		Context:  context,
		Key:      key,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Errors returns the issues that make a registry unusable
func (r *Report) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the issues that are allowed but likely mistakes
func (r *Report) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Report) filter(severity Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// Err joins the error issues into one error, nil when there are none
func (r *Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, issue := range errs {
		lines[i] = issue.Error()
	}
	return fmt.Errorf("invalid keybindings:\n  %s", strings.Join(lines, "\n  "))
}

func (r *Report) String() string {
	if len(r.Issues) == 0 {
		return "No issues found"
	}
	var sb strings.Builder
	for _, issue := range r.Issues {
		sb.WriteString(issue.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Validator checks a registry for bindings that would trap or confuse the user
type Validator struct {
	reserved map[string]Action
	required map[Context][]Action
}

// NewValidator creates a validator with the panel's reserved keys and
// the actions every modal context needs
func NewValidator() *Validator {
	return &Validator{
		reserved: map[string]Action{"ctrl+c": ActionQuitForce},
		required: map[Context][]Action{
			ContextForm:    {ActionSubmit, ActionCancel},
			ContextSearch:  {ActionCancel},
			ContextConfirm: {ActionConfirm, ActionCancel},
		},
	}
}

// Validate runs every check against registry
func (v *Validator) Validate(registry *Registry) *Report {
	report := &Report{}

	for context, bindings := range registry.bindings {
		if !IsKnownContext(context) {
			report.add(SeverityError, context, "", "unknown context")
			continue
		}
		for key, action := range bindings {
			if want, ok := v.reserved[key]; ok && action != want {
				report.add(SeverityWarning, context, key, "reserved for %s, bound to %s", want, action)
			}
			if context == ContextGlobal {
				continue
			}
			if global, ok := registry.bindings[ContextGlobal][key]; ok && global != action {
				report.add(SeverityWarning, context, key, "shadows global %s with %s", global, action)
			}
		}
	}

	for context, actions := range v.required {
		for _, action := range actions {
			if len(registry.GetBinding(context, action)) == 0 {
				report.add(SeverityError, context, "", "%s has no key", action)
			}
		}
	}

	sort.SliceStable(report.Issues, func(i, j int) bool {
		a, b := report.Issues[i], report.Issues[j]
		if a.Severity != b.Severity {
			return a.Severity == SeverityError
		}
		if a.Context != b.Context {
			return a.Context < b.Context
		}
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return a.Message < b.Message
	})
	return report
}

// ValidateKey rejects empty keys and bare modifiers
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	switch key {
	case "ctrl+", "alt+", "shift+":
		return fmt.Errorf("modifier without key: %s", key)
	}
	return nil
}

// ValidateAction rejects names that are not panel actions
func ValidateAction(name string) error {
	if name == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !IsKnownAction(Action(name)) {
		return fmt.Errorf("unknown action %q", name)
	}
	return nil
}
