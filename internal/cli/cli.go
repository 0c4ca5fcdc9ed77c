package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/studiowebux/restadmin/internal/api"
	"github.com/studiowebux/restadmin/internal/filter"
	"github.com/studiowebux/restadmin/internal/panel"
	"github.com/studiowebux/restadmin/internal/schema"
	"github.com/studiowebux/restadmin/internal/types"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ListOptions contains options for listing records in CLI mode
type ListOptions struct {
	Model        string
	OutputFormat string                    // json, yaml, text
	Filter       string                    // JMESPath filter expression
	Query        string                    // JMESPath query
	Models       map[string]types.ModelDef // configured models (column order)
}

// List prints every record of a model
func List(ctx context.Context, client *api.Client, opts ListOptions, w io.Writer) error {
	if opts.Model == "" {
		return fmt.Errorf("no model given")
	}
	if opts.Filter != "" && !filter.IsValidJMESPath(opts.Filter) {
		return fmt.Errorf("invalid --filter expression %q", opts.Filter)
	}
	if opts.Query != "" && !filter.IsValidJMESPath(opts.Query) {
		return fmt.Errorf("invalid --query expression %q", opts.Query)
	}

	records, err := client.List(ctx, opts.Model)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", opts.Model, err)
	}

	if opts.Filter != "" || opts.Query != "" {
		result, err := filter.Apply(records, opts.Filter, opts.Query)
		if err != nil {
			return err
		}
		if opts.OutputFormat == "" || opts.OutputFormat == "text" {
			opts.OutputFormat = "json"
		}
		return writeOutput(w, result, opts.OutputFormat)
	}

	if opts.OutputFormat != "" && opts.OutputFormat != "text" {
		return writeOutput(w, records, opts.OutputFormat)
	}

	fields := schema.Fields(schema.Resolve(opts.Model, opts.Models, records))
	fmt.Fprintln(w, renderTable(records, fields))
	return nil
}

// WriteOptions contains options for create and update
type WriteOptions struct {
	Model        string
	ID           string   // update only
	Assignments  []string // key=value pairs from -e flag
	OutputFormat string
}

// Create posts a record built from key=value assignments
func Create(ctx context.Context, client *api.Client, opts WriteOptions, w io.Writer) error {
	rec, err := ParseAssignments(opts.Assignments)
	if err != nil {
		return err
	}

	result, err := client.Create(ctx, opts.Model, rec)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.Model, err)
	}
	return writeOutput(w, result, opts.OutputFormat)
}

// Update puts a partial record built from key=value assignments
func Update(ctx context.Context, client *api.Client, opts WriteOptions, w io.Writer) error {
	if opts.ID == "" {
		return fmt.Errorf("no id given")
	}

	rec, err := ParseAssignments(opts.Assignments)
	if err != nil {
		return err
	}

	result, err := client.Update(ctx, opts.Model, opts.ID, rec)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", opts.Model, opts.ID, err)
	}
	return writeOutput(w, result, opts.OutputFormat)
}

// DeleteOptions contains options for delete
type DeleteOptions struct {
	Model string
	ID    string
	Yes   bool      // skip confirmation
	In    io.Reader // confirmation input (default: stdin, which must be a terminal)
}

// stdinIsTerminal is swapped in tests
var stdinIsTerminal = IsInteractive

// Delete removes a record after confirmation
func Delete(ctx context.Context, client *api.Client, opts DeleteOptions, w io.Writer) error {
	if opts.ID == "" {
		return fmt.Errorf("no id given")
	}

	if !opts.Yes {
		in := opts.In
		if in == nil {
			if !stdinIsTerminal() {
				return fmt.Errorf("refusing to delete %s %s: stdin is not a terminal (use --yes)", opts.Model, opts.ID)
			}
			in = os.Stdin
		}
		question := fmt.Sprintf("Delete %s %s? This cannot be undone.", opts.Model, opts.ID)
		ok, err := Confirm(in, w, question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Aborted")
			return nil
		}
	}

	if err := client.Delete(ctx, opts.Model, opts.ID); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", opts.Model, opts.ID, err)
	}
	fmt.Fprintln(w, "Deleted successfully")
	return nil
}

// ParseAssignments turns key=value pairs into a record. Empty values are
// dropped and values are sent as strings, matching the panel form.
func ParseAssignments(pairs []string) (types.Record, error) {
	rec := make(types.Record)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", pair)
		}
		if value == "" {
			continue
		}
		rec[key] = value
	}
	return rec, nil
}

// Confirm asks a yes/no question; anything but y/yes is a no
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s Proceed? [y/N] ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// IsInteractive checks if stdin is a terminal (not piped)
func IsInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// renderTable renders records the way the panel table shows them
func renderTable(records []types.Record, fields []types.Field) string {
	headers := make([]string, 0, len(fields)+1)
	headers = append(headers, types.IDField)
	for _, f := range fields {
		headers = append(headers, f.Name)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, row := range panel.BuildRows(records, fields) {
		if row.Placeholder {
			t.Row(panel.NoDataMessage)
			continue
		}
		t.Row(append([]string{row.ID}, row.Cells...)...)
	}

	return t.Render()
}

// writeOutput formats v as json, yaml or text
func writeOutput(w io.Writer, v any, format string) error {
	out, err := formatOutput(v, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

func formatOutput(v any, format string) (string, error) {
	plain, err := normalize(v)
	if err != nil {
		return "", err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(plain, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "yaml":
		data, err := yaml.Marshal(plain)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil

	case "text", "":
		return formatText(plain), nil

	default:
		return "", fmt.Errorf("unknown output format %q (use json, yaml or text)", format)
	}
}

// formatText prints objects as sorted key: value lines
func formatText(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return types.FormatValue(v)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, types.FormatValue(obj[k])))
	}
	return strings.Join(lines, "\n")
}

// normalize round-trips through JSON so json.Number values become plain
// numbers for the YAML encoder
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	var plain any
	if err := json.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	return plain, nil
}
