package panel

import (
	"strings"

	"github.com/studiowebux/restadmin/internal/types"
)

const (
	// EmptyCell is shown for fields a record does not carry
	EmptyCell = "-"
	// NoDataMessage fills the placeholder row of an empty table
	NoDataMessage = "No data"
)

// ActionKind names a row action
type ActionKind string

const (
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
)

// Action is a trigger bound to one record id
type Action struct {
	Kind ActionKind
	ID   string
}

// Row is one rendered table row
type Row struct {
	ID          string
	Cells       []string
	Actions     []Action
	Placeholder bool
	Span        int // columns spanned by the placeholder cell
}

// Text returns the row's visible text: the id followed by the data cells
func (r Row) Text() string {
	if r.Placeholder {
		return strings.Join(r.Cells, " ")
	}
	return r.ID + " " + strings.Join(r.Cells, " ")
}

// BuildRows rebuilds the table body from scratch. An empty record list
// yields a single placeholder row spanning every column.
func BuildRows(records []types.Record, fields []types.Field) []Row {
	if len(records) == 0 {
		return []Row{{
			Cells:       []string{NoDataMessage},
			Placeholder: true,
			Span:        len(fields) + 1,
		}}
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		id := rec.ID()
		cells := make([]string, 0, len(fields))
		for _, f := range fields {
			text, ok := rec.Text(f.Name)
			if !ok {
				text = EmptyCell
			}
			cells = append(cells, text)
		}
		rows = append(rows, Row{
			ID:    id,
			Cells: cells,
			Actions: []Action{
				{Kind: ActionEdit, ID: id},
				{Kind: ActionDelete, ID: id},
			},
		})
	}
	return rows
}

// Columns returns the table header: one column per field plus actions
func Columns(fields []types.Field) []string {
	cols := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		cols = append(cols, f.Name)
	}
	return append(cols, "actions")
}
