// Package store persists admin models in SQLite, one table per model.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/restadmin/internal/migrations"
	"github.com/studiowebux/restadmin/internal/types"
)

var (
	// ErrNotFound is returned when no row has the requested id
	ErrNotFound = errors.New("Item not found")
	// ErrNoFields is returned when an update carries no declared field
	ErrNoFields = errors.New("No fields to update")
	// ErrUnknownModel is returned for models that are not declared
	ErrUnknownModel = errors.New("Model not found")
)

// Store is a SQLite-backed record store. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	models map[string]types.ModelDef
	names  []string
}

// Open opens (or creates) the database at path and migrates it to the
// declared models
func Open(ctx context.Context, path string, models []types.ModelDef) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := migrations.Run(ctx, db, models); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &Store{db: db, models: make(map[string]types.ModelDef, len(models))}
	for _, m := range models {
		s.models[m.Name] = m
		s.names = append(s.names, m.Name)
	}
	sort.Strings(s.names)

	return s, nil
}

// Migrations returns the schema changes applied to the database so far
func (s *Store) Migrations(ctx context.Context) ([]migrations.Migration, error) {
	return migrations.Applied(ctx, s.db)
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Models returns the declared model names, sorted
func (s *Store) Models() []string {
	return append([]string{}, s.names...)
}

// Model returns a declared model
func (s *Store) Model(name string) (types.ModelDef, error) {
	m, ok := s.models[name]
	if !ok {
		return types.ModelDef{}, ErrUnknownModel
	}
	return m, nil
}

// List returns every row of a model ordered by id
func (s *Store) List(ctx context.Context, model string) ([]types.Record, error) {
	if _, err := s.Model(model); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s" ORDER BY id`, model))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", model, err)
	}
	defer rows.Close()

	records := []types.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns a single row
func (s *Store) Get(ctx context.Context, model string, id int64) (types.Record, error) {
	if _, err := s.Model(model); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s" WHERE id = ?`, model), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", model, id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return scanRecord(rows)
}

// Create inserts the declared fields present in rec and returns the new id
func (s *Store) Create(ctx context.Context, model string, rec types.Record) (int64, error) {
	m, err := s.Model(model)
	if err != nil {
		return 0, err
	}

	columns, values, err := declaredValues(m, rec)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`INSERT INTO "%s" DEFAULT VALUES`, model)
	if len(columns) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
		query = fmt.Sprintf(`INSERT INTO "%s" (%s) VALUES (%s)`, model, quoteAll(columns), placeholders)
	}

	result, err := s.db.ExecContext(ctx, query, values...)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", model, err)
	}
	return result.LastInsertId()
}

// Update sets the declared fields present in rec
func (s *Store) Update(ctx context.Context, model string, id int64, rec types.Record) error {
	m, err := s.Model(model)
	if err != nil {
		return err
	}

	columns, values, err := declaredValues(m, rec)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return ErrNoFields
	}

	assignments := make([]string, len(columns))
	for i, c := range columns {
		assignments[i] = fmt.Sprintf(`"%s" = ?`, c)
	}

	query := fmt.Sprintf(`UPDATE "%s" SET %s WHERE id = ?`, model, strings.Join(assignments, ", "))
	result, err := s.db.ExecContext(ctx, query, append(values, id)...)
	if err != nil {
		return fmt.Errorf("failed to update %s %d: %w", model, id, err)
	}
	return requireAffected(result)
}

// Delete removes a row
func (s *Store) Delete(ctx context.Context, model string, id int64) error {
	if _, err := s.Model(model); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM "%s" WHERE id = ?`, model), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", model, id, err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// declaredValues picks the model's fields (id excluded) present in rec, in
// declaration order
func declaredValues(m types.ModelDef, rec types.Record) ([]string, []any, error) {
	var (
		columns []string
		values  []any
	)
	for _, f := range m.Fields {
		if f.Name == types.IDField {
			continue
		}
		v, ok := rec[f.Name]
		if !ok {
			continue
		}
		sv, err := sqlValue(v)
		if err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		columns = append(columns, f.Name)
		values = append(values, sv)
	}
	return columns, values, nil
}

// sqlValue converts decoded JSON into a driver value; nested values are
// stored as JSON text
func sqlValue(v any) (any, error) {
	switch val := v.(type) {
	case nil, string, bool, int64, float64:
		return val, nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		return val.Float64()
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	default:
		return fmt.Sprint(val), nil
	}
}

func scanRecord(rows *sql.Rows) (types.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}
	if err := rows.Scan(pointers...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	rec := make(types.Record, len(columns))
	for i, c := range columns {
		if b, ok := values[i].([]byte); ok {
			rec[c] = string(b)
			continue
		}
		rec[c] = values[i]
	}
	return rec, nil
}

func quoteAll(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = `"` + c + `"`
	}
	return strings.Join(quoted, ", ")
}
