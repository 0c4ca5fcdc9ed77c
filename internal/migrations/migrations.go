package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/studiowebux/restadmin/internal/types"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name is usable as a table or column name
func ValidIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

// ColumnType maps a field's input type to its SQLite column type
func ColumnType(f types.FieldDef) string {
	switch f.InputType() {
	case "number":
		return "NUMERIC"
	case "checkbox":
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// InitSchema creates the migrations tracking table
func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// Plan computes the migrations needed to bring the database in line with the
// declared models: one per missing table and one per missing column.
// Versions are left at zero; Run numbers them.
func Plan(ctx context.Context, db *sql.DB, models []types.ModelDef) ([]Migration, error) {
	var plan []Migration
	for _, m := range models {
		if err := validateModel(m); err != nil {
			return nil, err
		}

		columns, err := tableColumns(ctx, db, m.Name)
		if err != nil {
			return nil, err
		}

		if len(columns) == 0 {
			plan = append(plan, createTable(m))
			continue
		}

		for _, f := range m.Fields {
			if f.Name == types.IDField || columns[strings.ToLower(f.Name)] {
				continue
			}
			plan = append(plan, Migration{
				Name: fmt.Sprintf("add column %s.%s", m.Name, f.Name),
				// SQLite rejects ADD COLUMN ... NOT NULL without a default
				Up:   fmt.Sprintf(`ALTER TABLE "%s" ADD COLUMN "%s" %s`, m.Name, f.Name, ColumnType(f)),
			})
		}
	}
	return plan, nil
}

// Run applies pending migrations for the given models
func Run(ctx context.Context, db *sql.DB, models []types.ModelDef) ([]Migration, error) {
	if err := InitSchema(ctx, db); err != nil {
		return nil, err
	}

	plan, err := Plan(ctx, db, models)
	if err != nil {
		return nil, err
	}

	currentVersion, err := GetCurrentVersion(ctx, db)
	if err != nil {
		return nil, err
	}

	for i := range plan {
		migration := &plan[i]
		migration.Version = currentVersion + i + 1

		if _, err := db.ExecContext(ctx, migration.Up); err != nil {
			return nil, fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err = db.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return plan, nil
}

// GetCurrentVersion returns the latest applied migration version
func GetCurrentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current migration version: %w", err)
	}
	return version, nil
}

// Applied lists the recorded migrations in version order
func Applied(ctx context.Context, db *sql.DB) ([]Migration, error) {
	rows, err := db.QueryContext(ctx, "SELECT version, name FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	defer rows.Close()

	var applied []Migration
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		applied = append(applied, m)
	}
	return applied, rows.Err()
}

func createTable(m types.ModelDef) Migration {
	columns := []string{`"id" INTEGER PRIMARY KEY AUTOINCREMENT`}
	for _, f := range m.Fields {
		if f.Name == types.IDField {
			continue
		}
		column := fmt.Sprintf(`"%s" %s`, f.Name, ColumnType(f))
		if f.Required {
			column += " NOT NULL"
		}
		columns = append(columns, column)
	}

	return Migration{
		Name: "create table " + m.Name,
		Up:   fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (%s)`, m.Name, strings.Join(columns, ", ")),
	}
}

// tableColumns returns the lowercased column names of a table, empty when
// the table does not exist
func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info("%s")`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		columns[strings.ToLower(name)] = true
	}
	return columns, rows.Err()
}

func validateModel(m types.ModelDef) error {
	if !ValidIdentifier(m.Name) {
		return fmt.Errorf("invalid model name %q", m.Name)
	}
	for _, f := range m.Fields {
		if !ValidIdentifier(f.Name) {
			return fmt.Errorf("invalid field name %q in model %s", f.Name, m.Name)
		}
	}
	return nil
}
