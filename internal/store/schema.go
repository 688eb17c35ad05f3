package store

import (
	"context"
	"fmt"
	"log/slog"

	"homehub/internal/domain"
)

// SchemaError aborts startup: a drop or create step failed and the remaining
// steps were not attempted.
type SchemaError struct {
	Step  string
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s %s: %v", e.Step, e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

type table struct {
	name  string
	model any
}

// tables is in foreign-key dependency order: every table only references
// tables before it.
var tables = []table{
	{"users", &domain.User{}},
	{"sessions", &domain.Session{}},
	{"devices", &domain.Device{}},
	{"wardrobes", &domain.WardrobeItem{}},
	{"sensordata", &domain.SensorReading{}},
}

// TableNames lists the schema in creation order.
func TableNames() []string {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.name)
	}
	return out
}

// Setup drops every table (dependents first) and recreates the schema.
// All existing data is lost; it is meant for cold-start initialisation.
func (s *Store) Setup(ctx context.Context) error {
	m := s.DB.WithContext(ctx).Migrator()

	for i := len(tables) - 1; i >= 0; i-- {
		t := tables[i]
		slog.Info("dropping table", "table", t.name)
		if err := m.DropTable(t.model); err != nil {
			return &SchemaError{Step: "drop", Table: t.name, Err: err}
		}
	}
	for _, t := range tables {
		slog.Info("creating table", "table", t.name)
		if err := m.CreateTable(t.model); err != nil {
			return &SchemaError{Step: "create", Table: t.name, Err: err}
		}
	}
	slog.Info("database schema ready", "tables", len(tables))
	return nil
}

// Migrate brings the schema up to date without dropping data.
func (s *Store) Migrate(ctx context.Context) error {
	db := s.DB.WithContext(ctx)
	for _, t := range tables {
		if err := db.AutoMigrate(t.model); err != nil {
			return &SchemaError{Step: "migrate", Table: t.name, Err: err}
		}
	}
	return nil
}
