package models

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Column Mismatch Report Usage:

Run `buildsy gen --report-only` to compare the live schema with the Go models
without generating anything. `buildsy gen` migrates, prints the same report
and then writes query helpers to --out.

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - legacy_score

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All lists every persisted model, in migration order.
func All() []any {
	return []any{&Project{}, &Vote{}, &Comment{}}
}

// AutoMigrate creates or updates the tables for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.Session(&gorm.Session{SkipDefaultTransaction: true}).AutoMigrate(All()...)
}

// GenerateModels migrates the schema and writes gorm/gen query helpers to outPath.
func GenerateModels(db *gorm.DB, outPath string, w io.Writer) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Project{}, Vote{}, Comment{})

	fmt.Fprintln(w, "Migrating models...")
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}

	if err := GenerateColumnMismatchReport(db, w); err != nil {
		return err
	}

	g.Execute()
	fmt.Fprintln(w, "Model generation complete!")
	return nil
}

// GenerateColumnMismatchReport prints database columns that no model field maps to.
func GenerateColumnMismatchReport(db *gorm.DB, w io.Writer) error {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("parse model %T: %w", model, err)
		}
		tableName := stmt.Schema.Table
		fmt.Fprintf(w, "\n--- Table: %s ---\n", tableName)

		if !db.Migrator().HasTable(tableName) {
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return fmt.Errorf("error querying columns for table %s: %w", tableName, err)
		}
		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		mismatches := findColumnMismatches(dbColumns, getModelFields(stmt.Schema))
		if len(mismatches) > 0 {
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			totalMismatches += len(mismatches)
		} else {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", totalMismatches)
	return nil
}

// getModelFields returns the column names gorm derives for a parsed model.
func getModelFields(s *schema.Schema) []string {
	var fields []string
	for _, field := range s.Fields {
		if field.DBName == "" || field.FieldType.Kind() == reflect.Struct && field.DataType == "" {
			continue
		}
		fields = append(fields, field.DBName)
	}
	return fields
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[strings.ToLower(field)] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[strings.ToLower(col)] {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}
