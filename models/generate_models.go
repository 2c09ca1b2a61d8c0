package models

import (
	"fmt"
	"io"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Column Mismatch Report Usage:

The report lists database columns that no field of the corresponding Go model maps to,
which usually means a column was added by hand or a field was renamed without a migration.

	site-backend generate --report-only

Example output:

	=== COLUMN MISMATCH REPORT ===
	--- Table: pages ---
	Found 1 columns not accounted for in model:
	  - legacy_slug
	--- Table: services ---
	All columns are accounted for in the model.
	=== SUMMARY ===
	Total mismatched columns across all tables: 1
*/

// AllModels returns one zero value per persisted model, in migration order.
func AllModels() []any {
	return []any{
		&Page{},
		&BlogPost{},
		&Service{},
		&Testimonial{},
		&ContactSubmission{},
		&Callout{},
	}
}

// GenerateModels migrates every model and writes gorm/gen query helpers to outPath.
func GenerateModels(db *gorm.DB, outPath string, report io.Writer) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})
	if err := migrateDB.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("error during models migration: %w", err)
	}

	if _, err := GenerateColumnMismatchReport(db, report); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(AllModels()...)
	g.Execute()

	return nil
}

// GenerateColumnMismatchReport writes, per model table, the database columns that no model field maps to.
// Tables that do not exist yet are reported and skipped. The result is keyed by table name.
func GenerateColumnMismatchReport(db *gorm.DB, w io.Writer) (map[string][]string, error) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	mismatchesByTable := make(map[string][]string)
	totalMismatches := 0

	for _, model := range AllModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("error parsing model %T: %w", model, err)
		}
		tableName := stmt.Schema.Table
		fmt.Fprintf(w, "--- Table: %s ---\n", tableName)

		if !db.Migrator().HasTable(model) {
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error getting columns for table %s: %w", tableName, err)
		}

		modelFields := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			modelFields[name] = true
		}

		var mismatches []string
		for _, column := range columnTypes {
			if !modelFields[column.Name()] {
				mismatches = append(mismatches, column.Name())
			}
		}
		sort.Strings(mismatches)

		if len(mismatches) == 0 {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
			continue
		}

		fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
		for _, col := range mismatches {
			fmt.Fprintf(w, "  - %s\n", col)
		}
		mismatchesByTable[tableName] = mismatches
		totalMismatches += len(mismatches)
	}

	fmt.Fprintln(w, "=== SUMMARY ===")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", totalMismatches)
	return mismatchesByTable, nil
}
