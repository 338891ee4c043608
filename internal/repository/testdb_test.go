package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// Tables are created by hand for SQLite compatibility; the postgres
// defaults in the model tags do not translate.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	statements := []string{
		`CREATE TABLE projects (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			name TEXT NOT NULL,
			description TEXT,
			version TEXT,
			platform TEXT,
			status TEXT NOT NULL DEFAULT 'DRAFT',
			priority TEXT NOT NULL DEFAULT 'MEDIUM',
			due_date DATETIME,
			created_by TEXT NOT NULL,
			archived_at DATETIME
		)`,
		`CREATE TABLE project_testers (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			tester_id TEXT NOT NULL,
			assigned_at DATETIME NOT NULL,
			UNIQUE (project_id, tester_id)
		)`,
		`CREATE TABLE testers (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			name TEXT NOT NULL,
			email TEXT UNIQUE,
			color TEXT
		)`,
		`CREATE TABLE modules (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			name TEXT NOT NULL,
			description TEXT,
			thumbnail_key TEXT,
			tags TEXT,
			created_by TEXT NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE test_cases (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			module_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			priority TEXT NOT NULL DEFAULT 'MEDIUM',
			display_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE checklist_modules (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			project_id TEXT NOT NULL,
			module_id TEXT NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE custom_test_cases (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			checklist_module_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			priority TEXT NOT NULL DEFAULT 'MEDIUM'
		)`,
		`CREATE TABLE checklist_results (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			checklist_module_id TEXT NOT NULL,
			test_case_id TEXT,
			custom_test_case_id TEXT,
			tester_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'PENDING',
			notes TEXT
		)`,
		`CREATE TABLE result_attachments (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			result_id TEXT NOT NULL,
			file_name TEXT NOT NULL,
			content_type TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			file_key TEXT NOT NULL,
			uploaded_by TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create schema: %v", err)
		}
	}

	return db
}
