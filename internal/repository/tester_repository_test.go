package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
)

func TestTesterRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTesterRepository(db)
	ctx := context.Background()

	email := "dana@example.com"
	tester := &domain.Tester{Name: "Dana", Email: &email}
	if err := repo.Create(ctx, tester); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByEmail(ctx, "dana@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if found == nil || found.ID != tester.ID {
		t.Errorf("FindByEmail() = %v, want %v", found, tester.ID)
	}

	found, err = repo.FindByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() unknown email error = %v", err)
	}
	if found != nil {
		t.Errorf("FindByEmail() = %v, want nil for an unknown email", found)
	}
}

func TestTesterRepository_UniqueEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTesterRepository(db)
	ctx := context.Background()

	email := "dana@example.com"
	if err := repo.Create(ctx, &domain.Tester{Name: "Dana", Email: &email}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, &domain.Tester{Name: "Other Dana", Email: &email}); err == nil {
		t.Error("Create() with a duplicate email succeeded, want constraint error")
	}
}

func TestTesterRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTesterRepository(db)
	ctx := context.Background()

	tester := createTestTester(t, db, "Dana")

	color := "#FF6B6B"
	tester.Color = &color
	if err := repo.Update(ctx, tester); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := repo.FindByID(ctx, tester.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Color == nil || *found.Color != "#FF6B6B" {
		t.Errorf("Update() color not persisted, got %v", found.Color)
	}
}

func TestTesterRepository_Delete_RemovesAssignments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTesterRepository(db)
	ctx := context.Background()

	project := createTestProject(t, db, "QA Sprint 12", nil)
	tester := createTestTester(t, db, "Dana")
	if err := db.Create(&domain.ProjectTester{ProjectID: project.ID, TesterID: tester.ID}).Error; err != nil {
		t.Fatalf("failed to create assignment: %v", err)
	}

	if err := repo.Delete(ctx, tester.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var assignments int64
	db.Model(&domain.ProjectTester{}).Where("tester_id = ?", tester.ID).Count(&assignments)
	if assignments != 0 {
		t.Error("Delete() left project assignment rows")
	}

	if _, err := repo.FindByID(ctx, tester.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindByID() after delete error = %v, want ErrRecordNotFound", err)
	}

	if err := repo.Delete(ctx, uuid.New()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Delete() unknown ID error = %v, want ErrRecordNotFound", err)
	}
}
