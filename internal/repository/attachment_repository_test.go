package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
)

func seedResultWithAttachment(t *testing.T, db *gorm.DB) (*domain.ChecklistResult, *domain.ResultAttachment) {
	t.Helper()
	project := createTestProject(t, db, fmt.Sprintf("QA Sprint %s", uuid.New()), nil)
	module := createTestModule(t, db, fmt.Sprintf("Module %s", uuid.New()), 0)
	testCase := createModuleTestCase(t, db, module.ID, "valid login", 0)
	tester := createTestTester(t, db, "Dana")
	instance := createTestInstance(t, db, project.ID, module.ID, 0)

	result := &domain.ChecklistResult{
		ChecklistModuleID: instance.ID,
		TestCaseID:        &testCase.ID,
		TesterID:          tester.ID,
		Status:            domain.ResultStatusFail,
	}
	if err := db.Create(result).Error; err != nil {
		t.Fatalf("failed to create result: %v", err)
	}

	attachment := &domain.ResultAttachment{
		ResultID:    result.ID,
		FileName:    "login-error.png",
		ContentType: "image/png",
		FileSize:    2048,
		FileKey:     fmt.Sprintf("qa-results/%s/login-error.png", result.ID),
		UploadedBy:  uuid.New(),
	}
	if err := db.Create(attachment).Error; err != nil {
		t.Fatalf("failed to create attachment: %v", err)
	}
	return result, attachment
}

func TestAttachmentRepository_FindByResultID_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	result, older := seedResultWithAttachment(t, db)

	newer := &domain.ResultAttachment{
		ResultID:    result.ID,
		FileName:    "login-error-retry.png",
		ContentType: "image/png",
		FileSize:    1024,
		FileKey:     fmt.Sprintf("qa-results/%s/login-error-retry.png", result.ID),
		UploadedBy:  uuid.New(),
	}
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)
	if err := db.Create(newer).Error; err != nil {
		t.Fatalf("failed to create attachment: %v", err)
	}

	attachments, err := repo.FindByResultID(ctx, result.ID)
	if err != nil {
		t.Fatalf("FindByResultID() error = %v", err)
	}
	if len(attachments) != 2 {
		t.Fatalf("FindByResultID() returned %d attachments, want 2", len(attachments))
	}
	if attachments[0].ID != newer.ID || attachments[1].ID != older.ID {
		t.Error("FindByResultID() not in newest-first order")
	}
}

func TestAttachmentRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	_, attachment := seedResultWithAttachment(t, db)

	if err := repo.Delete(ctx, attachment.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, attachment.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindByID() after delete error = %v, want ErrRecordNotFound", err)
	}
	if err := repo.Delete(ctx, attachment.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Delete() repeat error = %v, want ErrRecordNotFound", err)
	}
}

func TestAttachmentRepository_DeleteBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	_, a1 := seedResultWithAttachment(t, db)
	_, a2 := seedResultWithAttachment(t, db)

	// an empty batch is a no-op
	if err := repo.DeleteBatch(ctx, nil); err != nil {
		t.Fatalf("DeleteBatch() empty batch error = %v", err)
	}

	if err := repo.DeleteBatch(ctx, []uuid.UUID{a1.ID, a2.ID}); err != nil {
		t.Fatalf("DeleteBatch() error = %v", err)
	}

	var count int64
	db.Model(&domain.ResultAttachment{}).Count(&count)
	if count != 0 {
		t.Errorf("DeleteBatch() left %d attachments", count)
	}
}

func TestAttachmentRepository_FindOrphaned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	result, orphaned := seedResultWithAttachment(t, db)
	_, kept := seedResultWithAttachment(t, db)

	// removing the result leaves its attachment metadata behind
	if err := db.Unscoped().Delete(&domain.ChecklistResult{}, "id = ?", result.ID).Error; err != nil {
		t.Fatalf("failed to delete result: %v", err)
	}

	attachments, err := repo.FindOrphaned(ctx)
	if err != nil {
		t.Fatalf("FindOrphaned() error = %v", err)
	}
	if len(attachments) != 1 || attachments[0].ID != orphaned.ID {
		t.Fatalf("FindOrphaned() = %d attachments, want only the orphaned one", len(attachments))
	}
	if attachments[0].ID == kept.ID {
		t.Error("FindOrphaned() returned an attachment whose result still exists")
	}
}
