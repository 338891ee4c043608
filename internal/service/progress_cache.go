package service

import (
	"context"

	"github.com/google/uuid"

	"qa-checklist-api/internal/dto"
)

// ProgressCache caches computed checklist progress per project. A nil
// ProgressCache is allowed everywhere; callers must treat caching as best
// effort and never fail an operation on a cache error.
type ProgressCache interface {
	Get(ctx context.Context, projectID uuid.UUID) (*dto.ProgressResponse, bool)
	Set(ctx context.Context, projectID uuid.UUID, progress *dto.ProgressResponse)
	Invalidate(ctx context.Context, projectID uuid.UUID)
}
