package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/repository"
	"qa-checklist-api/internal/response"
)

// TesterService defines the interface for tester business logic,
// including project assignment.
type TesterService interface {
	CreateTester(ctx context.Context, req *dto.CreateTesterRequest) (*dto.TesterResponse, error)
	GetTesters(ctx context.Context) ([]*dto.TesterResponse, error)
	UpdateTester(ctx context.Context, testerID uuid.UUID, req *dto.UpdateTesterRequest) (*dto.TesterResponse, error)
	DeleteTester(ctx context.Context, testerID uuid.UUID) error

	GetProjectTesters(ctx context.Context, projectID uuid.UUID) ([]*dto.TesterResponse, error)
	AssignTesters(ctx context.Context, projectID uuid.UUID, req *dto.AssignTestersRequest) (*dto.AssignTestersResponse, error)
	UnassignTester(ctx context.Context, projectID, testerID uuid.UUID) error
}

// testerServiceImpl is the implementation of TesterService
type testerServiceImpl struct {
	testerRepo    repository.TesterRepository
	projectRepo   repository.ProjectRepository
	checklistRepo repository.ChecklistRepository
	cache         ProgressCache
	logger        *zap.Logger
}

// NewTesterService creates a new instance of TesterService
func NewTesterService(testerRepo repository.TesterRepository, projectRepo repository.ProjectRepository, checklistRepo repository.ChecklistRepository, cache ProgressCache, logger *zap.Logger) TesterService {
	return &testerServiceImpl{
		testerRepo:    testerRepo,
		projectRepo:   projectRepo,
		checklistRepo: checklistRepo,
		cache:         cache,
		logger:        logger,
	}
}

// CreateTester creates a new tester. Email, when provided, must be unique.
func (s *testerServiceImpl) CreateTester(ctx context.Context, req *dto.CreateTesterRequest) (*dto.TesterResponse, error) {
	if req.Email != nil && *req.Email != "" {
		existing, err := s.testerRepo.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for duplicate email", err.Error())
		}
		if existing != nil {
			return nil, response.NewAlreadyExistsError("A tester with this email already exists", "")
		}
	}

	tester := &domain.Tester{
		Name:  req.Name,
		Email: req.Email,
		Color: req.Color,
	}

	if err := s.testerRepo.Create(ctx, tester); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create tester", err.Error())
	}

	return toTesterResponse(tester), nil
}

// GetTesters retrieves all testers
func (s *testerServiceImpl) GetTesters(ctx context.Context) ([]*dto.TesterResponse, error) {
	testers, err := s.testerRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch testers", err.Error())
	}

	responses := make([]*dto.TesterResponse, 0, len(testers))
	for _, tester := range testers {
		responses = append(responses, toTesterResponse(tester))
	}
	return responses, nil
}

// UpdateTester updates the provided fields of a tester
func (s *testerServiceImpl) UpdateTester(ctx context.Context, testerID uuid.UUID, req *dto.UpdateTesterRequest) (*dto.TesterResponse, error) {
	tester, err := s.testerRepo.FindByID(ctx, testerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Tester not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tester", err.Error())
	}

	if req.Email != nil && *req.Email != "" {
		existing, err := s.testerRepo.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for duplicate email", err.Error())
		}
		if existing != nil && existing.ID != tester.ID {
			return nil, response.NewAlreadyExistsError("A tester with this email already exists", "")
		}
	}

	if req.Name != nil {
		tester.Name = *req.Name
	}
	if req.Email != nil {
		tester.Email = req.Email
	}
	if req.Color != nil {
		tester.Color = req.Color
	}

	if err := s.testerRepo.Update(ctx, tester); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update tester", err.Error())
	}

	return toTesterResponse(tester), nil
}

// DeleteTester deletes a tester and their project assignments
func (s *testerServiceImpl) DeleteTester(ctx context.Context, testerID uuid.UUID) error {
	if err := s.testerRepo.Delete(ctx, testerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Tester not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete tester", err.Error())
	}
	return nil
}

// GetProjectTesters retrieves the testers assigned to a project
func (s *testerServiceImpl) GetProjectTesters(ctx context.Context, projectID uuid.UUID) ([]*dto.TesterResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	assignments, err := s.projectRepo.FindAssignmentsByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tester assignments", err.Error())
	}

	responses := make([]*dto.TesterResponse, 0, len(assignments))
	for _, assignment := range assignments {
		tester := assignment.Tester
		responses = append(responses, toTesterResponse(&tester))
	}
	return responses, nil
}

// AssignTesters assigns one or more testers to a project. Assigning an
// already-assigned tester is a skip, not an error. Each new assignment
// backfills a pending result for every checklist test case so progress
// totals stay at (cases × testers).
func (s *testerServiceImpl) AssignTesters(ctx context.Context, projectID uuid.UUID, req *dto.AssignTestersRequest) (*dto.AssignTestersResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	uniqueIDs := removeDuplicateUUIDs(req.TesterIDs)

	resp := &dto.AssignTestersResponse{
		TotalRequested: len(uniqueIDs),
		Results:        make([]dto.AssignTesterResult, 0, len(uniqueIDs)),
	}

	backfilled := false
	for _, testerID := range uniqueIDs {
		result := s.assignSingleTester(ctx, projectID, testerID)
		resp.Results = append(resp.Results, result)
		if result.Success && !result.Skipped {
			resp.TotalAssigned++
			backfilled = true
		} else if result.Skipped {
			resp.TotalSkipped++
		}
	}

	if backfilled && s.cache != nil {
		s.cache.Invalidate(ctx, projectID)
	}

	return resp, nil
}

// assignSingleTester attempts one assignment and reports the outcome
func (s *testerServiceImpl) assignSingleTester(ctx context.Context, projectID, testerID uuid.UUID) dto.AssignTesterResult {
	result := dto.AssignTesterResult{TesterID: testerID}

	if _, err := s.testerRepo.FindByID(ctx, testerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.Error = "Tester not found"
		} else {
			result.Error = "Failed to verify tester"
		}
		return result
	}

	existing, err := s.projectRepo.FindAssignment(ctx, projectID, testerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		result.Error = "Failed to check existing assignment"
		return result
	}
	if existing != nil {
		result.Success = true
		result.Skipped = true
		return result
	}

	assignment := &domain.ProjectTester{
		ProjectID: projectID,
		TesterID:  testerID,
	}
	if err := s.projectRepo.AssignTester(ctx, assignment); err != nil {
		result.Error = "Failed to assign tester"
		return result
	}

	if err := s.backfillResults(ctx, projectID, testerID); err != nil {
		s.logger.Error("Failed to backfill results for newly assigned tester",
			zap.String("project_id", projectID.String()),
			zap.String("tester_id", testerID.String()),
			zap.Error(err))
		result.Error = "Tester assigned but result backfill failed"
		return result
	}

	result.Success = true
	return result
}

// backfillResults creates a pending result for every test case and custom
// test case on the project's checklist for the given tester
func (s *testerServiceImpl) backfillResults(ctx context.Context, projectID, testerID uuid.UUID) error {
	instances, err := s.checklistRepo.FindInstancesByProjectID(ctx, projectID)
	if err != nil {
		return err
	}

	var results []*domain.ChecklistResult
	for _, instance := range instances {
		existing := make(map[uuid.UUID]bool)
		for _, r := range instance.Results {
			if r.TesterID != testerID {
				continue
			}
			if r.TestCaseID != nil {
				existing[*r.TestCaseID] = true
			}
			if r.CustomTestCaseID != nil {
				existing[*r.CustomTestCaseID] = true
			}
		}

		for i := range instance.Module.TestCases {
			tc := instance.Module.TestCases[i]
			if existing[tc.ID] {
				continue
			}
			tcID := tc.ID
			results = append(results, &domain.ChecklistResult{
				ChecklistModuleID: instance.ID,
				TestCaseID:        &tcID,
				TesterID:          testerID,
				Status:            domain.ResultStatusPending,
			})
		}
		for i := range instance.CustomTestCases {
			ctc := instance.CustomTestCases[i]
			if existing[ctc.ID] {
				continue
			}
			ctcID := ctc.ID
			results = append(results, &domain.ChecklistResult{
				ChecklistModuleID: instance.ID,
				CustomTestCaseID:  &ctcID,
				TesterID:          testerID,
				Status:            domain.ResultStatusPending,
			})
		}
	}

	return s.checklistRepo.CreateResults(ctx, results)
}

// UnassignTester removes a tester's assignment from a project. A missing
// assignment is reported as success; recorded results are kept.
func (s *testerServiceImpl) UnassignTester(ctx context.Context, projectID, testerID uuid.UUID) error {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Project not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	if err := s.projectRepo.UnassignTester(ctx, projectID, testerID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to unassign tester", err.Error())
	}
	return nil
}

// toTesterResponse converts domain.Tester to dto.TesterResponse
func toTesterResponse(tester *domain.Tester) *dto.TesterResponse {
	return &dto.TesterResponse{
		ID:        tester.ID,
		Name:      tester.Name,
		Email:     tester.Email,
		Color:     tester.Color,
		CreatedAt: tester.CreatedAt,
		UpdatedAt: tester.UpdatedAt,
	}
}

// removeDuplicateUUIDs removes duplicates while preserving order
func removeDuplicateUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

// hasDuplicateUUIDs reports whether ids contains any duplicate
func hasDuplicateUUIDs(ids []uuid.UUID) bool {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}
