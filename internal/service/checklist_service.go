package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/metrics"
	"qa-checklist-api/internal/repository"
	"qa-checklist-api/internal/response"
)

// ChecklistService defines the interface for checklist business logic:
// attaching module instances to projects, custom test cases, result
// recording and progress aggregation.
type ChecklistService interface {
	GetChecklist(ctx context.Context, projectID uuid.UUID) (*dto.ChecklistResponse, error)
	AttachModule(ctx context.Context, req *dto.AttachModuleRequest) (*dto.ChecklistModuleResponse, error)
	DetachModule(ctx context.Context, checklistModuleID uuid.UUID) error
	AddCustomTestCase(ctx context.Context, checklistModuleID uuid.UUID, req *dto.AddCustomTestCaseRequest) (*dto.ChecklistCustomTestCaseResponse, error)
	UpdateResult(ctx context.Context, projectID, resultID uuid.UUID, req *dto.UpdateResultRequest) (*dto.ResultResponse, error)
	ReorderChecklist(ctx context.Context, projectID uuid.UUID, req *dto.ReorderRequest) error
	GetProgress(ctx context.Context, projectID uuid.UUID) (*dto.ProgressResponse, error)
}

// checklistServiceImpl is the implementation of ChecklistService
type checklistServiceImpl struct {
	checklistRepo repository.ChecklistRepository
	projectRepo   repository.ProjectRepository
	moduleRepo    repository.ModuleRepository
	testerRepo    repository.TesterRepository
	cache         ProgressCache
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

// NewChecklistService creates a new instance of ChecklistService
func NewChecklistService(
	checklistRepo repository.ChecklistRepository,
	projectRepo repository.ProjectRepository,
	moduleRepo repository.ModuleRepository,
	testerRepo repository.TesterRepository,
	cache ProgressCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) ChecklistService {
	return &checklistServiceImpl{
		checklistRepo: checklistRepo,
		projectRepo:   projectRepo,
		moduleRepo:    moduleRepo,
		testerRepo:    testerRepo,
		cache:         cache,
		metrics:       m,
		logger:        logger,
	}
}

// findWritableProject loads a project and rejects archived ones for
// mutating checklist operations
func (s *checklistServiceImpl) findWritableProject(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}
	if project.IsArchived() {
		return nil, response.NewInvalidStateError("Cannot modify the checklist of an archived project", "")
	}
	return project, nil
}

// GetChecklist retrieves a project's full checklist in display order
func (s *checklistServiceImpl) GetChecklist(ctx context.Context, projectID uuid.UUID) (*dto.ChecklistResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	instances, err := s.checklistRepo.FindInstancesByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch checklist", err.Error())
	}

	resp := &dto.ChecklistResponse{
		ProjectID: projectID,
		Modules:   make([]dto.ChecklistModuleResponse, 0, len(instances)),
	}
	for _, instance := range instances {
		resp.Modules = append(resp.Modules, *toChecklistModuleResponse(instance))
	}
	return resp, nil
}

// AttachModule attaches a module to a project's checklist as a new
// independent instance. For every (test case, assigned tester) pair a
// pending result is created so the checklist starts fully enumerated.
// Position inserts before the instance currently at that index; omitted
// or out-of-range positions append.
func (s *checklistServiceImpl) AttachModule(ctx context.Context, req *dto.AttachModuleRequest) (*dto.ChecklistModuleResponse, error) {
	if _, err := s.findWritableProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	module, err := s.moduleRepo.FindByID(ctx, req.ModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Module not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch module", err.Error())
	}

	count, err := s.checklistRepo.CountInstances(ctx, req.ProjectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to determine checklist position", err.Error())
	}

	position := int(count)
	if req.Position != nil && *req.Position < position {
		position = *req.Position
		if err := s.checklistRepo.ShiftInstancesFrom(ctx, req.ProjectID, position); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to make room at the requested position", err.Error())
		}
	}

	instance := &domain.ChecklistModule{
		ProjectID:    req.ProjectID,
		ModuleID:     req.ModuleID,
		DisplayOrder: position,
	}
	if err := s.checklistRepo.CreateInstance(ctx, instance); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to attach module", err.Error())
	}

	assignments, err := s.projectRepo.FindAssignmentsByProjectID(ctx, req.ProjectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tester assignments", err.Error())
	}

	var results []*domain.ChecklistResult
	for _, assignment := range assignments {
		for i := range module.TestCases {
			tcID := module.TestCases[i].ID
			results = append(results, &domain.ChecklistResult{
				ChecklistModuleID: instance.ID,
				TestCaseID:        &tcID,
				TesterID:          assignment.TesterID,
				Status:            domain.ResultStatusPending,
			})
		}
	}
	if err := s.checklistRepo.CreateResults(ctx, results); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create pending results", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementModuleAttached()
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, req.ProjectID)
	}

	created, err := s.checklistRepo.FindInstanceByID(ctx, instance.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch attached module", err.Error())
	}
	return toChecklistModuleResponse(created), nil
}

// DetachModule removes a module instance from a project's checklist,
// deleting its results and custom test cases with it
func (s *checklistServiceImpl) DetachModule(ctx context.Context, checklistModuleID uuid.UUID) error {
	instance, err := s.checklistRepo.FindInstanceByID(ctx, checklistModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Checklist module not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch checklist module", err.Error())
	}

	if _, err := s.findWritableProject(ctx, instance.ProjectID); err != nil {
		return err
	}

	if err := s.checklistRepo.DeleteInstance(ctx, checklistModuleID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to detach module", err.Error())
	}

	if err := s.checklistRepo.ResequenceInstances(ctx, instance.ProjectID); err != nil {
		s.logger.Warn("Failed to resequence checklist after detach",
			zap.String("project_id", instance.ProjectID.String()),
			zap.Error(err))
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, instance.ProjectID)
	}
	return nil
}

// AddCustomTestCase adds a one-off test case to a single checklist module
// instance and creates a pending result for every assigned tester
func (s *checklistServiceImpl) AddCustomTestCase(ctx context.Context, checklistModuleID uuid.UUID, req *dto.AddCustomTestCaseRequest) (*dto.ChecklistCustomTestCaseResponse, error) {
	instance, err := s.checklistRepo.FindInstanceByID(ctx, checklistModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Checklist module not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch checklist module", err.Error())
	}

	if _, err := s.findWritableProject(ctx, instance.ProjectID); err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
	}

	testCase := &domain.CustomTestCase{
		ChecklistModuleID: checklistModuleID,
		Title:             req.Title,
		Description:       req.Description,
		Priority:          priority,
	}
	if err := s.checklistRepo.CreateCustomTestCase(ctx, testCase); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create custom test case", err.Error())
	}

	assignments, err := s.projectRepo.FindAssignmentsByProjectID(ctx, instance.ProjectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tester assignments", err.Error())
	}

	var results []*domain.ChecklistResult
	for _, assignment := range assignments {
		ctcID := testCase.ID
		results = append(results, &domain.ChecklistResult{
			ChecklistModuleID: checklistModuleID,
			CustomTestCaseID:  &ctcID,
			TesterID:          assignment.TesterID,
			Status:            domain.ResultStatusPending,
		})
	}
	if err := s.checklistRepo.CreateResults(ctx, results); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create pending results", err.Error())
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, instance.ProjectID)
	}

	return toChecklistCustomTestCaseResponse(testCase), nil
}

// UpdateResult records or changes a single checklist result. The result
// must belong to the given project.
func (s *checklistServiceImpl) UpdateResult(ctx context.Context, projectID, resultID uuid.UUID, req *dto.UpdateResultRequest) (*dto.ResultResponse, error) {
	if req.Status == nil && req.Notes == nil && req.TesterID == nil {
		return nil, response.NewValidationError("No fields to update", "")
	}

	if _, err := s.findWritableProject(ctx, projectID); err != nil {
		return nil, err
	}

	result, err := s.checklistRepo.FindResultByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Result not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch result", err.Error())
	}

	instance, err := s.checklistRepo.FindInstanceByID(ctx, result.ChecklistModuleID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch checklist module", err.Error())
	}
	if instance.ProjectID != projectID {
		return nil, response.NewNotFoundError("Result not found in this project", "")
	}

	if req.Status != nil {
		status := domain.ResultStatus(*req.Status)
		if !domain.IsValidResultStatus(status) {
			return nil, response.NewValidationError("Invalid result status", "")
		}
		result.Status = status
	}
	if req.Notes != nil {
		result.Notes = *req.Notes
	}
	if req.TesterID != nil {
		if _, err := s.testerRepo.FindByID(ctx, *req.TesterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFoundError("Tester not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch tester", err.Error())
		}
		result.TesterID = *req.TesterID
	}

	if err := s.checklistRepo.UpdateResult(ctx, result); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update result", err.Error())
	}

	if s.metrics != nil && req.Status != nil {
		s.metrics.IncrementResultRecorded(string(result.Status))
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, projectID)
	}

	return toResultResponse(result), nil
}

// ReorderChecklist persists the caller's full desired order for a
// project's checklist. Every ID must be an instance of this project's
// checklist or the whole operation fails.
func (s *checklistServiceImpl) ReorderChecklist(ctx context.Context, projectID uuid.UUID, req *dto.ReorderRequest) error {
	if _, err := s.findWritableProject(ctx, projectID); err != nil {
		return err
	}

	if len(req.IDs) == 0 {
		return nil
	}
	if hasDuplicateUUIDs(req.IDs) {
		return response.NewValidationError("Duplicate checklist module IDs in reorder request", "")
	}

	ownedIDs, err := s.checklistRepo.PluckInstanceIDsByProjectID(ctx, projectID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch checklist modules", err.Error())
	}
	owned := make(map[uuid.UUID]bool, len(ownedIDs))
	for _, id := range ownedIDs {
		owned[id] = true
	}
	for _, id := range req.IDs {
		if !owned[id] {
			return response.NewValidationError("One or more checklist modules do not belong to this project", "")
		}
	}

	if err := s.checklistRepo.ReorderInstances(ctx, projectID, req.IDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("One or more checklist modules could not be found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to reorder checklist", err.Error())
	}
	return nil
}

// GetProgress computes pass/fail/pending counts per module instance and
// overall for a project. Results are cached per project with a short TTL
// and invalidated on every checklist write.
func (s *checklistServiceImpl) GetProgress(ctx context.Context, projectID uuid.UUID) (*dto.ProgressResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, projectID); ok {
			return cached, nil
		}
	}

	instances, err := s.checklistRepo.FindInstancesByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch checklist", err.Error())
	}

	resp := &dto.ProgressResponse{
		ProjectID: projectID,
		Modules:   make([]dto.ModuleProgressResponse, 0, len(instances)),
	}
	for _, instance := range instances {
		counts := countResults(instance.Results)
		resp.Modules = append(resp.Modules, dto.ModuleProgressResponse{
			ChecklistModuleID: instance.ID,
			ModuleName:        instance.Module.Name,
			ProgressCounts:    counts,
		})
		resp.Overall.Passed += counts.Passed
		resp.Overall.Failed += counts.Failed
		resp.Overall.Pending += counts.Pending
		resp.Overall.Total += counts.Total
	}
	resp.Overall.Percent = progressPercent(resp.Overall.Passed+resp.Overall.Failed, resp.Overall.Total)

	if s.cache != nil {
		s.cache.Set(ctx, projectID, resp)
	}
	return resp, nil
}

// countResults tallies one instance's results into progress counts
func countResults(results []domain.ChecklistResult) dto.ProgressCounts {
	var counts dto.ProgressCounts
	for _, r := range results {
		switch r.Status {
		case domain.ResultStatusPass:
			counts.Passed++
		case domain.ResultStatusFail:
			counts.Failed++
		default:
			counts.Pending++
		}
		counts.Total++
	}
	counts.Percent = progressPercent(counts.Passed+counts.Failed, counts.Total)
	return counts
}

// progressPercent returns completed/total as a whole percentage, rounded
// half away from zero. An empty scope is 0 percent.
func progressPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// toChecklistModuleResponse converts a domain.ChecklistModule with its
// preloaded associations to a dto.ChecklistModuleResponse
func toChecklistModuleResponse(instance *domain.ChecklistModule) *dto.ChecklistModuleResponse {
	testCases := make([]dto.TestCaseResponse, 0, len(instance.Module.TestCases))
	for i := range instance.Module.TestCases {
		testCases = append(testCases, *toTestCaseResponse(&instance.Module.TestCases[i]))
	}

	customs := make([]dto.ChecklistCustomTestCaseResponse, 0, len(instance.CustomTestCases))
	for i := range instance.CustomTestCases {
		customs = append(customs, *toChecklistCustomTestCaseResponse(&instance.CustomTestCases[i]))
	}

	results := make([]dto.ResultResponse, 0, len(instance.Results))
	for i := range instance.Results {
		results = append(results, *toResultResponse(&instance.Results[i]))
	}

	return &dto.ChecklistModuleResponse{
		ID:              instance.ID,
		ProjectID:       instance.ProjectID,
		ModuleID:        instance.ModuleID,
		ModuleName:      instance.Module.Name,
		DisplayOrder:    instance.DisplayOrder,
		TestCases:       testCases,
		CustomTestCases: customs,
		Results:         results,
		CreatedAt:       instance.CreatedAt,
	}
}

// toChecklistCustomTestCaseResponse converts domain.CustomTestCase to its
// response form
func toChecklistCustomTestCaseResponse(testCase *domain.CustomTestCase) *dto.ChecklistCustomTestCaseResponse {
	return &dto.ChecklistCustomTestCaseResponse{
		ID:          testCase.ID,
		Title:       testCase.Title,
		Description: testCase.Description,
		Priority:    string(testCase.Priority),
		CreatedAt:   testCase.CreatedAt,
	}
}

// toResultResponse converts domain.ChecklistResult to dto.ResultResponse
func toResultResponse(result *domain.ChecklistResult) *dto.ResultResponse {
	return &dto.ResultResponse{
		ID:                result.ID,
		ChecklistModuleID: result.ChecklistModuleID,
		TestCaseID:        result.TestCaseID,
		CustomTestCaseID:  result.CustomTestCaseID,
		TesterID:          result.TesterID,
		TesterName:        result.Tester.Name,
		Status:            string(result.Status),
		Notes:             result.Notes,
		CreatedAt:         result.CreatedAt,
		UpdatedAt:         result.UpdatedAt,
	}
}
