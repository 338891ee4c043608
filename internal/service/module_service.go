package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/metrics"
	"qa-checklist-api/internal/repository"
	"qa-checklist-api/internal/response"
)

// ModuleService defines the interface for module library business logic:
// reusable modules, their test cases and ordering for both.
type ModuleService interface {
	CreateModule(ctx context.Context, req *dto.CreateModuleRequest, userID uuid.UUID) (*dto.ModuleResponse, error)
	GetModules(ctx context.Context) ([]*dto.ModuleResponse, error)
	GetModule(ctx context.Context, moduleID uuid.UUID) (*dto.ModuleResponse, error)
	UpdateModule(ctx context.Context, moduleID uuid.UUID, req *dto.UpdateModuleRequest) (*dto.ModuleResponse, error)
	DeleteModule(ctx context.Context, moduleID uuid.UUID) error
	ReorderModules(ctx context.Context, req *dto.ReorderRequest) error

	AddTestCase(ctx context.Context, moduleID uuid.UUID, req *dto.CreateTestCaseRequest) (*dto.TestCaseResponse, error)
	UpdateTestCase(ctx context.Context, testCaseID uuid.UUID, req *dto.UpdateTestCaseRequest) (*dto.TestCaseResponse, error)
	DeleteTestCase(ctx context.Context, testCaseID uuid.UUID) error
	ReorderTestCases(ctx context.Context, moduleID uuid.UUID, req *dto.ReorderRequest) error
}

// moduleServiceImpl is the implementation of ModuleService
type moduleServiceImpl struct {
	moduleRepo repository.ModuleRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewModuleService creates a new instance of ModuleService
func NewModuleService(moduleRepo repository.ModuleRepository, m *metrics.Metrics, logger *zap.Logger) ModuleService {
	return &moduleServiceImpl{
		moduleRepo: moduleRepo,
		metrics:    m,
		logger:     logger,
	}
}

// CreateModule creates a new reusable module at the end of the library
// order. The name must be unique.
func (s *moduleServiceImpl) CreateModule(ctx context.Context, req *dto.CreateModuleRequest, userID uuid.UUID) (*dto.ModuleResponse, error) {
	existing, err := s.moduleRepo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for duplicate module name", err.Error())
	}
	if existing != nil {
		return nil, response.NewAlreadyExistsError("A module with this name already exists", "")
	}

	count, err := s.moduleRepo.CountModules(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to determine module position", err.Error())
	}

	tags, err := marshalTags(req.Tags)
	if err != nil {
		return nil, response.NewValidationError("Invalid tags", err.Error())
	}

	module := &domain.Module{
		Name:         req.Name,
		Description:  req.Description,
		ThumbnailKey: req.ThumbnailKey,
		Tags:         tags,
		CreatedBy:    userID,
		DisplayOrder: int(count),
	}

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create module", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementModuleCreated()
	}

	return toModuleResponse(module), nil
}

// GetModules retrieves the module library in display order
func (s *moduleServiceImpl) GetModules(ctx context.Context) ([]*dto.ModuleResponse, error) {
	modules, err := s.moduleRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch modules", err.Error())
	}

	responses := make([]*dto.ModuleResponse, 0, len(modules))
	for _, module := range modules {
		responses = append(responses, toModuleResponse(module))
	}
	return responses, nil
}

// GetModule retrieves a module with its test cases
func (s *moduleServiceImpl) GetModule(ctx context.Context, moduleID uuid.UUID) (*dto.ModuleResponse, error) {
	module, err := s.moduleRepo.FindByID(ctx, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Module not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch module", err.Error())
	}
	return toModuleResponse(module), nil
}

// UpdateModule updates the provided fields of a module
func (s *moduleServiceImpl) UpdateModule(ctx context.Context, moduleID uuid.UUID, req *dto.UpdateModuleRequest) (*dto.ModuleResponse, error) {
	module, err := s.moduleRepo.FindByID(ctx, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Module not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch module", err.Error())
	}

	if req.Name != nil && *req.Name != module.Name {
		existing, err := s.moduleRepo.FindByName(ctx, *req.Name)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for duplicate module name", err.Error())
		}
		if existing != nil && existing.ID != module.ID {
			return nil, response.NewAlreadyExistsError("A module with this name already exists", "")
		}
		module.Name = *req.Name
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if req.ThumbnailKey != nil {
		module.ThumbnailKey = req.ThumbnailKey
	}
	if req.Tags != nil {
		tags, err := marshalTags(*req.Tags)
		if err != nil {
			return nil, response.NewValidationError("Invalid tags", err.Error())
		}
		module.Tags = tags
	}

	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update module", err.Error())
	}

	return toModuleResponse(module), nil
}

// DeleteModule deletes a module and its test cases, then closes the gap
// in the library order
func (s *moduleServiceImpl) DeleteModule(ctx context.Context, moduleID uuid.UUID) error {
	if err := s.moduleRepo.Delete(ctx, moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Module not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete module", err.Error())
	}

	if err := s.moduleRepo.ResequenceModules(ctx); err != nil {
		s.logger.Warn("Failed to resequence modules after deletion", zap.Error(err))
	}
	return nil
}

// ReorderModules persists the caller's full desired library order. An
// empty list is a no-op success; duplicates and unknown IDs fail the
// whole operation.
func (s *moduleServiceImpl) ReorderModules(ctx context.Context, req *dto.ReorderRequest) error {
	if len(req.IDs) == 0 {
		return nil
	}
	if hasDuplicateUUIDs(req.IDs) {
		return response.NewValidationError("Duplicate module IDs in reorder request", "")
	}

	if err := s.moduleRepo.Reorder(ctx, req.IDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("One or more modules could not be found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to reorder modules", err.Error())
	}
	return nil
}

// AddTestCase adds a test case at the end of a module's order. Priority
// defaults to MEDIUM when omitted.
func (s *moduleServiceImpl) AddTestCase(ctx context.Context, moduleID uuid.UUID, req *dto.CreateTestCaseRequest) (*dto.TestCaseResponse, error) {
	if _, err := s.moduleRepo.FindByID(ctx, moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Module not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch module", err.Error())
	}

	count, err := s.moduleRepo.CountTestCases(ctx, moduleID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to determine test case position", err.Error())
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
	}

	testCase := &domain.TestCase{
		ModuleID:     moduleID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     priority,
		DisplayOrder: int(count),
	}

	if err := s.moduleRepo.CreateTestCase(ctx, testCase); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create test case", err.Error())
	}

	return toTestCaseResponse(testCase), nil
}

// UpdateTestCase updates the provided fields of a test case
func (s *moduleServiceImpl) UpdateTestCase(ctx context.Context, testCaseID uuid.UUID, req *dto.UpdateTestCaseRequest) (*dto.TestCaseResponse, error) {
	testCase, err := s.moduleRepo.FindTestCaseByID(ctx, testCaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Test case not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch test case", err.Error())
	}

	if req.Title != nil {
		testCase.Title = *req.Title
	}
	if req.Description != nil {
		testCase.Description = *req.Description
	}
	if req.Priority != nil {
		testCase.Priority = domain.Priority(*req.Priority)
	}

	if err := s.moduleRepo.UpdateTestCase(ctx, testCase); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update test case", err.Error())
	}

	return toTestCaseResponse(testCase), nil
}

// DeleteTestCase deletes a test case and closes the gap in its module's
// order
func (s *moduleServiceImpl) DeleteTestCase(ctx context.Context, testCaseID uuid.UUID) error {
	testCase, err := s.moduleRepo.FindTestCaseByID(ctx, testCaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Test case not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch test case", err.Error())
	}

	if err := s.moduleRepo.DeleteTestCase(ctx, testCaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Test case not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete test case", err.Error())
	}

	if err := s.moduleRepo.ResequenceTestCases(ctx, testCase.ModuleID); err != nil {
		s.logger.Warn("Failed to resequence test cases after deletion",
			zap.String("module_id", testCase.ModuleID.String()),
			zap.Error(err))
	}
	return nil
}

// ReorderTestCases persists the caller's full desired order for a
// module's test cases
func (s *moduleServiceImpl) ReorderTestCases(ctx context.Context, moduleID uuid.UUID, req *dto.ReorderRequest) error {
	if _, err := s.moduleRepo.FindByID(ctx, moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Module not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch module", err.Error())
	}

	if len(req.IDs) == 0 {
		return nil
	}
	if hasDuplicateUUIDs(req.IDs) {
		return response.NewValidationError("Duplicate test case IDs in reorder request", "")
	}

	if err := s.moduleRepo.ReorderTestCases(ctx, moduleID, req.IDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("One or more test cases could not be found in this module", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to reorder test cases", err.Error())
	}
	return nil
}

// marshalTags converts a tag list to the stored JSON representation.
// A nil list is stored as an empty array rather than NULL.
func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// unmarshalTags converts the stored JSON tags into a string slice
func unmarshalTags(tags datatypes.JSON) []string {
	if len(tags) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(tags, &out); err != nil {
		return []string{}
	}
	return out
}

// toModuleResponse converts domain.Module to dto.ModuleResponse
func toModuleResponse(module *domain.Module) *dto.ModuleResponse {
	testCases := make([]dto.TestCaseResponse, 0, len(module.TestCases))
	for i := range module.TestCases {
		testCases = append(testCases, *toTestCaseResponse(&module.TestCases[i]))
	}
	return &dto.ModuleResponse{
		ID:           module.ID,
		Name:         module.Name,
		Description:  module.Description,
		ThumbnailKey: module.ThumbnailKey,
		Tags:         unmarshalTags(module.Tags),
		CreatedBy:    module.CreatedBy,
		DisplayOrder: module.DisplayOrder,
		TestCases:    testCases,
		CreatedAt:    module.CreatedAt,
		UpdatedAt:    module.UpdatedAt,
	}
}

// toTestCaseResponse converts domain.TestCase to dto.TestCaseResponse
func toTestCaseResponse(testCase *domain.TestCase) *dto.TestCaseResponse {
	return &dto.TestCaseResponse{
		ID:           testCase.ID,
		ModuleID:     testCase.ModuleID,
		Title:        testCase.Title,
		Description:  testCase.Description,
		Priority:     string(testCase.Priority),
		DisplayOrder: testCase.DisplayOrder,
		CreatedAt:    testCase.CreatedAt,
		UpdatedAt:    testCase.UpdatedAt,
	}
}
