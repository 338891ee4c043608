package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"qa-checklist-api/internal/domain"
	"qa-checklist-api/internal/dto"
)

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	CreateFunc                     func(ctx context.Context, project *domain.Project) error
	FindByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindActiveFunc                 func(ctx context.Context) ([]*domain.Project, error)
	FindArchivedFunc               func(ctx context.Context) ([]*domain.Project, error)
	FindActiveByNameFunc           func(ctx context.Context, name string) (*domain.Project, error)
	UpdateFunc                     func(ctx context.Context, project *domain.Project) error
	SetArchivedFunc                func(ctx context.Context, id uuid.UUID, archivedAt *time.Time) error
	PermanentDeleteFunc            func(ctx context.Context, id uuid.UUID) error
	AssignTesterFunc               func(ctx context.Context, assignment *domain.ProjectTester) error
	FindAssignmentFunc             func(ctx context.Context, projectID, testerID uuid.UUID) (*domain.ProjectTester, error)
	FindAssignmentsByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectTester, error)
	UnassignTesterFunc             func(ctx context.Context, projectID, testerID uuid.UUID) error
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindActive(ctx context.Context) ([]*domain.Project, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindArchived(ctx context.Context) ([]*domain.Project, error) {
	if m.FindArchivedFunc != nil {
		return m.FindArchivedFunc(ctx)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindActiveByName(ctx context.Context, name string) (*domain.Project, error) {
	if m.FindActiveByNameFunc != nil {
		return m.FindActiveByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) SetArchived(ctx context.Context, id uuid.UUID, archivedAt *time.Time) error {
	if m.SetArchivedFunc != nil {
		return m.SetArchivedFunc(ctx, id, archivedAt)
	}
	return nil
}

func (m *MockProjectRepository) PermanentDelete(ctx context.Context, id uuid.UUID) error {
	if m.PermanentDeleteFunc != nil {
		return m.PermanentDeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProjectRepository) AssignTester(ctx context.Context, assignment *domain.ProjectTester) error {
	if m.AssignTesterFunc != nil {
		return m.AssignTesterFunc(ctx, assignment)
	}
	return nil
}

func (m *MockProjectRepository) FindAssignment(ctx context.Context, projectID, testerID uuid.UUID) (*domain.ProjectTester, error) {
	if m.FindAssignmentFunc != nil {
		return m.FindAssignmentFunc(ctx, projectID, testerID)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindAssignmentsByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectTester, error) {
	if m.FindAssignmentsByProjectIDFunc != nil {
		return m.FindAssignmentsByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockProjectRepository) UnassignTester(ctx context.Context, projectID, testerID uuid.UUID) error {
	if m.UnassignTesterFunc != nil {
		return m.UnassignTesterFunc(ctx, projectID, testerID)
	}
	return nil
}

// MockModuleRepository is a mock implementation of ModuleRepository
type MockModuleRepository struct {
	CreateFunc                  func(ctx context.Context, module *domain.Module) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Module, error)
	FindAllFunc                 func(ctx context.Context) ([]*domain.Module, error)
	FindByNameFunc              func(ctx context.Context, name string) (*domain.Module, error)
	FindByIDsFunc               func(ctx context.Context, ids []uuid.UUID) ([]*domain.Module, error)
	UpdateFunc                  func(ctx context.Context, module *domain.Module) error
	DeleteFunc                  func(ctx context.Context, id uuid.UUID) error
	CountModulesFunc            func(ctx context.Context) (int64, error)
	ReorderFunc                 func(ctx context.Context, ids []uuid.UUID) error
	ResequenceModulesFunc       func(ctx context.Context) error
	ResequenceTestCasesFunc     func(ctx context.Context, moduleID uuid.UUID) error
	CreateTestCaseFunc          func(ctx context.Context, testCase *domain.TestCase) error
	FindTestCaseByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.TestCase, error)
	FindTestCasesByModuleIDFunc func(ctx context.Context, moduleID uuid.UUID) ([]*domain.TestCase, error)
	UpdateTestCaseFunc          func(ctx context.Context, testCase *domain.TestCase) error
	DeleteTestCaseFunc          func(ctx context.Context, id uuid.UUID) error
	CountTestCasesFunc          func(ctx context.Context, moduleID uuid.UUID) (int64, error)
	ReorderTestCasesFunc        func(ctx context.Context, moduleID uuid.UUID, ids []uuid.UUID) error
}

func (m *MockModuleRepository) Create(ctx context.Context, module *domain.Module) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, module)
	}
	return nil
}

func (m *MockModuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Module, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockModuleRepository) FindAll(ctx context.Context) ([]*domain.Module, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockModuleRepository) FindByName(ctx context.Context, name string) (*domain.Module, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockModuleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Module, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockModuleRepository) Update(ctx context.Context, module *domain.Module) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, module)
	}
	return nil
}

func (m *MockModuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockModuleRepository) CountModules(ctx context.Context) (int64, error) {
	if m.CountModulesFunc != nil {
		return m.CountModulesFunc(ctx)
	}
	return 0, nil
}

func (m *MockModuleRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(ctx, ids)
	}
	return nil
}

func (m *MockModuleRepository) ResequenceModules(ctx context.Context) error {
	if m.ResequenceModulesFunc != nil {
		return m.ResequenceModulesFunc(ctx)
	}
	return nil
}

func (m *MockModuleRepository) ResequenceTestCases(ctx context.Context, moduleID uuid.UUID) error {
	if m.ResequenceTestCasesFunc != nil {
		return m.ResequenceTestCasesFunc(ctx, moduleID)
	}
	return nil
}

func (m *MockModuleRepository) CreateTestCase(ctx context.Context, testCase *domain.TestCase) error {
	if m.CreateTestCaseFunc != nil {
		return m.CreateTestCaseFunc(ctx, testCase)
	}
	return nil
}

func (m *MockModuleRepository) FindTestCaseByID(ctx context.Context, id uuid.UUID) (*domain.TestCase, error) {
	if m.FindTestCaseByIDFunc != nil {
		return m.FindTestCaseByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockModuleRepository) FindTestCasesByModuleID(ctx context.Context, moduleID uuid.UUID) ([]*domain.TestCase, error) {
	if m.FindTestCasesByModuleIDFunc != nil {
		return m.FindTestCasesByModuleIDFunc(ctx, moduleID)
	}
	return nil, nil
}

func (m *MockModuleRepository) UpdateTestCase(ctx context.Context, testCase *domain.TestCase) error {
	if m.UpdateTestCaseFunc != nil {
		return m.UpdateTestCaseFunc(ctx, testCase)
	}
	return nil
}

func (m *MockModuleRepository) DeleteTestCase(ctx context.Context, id uuid.UUID) error {
	if m.DeleteTestCaseFunc != nil {
		return m.DeleteTestCaseFunc(ctx, id)
	}
	return nil
}

func (m *MockModuleRepository) CountTestCases(ctx context.Context, moduleID uuid.UUID) (int64, error) {
	if m.CountTestCasesFunc != nil {
		return m.CountTestCasesFunc(ctx, moduleID)
	}
	return 0, nil
}

func (m *MockModuleRepository) ReorderTestCases(ctx context.Context, moduleID uuid.UUID, ids []uuid.UUID) error {
	if m.ReorderTestCasesFunc != nil {
		return m.ReorderTestCasesFunc(ctx, moduleID, ids)
	}
	return nil
}

// MockChecklistRepository is a mock implementation of ChecklistRepository
type MockChecklistRepository struct {
	CreateInstanceFunc              func(ctx context.Context, instance *domain.ChecklistModule) error
	FindInstanceByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.ChecklistModule, error)
	FindInstancesByProjectIDFunc    func(ctx context.Context, projectID uuid.UUID) ([]*domain.ChecklistModule, error)
	PluckInstanceIDsByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
	CountInstancesFunc              func(ctx context.Context, projectID uuid.UUID) (int64, error)
	ShiftInstancesFromFunc          func(ctx context.Context, projectID uuid.UUID, position int) error
	DeleteInstanceFunc              func(ctx context.Context, id uuid.UUID) error
	ReorderInstancesFunc            func(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error
	ResequenceInstancesFunc         func(ctx context.Context, projectID uuid.UUID) error
	CreateResultsFunc               func(ctx context.Context, results []*domain.ChecklistResult) error
	FindResultByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.ChecklistResult, error)
	UpdateResultFunc                func(ctx context.Context, result *domain.ChecklistResult) error
	CreateCustomTestCaseFunc        func(ctx context.Context, testCase *domain.CustomTestCase) error
}

func (m *MockChecklistRepository) CreateInstance(ctx context.Context, instance *domain.ChecklistModule) error {
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, instance)
	}
	return nil
}

func (m *MockChecklistRepository) FindInstanceByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistModule, error) {
	if m.FindInstanceByIDFunc != nil {
		return m.FindInstanceByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockChecklistRepository) FindInstancesByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ChecklistModule, error) {
	if m.FindInstancesByProjectIDFunc != nil {
		return m.FindInstancesByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockChecklistRepository) PluckInstanceIDsByProjectID(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	if m.PluckInstanceIDsByProjectIDFunc != nil {
		return m.PluckInstanceIDsByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockChecklistRepository) CountInstances(ctx context.Context, projectID uuid.UUID) (int64, error) {
	if m.CountInstancesFunc != nil {
		return m.CountInstancesFunc(ctx, projectID)
	}
	return 0, nil
}

func (m *MockChecklistRepository) ShiftInstancesFrom(ctx context.Context, projectID uuid.UUID, position int) error {
	if m.ShiftInstancesFromFunc != nil {
		return m.ShiftInstancesFromFunc(ctx, projectID, position)
	}
	return nil
}

func (m *MockChecklistRepository) DeleteInstance(ctx context.Context, id uuid.UUID) error {
	if m.DeleteInstanceFunc != nil {
		return m.DeleteInstanceFunc(ctx, id)
	}
	return nil
}

func (m *MockChecklistRepository) ReorderInstances(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) error {
	if m.ReorderInstancesFunc != nil {
		return m.ReorderInstancesFunc(ctx, projectID, ids)
	}
	return nil
}

func (m *MockChecklistRepository) ResequenceInstances(ctx context.Context, projectID uuid.UUID) error {
	if m.ResequenceInstancesFunc != nil {
		return m.ResequenceInstancesFunc(ctx, projectID)
	}
	return nil
}

func (m *MockChecklistRepository) CreateResults(ctx context.Context, results []*domain.ChecklistResult) error {
	if m.CreateResultsFunc != nil {
		return m.CreateResultsFunc(ctx, results)
	}
	return nil
}

func (m *MockChecklistRepository) FindResultByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistResult, error) {
	if m.FindResultByIDFunc != nil {
		return m.FindResultByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockChecklistRepository) UpdateResult(ctx context.Context, result *domain.ChecklistResult) error {
	if m.UpdateResultFunc != nil {
		return m.UpdateResultFunc(ctx, result)
	}
	return nil
}

func (m *MockChecklistRepository) CreateCustomTestCase(ctx context.Context, testCase *domain.CustomTestCase) error {
	if m.CreateCustomTestCaseFunc != nil {
		return m.CreateCustomTestCaseFunc(ctx, testCase)
	}
	return nil
}

// MockTesterRepository is a mock implementation of TesterRepository
type MockTesterRepository struct {
	CreateFunc      func(ctx context.Context, tester *domain.Tester) error
	FindByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Tester, error)
	FindAllFunc     func(ctx context.Context) ([]*domain.Tester, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.Tester, error)
	UpdateFunc      func(ctx context.Context, tester *domain.Tester) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *MockTesterRepository) Create(ctx context.Context, tester *domain.Tester) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tester)
	}
	return nil
}

func (m *MockTesterRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tester, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTesterRepository) FindAll(ctx context.Context) ([]*domain.Tester, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockTesterRepository) FindByEmail(ctx context.Context, email string) (*domain.Tester, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockTesterRepository) Update(ctx context.Context, tester *domain.Tester) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tester)
	}
	return nil
}

func (m *MockTesterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc         func(ctx context.Context, attachment *domain.ResultAttachment) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.ResultAttachment, error)
	FindByResultIDFunc func(ctx context.Context, resultID uuid.UUID) ([]*domain.ResultAttachment, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	DeleteBatchFunc    func(ctx context.Context, ids []uuid.UUID) error
	FindOrphanedFunc   func(ctx context.Context) ([]*domain.ResultAttachment, error)
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.ResultAttachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ResultAttachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByResultID(ctx context.Context, resultID uuid.UUID) ([]*domain.ResultAttachment, error) {
	if m.FindByResultIDFunc != nil {
		return m.FindByResultIDFunc(ctx, resultID)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAttachmentRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if m.DeleteBatchFunc != nil {
		return m.DeleteBatchFunc(ctx, ids)
	}
	return nil
}

func (m *MockAttachmentRepository) FindOrphaned(ctx context.Context) ([]*domain.ResultAttachment, error) {
	if m.FindOrphanedFunc != nil {
		return m.FindOrphanedFunc(ctx)
	}
	return nil, nil
}

// MockProgressCache is an in-memory ProgressCache for tests. It records
// invalidations so cache behavior can be asserted.
type MockProgressCache struct {
	store       map[uuid.UUID]*dto.ProgressResponse
	Invalidated []uuid.UUID
}

func NewMockProgressCache() *MockProgressCache {
	return &MockProgressCache{store: make(map[uuid.UUID]*dto.ProgressResponse)}
}

func (m *MockProgressCache) Get(ctx context.Context, projectID uuid.UUID) (*dto.ProgressResponse, bool) {
	p, ok := m.store[projectID]
	return p, ok
}

func (m *MockProgressCache) Set(ctx context.Context, projectID uuid.UUID, progress *dto.ProgressResponse) {
	m.store[projectID] = progress
}

func (m *MockProgressCache) Invalidate(ctx context.Context, projectID uuid.UUID) {
	delete(m.store, projectID)
	m.Invalidated = append(m.Invalidated, projectID)
}
