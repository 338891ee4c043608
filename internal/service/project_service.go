package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"qa-checklist-api/internal/domain"
	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/metrics"
	"qa-checklist-api/internal/repository"
	"qa-checklist-api/internal/response"
)

// ProjectService defines the interface for project business logic,
// including the archive lifecycle.
type ProjectService interface {
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest, userID uuid.UUID) (*dto.ProjectResponse, error)
	GetProjects(ctx context.Context) ([]*dto.ProjectResponse, error)
	GetArchivedProjects(ctx context.Context) ([]*dto.ProjectResponse, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	ArchiveProject(ctx context.Context, projectID uuid.UUID) error
	RestoreProject(ctx context.Context, projectID uuid.UUID) error
	PermanentDeleteProject(ctx context.Context, projectID uuid.UUID) error
}

// projectServiceImpl is the implementation of ProjectService
type projectServiceImpl struct {
	projectRepo repository.ProjectRepository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, m *metrics.Metrics, logger *zap.Logger) ProjectService {
	return &projectServiceImpl{
		projectRepo: projectRepo,
		metrics:     m,
		logger:      logger,
	}
}

// CreateProject creates a new project. The name must be unique among
// non-archived projects.
func (s *projectServiceImpl) CreateProject(ctx context.Context, req *dto.CreateProjectRequest, userID uuid.UUID) (*dto.ProjectResponse, error) {
	existing, err := s.projectRepo.FindActiveByName(ctx, req.Name)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for duplicate project name", err.Error())
	}
	if existing != nil {
		return nil, response.NewAlreadyExistsError("A project with this name already exists", "")
	}

	status := domain.ProjectStatusDraft
	if req.Status != "" {
		status = domain.ProjectStatus(req.Status)
	}
	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
	}

	project := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
		Platform:    req.Platform,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		CreatedBy:   userID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create project", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementProjectCreated()
	}

	return toProjectResponse(project), nil
}

// GetProjects retrieves all non-archived projects
func (s *projectServiceImpl) GetProjects(ctx context.Context) ([]*dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindActive(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch projects", err.Error())
	}

	responses := make([]*dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, toProjectResponse(project))
	}
	return responses, nil
}

// GetArchivedProjects retrieves all archived projects
func (s *projectServiceImpl) GetArchivedProjects(ctx context.Context) ([]*dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindArchived(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch archived projects", err.Error())
	}

	responses := make([]*dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, toProjectResponse(project))
	}
	return responses, nil
}

// GetProject retrieves a project by ID with its assigned testers
func (s *projectServiceImpl) GetProject(ctx context.Context, projectID uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	resp := toProjectResponse(project)

	assignments, err := s.projectRepo.FindAssignmentsByProjectID(ctx, projectID)
	if err != nil {
		s.logger.Warn("Failed to fetch tester assignments for project",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return resp, nil
	}
	for _, assignment := range assignments {
		resp.Testers = append(resp.Testers, *toTesterResponse(&assignment.Tester))
	}
	return resp, nil
}

// UpdateProject updates the provided fields of a project
func (s *projectServiceImpl) UpdateProject(ctx context.Context, projectID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	if req.Name != nil && *req.Name != project.Name {
		existing, err := s.projectRepo.FindActiveByName(ctx, *req.Name)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check for duplicate project name", err.Error())
		}
		if existing != nil && existing.ID != project.ID {
			return nil, response.NewAlreadyExistsError("A project with this name already exists", "")
		}
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Version != nil {
		project.Version = *req.Version
	}
	if req.Platform != nil {
		project.Platform = *req.Platform
	}
	if req.Status != nil {
		project.Status = domain.ProjectStatus(*req.Status)
	}
	if req.Priority != nil {
		project.Priority = domain.Priority(*req.Priority)
	}
	if req.DueDate != nil {
		project.DueDate = req.DueDate
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update project", err.Error())
	}

	return toProjectResponse(project), nil
}

// ArchiveProject moves an active project to the archived state
func (s *projectServiceImpl) ArchiveProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Project not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	if project.IsArchived() {
		return response.NewInvalidStateError("Project is already archived", "")
	}

	now := time.Now().UTC()
	if err := s.projectRepo.SetArchived(ctx, projectID, &now); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to archive project", err.Error())
	}

	s.logger.Info("Project archived", zap.String("project_id", projectID.String()))
	return nil
}

// RestoreProject moves an archived project back to the active state
func (s *projectServiceImpl) RestoreProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Project not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	if !project.IsArchived() {
		return response.NewInvalidStateError("Project is not archived", "")
	}

	if err := s.projectRepo.SetArchived(ctx, projectID, nil); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to restore project", err.Error())
	}

	s.logger.Info("Project restored", zap.String("project_id", projectID.String()))
	return nil
}

// PermanentDeleteProject hard deletes an archived project together with
// its checklist. Fails with INVALID_STATE unless the project is archived;
// no data is removed in that case.
func (s *projectServiceImpl) PermanentDeleteProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Project not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch project", err.Error())
	}

	if !project.IsArchived() {
		return response.NewInvalidStateError("Project must be archived before permanent deletion", "")
	}

	if err := s.projectRepo.PermanentDelete(ctx, projectID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to permanently delete project", err.Error())
	}

	s.logger.Info("Project permanently deleted", zap.String("project_id", projectID.String()))
	return nil
}

// toProjectResponse converts domain.Project to dto.ProjectResponse
func toProjectResponse(project *domain.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Version:     project.Version,
		Platform:    project.Platform,
		Status:      string(project.Status),
		Priority:    string(project.Priority),
		DueDate:     project.DueDate,
		CreatedBy:   project.CreatedBy,
		ArchivedAt:  project.ArchivedAt,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
