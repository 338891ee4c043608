package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/response"
	"qa-checklist-api/internal/service"
)

// ProjectHandler handles project lifecycle endpoints
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject godoc
// @Summary      Create a project
// @Description  Creates a QA project. The project name must be unique among active projects.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProjectRequest true "Project creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      409 {object} response.ErrorResponse "Duplicate project name"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, project)
}

// GetProjects godoc
// @Summary      List active projects
// @Tags         projects
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.ProjectResponse}
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectService.GetProjects(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, projects)
}

// GetArchivedProjects godoc
// @Summary      List archived projects
// @Tags         projects
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.ProjectResponse}
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/archive [get]
func (h *ProjectHandler) GetArchivedProjects(c *gin.Context) {
	projects, err := h.projectService.GetArchivedProjects(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, projects)
}

// GetProject godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid project ID"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, project)
}

// UpdateProject godoc
// @Summary      Update a project
// @Description  Updates the provided fields. Renaming to an existing active project name is rejected.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.UpdateProjectRequest true "Project update request"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      409 {object} response.ErrorResponse "Duplicate project name"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), projectID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, project)
}

// ArchiveProject godoc
// @Summary      Archive a project
// @Description  Moves the project to the archive. Recorded results are kept.
// @Tags         projects
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Already archived"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId} [delete]
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}

	if err := h.projectService.ArchiveProject(c.Request.Context(), projectID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Project archived successfully"})
}

// RestoreProject godoc
// @Summary      Restore an archived project
// @Tags         projects
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ProjectResponse}
// @Failure      400 {object} response.ErrorResponse "Project is not archived"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId}/restore [post]
func (h *ProjectHandler) RestoreProject(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}

	if err := h.projectService.RestoreProject(c.Request.Context(), projectID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Project restored successfully"})
}

// PermanentDeleteProject godoc
// @Summary      Permanently delete an archived project
// @Description  Hard-deletes the project and all dependent checklist data. The project must be archived first.
// @Tags         projects
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Project must be archived before permanent deletion"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId}/permanent [delete]
func (h *ProjectHandler) PermanentDeleteProject(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}

	if err := h.projectService.PermanentDeleteProject(c.Request.Context(), projectID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Project permanently deleted"})
}
