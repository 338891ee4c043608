package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/response"
	"qa-checklist-api/internal/service"
)

// ChecklistHandler handles checklist endpoints: module instances, custom
// test cases, results and progress
type ChecklistHandler struct {
	checklistService service.ChecklistService
}

// NewChecklistHandler creates a new ChecklistHandler
func NewChecklistHandler(checklistService service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService}
}

// GetChecklist godoc
// @Summary      Get a project's checklist
// @Description  Returns the project's checklist modules in display order with test cases, custom test cases and results.
// @Tags         checklist
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ChecklistResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid project ID"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId}/checklist [get]
func (h *ChecklistHandler) GetChecklist(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}

	checklist, err := h.checklistService.GetChecklist(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, checklist)
}

// AttachModule godoc
// @Summary      Attach a module to a project's checklist
// @Description  Creates an independent checklist instance of the module and a PENDING result for every (test case, assigned tester) pair. An optional position inserts before the instance at that index.
// @Tags         checklist
// @Accept       json
// @Produce      json
// @Param        request body dto.AttachModuleRequest true "Attach request"
// @Success      201 {object} response.SuccessResponse{data=dto.ChecklistModuleResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request or archived project"
// @Failure      404 {object} response.ErrorResponse "Project or module not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /checklists/modules [post]
func (h *ChecklistHandler) AttachModule(c *gin.Context) {
	var req dto.AttachModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	instance, err := h.checklistService.AttachModule(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, instance)
}

// DetachModule godoc
// @Summary      Detach a module instance from a checklist
// @Description  Removes the instance with its results and custom test cases. Remaining instances are resequenced.
// @Tags         checklist
// @Produce      json
// @Param        checklistModuleId path string true "Checklist module ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Invalid ID or archived project"
// @Failure      404 {object} response.ErrorResponse "Checklist module not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /checklists/modules/{checklistModuleId} [delete]
func (h *ChecklistHandler) DetachModule(c *gin.Context) {
	checklistModuleID, ok := parseUUIDParam(c, "checklistModuleId", "checklist module ID")
	if !ok {
		return
	}

	if err := h.checklistService.DetachModule(c.Request.Context(), checklistModuleID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Module detached successfully"})
}

// AddCustomTestCase godoc
// @Summary      Add a custom test case to a checklist module instance
// @Description  The case exists only on this instance. A PENDING result is created for every assigned tester.
// @Tags         checklist
// @Accept       json
// @Produce      json
// @Param        checklistModuleId path string true "Checklist module ID (UUID)"
// @Param        request body dto.AddCustomTestCaseRequest true "Custom test case request"
// @Success      201 {object} response.SuccessResponse{data=dto.ChecklistCustomTestCaseResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request or archived project"
// @Failure      404 {object} response.ErrorResponse "Checklist module not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /checklists/modules/{checklistModuleId}/testcases [post]
func (h *ChecklistHandler) AddCustomTestCase(c *gin.Context) {
	checklistModuleID, ok := parseUUIDParam(c, "checklistModuleId", "checklist module ID")
	if !ok {
		return
	}

	var req dto.AddCustomTestCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	testCase, err := h.checklistService.AddCustomTestCase(c.Request.Context(), checklistModuleID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, testCase)
}

// UpdateResult godoc
// @Summary      Record a checklist result
// @Description  Sets status, notes or tester on one result row. Any status may be set from any other.
// @Tags         checklist
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        resultId path string true "Result ID (UUID)"
// @Param        request body dto.UpdateResultRequest true "Result update request"
// @Success      200 {object} response.SuccessResponse{data=dto.ResultResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request or archived project"
// @Failure      404 {object} response.ErrorResponse "Project, result or tester not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId}/checklist/results/{resultId} [put]
func (h *ChecklistHandler) UpdateResult(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}
	resultID, ok := parseUUIDParam(c, "resultId", "result ID")
	if !ok {
		return
	}

	var req dto.UpdateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.checklistService.UpdateResult(c.Request.Context(), projectID, resultID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ReorderChecklist godoc
// @Summary      Reorder a project's checklist
// @Description  Accepts the full desired checklist module ID order. Every ID must belong to the project.
// @Tags         checklist
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.ReorderRequest true "Full desired order"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Duplicate IDs or foreign instance"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId}/checklist/reorder [post]
func (h *ChecklistHandler) ReorderChecklist(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.checklistService.ReorderChecklist(c.Request.Context(), projectID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Checklist reordered successfully"})
}

// GetProgress godoc
// @Summary      Get checklist progress
// @Description  Returns pass/fail/pending counts and completion percentage per module instance and overall.
// @Tags         checklist
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ProgressResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid project ID"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId}/checklist/progress [get]
func (h *ChecklistHandler) GetProgress(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}

	progress, err := h.checklistService.GetProgress(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, progress)
}
