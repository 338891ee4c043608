package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/response"
	"qa-checklist-api/internal/service"
)

// TesterHandler handles tester and assignment endpoints
type TesterHandler struct {
	testerService service.TesterService
}

// NewTesterHandler creates a new TesterHandler
func NewTesterHandler(testerService service.TesterService) *TesterHandler {
	return &TesterHandler{testerService: testerService}
}

// CreateTester godoc
// @Summary      Create a tester
// @Description  Creates a tester. Email, when provided, must be unique.
// @Tags         testers
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTesterRequest true "Tester creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.TesterResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      409 {object} response.ErrorResponse "Duplicate email"
// @Failure      500 {object} response.ErrorResponse
// @Router       /testers [post]
func (h *TesterHandler) CreateTester(c *gin.Context) {
	var req dto.CreateTesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	tester, err := h.testerService.CreateTester(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, tester)
}

// GetTesters godoc
// @Summary      List testers
// @Tags         testers
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.TesterResponse}
// @Failure      500 {object} response.ErrorResponse
// @Router       /testers [get]
func (h *TesterHandler) GetTesters(c *gin.Context) {
	testers, err := h.testerService.GetTesters(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, testers)
}

// UpdateTester godoc
// @Summary      Update a tester
// @Tags         testers
// @Accept       json
// @Produce      json
// @Param        testerId path string true "Tester ID (UUID)"
// @Param        request body dto.UpdateTesterRequest true "Tester update request"
// @Success      200 {object} response.SuccessResponse{data=dto.TesterResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Tester not found"
// @Failure      409 {object} response.ErrorResponse "Duplicate email"
// @Failure      500 {object} response.ErrorResponse
// @Router       /testers/{testerId} [put]
func (h *TesterHandler) UpdateTester(c *gin.Context) {
	testerID, ok := parseUUIDParam(c, "testerId", "tester ID")
	if !ok {
		return
	}

	var req dto.UpdateTesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	tester, err := h.testerService.UpdateTester(c.Request.Context(), testerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tester)
}

// DeleteTester godoc
// @Summary      Delete a tester
// @Description  Deletes the tester and removes their project assignments. Recorded results keep their tester reference.
// @Tags         testers
// @Produce      json
// @Param        testerId path string true "Tester ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Invalid tester ID"
// @Failure      404 {object} response.ErrorResponse "Tester not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /testers/{testerId} [delete]
func (h *TesterHandler) DeleteTester(c *gin.Context) {
	testerID, ok := parseUUIDParam(c, "testerId", "tester ID")
	if !ok {
		return
	}

	if err := h.testerService.DeleteTester(c.Request.Context(), testerID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Tester deleted successfully"})
}

// GetProjectTesters godoc
// @Summary      List the testers assigned to a project
// @Tags         testers
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.TesterResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid project ID"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId}/testers [get]
func (h *TesterHandler) GetProjectTesters(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}

	testers, err := h.testerService.GetProjectTesters(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, testers)
}

// AssignTesters godoc
// @Summary      Assign testers to a project
// @Description  Assigns one or more testers. Already-assigned testers are skipped. Each new assignment backfills a PENDING result for every checklist test case.
// @Tags         testers
// @Accept       json
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        request body dto.AssignTestersRequest true "Tester IDs to assign"
// @Success      200 {object} response.SuccessResponse{data=dto.AssignTestersResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId}/testers [post]
func (h *TesterHandler) AssignTesters(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}

	var req dto.AssignTestersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.testerService.AssignTesters(c.Request.Context(), projectID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// UnassignTester godoc
// @Summary      Remove a tester from a project
// @Description  Removes the assignment. Removing an absent assignment succeeds. Recorded results are kept.
// @Tags         testers
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Param        testerId path string true "Tester ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Invalid ID"
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /projects/{projectId}/testers/{testerId} [delete]
func (h *TesterHandler) UnassignTester(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "projectId", "project ID")
	if !ok {
		return
	}
	testerID, ok := parseUUIDParam(c, "testerId", "tester ID")
	if !ok {
		return
	}

	if err := h.testerService.UnassignTester(c.Request.Context(), projectID, testerID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Tester unassigned successfully"})
}
