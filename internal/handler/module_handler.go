package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/response"
	"qa-checklist-api/internal/service"
)

// ModuleHandler handles module library endpoints
type ModuleHandler struct {
	moduleService service.ModuleService
}

// NewModuleHandler creates a new ModuleHandler
func NewModuleHandler(moduleService service.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService}
}

// CreateModule godoc
// @Summary      Create a module
// @Description  Creates a reusable test module at the end of the library order.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateModuleRequest true "Module creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.ModuleResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request body"
// @Failure      409 {object} response.ErrorResponse "Duplicate module name"
// @Failure      500 {object} response.ErrorResponse
// @Router       /modules [post]
func (h *ModuleHandler) CreateModule(c *gin.Context) {
	var req dto.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	module, err := h.moduleService.CreateModule(c.Request.Context(), &req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, module)
}

// GetModules godoc
// @Summary      List modules
// @Description  Returns the module library in display order with test cases.
// @Tags         modules
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.ModuleResponse}
// @Failure      500 {object} response.ErrorResponse
// @Router       /modules [get]
func (h *ModuleHandler) GetModules(c *gin.Context) {
	modules, err := h.moduleService.GetModules(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, modules)
}

// GetModule godoc
// @Summary      Get a module
// @Tags         modules
// @Produce      json
// @Param        moduleId path string true "Module ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ModuleResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid module ID"
// @Failure      404 {object} response.ErrorResponse "Module not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /modules/{moduleId} [get]
func (h *ModuleHandler) GetModule(c *gin.Context) {
	moduleID, ok := parseUUIDParam(c, "moduleId", "module ID")
	if !ok {
		return
	}

	module, err := h.moduleService.GetModule(c.Request.Context(), moduleID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, module)
}

// UpdateModule godoc
// @Summary      Update a module
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        moduleId path string true "Module ID (UUID)"
// @Param        request body dto.UpdateModuleRequest true "Module update request"
// @Success      200 {object} response.SuccessResponse{data=dto.ModuleResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Module not found"
// @Failure      409 {object} response.ErrorResponse "Duplicate module name"
// @Failure      500 {object} response.ErrorResponse
// @Router       /modules/{moduleId} [put]
func (h *ModuleHandler) UpdateModule(c *gin.Context) {
	moduleID, ok := parseUUIDParam(c, "moduleId", "module ID")
	if !ok {
		return
	}

	var req dto.UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	module, err := h.moduleService.UpdateModule(c.Request.Context(), moduleID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, module)
}

// DeleteModule godoc
// @Summary      Delete a module
// @Description  Deletes the module and its test cases. Checklist instances that reference it keep their recorded results.
// @Tags         modules
// @Produce      json
// @Param        moduleId path string true "Module ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Invalid module ID"
// @Failure      404 {object} response.ErrorResponse "Module not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /modules/{moduleId} [delete]
func (h *ModuleHandler) DeleteModule(c *gin.Context) {
	moduleID, ok := parseUUIDParam(c, "moduleId", "module ID")
	if !ok {
		return
	}

	if err := h.moduleService.DeleteModule(c.Request.Context(), moduleID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Module deleted successfully"})
}

// ReorderModules godoc
// @Summary      Reorder the module library
// @Description  Accepts the full desired module ID order and persists it atomically.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        request body dto.ReorderRequest true "Full desired order"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Duplicate IDs"
// @Failure      404 {object} response.ErrorResponse "Unknown module ID"
// @Failure      500 {object} response.ErrorResponse
// @Router       /modules/reorder [put]
func (h *ModuleHandler) ReorderModules(c *gin.Context) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.moduleService.ReorderModules(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Modules reordered successfully"})
}

// AddTestCase godoc
// @Summary      Add a test case to a module
// @Description  Appends a test case to the module's order. Priority defaults to MEDIUM.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        moduleId path string true "Module ID (UUID)"
// @Param        request body dto.CreateTestCaseRequest true "Test case creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.TestCaseResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Module not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /modules/{moduleId}/testcases [post]
func (h *ModuleHandler) AddTestCase(c *gin.Context) {
	moduleID, ok := parseUUIDParam(c, "moduleId", "module ID")
	if !ok {
		return
	}

	var req dto.CreateTestCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	testCase, err := h.moduleService.AddTestCase(c.Request.Context(), moduleID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, testCase)
}

// UpdateTestCase godoc
// @Summary      Update a test case
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        testCaseId path string true "Test case ID (UUID)"
// @Param        request body dto.UpdateTestCaseRequest true "Test case update request"
// @Success      200 {object} response.SuccessResponse{data=dto.TestCaseResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Test case not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /modules/testcases/{testCaseId} [put]
func (h *ModuleHandler) UpdateTestCase(c *gin.Context) {
	testCaseID, ok := parseUUIDParam(c, "testCaseId", "test case ID")
	if !ok {
		return
	}

	var req dto.UpdateTestCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	testCase, err := h.moduleService.UpdateTestCase(c.Request.Context(), testCaseID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, testCase)
}

// DeleteTestCase godoc
// @Summary      Delete a test case
// @Tags         modules
// @Produce      json
// @Param        testCaseId path string true "Test case ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Invalid test case ID"
// @Failure      404 {object} response.ErrorResponse "Test case not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /modules/testcases/{testCaseId} [delete]
func (h *ModuleHandler) DeleteTestCase(c *gin.Context) {
	testCaseID, ok := parseUUIDParam(c, "testCaseId", "test case ID")
	if !ok {
		return
	}

	if err := h.moduleService.DeleteTestCase(c.Request.Context(), testCaseID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Test case deleted successfully"})
}

// ReorderTestCases godoc
// @Summary      Reorder a module's test cases
// @Description  Accepts the full desired test case ID order for one module and persists it atomically.
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        moduleId path string true "Module ID (UUID)"
// @Param        request body dto.ReorderRequest true "Full desired order"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Duplicate IDs"
// @Failure      404 {object} response.ErrorResponse "Module or test case not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /modules/{moduleId}/testcases/reorder [put]
func (h *ModuleHandler) ReorderTestCases(c *gin.Context) {
	moduleID, ok := parseUUIDParam(c, "moduleId", "module ID")
	if !ok {
		return
	}

	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.moduleService.ReorderTestCases(c.Request.Context(), moduleID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Test cases reordered successfully"})
}
