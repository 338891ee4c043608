package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/response"
)

// MockChecklistService is a mock implementation of ChecklistService
type MockChecklistService struct {
	GetChecklistFunc      func(ctx context.Context, projectID uuid.UUID) (*dto.ChecklistResponse, error)
	AttachModuleFunc      func(ctx context.Context, req *dto.AttachModuleRequest) (*dto.ChecklistModuleResponse, error)
	DetachModuleFunc      func(ctx context.Context, checklistModuleID uuid.UUID) error
	AddCustomTestCaseFunc func(ctx context.Context, checklistModuleID uuid.UUID, req *dto.AddCustomTestCaseRequest) (*dto.ChecklistCustomTestCaseResponse, error)
	UpdateResultFunc      func(ctx context.Context, projectID, resultID uuid.UUID, req *dto.UpdateResultRequest) (*dto.ResultResponse, error)
	ReorderChecklistFunc  func(ctx context.Context, projectID uuid.UUID, req *dto.ReorderRequest) error
	GetProgressFunc       func(ctx context.Context, projectID uuid.UUID) (*dto.ProgressResponse, error)
}

func (m *MockChecklistService) GetChecklist(ctx context.Context, projectID uuid.UUID) (*dto.ChecklistResponse, error) {
	if m.GetChecklistFunc != nil {
		return m.GetChecklistFunc(ctx, projectID)
	}
	return &dto.ChecklistResponse{}, nil
}

func (m *MockChecklistService) AttachModule(ctx context.Context, req *dto.AttachModuleRequest) (*dto.ChecklistModuleResponse, error) {
	if m.AttachModuleFunc != nil {
		return m.AttachModuleFunc(ctx, req)
	}
	return &dto.ChecklistModuleResponse{}, nil
}

func (m *MockChecklistService) DetachModule(ctx context.Context, checklistModuleID uuid.UUID) error {
	if m.DetachModuleFunc != nil {
		return m.DetachModuleFunc(ctx, checklistModuleID)
	}
	return nil
}

func (m *MockChecklistService) AddCustomTestCase(ctx context.Context, checklistModuleID uuid.UUID, req *dto.AddCustomTestCaseRequest) (*dto.ChecklistCustomTestCaseResponse, error) {
	if m.AddCustomTestCaseFunc != nil {
		return m.AddCustomTestCaseFunc(ctx, checklistModuleID, req)
	}
	return &dto.ChecklistCustomTestCaseResponse{}, nil
}

func (m *MockChecklistService) UpdateResult(ctx context.Context, projectID, resultID uuid.UUID, req *dto.UpdateResultRequest) (*dto.ResultResponse, error) {
	if m.UpdateResultFunc != nil {
		return m.UpdateResultFunc(ctx, projectID, resultID, req)
	}
	return &dto.ResultResponse{}, nil
}

func (m *MockChecklistService) ReorderChecklist(ctx context.Context, projectID uuid.UUID, req *dto.ReorderRequest) error {
	if m.ReorderChecklistFunc != nil {
		return m.ReorderChecklistFunc(ctx, projectID, req)
	}
	return nil
}

func (m *MockChecklistService) GetProgress(ctx context.Context, projectID uuid.UUID) (*dto.ProgressResponse, error) {
	if m.GetProgressFunc != nil {
		return m.GetProgressFunc(ctx, projectID)
	}
	return &dto.ProgressResponse{}, nil
}

func TestChecklistHandler_AttachModule(t *testing.T) {
	projectID := uuid.New()
	moduleID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		mockService    func(*MockChecklistService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "attaches a module",
			requestBody: dto.AttachModuleRequest{
				ProjectID: projectID,
				ModuleID:  moduleID,
			},
			mockService: func(m *MockChecklistService) {
				m.AttachModuleFunc = func(ctx context.Context, req *dto.AttachModuleRequest) (*dto.ChecklistModuleResponse, error) {
					return &dto.ChecklistModuleResponse{
						ID:         uuid.New(),
						ProjectID:  req.ProjectID,
						ModuleID:   req.ModuleID,
						ModuleName: "Login & Session",
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body []byte) {
				var resp map[string]interface{}
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("Failed to unmarshal response: %v", err)
				}
				data := resp["data"].(map[string]interface{})
				if data["moduleName"] != "Login & Session" {
					t.Errorf("Expected moduleName=Login & Session, got %v", data["moduleName"])
				}
			},
		},
		{
			name:           "rejects an invalid body",
			requestBody:    "invalid json",
			mockService:    func(m *MockChecklistService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "rejects an archived project",
			requestBody: dto.AttachModuleRequest{
				ProjectID: projectID,
				ModuleID:  moduleID,
			},
			mockService: func(m *MockChecklistService) {
				m.AttachModuleFunc = func(ctx context.Context, req *dto.AttachModuleRequest) (*dto.ChecklistModuleResponse, error) {
					return nil, response.NewInvalidStateError("Archived projects cannot be modified", "")
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "returns 404 for an unknown module",
			requestBody: dto.AttachModuleRequest{
				ProjectID: projectID,
				ModuleID:  moduleID,
			},
			mockService: func(m *MockChecklistService) {
				m.AttachModuleFunc = func(ctx context.Context, req *dto.AttachModuleRequest) (*dto.ChecklistModuleResponse, error) {
					return nil, response.NewNotFoundError("Module not found", "")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			mockService := &MockChecklistService{}
			tt.mockService(mockService)
			handler := NewChecklistHandler(mockService)

			router := setupTestRouter()
			router.POST("/api/qa/checklists/modules", handler.AttachModule)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/qa/checklists/modules", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			// When
			router.ServeHTTP(w, req)

			// Then
			if w.Code != tt.expectedStatus {
				t.Errorf("AttachModule() status = %v, want %v, body: %s", w.Code, tt.expectedStatus, w.Body.String())
			}

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestChecklistHandler_UpdateResult(t *testing.T) {
	projectID := uuid.New()
	resultID := uuid.New()
	passStatus := "PASS"

	tests := []struct {
		name           string
		projectID      string
		resultID       string
		requestBody    interface{}
		mockService    func(*MockChecklistService)
		expectedStatus int
	}{
		{
			name:        "records a result",
			projectID:   projectID.String(),
			resultID:    resultID.String(),
			requestBody: dto.UpdateResultRequest{Status: &passStatus},
			mockService: func(m *MockChecklistService) {
				m.UpdateResultFunc = func(ctx context.Context, pID, rID uuid.UUID, req *dto.UpdateResultRequest) (*dto.ResultResponse, error) {
					return &dto.ResultResponse{ID: rID, Status: *req.Status}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "rejects an invalid project UUID",
			projectID:      "invalid-uuid",
			resultID:       resultID.String(),
			requestBody:    dto.UpdateResultRequest{Status: &passStatus},
			mockService:    func(m *MockChecklistService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects an invalid result UUID",
			projectID:      projectID.String(),
			resultID:       "invalid-uuid",
			requestBody:    dto.UpdateResultRequest{Status: &passStatus},
			mockService:    func(m *MockChecklistService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "rejects an empty update",
			projectID:   projectID.String(),
			resultID:    resultID.String(),
			requestBody: dto.UpdateResultRequest{},
			mockService: func(m *MockChecklistService) {
				m.UpdateResultFunc = func(ctx context.Context, pID, rID uuid.UUID, req *dto.UpdateResultRequest) (*dto.ResultResponse, error) {
					return nil, response.NewValidationError("At least one field must be provided", "")
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "returns 404 when the result belongs to another project",
			projectID:   projectID.String(),
			resultID:    resultID.String(),
			requestBody: dto.UpdateResultRequest{Status: &passStatus},
			mockService: func(m *MockChecklistService) {
				m.UpdateResultFunc = func(ctx context.Context, pID, rID uuid.UUID, req *dto.UpdateResultRequest) (*dto.ResultResponse, error) {
					return nil, response.NewNotFoundError("Result not found", "")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			mockService := &MockChecklistService{}
			tt.mockService(mockService)
			handler := NewChecklistHandler(mockService)

			router := setupTestRouter()
			router.PUT("/api/qa/projects/:projectId/checklist/results/:resultId", handler.UpdateResult)

			body, _ := json.Marshal(tt.requestBody)
			url := "/api/qa/projects/" + tt.projectID + "/checklist/results/" + tt.resultID
			req := httptest.NewRequest(http.MethodPut, url, bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			// When
			router.ServeHTTP(w, req)

			// Then
			if w.Code != tt.expectedStatus {
				t.Errorf("UpdateResult() status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestChecklistHandler_ReorderChecklist(t *testing.T) {
	projectID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		mockService    func(*MockChecklistService)
		expectedStatus int
	}{
		{
			name:        "reorders the checklist",
			requestBody: dto.ReorderRequest{IDs: []uuid.UUID{uuid.New(), uuid.New()}},
			mockService: func(m *MockChecklistService) {
				m.ReorderChecklistFunc = func(ctx context.Context, pID uuid.UUID, req *dto.ReorderRequest) error {
					return nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "rejects an instance from another project",
			requestBody: dto.ReorderRequest{IDs: []uuid.UUID{uuid.New()}},
			mockService: func(m *MockChecklistService) {
				m.ReorderChecklistFunc = func(ctx context.Context, pID uuid.UUID, req *dto.ReorderRequest) error {
					return response.NewValidationError("Checklist module does not belong to this project", "")
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			mockService := &MockChecklistService{}
			tt.mockService(mockService)
			handler := NewChecklistHandler(mockService)

			router := setupTestRouter()
			router.POST("/api/qa/projects/:projectId/checklist/reorder", handler.ReorderChecklist)

			body, _ := json.Marshal(tt.requestBody)
			url := "/api/qa/projects/" + projectID.String() + "/checklist/reorder"
			req := httptest.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			// When
			router.ServeHTTP(w, req)

			// Then
			if w.Code != tt.expectedStatus {
				t.Errorf("ReorderChecklist() status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestChecklistHandler_GetProgress(t *testing.T) {
	projectID := uuid.New()

	// Given
	mockService := &MockChecklistService{
		GetProgressFunc: func(ctx context.Context, pID uuid.UUID) (*dto.ProgressResponse, error) {
			return &dto.ProgressResponse{
				ProjectID: pID,
				Overall: dto.ProgressCounts{
					Passed:  3,
					Failed:  1,
					Pending: 4,
					Total:   8,
					Percent: 50,
				},
			}, nil
		},
	}
	handler := NewChecklistHandler(mockService)

	router := setupTestRouter()
	router.GET("/api/qa/projects/:projectId/checklist/progress", handler.GetProgress)

	req := httptest.NewRequest(http.MethodGet, "/api/qa/projects/"+projectID.String()+"/checklist/progress", nil)
	w := httptest.NewRecorder()

	// When
	router.ServeHTTP(w, req)

	// Then
	if w.Code != http.StatusOK {
		t.Fatalf("GetProgress() status = %v, want %v", w.Code, http.StatusOK)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	overall := resp["data"].(map[string]interface{})["overall"].(map[string]interface{})
	if overall["percent"].(float64) != 50 {
		t.Errorf("Expected percent=50, got %v", overall["percent"])
	}
	if overall["total"].(float64) != 8 {
		t.Errorf("Expected total=8, got %v", overall["total"])
	}
}
