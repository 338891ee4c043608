package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qa-checklist-api/internal/dto"
	"qa-checklist-api/internal/response"
	"qa-checklist-api/internal/service"
)

// AttachmentHandler handles result attachment endpoints
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// UploadAttachment godoc
// @Summary      Upload a result attachment
// @Description  Accepts one multipart image file under the "file" field. Only png, jpeg, jpg, gif and webp up to 5 MB are allowed.
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Param        resultId path string true "Result ID (UUID)"
// @Param        file formData file true "Image file"
// @Success      201 {object} response.SuccessResponse{data=dto.AttachmentResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid file type or size"
// @Failure      404 {object} response.ErrorResponse "Result not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /test-results/{resultId}/attachments [post]
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	resultID, ok := parseUUIDParam(c, "resultId", "result ID")
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "A file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	upload := &dto.AttachmentUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	}

	attachment, err := h.attachmentService.UploadAttachment(c.Request.Context(), resultID, upload, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, attachment)
}

// GetAttachments godoc
// @Summary      List result attachments
// @Tags         attachments
// @Produce      json
// @Param        resultId path string true "Result ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.AttachmentResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid result ID"
// @Failure      404 {object} response.ErrorResponse "Result not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /test-results/{resultId}/attachments [get]
func (h *AttachmentHandler) GetAttachments(c *gin.Context) {
	resultID, ok := parseUUIDParam(c, "resultId", "result ID")
	if !ok {
		return
	}

	attachments, err := h.attachmentService.GetAttachments(c.Request.Context(), resultID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, attachments)
}

// DeleteAttachment godoc
// @Summary      Delete a result attachment
// @Tags         attachments
// @Produce      json
// @Param        resultId path string true "Result ID (UUID)"
// @Param        attachmentId path string true "Attachment ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      400 {object} response.ErrorResponse "Invalid attachment ID"
// @Failure      404 {object} response.ErrorResponse "Attachment not found"
// @Failure      500 {object} response.ErrorResponse
// @Router       /test-results/{resultId}/attachments/{attachmentId} [delete]
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	attachmentID, ok := parseUUIDParam(c, "attachmentId", "attachment ID")
	if !ok {
		return
	}

	if err := h.attachmentService.DeleteAttachment(c.Request.Context(), attachmentID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Attachment deleted successfully"})
}
