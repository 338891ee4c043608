package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// CreateTesterRequest represents the request to create a tester
type CreateTesterRequest struct {
	Name  string  `json:"name" binding:"required,min=1,max=100" example:"Dana Kim"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Color *string `json:"color,omitempty" binding:"omitempty,max=20" example:"#FF5733"`
}

// UpdateTesterRequest represents the request to update a tester
type UpdateTesterRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Color *string `json:"color,omitempty" binding:"omitempty,max=20"`
}

// TesterResponse represents the tester response
type TesterResponse struct {
	ID        uuid.UUID `json:"testerId"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AttachmentUpload carries one multipart upload into the service layer
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// AttachmentResponse represents result attachment metadata. FileURL is the
// public download URL derived from the stored object key.
type AttachmentResponse struct {
	ID          uuid.UUID `json:"attachmentId"`
	ResultID    uuid.UUID `json:"resultId"`
	FileName    string    `json:"fileName"`
	FileURL     string    `json:"fileUrl"`
	FileSize    int64     `json:"fileSize"`
	ContentType string    `json:"contentType"`
	UploadedBy  uuid.UUID `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
