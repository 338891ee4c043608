package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxAttachmentSize is the maximum allowed upload size in bytes (5 MB)
const MaxAttachmentSize = 5 * 1024 * 1024

// AllowedAttachmentTypes is the MIME allow-list for result attachments.
// Only image evidence is accepted.
var AllowedAttachmentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateUpload is the pure attachment predicate: content type must be a
// non-empty member of the allow-list and size must not exceed
// MaxAttachmentSize. It never panics; violations come back as errors.
func ValidateUpload(contentType string, size int64) error {
	if contentType == "" {
		return fmt.Errorf("file content type is required")
	}
	if !AllowedAttachmentTypes[contentType] {
		return fmt.Errorf("file type %q is not allowed: only png, jpeg, jpg, gif and webp images are accepted", contentType)
	}
	if size <= 0 {
		return fmt.Errorf("file size must be greater than zero")
	}
	if size > MaxAttachmentSize {
		return fmt.Errorf("file size %d exceeds the maximum of %d bytes", size, MaxAttachmentSize)
	}
	return nil
}

// ResultAttachment is file metadata for evidence attached to a checklist
// result. FileKey is the object-store key, not a full URL.
type ResultAttachment struct {
	BaseModel
	ResultID    uuid.UUID `gorm:"type:uuid;not null;index:idx_result_attachments_result_id" json:"resultId"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"fileName"`
	ContentType string    `gorm:"type:varchar(100);not null" json:"contentType"`
	FileSize    int64     `gorm:"not null" json:"fileSize"`
	FileKey     string    `gorm:"type:text;not null" json:"fileKey"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;not null" json:"uploadedBy"`
}

// TableName specifies the table name for ResultAttachment
func (ResultAttachment) TableName() string {
	return "result_attachments"
}
