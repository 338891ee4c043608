package client

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket   string
	Region   string
	Endpoint string

	// Optional function overrides for custom test behavior
	GenerateFileKeyFunc func(resultID uuid.UUID, fileName string) string
	UploadFileFunc      func(ctx context.Context, key string, file io.Reader, contentType string) error
	DeleteFileFunc      func(ctx context.Context, key string) error
	GetFileURLFunc      func(key string) string

	// Uploaded and Deleted record the keys passed to UploadFile and
	// DeleteFile for assertions.
	Uploaded []string
	Deleted  []string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		Bucket:   "test-bucket",
		Region:   "ap-northeast-2",
		Endpoint: "",
	}
}

// GenerateFileKey generates a unique file key for object storage
func (m *MockS3Client) GenerateFileKey(resultID uuid.UUID, fileName string) string {
	if m.GenerateFileKeyFunc != nil {
		return m.GenerateFileKeyFunc(resultID, fileName)
	}

	now := time.Now()
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("qa/results/%s/%d/%02d/%s_%d%s",
		resultID.String(),
		now.Year(),
		now.Month(),
		uuid.New().String(),
		now.UnixNano(),
		ext,
	)
}

// UploadFile simulates file upload
func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, contentType)
	}

	m.Uploaded = append(m.Uploaded, key)
	return nil
}

// DeleteFile simulates file deletion
func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}

	m.Deleted = append(m.Deleted, key)
	return nil
}

// GetFileURL returns the public URL for a file
func (m *MockS3Client) GetFileURL(key string) string {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(key)
	}

	if m.Endpoint != "" && !strings.Contains(m.Endpoint, "amazonaws.com") {
		return fmt.Sprintf("%s/%s/%s", m.Endpoint, m.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Bucket, m.Region, key)
}

// Ensure MockS3Client implements S3ClientInterface
var _ S3ClientInterface = (*MockS3Client)(nil)
