package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

type Client interface {
	SaveBytes(ctx context.Context, bucketName string, objectName string, data []byte) error
}

type gcsClient struct {
	storageClient *storage.Client
}

func New(storageClient *storage.Client) Client {
	return &gcsClient{storageClient: storageClient}
}

func (s *gcsClient) SaveBytes(ctx context.Context, bucketName string, objectName string, data []byte) error {
	writer := s.storageClient.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	writer.ContentType = http.DetectContentType(data)

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

// ObjectNames returns the before and after object names of one request.
// E.g., "image-1718000000-LANGUAGE_KO_KR-5f0c...-before.png"
func ObjectNames(now time.Time, language fmt.Stringer) (before string, after string) {
	prefix := fmt.Sprintf("image-%d-%s-%s", now.UTC().Unix(), language, uuid.NewString())
	return prefix + "-before.png", prefix + "-after.png"
}
