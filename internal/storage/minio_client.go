package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/thejerf/abtime"

	"blogsite/internal/config"
)

// Storage keeps post header images.
type Storage interface {
	UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (objectName string, imageURL string, err error)
	DeleteImage(ctx context.Context, objectName string) error
	// ObjectName reports the object behind imageURL, if this storage served it.
	ObjectName(imageURL string) (string, bool)
}

// minioAPI is the subset of *minio.Client the storage uses.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var _ Storage = (*MinIOClient)(nil)

type MinIOClient struct {
	api       minioAPI
	bucket    string
	publicURL string
	clock     abtime.AbstractTime
}

// NewMinIOClient connects to the configured endpoint and makes sure the bucket exists.
func NewMinIOClient(ctx context.Context, cfg config.MinIO, clock abtime.AbstractTime) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return newMinIOClient(ctx, client, cfg.BucketName, cfg.PublicURL, clock)
}

func newMinIOClient(ctx context.Context, api minioAPI, bucket, publicURL string, clock abtime.AbstractTime) (*MinIOClient, error) {
	m := &MinIOClient{
		api:       api,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		clock:     clock,
	}

	if err := m.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return m, nil
}

func (m *MinIOClient) ensureBucketExists(ctx context.Context) error {
	exists, err := m.api.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := m.api.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// UploadImage stores file under posts/<year>/<month>/<uuid><ext> and returns
// the object name and the URL browsers load it from.
func (m *MinIOClient) UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := m.clock.Now()
	objectName := fmt.Sprintf("posts/%d/%02d/%s%s",
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)

	_, err := m.api.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": filepath.Base(fileName),
				"uploaded-at":       now.UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	return objectName, m.imageURL(objectName), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.api.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{
		GovernanceBypass: true,
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func (m *MinIOClient) ObjectName(imageURL string) (string, bool) {
	prefix := m.imageURL("")
	if !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}

	objectName := strings.TrimPrefix(imageURL, prefix)
	if objectName == "" {
		return "", false
	}

	return objectName, true
}

func (m *MinIOClient) imageURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, objectName)
}
