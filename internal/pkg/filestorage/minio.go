package filestorage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/winshaurya/alumnet/internal/pkg/logger"
)

// MinioStorage stores files in a MinIO (or any S3-compatible) bucket.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// MinioConfig holds the connection settings for the object store.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioStorage initializes the MinIO client and ensures the target
// bucket exists, creating it when missing.
func NewMinioStorage(cfg MinioConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
		logger.Info().Str("bucket", cfg.Bucket).Msg("Created storage bucket")
	}

	return &MinioStorage{client: client, bucket: cfg.Bucket}, nil
}

// SaveFile uploads the file to the bucket under subPath with a UUID object
// name and returns the object's URL path ("/bucket/subPath/uuid.ext").
func (ms *MinioStorage) SaveFile(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	objectName := uuid.New().String() + ext
	if subPath != "" {
		objectName = strings.Trim(subPath, "/") + "/" + objectName
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = ms.client.PutObject(ctx, ms.bucket, objectName, file, fileHeader.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		logger.Error().Err(err).Str("object", objectName).Msg("Failed to upload file to object store")
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return "/" + ms.bucket + "/" + objectName, nil
}

// DeleteFile removes an object previously returned by SaveFile.
func (ms *MinioStorage) DeleteFile(ctx context.Context, fileURL string) error {
	if fileURL == "" {
		return nil
	}

	objectName := strings.TrimPrefix(fileURL, "/"+ms.bucket+"/")
	if err := ms.client.RemoveObject(ctx, ms.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		logger.Error().Err(err).Str("object", objectName).Msg("Failed to delete object")
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
