package filestorage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/winshaurya/alumnet/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The base URL prepended to returned file paths
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; if provided, it will be prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// SaveFile saves an uploaded file into a subdirectory under the base path
// and returns its URL path. The stored filename is a fresh UUID so uploads
// never collide or overwrite each other.
func (ls *LocalStorage) SaveFile(_ context.Context, fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // No file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	storedName := uuid.New().String() + ext
	destPath := filepath.Join(fullDirPath, storedName)

	dest, err := os.Create(destPath)
	if err != nil {
		logger.Error().Err(err).Str("path", destPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		logger.Error().Err(err).Str("path", destPath).Msg("Failed to write uploaded file")
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	relPath := storedName
	if subPath != "" {
		relPath = subPath + "/" + storedName
	}
	if ls.baseURL != "" {
		return ls.baseURL + "/" + relPath, nil
	}
	return "/" + relPath, nil
}

// DeleteFile removes a file previously returned by SaveFile. A missing
// file is treated as already deleted.
func (ls *LocalStorage) DeleteFile(_ context.Context, fileURL string) error {
	if fileURL == "" {
		return nil
	}

	relPath := fileURL
	if ls.baseURL != "" {
		relPath = strings.TrimPrefix(relPath, ls.baseURL)
	}
	relPath = strings.TrimPrefix(relPath, "/")

	// Reject anything trying to escape the base path
	cleaned := filepath.Clean(relPath)
	if strings.HasPrefix(cleaned, "..") {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	fullPath := filepath.Join(ls.basePath, cleaned)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
