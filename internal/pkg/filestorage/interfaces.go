package filestorage

import (
	"context"
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations.
// Implementations return a URL path that can be stored on the owning
// record and later served or resolved by the backing store.
type FileStorage interface {
	// SaveFile stores an uploaded file under the given subdirectory
	// (e.g. "resumes") and returns its URL path.
	SaveFile(ctx context.Context, fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a previously stored file. Deleting a file that
	// no longer exists is not an error.
	DeleteFile(ctx context.Context, fileURL string) error
}
