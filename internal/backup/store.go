package backup

import (
	"context"

	"BucketBackup/internal/s3"
)

// Store is the subset of object store operations the pipeline uses.
// *s3.Client implements this interface.
type Store interface {
	ListObjects(ctx context.Context) ([]s3.ObjectInfo, error)
	DeleteObject(ctx context.Context, key string) error
	UploadFile(ctx context.Context, key, localPath string, metadata map[string]string, onProgress func(int64)) error
	Location(key string) string
}
