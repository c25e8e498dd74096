package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"BucketBackup/internal/progress"
	"BucketBackup/internal/s3"
)

const checksumMetadataKey = "blake3-checksum"

// Upload transfers a local file to the store under its base filename,
// overwriting any existing object with that key. Progress increments sum to
// the file's size, announced before the transfer starts. A non-empty
// checksum is attached as object metadata.
func Upload(ctx context.Context, store Store, localPath, checksum string, meter progress.Meter) (s3.ObjectInfo, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return s3.ObjectInfo{}, IOErr(fmt.Errorf("stat %s: %w", localPath, err))
	}
	key := filepath.Base(localPath)

	var metadata map[string]string
	if checksum != "" {
		metadata = map[string]string{checksumMetadataKey: checksum}
	}

	if meter == nil {
		meter = progress.Nop()
	}
	meter.Begin("Upload progress", info.Size())
	if err := store.UploadFile(ctx, key, localPath, metadata, meter.Advance); err != nil {
		return s3.ObjectInfo{}, StoreErr(fmt.Errorf("upload %s: %w", key, err))
	}
	meter.Done()

	return s3.ObjectInfo{
		Key:          key,
		LastModified: time.Now().UTC(),
		Size:         info.Size(),
	}, nil
}
