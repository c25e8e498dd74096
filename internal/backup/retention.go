package backup

import (
	"context"
	"fmt"
	"time"

	"BucketBackup/internal/config"
	"BucketBackup/internal/progress"
	"BucketBackup/internal/s3"
)

// Prune deletes every object in the store older than the policy's cutoff and
// returns the number deleted. The listing is consumed completely before any
// deletion decision. An empty stale set performs zero delete calls.
//
// Deletes are fail-fast: the first failure aborts the pass and surfaces,
// leaving the remaining stale objects for a later run. Deletion order among
// the stale set is immaterial.
func Prune(ctx context.Context, store Store, policy config.RetentionPolicy, now time.Time, meter progress.Meter) (int, error) {
	objects, err := store.ListObjects(ctx)
	if err != nil {
		return 0, StoreErr(fmt.Errorf("list objects: %w", err))
	}

	var stale []s3.ObjectInfo
	for _, o := range objects {
		if policy.IsStale(o.LastModified, now) {
			stale = append(stale, o)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	if meter == nil {
		meter = progress.Nop()
	}
	meter.Begin("Deleting old backups", int64(len(stale)))
	deleted := 0
	for _, o := range stale {
		if err := store.DeleteObject(ctx, o.Key); err != nil {
			return deleted, StoreErr(fmt.Errorf("delete %s: %w", o.Key, err))
		}
		deleted++
		meter.Advance(1)
	}
	meter.Done()
	return deleted, nil
}
