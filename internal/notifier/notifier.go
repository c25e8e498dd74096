package notifier

import (
	"context"
	"time"
)

type Notifier interface {
	NotifySuccess(ctx context.Context, source, location string, size int64, duration time.Duration) error
	NotifyError(ctx context.Context, source string, err error) error
	NotifyPrune(ctx context.Context, deleted int) error
}
