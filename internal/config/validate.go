package config

import (
	"errors"
	"fmt"
	"os"

	"BucketBackup/internal/archive"
)

var ErrInvalidFormat = errors.New("invalid format: must be exactly 'tar', 'gz' or 'zst'")

func Validate(s *Settings) error {
	if _, err := archive.ParseFormat(s.Format); err != nil {
		return ErrInvalidFormat
	}
	if s.RetentionDays < 0 {
		return fmt.Errorf("retention_days must not be negative, got %d", s.RetentionDays)
	}
	return nil
}

// ValidateSourceDir checks the positional folder argument before any work
// starts. A bad folder is a usage error, not a runtime failure.
func ValidateSourceDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("folder %q does not exist", path)
		}
		return fmt.Errorf("folder %q: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", path)
	}
	return nil
}
