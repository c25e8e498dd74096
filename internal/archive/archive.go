package archive

import (
	"fmt"
	"time"
)

type Format string

const (
	FormatTar  Format = "tar"
	FormatGzip Format = "gz"
	FormatZstd Format = "zst"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTar, FormatGzip, FormatZstd:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown archive format %q", s)
}

func Extension(f Format) string {
	switch f {
	case FormatGzip:
		return ".tar.gz"
	case FormatZstd:
		return ".tar.zst"
	default:
		return ".tar"
	}
}

// Name derives the archive filename from the run's start time, one archive
// per month: "March-2024.tar". Two runs in the same month produce the same
// name and the later one overwrites, locally and remotely.
func Name(at time.Time, f Format) string {
	return at.Format("January-2006") + Extension(f)
}

// Archive describes one built snapshot artifact on local disk.
type Archive struct {
	Source   string
	Name     string
	Path     string
	Size     int64
	Files    int
	Checksum string
}
