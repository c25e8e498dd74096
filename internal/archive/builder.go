package archive

import (
	"archive/tar"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"BucketBackup/internal/progress"
)

// Builder serializes one source directory into a single archive file in
// OutDir. Entry names are relative to Source: the archive root corresponds
// to the source directory's contents, never to its absolute path or its own
// name as a wrapping folder.
type Builder struct {
	Source string
	OutDir string
	Format Format
	Meter  progress.Meter

	// Now is the clock for the archive name. Nil means time.Now.
	Now func() time.Time
}

func (b *Builder) Build(ctx context.Context) (*Archive, error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	meter := b.Meter
	if meter == nil {
		meter = progress.Nop()
	}
	outDir := b.OutDir
	if outDir == "" {
		outDir = "."
	}

	absSource, err := filepath.Abs(filepath.Clean(b.Source))
	if err != nil {
		return nil, err
	}

	total, err := countFiles(absSource)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", b.Source, err)
	}

	name := Name(now(), b.Format)
	outPath := filepath.Join(outDir, name)
	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create archive %s: %w", outPath, err)
	}

	hasher := blake3.New()
	cw, err := newCompressWriter(io.MultiWriter(f, hasher), b.Format)
	if err != nil {
		f.Close()
		return nil, err
	}
	tw := tar.NewWriter(cw)

	meter.Begin("Adding files", int64(total))
	files, walkErr := b.walk(ctx, tw, absSource, absSource, meter)

	// Close in flush order; a close failure invalidates the archive the
	// same way a write failure does.
	if err := tw.Close(); walkErr == nil {
		walkErr = err
	}
	if err := cw.Close(); walkErr == nil {
		walkErr = err
	}
	if err := f.Close(); walkErr == nil {
		walkErr = err
	}
	if walkErr != nil {
		// The partial file stays on disk for the caller to discard.
		return nil, fmt.Errorf("archive %s: %w", b.Source, walkErr)
	}
	meter.Done()

	info, err := os.Stat(outPath)
	if err != nil {
		return nil, fmt.Errorf("stat archive %s: %w", outPath, err)
	}

	return &Archive{
		Source:   b.Source,
		Name:     name,
		Path:     outPath,
		Size:     info.Size(),
		Files:    files,
		Checksum: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

func (b *Builder) walk(ctx context.Context, tw *tar.Writer, root, dir string, meter progress.Meter) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	files := 0
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return files, ctx.Err()
		default:
		}
		full := filepath.Join(dir, e.Name())
		if e.IsDir() {
			n, err := b.walk(ctx, tw, root, full, meter)
			files += n
			if err != nil {
				return files, err
			}
			continue
		}

		info, err := e.Info()
		if err != nil {
			return files, err
		}
		if !info.Mode().IsRegular() {
			continue
		}

		rel, err := filepath.Rel(root, full)
		if err != nil {
			return files, err
		}
		tarName := filepath.ToSlash(rel)
		if strings.HasPrefix(tarName, "..") {
			continue
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return files, err
		}
		hdr.Name = tarName
		if err := tw.WriteHeader(hdr); err != nil {
			return files, err
		}
		src, err := os.Open(full)
		if err != nil {
			return files, err
		}
		_, err = io.Copy(tw, src)
		src.Close()
		if err != nil {
			return files, err
		}
		files++
		meter.Advance(1)
	}
	return files, nil
}

// countFiles precomputes the progress total: regular files only, matching
// what the walk will add.
func countFiles(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			total++
		}
		return nil
	})
	return total, err
}
