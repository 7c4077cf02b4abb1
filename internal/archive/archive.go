// Package archive encodes folder plans as zip files.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"sbp-go/internal/structure"
)

var (
	// ErrEmptyArchive is returned when there is nothing to write.
	ErrEmptyArchive = errors.New("archive has no entries")
	// ErrUnsafeEntry is returned for entry names that would extract outside
	// the archive root.
	ErrUnsafeEntry = errors.New("entry path is not local")
)

// Write zip-encodes entries to w using deflate, stamping each entry with
// modified. The context is checked between entries; on cancellation the
// partial archive is abandoned and ctx.Err() is returned.
func Write(ctx context.Context, w io.Writer, entries []structure.ArchiveEntry, modified time.Time) error {
	if len(entries) == 0 {
		return ErrEmptyArchive
	}

	zw := zip.NewWriter(w)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !isLocal(e.Path) {
			return fmt.Errorf("adding %q: %w", e.Path, ErrUnsafeEntry)
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Path,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("adding %s: %w", e.Path, err)
		}
		if _, err := fw.Write(e.Content); err != nil {
			return fmt.Errorf("writing %s: %w", e.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

// isLocal reports whether name is a relative slash path that stays below
// the archive root.
func isLocal(name string) bool {
	return !strings.Contains(name, `\`) && filepath.IsLocal(filepath.FromSlash(name))
}

// Read decodes a zip archive back into entries, in archive order.
func Read(data []byte) ([]structure.ArchiveEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	entries := make([]structure.ArchiveEntry, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		entries = append(entries, structure.ArchiveEntry{Path: f.Name, Content: content})
	}
	return entries, nil
}
