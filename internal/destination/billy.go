package destination

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"sbp-go/internal/sbp"
)

// tempPrefix marks in-flight uploads so a crashed write is recognisable.
const tempPrefix = ".sbp-upload-"

// BillyDestination stores archives on a billy filesystem. The filesystem
// flavour uses osfs rooted at a local directory; the memory flavour uses
// memfs and is intended for tests. Writes go to a temp file that is renamed
// into place, so readers never see a partial archive.
type BillyDestination struct {
	name string
	root string // empty for memory destinations
	fs   billy.Filesystem
}

var _ sbp.Destination = (*BillyDestination)(nil)

// NewFilesystemDestination creates a destination that writes into root,
// creating the directory if needed.
func NewFilesystemDestination(name, root string) (*BillyDestination, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating destination directory: %w", err)
	}
	return &BillyDestination{name: name, root: root, fs: osfs.New(root)}, nil
}

// NewMemoryDestination creates an in-memory destination.
func NewMemoryDestination(name string) *BillyDestination {
	return &BillyDestination{name: name, fs: memfs.New()}
}

func (d *BillyDestination) Name() string { return d.name }

// Root returns the local directory for filesystem destinations and "" for
// memory destinations.
func (d *BillyDestination) Root() string { return d.root }

// Put writes size bytes from r to key, replacing any existing file.
func (d *BillyDestination) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}

	dir := path.Dir(key)
	if dir != "." {
		if err := d.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	tmp, err := util.TempFile(d.fs, dir, tempPrefix)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			d.fs.Remove(tmpName)
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Rename does not replace on every billy backend.
	if err := d.fs.Remove(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to replace existing file: %w", err)
	}
	if err := d.fs.Rename(tmpName, key); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Get copies the stored object at key to w.
func (d *BillyDestination) Get(key string, w io.Writer) error {
	f, err := d.fs.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("archive not found: %s", key)
		}
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return nil
}

// ValidateSetup checks that the root exists and accepts writes.
func (d *BillyDestination) ValidateSetup(ctx context.Context) error {
	if d.root != "" {
		info, err := os.Stat(d.root)
		if err != nil {
			return fmt.Errorf("destination root not accessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("destination root is not a directory: %s", d.root)
		}
	}

	probe, err := util.TempFile(d.fs, ".", tempPrefix)
	if err != nil {
		return fmt.Errorf("destination not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	if err := d.fs.Remove(name); err != nil {
		return fmt.Errorf("removing probe file: %w", err)
	}
	return nil
}
