package sbp

import (
	"context"
	"io"
)

// Destination receives finished archives. Implementations stream from r and
// must not leave a partial object behind when the write fails.
type Destination interface {
	// Name identifies the destination in logs and CLI output.
	Name() string

	// Put stores size bytes read from r under key, replacing any existing
	// object with the same key.
	Put(ctx context.Context, key string, r io.Reader, size int64) error

	// ValidateSetup verifies that the destination is reachable and writable.
	ValidateSetup(ctx context.Context) error
}
