package testutil

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"sbp-go/internal/destination"
	"sbp-go/internal/sbp"
)

// ErrDestinationDown is returned by FailingDestination.
var ErrDestinationDown = errors.New("destination unavailable")

// NewTestDestination creates an in-memory destination.
func NewTestDestination(name string) *destination.BillyDestination {
	return destination.NewMemoryDestination(name)
}

// FailingDestination rejects every write and counts the attempts.
type FailingDestination struct {
	name     string
	attempts atomic.Int32
}

var _ sbp.Destination = (*FailingDestination)(nil)

func NewFailingDestination(name string) *FailingDestination {
	return &FailingDestination{name: name}
}

func (d *FailingDestination) Name() string { return d.name }

func (d *FailingDestination) Put(context.Context, string, io.Reader, int64) error {
	d.attempts.Add(1)
	return ErrDestinationDown
}

func (d *FailingDestination) ValidateSetup(context.Context) error {
	return ErrDestinationDown
}

// Attempts returns how many times Put was called.
func (d *FailingDestination) Attempts() int {
	return int(d.attempts.Load())
}
