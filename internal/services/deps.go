package services

import (
	"context"
	"errors"
	"time"

	"sonority/internal/logger"
	"sonority/internal/repositories"
	"sonority/internal/storage"
)

// Dependencies are the collaborators shared by every service.
type Dependencies struct {
	Store *repositories.Store
	// Events is optional; nil disables event publishing.
	Events EventPublisher
	// Blobs is optional; nil disables cover images.
	Blobs storage.BlobStore
	// Log is optional; nil discards log output.
	Log *logger.Logger
	// Clock is optional; it defaults to the current UTC time.
	Clock func() time.Time
}

type base struct {
	store  *repositories.Store
	events EventPublisher
	blobs  storage.BlobStore
	log    *logger.Logger
	clock  func() time.Time
}

func newBase(deps Dependencies, name string) base {
	log := deps.Log
	if log == nil {
		log = logger.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return base{
		store:  deps.Store,
		events: deps.Events,
		blobs:  deps.Blobs,
		log:    log.With("service", name),
		clock:  clock,
	}
}

func (b *base) now() time.Time {
	return b.clock().UTC()
}

// dropBlobs deletes blobs that are no longer referenced by a committed row.
func (b *base) dropBlobs(ctx context.Context, ids ...string) {
	if b.blobs == nil {
		return
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if err := b.blobs.Delete(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
			b.log.Warn("failed to delete blob", "blob_id", id, "error", err)
		}
	}
}

// notFound replaces a repository miss with the given domain error.
func notFound(err error, sentinel *Error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return sentinel
	}
	return err
}
