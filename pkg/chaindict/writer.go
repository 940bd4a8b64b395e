/*
Copyright 2011 Google Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package chaindict

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
)

// Writer appends a new link on top of an existing one (or on top of
// nothing, for a chain root), accumulating entries into a delta file and,
// if requested, a snapshot file, finalizing both on Finish.
//
// A Writer is not safe for concurrent use.
type Writer[T comparable] struct {
	store    storage.Storage
	codec    Codec[T]
	previous LinkId
	id       LinkId

	delta    *storage.Writer
	snapshot *storage.Writer

	offset uint32
	count  uint32
	index  uint32
}

// Create opens a new writer for a link extending previous, or a chain
// root if previous is the zero LinkId.
func Create[T comparable](ctx context.Context, store storage.Storage, codec Codec[T], previous LinkId) (*Writer[T], error) {
	id := NewLinkId()

	delta, err := store.Create(ctx, id, storage.Delta)
	if err != nil {
		return nil, wrapStorage(err)
	}

	return &Writer[T]{
		store:    store,
		codec:    codec,
		previous: previous,
		id:       id,
		delta:    delta,
	}, nil
}

// ID returns the LinkId this writer is building. It is valid even before
// Finish, since the ID is allocated eagerly at Create.
func (w *Writer[T]) ID() LinkId {
	return w.id
}

// WithSnapshot requests that this link also produce a snapshot file. It
// must be called before any WriteUnique; it fails with ErrNotEmpty if the
// delta writer has already emitted bytes.
//
// If previous is not the zero LinkId, this opens previous's snapshot,
// streams its body into the new snapshot, and seeds this writer's
// internal counters from the predecessor's snapshot footer — so the new
// link starts numbering its own entries right after the predecessor's
// dictionary ends.
func (w *Writer[T]) WithSnapshot(ctx context.Context) error {
	if w.delta.FileSize() != 0 {
		return ErrNotEmpty
	}

	snapshot, err := w.store.Create(ctx, w.id, storage.Snapshot)
	if err != nil {
		return wrapStorage(err)
	}

	if !w.previous.IsZero() {
		prev, err := w.store.Open(ctx, w.previous, storage.Snapshot)
		if err != nil {
			return wrapStorage(err)
		}
		footer, err := readSnapshotFooter(ctx, prev)
		if err != nil {
			return wrapStorage(err)
		}
		if err := snapshot.CopyFrom(ctx, prev); err != nil {
			return wrapStorage(err)
		}
		w.offset = footer.count
		w.count = footer.count
		w.index = footer.index + 1
	}

	w.snapshot = snapshot
	return nil
}

// WriteUnique appends entry, which the caller guarantees is not already
// present anywhere in the dictionary, and returns the identifier it was
// assigned.
func (w *Writer[T]) WriteUnique(ctx context.Context, entry T) (uint32, error) {
	if w.index == 0 && !w.previous.IsZero() && w.snapshot == nil {
		pd, err := w.store.Open(ctx, w.previous, storage.Delta)
		if err != nil {
			return 0, wrapStorage(err)
		}
		footer, err := readDeltaFooter(ctx, pd)
		if err != nil {
			return 0, wrapStorage(err)
		}
		w.offset = footer.total
		w.count = footer.total
		w.index = footer.index + 1
	}

	if w.count == math.MaxUint32 {
		return 0, ErrTooManyEntries
	}

	id := w.count
	w.count++

	if err := w.codec.Write(ctx, w.delta, entry); err != nil {
		return 0, wrapStorage(err)
	}
	if w.snapshot != nil {
		if err := w.codec.Write(ctx, w.snapshot, entry); err != nil {
			return 0, wrapStorage(err)
		}
	}

	return id, nil
}

// Finish finalizes the link, writing its footers and closing its files,
// and returns its LinkId. It fails with ErrEmpty if no entries were ever
// written.
func (w *Writer[T]) Finish(ctx context.Context) (LinkId, error) {
	if w.offset == w.count {
		return LinkId{}, ErrEmpty
	}

	df := deltaFooter{
		previous: w.previous,
		index:    w.index,
		total:    w.count,
		count:    w.count - w.offset,
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := writeDeltaFooter(gctx, w.delta, df); err != nil {
			return err
		}
		return w.delta.Finish(gctx)
	})
	if w.snapshot != nil {
		sf := snapshotFooter{previous: w.previous, index: w.index, count: w.count}
		group.Go(func() error {
			if err := writeSnapshotFooter(gctx, w.snapshot, sf); err != nil {
				return err
			}
			return w.snapshot.Finish(gctx)
		})
	}

	if err := group.Wait(); err != nil {
		return LinkId{}, wrapStorage(err)
	}

	return w.id, nil
}
