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

	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
)

// Reader materializes the dictionary at some link of a chain: the
// ordered set of every entry contributed by that link and
// all of its ancestors, each holding the u32 identifier it was assigned.
//
// A Reader is not safe for concurrent use.
type Reader[T comparable] struct {
	store   storage.Storage
	codec   Codec[T]
	latest  LinkId
	entries *entries[T]
}

// Open builds a Reader holding the complete dictionary at latest. It
// downloads only the files on the path from latest back to the nearest
// snapshot, or to the chain root if none is found.
func Open[T comparable](ctx context.Context, store storage.Storage, codec Codec[T], latest LinkId) (*Reader[T], error) {
	r := &Reader[T]{
		store:   store,
		codec:   codec,
		latest:  latest,
		entries: newEntries[T](),
	}

	var (
		deltas [][]T
		total  int
		next   = latest
	)

	for {
		snap, err := store.OpenMaybe(ctx, next, storage.Snapshot)
		if err != nil {
			return nil, wrapStorage(err)
		}
		if snap != nil {
			footer, err := readSnapshotFooter(ctx, snap)
			if err != nil {
				return nil, wrapStorage(err)
			}
			total += int(footer.count)
			r.entries.reserve(total)
			if err := readEntriesInto(ctx, snap, codec, int(footer.count), r.entries); err != nil {
				return nil, wrapStorage(err)
			}
			break
		}

		delta, err := store.Open(ctx, next, storage.Delta)
		if err != nil {
			return nil, wrapStorage(err)
		}
		footer, err := readDeltaFooter(ctx, delta)
		if err != nil {
			return nil, wrapStorage(err)
		}
		total += int(footer.count)

		body, err := readEntries(ctx, delta, codec, int(footer.count))
		if err != nil {
			return nil, wrapStorage(err)
		}
		deltas = append(deltas, body)

		if footer.previous.IsZero() {
			r.entries.reserve(total)
			break
		}
		next = footer.previous
	}

	if err := insertDeltasReversed(r.entries, deltas); err != nil {
		return nil, err
	}

	return r, nil
}

// Reload incrementally extends r to the dictionary at latest, which must
// be a descendant of r.Latest(). It downloads only the deltas between
// r.Latest() and latest.
//
// If Reload fails, r's entries may have been partially extended while
// r.Latest() is left unchanged; r should be discarded rather than reused,
// including for another Reload (see DESIGN.md for the reasoning).
func (r *Reader[T]) Reload(ctx context.Context, latest LinkId) error {
	if latest == r.latest {
		return nil
	}

	var (
		deltas     [][]T
		additional int
		next       = latest
	)

	for next != r.latest {
		delta, err := r.store.Open(ctx, next, storage.Delta)
		if err != nil {
			return wrapStorage(err)
		}
		footer, err := readDeltaFooter(ctx, delta)
		if err != nil {
			return wrapStorage(err)
		}
		additional += int(footer.count)

		body, err := readEntries(ctx, delta, r.codec, int(footer.count))
		if err != nil {
			return wrapStorage(err)
		}
		deltas = append(deltas, body)

		if footer.previous.IsZero() {
			return &DisconnectedError{Latest: latest, Expected: r.latest, Got: next}
		}
		next = footer.previous
	}

	r.entries.reserve(additional)
	if err := insertDeltasReversed(r.entries, deltas); err != nil {
		return err
	}
	r.latest = latest

	return nil
}

// Latest returns the link this reader currently materializes.
func (r *Reader[T]) Latest() LinkId {
	return r.latest
}

// Len returns the number of entries in the dictionary.
func (r *Reader[T]) Len() int {
	return r.entries.len()
}

// GetAt returns the entry assigned the given identifier, if any.
func (r *Reader[T]) GetAt(index uint32) (T, bool) {
	return r.entries.getAt(index)
}

// GetIndexOf returns the identifier assigned to entry, if it has been
// inserted into the dictionary.
func (r *Reader[T]) GetIndexOf(entry T) (uint32, bool) {
	return r.entries.getIndexOf(entry)
}

// readEntries reads exactly count entries from r's current position,
// using codec.
func readEntries[T comparable](ctx context.Context, r *storage.Reader, codec Codec[T], count int) ([]T, error) {
	out := make([]T, count)
	for i := 0; i < count; i++ {
		entry, err := readEntry(ctx, r, codec)
		if err != nil {
			return nil, err
		}
		out[i] = entry
	}
	return out, nil
}

// readEntriesInto is like readEntries, but inserts each entry into idx as
// it is read instead of returning them, since snapshot bodies are already
// in dictionary order and need no reversal.
func readEntriesInto[T comparable](ctx context.Context, r *storage.Reader, codec Codec[T], count int, idx *entries[T]) error {
	for i := 0; i < count; i++ {
		entry, err := readEntry(ctx, r, codec)
		if err != nil {
			return err
		}
		if _, err := idx.insertUnique(entry); err != nil {
			return err
		}
	}
	return nil
}

// readEntry reads a single entry through codec and verifies it consumed
// exactly codec.Size() bytes, failing with *FileSizeError otherwise. A
// codec that reads short would otherwise misalign every entry after it
// without ever surfacing an error, since only reads past the logical end
// of the file are caught on their own.
func readEntry[T comparable](ctx context.Context, r *storage.Reader, codec Codec[T]) (T, error) {
	start := r.Offset()
	size := int64(codec.Size())

	entry, err := codec.Read(ctx, r)
	if err != nil {
		var zero T
		return zero, err
	}

	if got := r.Offset() - start; got != size {
		var zero T
		return zero, &storage.FileSizeError{Expected: start + size, Got: start + got}
	}

	return entry, nil
}

// insertDeltasReversed replays deltas, a slice of per-link entry slices
// collected walking backward from the most recent link toward the root,
// into idx in the order a snapshot at the most recent link would have
// stored them: oldest ancestor's contribution first.
func insertDeltasReversed[T comparable](idx *entries[T], deltas [][]T) error {
	for i := len(deltas) - 1; i >= 0; i-- {
		for _, entry := range deltas[i] {
			if _, err := idx.insertUnique(entry); err != nil {
				return err
			}
		}
	}
	return nil
}
