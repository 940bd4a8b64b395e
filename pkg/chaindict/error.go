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

// Package chaindict implements an append-only chain of fixed-size-entry
// dictionaries: an ordered bijection between comparable entries and u32
// identifiers, extended over time by linking immutable delta and snapshot
// files on top of an object store.
//
// A Reader materializes a dictionary at a given link by walking backward
// through deltas until it reaches a snapshot or the chain root, then
// replaying what it found forward. A Writer or LazyWriter appends a new
// link on top of an existing one, optionally starting fresh from a
// snapshot of its predecessor.
//
// The underlying object store is reached through the storage subpackage's
// Operator interface; concrete backends live in storage/memory,
// storage/s3 and storage/gcs.
package chaindict

import (
	"errors"
	"fmt"

	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
)

// formatVersion is written into every footer's VERSION field. Readers
// reject any footer whose version does not match exactly: the format has
// no forward- or backward-compatibility story yet.
const formatVersion uint16 = 0

// LinkId, Kind, Delta and Snapshot are re-exported from the storage
// package so that callers never need to import it directly just to name a
// link or pick a file kind.
type (
	LinkId = storage.LinkId
	Kind   = storage.Kind
)

const (
	Delta    = storage.Delta
	Snapshot = storage.Snapshot
)

// NewLinkId, LinkIdFromU128 and ParseLinkId are re-exported from the
// storage package for the same reason.
var (
	NewLinkId      = storage.NewLinkId
	LinkIdFromU128 = storage.LinkIdFromU128
	ParseLinkId    = storage.ParseLinkId
)

// ErrEmpty is returned by Writer.Finish when no entries were added to the
// link being created.
var ErrEmpty = errors.New("chaindict: link is empty")

// ErrNotEmpty is returned by Writer.WithSnapshot when entries have already
// been written to the link's delta.
var ErrNotEmpty = errors.New("chaindict: cannot create a snapshot once the delta is non-empty")

// ErrTooManyEntries is returned when an insert would exceed the maximum
// u32 number of entries a chain can hold.
var ErrTooManyEntries = errors.New("chaindict: reached the maximum number of entries")

// DisconnectedError reports that Reader.Reload walked from latest back to
// the chain's root without ever encountering expected: the link passed to
// Reload is not a descendant of the reader's current tip.
type DisconnectedError struct {
	Latest   LinkId
	Expected LinkId
	Got      LinkId
}

func (e *DisconnectedError) Error() string {
	return fmt.Sprintf("chaindict: disconnected chain: while loading from %s, expected to reach %s but ended up at %s",
		e.Latest, e.Expected, e.Got)
}

// DoesNotExistError, FileSizeError and VersionError are re-exported from
// the storage package: they originate there (Storage.Open and the footer
// codecs raise them directly) but are part of this package's public
// error taxonomy, so callers shouldn't need to import storage to type-
// switch or errors.As on them.
type (
	DoesNotExistError = storage.DoesNotExistError
	FileSizeError     = storage.FileSizeError
	VersionError      = storage.VersionError
)

// StorageError wraps an error returned by the underlying object-store
// Operator that isn't already one of chaindict's own typed errors, so
// that errors.Is and errors.As can still reach the original cause via
// Unwrap.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("chaindict: storage: %s", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// wrapStorage wraps a non-nil storage error as a *StorageError. Errors
// which are already one of chaindict's own typed errors pass through
// unchanged, since callers should be able to errors.As directly into
// them.
func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	var (
		doesNotExist *DoesNotExistError
		fileSize     *FileSizeError
		version      *VersionError
		already      *StorageError
	)
	if errors.As(err, &doesNotExist) || errors.As(err, &fileSize) || errors.As(err, &version) || errors.As(err, &already) {
		return err
	}
	return &StorageError{Err: err}
}
