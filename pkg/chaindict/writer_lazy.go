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

// LazyWriter has the same external surface as Writer, but defers every
// storage operation — including allocating the link's ID and creating
// its delta file — until the first WriteUnique call. This is useful when
// a caller builds a writer speculatively and may never actually write to
// it: a lazy writer that's discarded unused never touches storage at
// all.
//
// A LazyWriter is not safe for concurrent use.
type LazyWriter[T comparable] struct {
	store    storage.Storage
	codec    Codec[T]
	previous LinkId

	wantsSnapshot bool
	inner         *Writer[T]
}

// CreateLazy returns a writer for a link extending previous that has not
// yet touched storage.
func CreateLazy[T comparable](store storage.Storage, codec Codec[T], previous LinkId) *LazyWriter[T] {
	return &LazyWriter[T]{store: store, codec: codec, previous: previous}
}

// WithSnapshot requests a snapshot file for this link, exactly as
// Writer.WithSnapshot, except it is recorded for replay once the writer
// materializes rather than acted on immediately. It fails with
// ErrNotEmpty if the writer has already materialized (meaning
// WriteUnique was already called).
func (w *LazyWriter[T]) WithSnapshot() error {
	if w.inner != nil {
		return ErrNotEmpty
	}
	w.wantsSnapshot = true
	return nil
}

// WriteUnique is as Writer.WriteUnique. On the first call, it
// materializes the underlying eager Writer — creating its delta (and,
// if requested, snapshot) file — before appending entry.
func (w *LazyWriter[T]) WriteUnique(ctx context.Context, entry T) (uint32, error) {
	if w.inner == nil {
		inner, err := Create[T](ctx, w.store, w.codec, w.previous)
		if err != nil {
			return 0, err
		}
		if w.wantsSnapshot {
			if err := inner.WithSnapshot(ctx); err != nil {
				return 0, err
			}
		}
		w.inner = inner
	}
	return w.inner.WriteUnique(ctx, entry)
}

// Finish is as Writer.Finish. If the writer never materialized (no
// WriteUnique call ever succeeded), it fails with ErrEmpty without
// touching storage.
func (w *LazyWriter[T]) Finish(ctx context.Context) (LinkId, error) {
	if w.inner == nil {
		return LinkId{}, ErrEmpty
	}
	return w.inner.Finish(ctx)
}
