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

package storage

import (
	"context"
	"io"
	"io/fs"
)

// ObjectInfo is the subset of an object's metadata the adapter needs: its
// content length, as reported by the operator's stat call.
type ObjectInfo struct {
	ContentLength int64
}

// RangeReader is a random-access byte-range reader for a single object,
// as handed back by Operator.Reader.
type RangeReader interface {
	// ReadRange reads the half-open byte range [start, end) of the
	// object into p, which must have length end-start. Implementations
	// should treat a request that runs past the object's end as an
	// error; the adapter never asks for more than it has already
	// confirmed exists via Stat.
	ReadRange(ctx context.Context, p []byte, start, end int64) error

	// StreamRange returns a stream over the half-open byte range
	// [start, end) of the object. The caller must Close the returned
	// reader.
	StreamRange(ctx context.Context, start, end int64) (io.ReadCloser, error)
}

// AppendWriter is an append-only byte sink for a single object, as handed
// back by Operator.Writer. Bytes are only ever appended, in the order
// Write is called, which is what lets the adapter target object stores
// that forbid in-place mutation.
type AppendWriter interface {
	// Write appends p to the object being written.
	Write(ctx context.Context, p []byte) error

	// Close flushes any buffered bytes and finalizes the object. After
	// Close returns successfully the object is durable and readable by
	// other operators.
	Close(ctx context.Context) error
}

// Operator is the object-store interface the adapter is built on: stat,
// open-for-read-range, and create-for-append. A caller wires this up to
// whatever blob store backs a chain (see the storage/s3, storage/gcs, and
// storage/memory subpackages for concrete implementations).
//
// Operator implementations must be safe to share across goroutines: the
// core never serializes access to a shared Operator, only to a single
// Reader or Writer instance built on top of it.
type Operator interface {
	// Stat returns metadata about the object at path, or an error
	// satisfying errors.Is(err, fs.ErrNotExist) if it does not exist.
	Stat(ctx context.Context, path string) (ObjectInfo, error)

	// Reader opens a random-access reader for the object at path. It
	// returns an error satisfying errors.Is(err, fs.ErrNotExist) if the
	// object does not exist.
	Reader(ctx context.Context, path string) (RangeReader, error)

	// Writer opens a new append-only writer at path. The object must
	// not already exist; implementations are free to fail loudly rather
	// than silently overwrite, since the core never writes to the same
	// path twice.
	Writer(ctx context.Context, path string) (AppendWriter, error)
}

// ErrNotExist is the sentinel an Operator implementation should wrap (via
// fmt.Errorf("...: %w", ErrNotExist) or by returning it directly) so that
// errors.Is(err, fs.ErrNotExist) holds for a missing object. It is simply
// fs.ErrNotExist, re-exported so backends don't need their own import of
// io/fs just to signal this.
var ErrNotExist = fs.ErrNotExist
