/*
Copyright 2014 The Camlistore Authors

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

// Package memory implements a chaindict storage.Operator backed by an
// in-memory map, for tests and local development. It is not durable: all
// objects are lost when the process exits.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
)

// Operator is an in-memory storage.Operator. The zero value is ready to
// use.
type Operator struct {
	mu sync.RWMutex
	m  map[string][]byte
}

var _ storage.Operator = (*Operator)(nil)

// New returns a ready-to-use, empty Operator.
func New() *Operator {
	return &Operator{}
}

func (o *Operator) Stat(ctx context.Context, path string) (storage.ObjectInfo, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	b, ok := o.m[path]
	if !ok {
		return storage.ObjectInfo{}, storage.ErrNotExist
	}
	return storage.ObjectInfo{ContentLength: int64(len(b))}, nil
}

func (o *Operator) Reader(ctx context.Context, path string) (storage.RangeReader, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	b, ok := o.m[path]
	if !ok {
		return nil, storage.ErrNotExist
	}
	return &rangeReader{object: b}, nil
}

func (o *Operator) Writer(ctx context.Context, path string) (storage.AppendWriter, error) {
	return &appendWriter{operator: o, path: path}, nil
}

// rangeReader serves random-access reads over an immutable byte slice
// snapshotted at Reader-creation time: once a caller has an object's
// RangeReader, later writes to the same path (which shouldn't happen,
// since the core never rewrites a path) cannot retroactively change what
// it sees.
type rangeReader struct {
	object []byte
}

func (r *rangeReader) ReadRange(ctx context.Context, p []byte, start, end int64) error {
	if start < 0 || start > end || end > int64(len(r.object)) {
		return io.ErrUnexpectedEOF
	}
	n := copy(p, r.object[start:end])
	if int64(n) != end-start {
		return io.ErrUnexpectedEOF
	}
	return nil
}

func (r *rangeReader) StreamRange(ctx context.Context, start, end int64) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(r.object[start:end])), nil
}

// appendWriter buffers every Write in memory and commits the whole
// object to the Operator's map atomically on Close, so a half-written
// object is never visible to a concurrent reader.
type appendWriter struct {
	operator *Operator
	path     string
	buf      bytes.Buffer
}

func (w *appendWriter) Write(ctx context.Context, p []byte) error {
	_, err := w.buf.Write(p)
	return err
}

func (w *appendWriter) Close(ctx context.Context) error {
	committed := make([]byte, w.buf.Len())
	copy(committed, w.buf.Bytes())

	w.operator.mu.Lock()
	defer w.operator.mu.Unlock()
	if w.operator.m == nil {
		w.operator.m = make(map[string][]byte)
	}
	w.operator.m[w.path] = committed
	return nil
}
