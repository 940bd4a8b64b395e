/*
Copyright 2013 The Camlistore Authors

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

// Package storagetest is a conformance suite for storage.Operator
// implementations: every backend (memory, s3, gcs, or any other) should
// pass TestOpt unchanged.
package storagetest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
)

// Opts configures a conformance run.
type Opts struct {
	// New is required and must return the operator to test, along with
	// a cleanup func to run afterwards. The cleanup may be nil.
	New func(*testing.T) (op storage.Operator, cleanup func())
}

// Test runs the conformance suite against the operator returned by fn.
func Test(t *testing.T, fn func(*testing.T) (storage.Operator, func())) {
	TestOpt(t, Opts{New: fn})
}

// TestOpt runs the conformance suite with the given options.
func TestOpt(t *testing.T, opt Opts) {
	op, cleanup := opt.New(t)
	defer func() {
		if cleanup != nil {
			cleanup()
		}
	}()

	ctx := context.Background()

	t.Run("StatMissing", func(t *testing.T) { testStatMissing(t, ctx, op) })
	t.Run("ReaderMissing", func(t *testing.T) { testReaderMissing(t, ctx, op) })
	t.Run("RoundTrip", func(t *testing.T) { testRoundTrip(t, ctx, op) })
	t.Run("ReadRange", func(t *testing.T) { testReadRange(t, ctx, op) })
	t.Run("StreamRange", func(t *testing.T) { testStreamRange(t, ctx, op) })
	t.Run("NotVisibleUntilClose", func(t *testing.T) { testNotVisibleUntilClose(t, ctx, op) })
}

func testStatMissing(t *testing.T, ctx context.Context, op storage.Operator) {
	_, err := op.Stat(ctx, "does-not-exist.delta")
	if !errors.Is(err, storage.ErrNotExist) {
		t.Fatalf("Stat on missing object: got err = %v, want errors.Is(err, storage.ErrNotExist)", err)
	}
}

func testReaderMissing(t *testing.T, ctx context.Context, op storage.Operator) {
	_, err := op.Reader(ctx, "still-does-not-exist.delta")
	if !errors.Is(err, storage.ErrNotExist) {
		t.Fatalf("Reader on missing object: got err = %v, want errors.Is(err, storage.ErrNotExist)", err)
	}
}

func testRoundTrip(t *testing.T, ctx context.Context, op storage.Operator) {
	const path = "round-trip.delta"
	want := []byte("the quick brown fox jumps over the lazy dog")

	w, err := op.Writer(ctx, path)
	if err != nil {
		t.Fatalf("Writer: %v", err)
	}
	if err := w.Write(ctx, want[:10]); err != nil {
		t.Fatalf("Write (1): %v", err)
	}
	if err := w.Write(ctx, want[10:]); err != nil {
		t.Fatalf("Write (2): %v", err)
	}
	if err := w.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	info, err := op.Stat(ctx, path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.ContentLength != int64(len(want)) {
		t.Fatalf("Stat ContentLength = %d, want %d", info.ContentLength, len(want))
	}

	r, err := op.Reader(ctx, path)
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	got := make([]byte, len(want))
	if err := r.ReadRange(ctx, got, 0, int64(len(want))); err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round-trip mismatch: got %q, want %q", got, want)
	}
}

func testReadRange(t *testing.T, ctx context.Context, op storage.Operator) {
	const path = "read-range.delta"
	want := []byte("0123456789")

	w, err := op.Writer(ctx, path)
	if err != nil {
		t.Fatalf("Writer: %v", err)
	}
	if err := w.Write(ctx, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := op.Reader(ctx, path)
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	got := make([]byte, 4)
	if err := r.ReadRange(ctx, got, 3, 7); err != nil {
		t.Fatalf("ReadRange(3,7): %v", err)
	}
	if !bytes.Equal(got, want[3:7]) {
		t.Fatalf("ReadRange(3,7) = %q, want %q", got, want[3:7])
	}
}

func testStreamRange(t *testing.T, ctx context.Context, op storage.Operator) {
	const path = "stream-range.delta"
	want := []byte("streaming bytes through a ranged reader")

	w, err := op.Writer(ctx, path)
	if err != nil {
		t.Fatalf("Writer: %v", err)
	}
	if err := w.Write(ctx, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := op.Reader(ctx, path)
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	stream, err := r.StreamRange(ctx, 10, int64(len(want)))
	if err != nil {
		t.Fatalf("StreamRange: %v", err)
	}
	defer stream.Close()
	got, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("reading stream: %v", err)
	}
	if !bytes.Equal(got, want[10:]) {
		t.Fatalf("StreamRange(10,end) = %q, want %q", got, want[10:])
	}
}

func testNotVisibleUntilClose(t *testing.T, ctx context.Context, op storage.Operator) {
	const path = "not-visible-until-close.delta"

	w, err := op.Writer(ctx, path)
	if err != nil {
		t.Fatalf("Writer: %v", err)
	}
	if err := w.Write(ctx, []byte("partial")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if _, err := op.Stat(ctx, path); !errors.Is(err, storage.ErrNotExist) {
		t.Fatalf("Stat before Close: got err = %v, want errors.Is(err, storage.ErrNotExist)", err)
	}

	if err := w.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := op.Stat(ctx, path); err != nil {
		t.Fatalf("Stat after Close: %v", err)
	}
}
