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
	"errors"
	"testing"

	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage/memory"
)

func newTestStorage() storage.Storage {
	return storage.New(memory.New())
}

// TestRootDeltaOnly covers scenario 1 of the worked examples: a fresh
// chain root with no snapshot.
func TestRootDeltaOnly(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage()

	w, err := Create[uint32](ctx, store, u32Codec{}, LinkId{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.WriteUnique(ctx, 1); err != nil {
		t.Fatalf("WriteUnique(1): %v", err)
	}
	if _, err := w.WriteUnique(ctx, 2); err != nil {
		t.Fatalf("WriteUnique(2): %v", err)
	}
	id0, err := w.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	r, err := Open[uint32](ctx, store, u32Codec{}, id0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if got, ok := r.GetAt(0); !ok || got != 1 {
		t.Fatalf("GetAt(0) = (%d, %v), want (1, true)", got, ok)
	}
	if got, ok := r.GetAt(1); !ok || got != 2 {
		t.Fatalf("GetAt(1) = (%d, %v), want (2, true)", got, ok)
	}
	if idx, ok := r.GetIndexOf(2); !ok || idx != 1 {
		t.Fatalf("GetIndexOf(2) = (%d, %v), want (1, true)", idx, ok)
	}
}

// TestDeltaChainOfTwo covers scenario 2: extending a root with another
// delta-only link and no snapshot anywhere in the chain.
func TestDeltaChainOfTwo(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage()

	id0 := mustBuildChain(t, ctx, store, LinkId{}, 1, 2)
	id1 := mustBuildChain(t, ctx, store, id0, 3)

	r, err := Open[uint32](ctx, store, u32Codec{}, id1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	for i, want := range []uint32{1, 2, 3} {
		if got, ok := r.GetAt(uint32(i)); !ok || got != want {
			t.Fatalf("GetAt(%d) = (%d, %v), want (%d, true)", i, got, ok, want)
		}
	}
}

// TestSnapshotEquivalence covers scenario 3: a reader that reaches a link
// via its snapshot sees the same dictionary as one that walks the full
// delta chain.
func TestSnapshotEquivalence(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage()

	// id0 is built with its own snapshot (legal even at the chain root,
	// where WithSnapshot has nothing to copy from) so that extending it
	// with another snapshot below has a predecessor snapshot to copy.
	root, err := Create[uint32](ctx, store, u32Codec{}, LinkId{})
	if err != nil {
		t.Fatalf("Create (root): %v", err)
	}
	if err := root.WithSnapshot(ctx); err != nil {
		t.Fatalf("WithSnapshot (root): %v", err)
	}
	if _, err := root.WriteUnique(ctx, 1); err != nil {
		t.Fatalf("WriteUnique(1): %v", err)
	}
	if _, err := root.WriteUnique(ctx, 2); err != nil {
		t.Fatalf("WriteUnique(2): %v", err)
	}
	id0, err := root.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish (root): %v", err)
	}

	w, err := Create[uint32](ctx, store, u32Codec{}, id0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.WithSnapshot(ctx); err != nil {
		t.Fatalf("WithSnapshot: %v", err)
	}
	if _, err := w.WriteUnique(ctx, 3); err != nil {
		t.Fatalf("WriteUnique(3): %v", err)
	}
	id1, err := w.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	viaSnapshot, err := Open[uint32](ctx, store, u32Codec{}, id1)
	if err != nil {
		t.Fatalf("Open (via snapshot): %v", err)
	}

	rootDeltaOnly := mustBuildChain(t, ctx, store, LinkId{}, 1, 2)
	idDeltaOnly := mustBuildChain(t, ctx, store, rootDeltaOnly, 3)
	viaDeltas, err := Open[uint32](ctx, store, u32Codec{}, idDeltaOnly)
	if err != nil {
		t.Fatalf("Open (via deltas): %v", err)
	}

	if viaSnapshot.Len() != viaDeltas.Len() {
		t.Fatalf("Len() mismatch: snapshot=%d deltas=%d", viaSnapshot.Len(), viaDeltas.Len())
	}
	for i := 0; i < viaSnapshot.Len(); i++ {
		a, _ := viaSnapshot.GetAt(uint32(i))
		b, _ := viaDeltas.GetAt(uint32(i))
		if a != b {
			t.Fatalf("entry %d mismatch: snapshot=%d deltas=%d", i, a, b)
		}
	}
}

// TestReload covers scenario 4: a reader opened at an older link
// incrementally catches up to a newer descendant.
func TestReload(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage()

	id0 := mustBuildChain(t, ctx, store, LinkId{}, 1, 2)
	id1 := mustBuildChain(t, ctx, store, id0, 3)

	r, err := Open[uint32](ctx, store, u32Codec{}, id0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() before reload = %d, want 2", r.Len())
	}

	if err := r.Reload(ctx, id1); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("Len() after reload = %d, want 3", r.Len())
	}
	if idx, ok := r.GetIndexOf(3); !ok || idx != 2 {
		t.Fatalf("GetIndexOf(3) after reload = (%d, %v), want (2, true)", idx, ok)
	}

	// Reloading the same tip again is a no-op.
	if err := r.Reload(ctx, id1); err != nil {
		t.Fatalf("Reload (idempotent): %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("Len() after idempotent reload = %d, want 3", r.Len())
	}
}

// TestDisconnected covers scenario 5: reloading from an unrelated chain
// fails with DisconnectedError.
func TestDisconnected(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage()

	idA := mustBuildChain(t, ctx, store, LinkId{}, 1)
	idB := mustBuildChain(t, ctx, store, LinkId{}, 2)

	r, err := Open[uint32](ctx, store, u32Codec{}, idA)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	err = r.Reload(ctx, idB)
	var disconnected *DisconnectedError
	if !errors.As(err, &disconnected) {
		t.Fatalf("Reload across unrelated chains: got %v, want *DisconnectedError", err)
	}
	if disconnected.Latest != idB || disconnected.Expected != idA {
		t.Fatalf("DisconnectedError = %+v, want Latest=%v Expected=%v", disconnected, idB, idA)
	}
}

// TestVersionMismatch covers scenario 6: a footer VERSION field that
// doesn't match the reader's is rejected.
func TestVersionMismatch(t *testing.T) {
	ctx := context.Background()
	op := memory.New()
	store := storage.New(op)

	id0 := mustBuildChain(t, ctx, store, LinkId{}, 1)

	// Corrupt the version field by rewriting the object with its last
	// two bytes flipped to 00 01.
	path := store.Path(id0, storage.Delta)
	raw, err := op.Reader(ctx, path)
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	info, err := op.Stat(ctx, path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	buf := make([]byte, info.ContentLength)
	if err := raw.ReadRange(ctx, buf, 0, info.ContentLength); err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	buf[len(buf)-1] = 1

	w, err := op.Writer(ctx, path)
	if err != nil {
		t.Fatalf("Writer: %v", err)
	}
	if err := w.Write(ctx, buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	_, err = Open[uint32](ctx, store, u32Codec{}, id0)
	var versionErr *VersionError
	if !errors.As(err, &versionErr) {
		t.Fatalf("Open on corrupted version: got %v, want *VersionError", err)
	}
	if versionErr.Expected != formatVersion || versionErr.Got != 1 {
		t.Fatalf("VersionError = %+v, want Expected=%d Got=1", versionErr, formatVersion)
	}
}

// TestFinishEmptyFails covers the Empty boundary: finishing a writer that
// never had an entry written fails.
func TestFinishEmptyFails(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage()

	w, err := Create[uint32](ctx, store, u32Codec{}, LinkId{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Finish(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Finish on empty writer: got %v, want ErrEmpty", err)
	}
}

// TestWithSnapshotAfterWriteFails covers the NotEmpty boundary.
func TestWithSnapshotAfterWriteFails(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage()

	w, err := Create[uint32](ctx, store, u32Codec{}, LinkId{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.WriteUnique(ctx, 1); err != nil {
		t.Fatalf("WriteUnique: %v", err)
	}
	if err := w.WithSnapshot(ctx); !errors.Is(err, ErrNotEmpty) {
		t.Fatalf("WithSnapshot after write: got %v, want ErrNotEmpty", err)
	}
}

// TestLazyWriterNeverTouchesStorageUnlessWritten exercises the lazy
// writer's deferred-creation contract.
func TestLazyWriterNeverTouchesStorageUnlessWritten(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage()

	w := CreateLazy[uint32](store, u32Codec{}, LinkId{})
	if _, err := w.Finish(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Finish on untouched lazy writer: got %v, want ErrEmpty", err)
	}

	w = CreateLazy[uint32](store, u32Codec{}, LinkId{})
	if _, err := w.WriteUnique(ctx, 7); err != nil {
		t.Fatalf("WriteUnique: %v", err)
	}
	id, err := w.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}

	r, err := Open[uint32](ctx, store, u32Codec{}, id)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}

// mustBuildChain writes a single new link extending previous with the
// given entries and returns its LinkId, failing the test on any error.
func mustBuildChain(t *testing.T, ctx context.Context, store storage.Storage, previous LinkId, entries ...uint32) LinkId {
	t.Helper()

	w, err := Create[uint32](ctx, store, u32Codec{}, previous)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, entry := range entries {
		if _, err := w.WriteUnique(ctx, entry); err != nil {
			t.Fatalf("WriteUnique(%d): %v", entry, err)
		}
	}
	id, err := w.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return id
}
