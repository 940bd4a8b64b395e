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
	"testing"

	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage/memory"
)

func TestSnapshotFooterRoundTrip(t *testing.T) {
	ctx := context.Background()
	op := memory.New()
	store := storage.New(op)
	id := storage.NewLinkId()
	previous := storage.NewLinkId()

	w, err := store.Create(ctx, id, storage.Snapshot)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	body := []byte{0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 3}
	if err := w.WriteBytes(ctx, body); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	want := snapshotFooter{previous: previous, index: 1, count: 3}
	if err := writeSnapshotFooter(ctx, w, want); err != nil {
		t.Fatalf("writeSnapshotFooter: %v", err)
	}
	if err := w.Finish(ctx); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	r, err := store.Open(ctx, id, storage.Snapshot)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := readSnapshotFooter(ctx, r)
	if err != nil {
		t.Fatalf("readSnapshotFooter: %v", err)
	}
	if got != want {
		t.Fatalf("readSnapshotFooter() = %+v, want %+v", got, want)
	}
	if got := r.FileSize(); got != int64(len(body)) {
		t.Fatalf("FileSize() after footer read = %d, want %d", got, len(body))
	}
}
