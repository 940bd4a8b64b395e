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

// snapshotFooter is the trailer of a snapshot file.
//
// Unlike a delta, a snapshot's body is a full copy of its predecessor's
// dictionary plus everything written on top of it, so there is no
// separate "total" field: total and count are the same number.
//
// Layout, from the start of the footer to the end of the file:
//
//	offset  width  field
//	0       16     previous (u128 BE; 0 means no predecessor)
//	16      4      index (u32 BE)
//	20      4      count (u32 BE)
//	24      2      VERSION (u16 BE)
type snapshotFooter struct {
	previous storage.LinkId
	index    uint32
	count    uint32
}

// snapshotFooterSize is the fixed size of a snapshot footer: 16 + 2*4 + 2.
const snapshotFooterSize = 26

// readSnapshotFooter reads the footer supposedly stored at the end of r,
// validating its version and shrinking r's logical size so that
// subsequent forward reads see only the snapshot's body, starting at its
// first byte.
func readSnapshotFooter(ctx context.Context, r *storage.Reader) (snapshotFooter, error) {
	if r.FileSize() < snapshotFooterSize {
		return snapshotFooter{}, &storage.FileSizeError{Expected: snapshotFooterSize, Got: r.FileSize()}
	}

	r.Goto(-2)
	version, err := r.ReadU16(ctx)
	if err != nil {
		return snapshotFooter{}, err
	}
	if version != formatVersion {
		return snapshotFooter{}, &storage.VersionError{Expected: formatVersion, Got: version}
	}

	r.Goto(-snapshotFooterSize)

	hi, lo, err := r.ReadU128(ctx)
	if err != nil {
		return snapshotFooter{}, err
	}
	previous := storage.LinkIdFromU128(hi, lo)

	index, err := r.ReadU32(ctx)
	if err != nil {
		return snapshotFooter{}, err
	}
	count, err := r.ReadU32(ctx)
	if err != nil {
		return snapshotFooter{}, err
	}

	r.SetFileSize(r.FileSize() - snapshotFooterSize)
	r.Goto(0)

	return snapshotFooter{previous: previous, index: index, count: count}, nil
}

// writeSnapshotFooter serializes f to w, directly after the last body byte.
func writeSnapshotFooter(ctx context.Context, w *storage.Writer, f snapshotFooter) error {
	hi, lo := f.previous.AsU128()
	if err := w.WriteU128(ctx, hi, lo); err != nil {
		return err
	}
	if err := w.WriteU32(ctx, f.index); err != nil {
		return err
	}
	if err := w.WriteU32(ctx, f.count); err != nil {
		return err
	}
	return w.WriteU16(ctx, formatVersion)
}
