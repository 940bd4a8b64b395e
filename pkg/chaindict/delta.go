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

// deltaFooter is the trailer of a delta file, containing information about
// the link it belongs to.
//
// This holds both information known when writing starts (previous, index)
// and information only known once writing is done (total, count). Since
// deltas may be written to object stores that only support appending, all
// of it is stored at the end of the file.
//
// Layout, from the start of the footer to the end of the file:
//
//	offset  width  field
//	0       16     previous (u128 BE; 0 means no predecessor)
//	16      4      index (u32 BE)
//	20      4      total (u32 BE; cumulative dictionary size at this link)
//	24      4      count (u32 BE; entries contributed by this link's delta)
//	28      2      VERSION (u16 BE)
//
// VERSION is stored last so that its offset from the end of the file
// stays fixed across format revisions that grow the footer, letting an
// old reader detect an incompatible version with a single bounded read.
type deltaFooter struct {
	previous storage.LinkId
	index    uint32
	total    uint32
	count    uint32
}

// deltaFooterSize is the fixed size of a delta footer: 16 + 3*4 + 2.
const deltaFooterSize = 30

// readDeltaFooter reads the footer supposedly stored at the end of r,
// validating its version and shrinking r's logical size so that
// subsequent forward reads see only the delta's body, starting at its
// first byte.
func readDeltaFooter(ctx context.Context, r *storage.Reader) (deltaFooter, error) {
	if r.FileSize() < deltaFooterSize {
		return deltaFooter{}, &storage.FileSizeError{Expected: deltaFooterSize, Got: r.FileSize()}
	}

	r.Goto(-2)
	version, err := r.ReadU16(ctx)
	if err != nil {
		return deltaFooter{}, err
	}
	if version != formatVersion {
		return deltaFooter{}, &storage.VersionError{Expected: formatVersion, Got: version}
	}

	r.Goto(-deltaFooterSize)

	hi, lo, err := r.ReadU128(ctx)
	if err != nil {
		return deltaFooter{}, err
	}
	previous := storage.LinkIdFromU128(hi, lo)

	index, err := r.ReadU32(ctx)
	if err != nil {
		return deltaFooter{}, err
	}
	total, err := r.ReadU32(ctx)
	if err != nil {
		return deltaFooter{}, err
	}
	count, err := r.ReadU32(ctx)
	if err != nil {
		return deltaFooter{}, err
	}

	r.SetFileSize(r.FileSize() - deltaFooterSize)
	r.Goto(0)

	return deltaFooter{previous: previous, index: index, total: total, count: count}, nil
}

// writeDeltaFooter serializes f to w, directly after the last body byte.
func writeDeltaFooter(ctx context.Context, w *storage.Writer, f deltaFooter) error {
	hi, lo := f.previous.AsU128()
	if err := w.WriteU128(ctx, hi, lo); err != nil {
		return err
	}
	if err := w.WriteU32(ctx, f.index); err != nil {
		return err
	}
	if err := w.WriteU32(ctx, f.total); err != nil {
		return err
	}
	if err := w.WriteU32(ctx, f.count); err != nil {
		return err
	}
	return w.WriteU16(ctx, formatVersion)
}
