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
	"encoding/binary"
	"io"
)

// Reader is a cursor over a single object's bytes. It tracks both its
// current offset and a logical file size, which may be smaller than the
// object's real size: footer-reading code shrinks it after parsing a
// trailer so that forward reads only ever see the object's body.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	offset   int64
	fileSize int64
	reader   RangeReader
}

// FileSize returns the reader's current logical size.
func (r *Reader) FileSize() int64 {
	return r.fileSize
}

// Offset returns the reader's current cursor position.
func (r *Reader) Offset() int64 {
	return r.offset
}

// SetFileSize shrinks (or otherwise changes) the reader's logical size,
// without touching the underlying object. It is used to hide a footer
// once it has been parsed.
func (r *Reader) SetFileSize(n int64) {
	r.fileSize = n
}

// Goto repositions the reader's cursor. A non-negative offset is absolute
// from the start of the file; a negative offset is relative to the
// logical end (e.g. -2 positions the cursor two bytes before the logical
// end). Goto panics if a negative offset would underflow past the start
// of the file, which would indicate a footer size larger than the file
// itself — callers must check FileSize before calling Goto with a
// footer-derived negative offset.
func (r *Reader) Goto(offset int64) {
	if offset >= 0 {
		r.offset = offset
		return
	}
	pos := r.fileSize + offset
	if pos < 0 {
		panic("chaindict/storage: Goto underflowed past the start of the file")
	}
	r.offset = pos
}

// readRange returns the half-open range the next len-byte read should
// cover, failing with *FileSizeError if it would run past the logical
// end of the file.
func (r *Reader) readRange(n int) (start, end int64, err error) {
	start = r.offset
	end = r.offset + int64(n)
	if end > r.fileSize {
		return 0, 0, &FileSizeError{Expected: end, Got: r.fileSize}
	}
	return start, end, nil
}

// ReadBytes reads exactly len(p) bytes at the reader's current position
// into p, advancing the cursor by len(p) bytes.
func (r *Reader) ReadBytes(ctx context.Context, p []byte) error {
	start, end, err := r.readRange(len(p))
	if err != nil {
		return err
	}
	if err := r.reader.ReadRange(ctx, p, start, end); err != nil {
		return err
	}
	r.offset = end
	return nil
}

// ReadU16 reads a big-endian u16, advancing the cursor by 2 bytes.
func (r *Reader) ReadU16(ctx context.Context) (uint16, error) {
	var buf [2]byte
	if err := r.ReadBytes(ctx, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadU32 reads a big-endian u32, advancing the cursor by 4 bytes.
func (r *Reader) ReadU32(ctx context.Context) (uint32, error) {
	var buf [4]byte
	if err := r.ReadBytes(ctx, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ReadU64 reads a big-endian u64, advancing the cursor by 8 bytes.
func (r *Reader) ReadU64(ctx context.Context) (uint64, error) {
	var buf [8]byte
	if err := r.ReadBytes(ctx, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// ReadU128 reads a big-endian u128, advancing the cursor by 16 bytes, and
// returns it as its high and low 64-bit halves.
func (r *Reader) ReadU128(ctx context.Context) (hi, lo uint64, err error) {
	var buf [16]byte
	if err := r.ReadBytes(ctx, buf[:]); err != nil {
		return 0, 0, err
	}
	return binary.BigEndian.Uint64(buf[:8]), binary.BigEndian.Uint64(buf[8:]), nil
}

// Writer is an append-only byte sink for a single object being created.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	raw  AppendWriter
	size int64
}

// FileSize reports how many bytes have been emitted to the writer so far.
func (w *Writer) FileSize() int64 {
	return w.size
}

// WriteBytes appends p to the writer.
func (w *Writer) WriteBytes(ctx context.Context, p []byte) error {
	if err := w.raw.Write(ctx, p); err != nil {
		return err
	}
	w.size += int64(len(p))
	return nil
}

// WriteU16 appends a big-endian u16.
func (w *Writer) WriteU16(ctx context.Context, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return w.WriteBytes(ctx, buf[:])
}

// WriteU32 appends a big-endian u32.
func (w *Writer) WriteU32(ctx context.Context, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return w.WriteBytes(ctx, buf[:])
}

// WriteU64 appends a big-endian u64.
func (w *Writer) WriteU64(ctx context.Context, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return w.WriteBytes(ctx, buf[:])
}

// WriteU128 appends a big-endian u128, given as its high and low 64-bit
// halves.
func (w *Writer) WriteU128(ctx context.Context, hi, lo uint64) error {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], hi)
	binary.BigEndian.PutUint64(buf[8:], lo)
	return w.WriteBytes(ctx, buf[:])
}

// CopyFrom streams everything from r's current position to its logical
// end into w, unchanged, advancing r's cursor to its logical end.
func (w *Writer) CopyFrom(ctx context.Context, r *Reader) error {
	stream, err := r.reader.StreamRange(ctx, r.offset, r.fileSize)
	if err != nil {
		return err
	}
	defer stream.Close()

	buf := make([]byte, 32*1024)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if werr := w.WriteBytes(ctx, buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	r.offset = r.fileSize
	return nil
}

// Finish flushes and closes the writer.
func (w *Writer) Finish(ctx context.Context) error {
	return w.raw.Close(ctx)
}
