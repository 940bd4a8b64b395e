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

// Package gcs implements a chaindict storage.Operator backed by a Google
// Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"io"
	"strings"

	gcstorage "cloud.google.com/go/storage"

	chaindictstorage "github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
)

// Operator is a storage.Operator backed by a single GCS bucket, with all
// object keys prefixed by an optional directory.
//
// GCS is itself flat; dirPrefix is just a key prefix, mirroring how
// Perkeep's own GCS backend handles a "bucket/dir/" config value.
type Operator struct {
	client    *gcstorage.Client
	bucket    string
	dirPrefix string
}

var _ chaindictstorage.Operator = (*Operator)(nil)

// New returns an Operator for the given bucket, using client for all
// requests. If bucket contains a "/", everything after the first slash
// is used as a key prefix.
func New(client *gcstorage.Client, bucket string) *Operator {
	dirPrefix := ""
	if parts := strings.SplitN(bucket, "/", 2); len(parts) > 1 {
		bucket, dirPrefix = parts[0], parts[1]
		if !strings.HasSuffix(dirPrefix, "/") {
			dirPrefix += "/"
		}
	}
	return &Operator{client: client, bucket: bucket, dirPrefix: dirPrefix}
}

func (o *Operator) object(path string) *gcstorage.ObjectHandle {
	return o.client.Bucket(o.bucket).Object(o.dirPrefix + path)
}

func (o *Operator) Stat(ctx context.Context, path string) (chaindictstorage.ObjectInfo, error) {
	attrs, err := o.object(path).Attrs(ctx)
	if errors.Is(err, gcstorage.ErrObjectNotExist) {
		return chaindictstorage.ObjectInfo{}, chaindictstorage.ErrNotExist
	}
	if err != nil {
		return chaindictstorage.ObjectInfo{}, err
	}
	return chaindictstorage.ObjectInfo{ContentLength: attrs.Size}, nil
}

func (o *Operator) Reader(ctx context.Context, path string) (chaindictstorage.RangeReader, error) {
	if _, err := o.Stat(ctx, path); err != nil {
		return nil, err
	}
	return &rangeReader{object: o.object(path)}, nil
}

func (o *Operator) Writer(ctx context.Context, path string) (chaindictstorage.AppendWriter, error) {
	w := o.object(path).If(gcstorage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	return &appendWriter{w: w}, nil
}

type rangeReader struct {
	object *gcstorage.ObjectHandle
}

func (r *rangeReader) ReadRange(ctx context.Context, p []byte, start, end int64) error {
	stream, err := r.object.NewRangeReader(ctx, start, end-start)
	if err != nil {
		if errors.Is(err, gcstorage.ErrObjectNotExist) {
			return chaindictstorage.ErrNotExist
		}
		return err
	}
	defer stream.Close()
	_, err = io.ReadFull(stream, p)
	return err
}

func (r *rangeReader) StreamRange(ctx context.Context, start, end int64) (io.ReadCloser, error) {
	stream, err := r.object.NewRangeReader(ctx, start, end-start)
	if errors.Is(err, gcstorage.ErrObjectNotExist) {
		return nil, chaindictstorage.ErrNotExist
	}
	return stream, err
}

// appendWriter buffers nothing itself: GCS's own storage.Writer already
// streams to the service as bytes are written and only finalizes the
// object on Close, which is exactly the append-only, not-visible-until-
// finished semantics the core relies on.
type appendWriter struct {
	w *gcstorage.Writer
}

func (w *appendWriter) Write(ctx context.Context, p []byte) error {
	_, err := w.w.Write(p)
	return err
}

func (w *appendWriter) Close(ctx context.Context) error {
	return w.w.Close()
}
