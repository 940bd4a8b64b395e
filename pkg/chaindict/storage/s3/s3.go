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

// Package s3 implements a chaindict storage.Operator backed by an Amazon
// S3 (or S3-compatible) bucket.
//
// S3 has no native append operation, so, like chaindict's in-memory
// operator, a Writer buffers everything written to it and issues a
// single PutObject on Close. This still satisfies the core's append-only
// contract: objects are only ever written once, in full, and are not
// visible to readers until Close succeeds.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	chaindictstorage "github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
)

// Operator is a storage.Operator backed by a single S3 bucket, with all
// object keys prefixed by an optional directory, mirroring how Perkeep's
// own S3 backend turns a "bucket/dir/" config value into a bucket plus a
// key prefix.
type Operator struct {
	client    *s3.Client
	bucket    string
	dirPrefix string
}

var _ chaindictstorage.Operator = (*Operator)(nil)

// New returns an Operator for the given bucket, using client for all
// requests. If bucket contains a "/", everything after the first slash
// is used as a key prefix.
func New(client *s3.Client, bucket string) *Operator {
	dirPrefix := ""
	if parts := strings.SplitN(bucket, "/", 2); len(parts) > 1 {
		bucket, dirPrefix = parts[0], parts[1]
		if !strings.HasSuffix(dirPrefix, "/") {
			dirPrefix += "/"
		}
	}
	return &Operator{client: client, bucket: bucket, dirPrefix: dirPrefix}
}

func (o *Operator) key(path string) string {
	return o.dirPrefix + path
}

func (o *Operator) Stat(ctx context.Context, path string) (chaindictstorage.ObjectInfo, error) {
	out, err := o.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key(path)),
	})
	if isNotFound(err) {
		return chaindictstorage.ObjectInfo{}, chaindictstorage.ErrNotExist
	}
	if err != nil {
		return chaindictstorage.ObjectInfo{}, err
	}
	return chaindictstorage.ObjectInfo{ContentLength: aws.ToInt64(out.ContentLength)}, nil
}

func (o *Operator) Reader(ctx context.Context, path string) (chaindictstorage.RangeReader, error) {
	if _, err := o.Stat(ctx, path); err != nil {
		return nil, err
	}
	return &rangeReader{operator: o, path: path}, nil
}

func (o *Operator) Writer(ctx context.Context, path string) (chaindictstorage.AppendWriter, error) {
	return &appendWriter{operator: o, path: path}, nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	return errors.As(err, &nsk)
}

type rangeReader struct {
	operator *Operator
	path     string
}

func (r *rangeReader) getRange(ctx context.Context, start, end int64) (*s3.GetObjectOutput, error) {
	out, err := r.operator.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.operator.bucket),
		Key:    aws.String(r.operator.key(r.path)),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", start, end-1)),
	})
	if isNotFound(err) {
		return nil, chaindictstorage.ErrNotExist
	}
	return out, err
}

func (r *rangeReader) ReadRange(ctx context.Context, p []byte, start, end int64) error {
	out, err := r.getRange(ctx, start, end)
	if err != nil {
		return err
	}
	defer out.Body.Close()

	_, err = io.ReadFull(out.Body, p)
	return err
}

func (r *rangeReader) StreamRange(ctx context.Context, start, end int64) (io.ReadCloser, error) {
	out, err := r.getRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// appendWriter buffers every Write in memory and issues a single
// PutObject on Close.
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
	_, err := w.operator.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.operator.bucket),
		Key:    aws.String(w.operator.key(w.path)),
		Body:   bytes.NewReader(w.buf.Bytes()),
	})
	return err
}
