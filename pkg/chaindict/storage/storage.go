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

// Package storage provides the object-store adapter and the framed,
// big-endian I/O primitives chaindict's delta and snapshot files are built
// on. It is deliberately storage-backend agnostic: concrete backends live
// in storage/memory, storage/s3, and storage/gcs, each implementing the
// Operator interface declared here.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Storage computes file paths for links and opens readers/writers for
// them through an Operator. It is cheap to copy and safe to share across
// readers and writers running on independent goroutines.
type Storage struct {
	base     string
	operator Operator
}

// New returns a Storage rooted at the given Operator, with no base path:
// files are addressed as "{id}.{kind}".
func New(operator Operator) Storage {
	return Storage{operator: operator}
}

// NewIn returns a Storage rooted at the given Operator, using base as a
// path prefix for every file: "{base}/{id}.{kind}".
func NewIn(base string, operator Operator) Storage {
	return Storage{base: base, operator: operator}
}

// Path returns the path at which the file of the given kind for the link
// with the given ID should exist or be created.
func (s Storage) Path(id LinkId, kind Kind) string {
	if s.base != "" {
		return fmt.Sprintf("%s/%s.%s", s.base, id, kind)
	}
	return fmt.Sprintf("%s.%s", id, kind)
}

// Open opens the file of the given kind for the link with the given ID,
// failing with *DoesNotExistError if it is absent.
func (s Storage) Open(ctx context.Context, id LinkId, kind Kind) (*Reader, error) {
	r, err := s.open(ctx, id, kind)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return nil, &DoesNotExistError{Link: id, Kind: kind}
		}
		return nil, err
	}
	return r, nil
}

// OpenMaybe is like Open, but returns (nil, nil) instead of an error when
// the file is absent.
func (s Storage) OpenMaybe(ctx context.Context, id LinkId, kind Kind) (*Reader, error) {
	r, err := s.open(ctx, id, kind)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

func (s Storage) open(ctx context.Context, id LinkId, kind Kind) (*Reader, error) {
	path := s.Path(id, kind)

	info, err := s.operator.Stat(ctx, path)
	if err != nil {
		return nil, err
	}

	raw, err := s.operator.Reader(ctx, path)
	if err != nil {
		return nil, err
	}

	return &Reader{
		fileSize: info.ContentLength,
		reader:   raw,
	}, nil
}

// Create opens a new append-only writer at the path for the file of the
// given kind for the link with the given ID.
func (s Storage) Create(ctx context.Context, id LinkId, kind Kind) (*Writer, error) {
	raw, err := s.operator.Writer(ctx, s.Path(id, kind))
	if err != nil {
		return nil, err
	}
	return &Writer{raw: raw}, nil
}
