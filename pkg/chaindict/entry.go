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

// Codec knows how to encode and decode a fixed-size, comparable entry
// type. Unlike the reference implementation this is modeled on, where
// each entry type reads and writes itself via an associated function
// returning Self, Go has no static interface methods: a Codec is instead
// a separate, typically stateless value passed alongside the entry type
// parameter to Reader and Writer.
//
// Read must consume exactly Size() bytes from reader; Write must emit
// exactly Size() bytes to writer. Violating either leaves the reader or
// writer's cursor out of sync with every entry that follows, corrupting
// the rest of the file.
type Codec[T comparable] interface {
	// Size returns the entry's encoded width in bytes. It must be
	// constant for a given Codec.
	Size() int

	// Read decodes one entry from reader, advancing its cursor by
	// exactly Size() bytes.
	Read(ctx context.Context, reader *storage.Reader) (T, error)

	// Write encodes entry to writer, advancing its cursor by exactly
	// Size() bytes.
	Write(ctx context.Context, writer *storage.Writer, entry T) error
}
