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

// u32Codec codes entries as the 4-byte big-endian integers used in the
// worked examples: e.g. "00 00 00 01".
type u32Codec struct{}

func (u32Codec) Size() int { return 4 }

func (u32Codec) Read(ctx context.Context, r *storage.Reader) (uint32, error) {
	return r.ReadU32(ctx)
}

func (u32Codec) Write(ctx context.Context, w *storage.Writer, entry uint32) error {
	return w.WriteU32(ctx, entry)
}
