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
	"fmt"

	"github.com/google/uuid"
)

// LinkId identifies a link in a chain. The zero value is reserved to mean
// "no predecessor" in the binary encoding and must never be assigned to a
// real link.
type LinkId uuid.UUID

// NewLinkId generates a fresh random link ID. It panics if the all-zero
// sentinel was somehow generated, which would indicate a broken random
// source rather than bad luck: a v4 UUID cannot legitimately be all zero.
func NewLinkId() LinkId {
	id := LinkId(uuid.New())
	if id.IsZero() {
		panic("chaindict: generated the reserved zero LinkId")
	}
	return id
}

// LinkIdFromU128 converts a big-endian u128 (as stored in a footer),
// split into high and low 64-bit halves, into a LinkId. A value of 0
// represents the "no predecessor" sentinel.
func LinkIdFromU128(hi, lo uint64) LinkId {
	var id LinkId
	for i := range 8 {
		id[i] = byte(hi >> (56 - 8*i))
		id[8+i] = byte(lo >> (56 - 8*i))
	}
	return id
}

// AsU128 returns the big-endian u128 representation of the link ID, split
// into its high and low 64-bit halves, as stored in a footer.
func (id LinkId) AsU128() (hi, lo uint64) {
	for i := range 8 {
		hi = hi<<8 | uint64(id[i])
		lo = lo<<8 | uint64(id[8+i])
	}
	return hi, lo
}

// IsZero reports whether id is the reserved "no predecessor" sentinel.
func (id LinkId) IsZero() bool {
	return id == LinkId{}
}

// String renders the link ID in canonical UUID text form.
func (id LinkId) String() string {
	return uuid.UUID(id).String()
}

// ParseLinkId parses the canonical UUID text form of a link ID.
func ParseLinkId(s string) (LinkId, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return LinkId{}, fmt.Errorf("chaindict: parsing link id %q: %w", s, err)
	}
	return LinkId(u), nil
}
