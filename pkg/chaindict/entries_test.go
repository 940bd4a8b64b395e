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

import "testing"

func TestEntriesInsertAndLookup(t *testing.T) {
	e := newEntries[string]()

	for i, word := range []string{"foo", "bar", "baz"} {
		idx, err := e.insertUnique(word)
		if err != nil {
			t.Fatalf("insertUnique(%q): %v", word, err)
		}
		if int(idx) != i {
			t.Fatalf("insertUnique(%q) = %d, want %d", word, idx, i)
		}
	}

	if got := e.len(); got != 3 {
		t.Fatalf("len() = %d, want 3", got)
	}

	got, ok := e.getAt(1)
	if !ok || got != "bar" {
		t.Fatalf("getAt(1) = (%q, %v), want (\"bar\", true)", got, ok)
	}

	idx, ok := e.getIndexOf("baz")
	if !ok || idx != 2 {
		t.Fatalf("getIndexOf(\"baz\") = (%d, %v), want (2, true)", idx, ok)
	}

	if _, ok := e.getIndexOf("quux"); ok {
		t.Fatalf("getIndexOf(\"quux\") unexpectedly found")
	}
	if _, ok := e.getAt(99); ok {
		t.Fatalf("getAt(99) unexpectedly found")
	}
}

func TestEntriesEmpty(t *testing.T) {
	e := newEntries[int]()
	if !e.isEmpty() {
		t.Fatalf("isEmpty() = false on fresh set")
	}
	if _, ok := e.getAt(0); ok {
		t.Fatalf("getAt(0) unexpectedly found on empty set")
	}
}

func TestEntriesReserveThenInsert(t *testing.T) {
	e := newEntriesWithCapacity[int](16)
	if e.len() != 0 {
		t.Fatalf("len() = %d after reserve, want 0", e.len())
	}
	for i := 0; i < 16; i++ {
		if _, err := e.insertUnique(i); err != nil {
			t.Fatalf("insertUnique(%d): %v", i, err)
		}
	}
	if e.len() != 16 {
		t.Fatalf("len() = %d, want 16", e.len())
	}
}
