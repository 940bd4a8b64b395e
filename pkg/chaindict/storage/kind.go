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

import "fmt"

// Kind distinguishes a link's delta file from its snapshot file.
type Kind int

const (
	// Delta identifies the file storing only the entries a link
	// contributed itself.
	Delta Kind = iota
	// Snapshot identifies the file storing every entry in a link's
	// dictionary, in dictionary order.
	Snapshot
)

// String renders the kind as the lowercase word used in file paths.
func (k Kind) String() string {
	switch k {
	case Delta:
		return "delta"
	case Snapshot:
		return "snapshot"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
