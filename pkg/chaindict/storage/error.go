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

// DoesNotExistError reports that the file of the given kind for the given
// link does not exist in storage although it should (i.e. Open, as
// opposed to OpenMaybe, was used).
type DoesNotExistError struct {
	Link LinkId
	Kind Kind
}

func (e *DoesNotExistError) Error() string {
	return fmt.Sprintf("chaindict: file does not exist: %s.%s", e.Link, e.Kind)
}

// FileSizeError reports that a read would exceed, or a file is smaller
// than, the logical size required.
type FileSizeError struct {
	Expected int64
	Got      int64
}

func (e *FileSizeError) Error() string {
	return fmt.Sprintf("chaindict: file too small: expected at least %d bytes but found %d", e.Expected, e.Got)
}

// VersionError reports a footer VERSION field this build does not
// understand.
type VersionError struct {
	Expected uint16
	Got      uint16
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("chaindict: unsupported storage format version: expected %d but file was encoded with %d", e.Expected, e.Got)
}
