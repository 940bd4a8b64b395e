/*
Copyright 2014 The Camlistore Authors

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

package memory

import (
	"testing"

	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
	"github.com/r3v2d0g/chaindict/pkg/chaindict/storagetest"
)

func TestOperator(t *testing.T) {
	storagetest.Test(t, func(t *testing.T) (storage.Operator, func()) {
		return New(), nil
	})
}
