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

package gcs

import (
	"context"
	"flag"
	"testing"

	gcstorage "cloud.google.com/go/storage"

	chaindictstorage "github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
	"github.com/r3v2d0g/chaindict/pkg/chaindict/storagetest"
)

var bucket = flag.String("gcs_bucket", "", "bucket name to use for testing; testing is skipped if empty")

func TestOperator(t *testing.T) {
	if *bucket == "" {
		t.Skip("skipping: -gcs_bucket not set")
	}

	client, err := gcstorage.NewClient(context.Background())
	if err != nil {
		t.Fatalf("creating GCS client: %v", err)
	}
	defer client.Close()

	storagetest.Test(t, func(t *testing.T) (chaindictstorage.Operator, func()) {
		return New(client, *bucket), nil
	})
}
