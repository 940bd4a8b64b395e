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

package s3

import (
	"context"
	"flag"
	"testing"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	chaindictstorage "github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
	"github.com/r3v2d0g/chaindict/pkg/chaindict/storagetest"
)

var bucket = flag.String("s3_bucket", "", "bucket name to use for testing; testing is skipped if empty")

func TestOperator(t *testing.T) {
	if *bucket == "" {
		t.Skip("skipping: -s3_bucket not set")
	}

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		t.Fatalf("loading AWS config: %v", err)
	}
	client := s3.NewFromConfig(cfg)

	storagetest.Test(t, func(t *testing.T) (chaindictstorage.Operator, func()) {
		return New(client, *bucket), nil
	})
}
