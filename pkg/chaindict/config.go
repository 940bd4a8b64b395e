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
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	gcstorage "cloud.google.com/go/storage"
	"go4.org/jsonconfig"

	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage"
	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage/gcs"
	"github.com/r3v2d0g/chaindict/pkg/chaindict/storage/memory"
	storages3 "github.com/r3v2d0g/chaindict/pkg/chaindict/storage/s3"
)

// StorageFromJSON builds a storage.Storage from a jsonconfig.Obj,
// picking a concrete Operator backend by its "type" key, the way
// Perkeep's own blobserver backends are selected and configured. The
// recognized shapes are:
//
//	{"type": "memory"}
//	{"type": "s3", "bucket": "my-bucket[/prefix]"}
//	{"type": "gcs", "bucket": "my-bucket[/prefix]"}
//
// An optional "base" key sets the path prefix under which every link's
// files are addressed (see storage.Storage.Path); it is independent of
// any bucket-level key prefix a backend itself supports.
func StorageFromJSON(ctx context.Context, config jsonconfig.Obj) (storage.Storage, error) {
	typ := config.RequiredString("type")
	base := config.OptionalString("base", "")

	var op storage.Operator
	switch typ {
	case "memory":
		op = memory.New()

	case "s3":
		bucket := config.RequiredString("bucket")
		cfg, cerr := awsconfig.LoadDefaultConfig(ctx)
		if cerr != nil {
			return storage.Storage{}, fmt.Errorf("chaindict: loading AWS config: %w", cerr)
		}
		op = storages3.New(s3.NewFromConfig(cfg), bucket)

	case "gcs":
		bucket := config.RequiredString("bucket")
		client, cerr := gcstorage.NewClient(ctx)
		if cerr != nil {
			return storage.Storage{}, fmt.Errorf("chaindict: creating GCS client: %w", cerr)
		}
		op = gcs.New(client, bucket)

	default:
		return storage.Storage{}, fmt.Errorf("chaindict: unknown storage type %q", typ)
	}

	if err := config.Validate(); err != nil {
		return storage.Storage{}, err
	}

	if base != "" {
		return storage.NewIn(base, op), nil
	}
	return storage.New(op), nil
}
