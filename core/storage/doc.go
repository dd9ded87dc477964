// Package storage wraps the MinIO client used to publish the generated addon
// files.
//
// The Client interface covers what the publisher and the bucket integrity
// check need, so both can be tested against mocks.Client.
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
