// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow, read-only Client interface so
// that photo trees kept in AWS S3 or a self-hosted MinIO instance can be
// scanned the same way as a local directory.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easy to mock storage interactions in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//   - GetObject: Retrieves content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "photos")
package storage
