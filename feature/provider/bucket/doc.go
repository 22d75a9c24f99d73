// Package bucket provides the object storage photo provider.
//
// Objects are expected under <prefix>/<YYYY-MM-DD>/<user>/<photo>, the same
// layout the filesystem provider reads. Each object is streamed through
// SHA-256 to obtain its identity. Folder marker objects (keys ending in "/")
// keep empty day and user folders visible.
//
//	p := bucket.NewProvider(client, cfg.Storage.Bucket, "family", log)
//	snapshot, err := p.Snapshot(ctx)
package bucket
