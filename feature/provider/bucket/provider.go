package bucket

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"photo-sync/core/reconcile"
	"photo-sync/core/storage"
	"photo-sync/feature/provider"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ObjectError reports which object key a bucket scan failed on.
type ObjectError struct {
	Key string
	Err error
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("object %s: %v", e.Key, e.Err)
}

func (e *ObjectError) Unwrap() error {
	return e.Err
}

// Provider reads a <prefix>/<YYYY-MM-DD>/<user>/<photo> tree from a bucket.
type Provider struct {
	client  storage.Client
	bucket  string
	prefix  string
	workers int
	logger  *zap.Logger
}

// NewProvider creates a provider scanning prefix inside bucket.
// An empty prefix scans the whole bucket.
func NewProvider(client storage.Client, bucket, prefix string, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		workers: runtime.NumCPU() * 4,
		logger:  logger,
	}
}

// WithWorkers bounds how many objects are downloaded concurrently.
func (p *Provider) WithWorkers(n int) *Provider {
	if n > 0 {
		p.workers = n
	}
	return p
}

// Name implements reconcile.Provider.
func (p *Provider) Name() string {
	if p.prefix == "" {
		return "bucket:" + p.bucket
	}
	return "bucket:" + p.bucket + "/" + p.prefix
}

type photoObject struct {
	day  reconcile.Day
	user reconcile.UserLabel
	key  string
}

// Snapshot implements reconcile.Provider. Folder marker objects register empty
// day and user folders; objects outside the three-level layout and hidden
// names are skipped.
func (p *Provider) Snapshot(ctx context.Context) (reconcile.Snapshot, error) {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", p.bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", p.bucket)
	}

	listPrefix := ""
	if p.prefix != "" {
		listPrefix = p.prefix + "/"
	}

	builder := provider.NewBuilder()
	var objects []photoObject

	listCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for obj := range p.client.ListObjects(listCtx, p.bucket, minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, &ObjectError{Key: listPrefix, Err: obj.Err}
		}

		parts := strings.Split(strings.TrimPrefix(obj.Key, listPrefix), "/")
		isFolder := strings.HasSuffix(obj.Key, "/")
		if isFolder {
			parts = parts[:len(parts)-1]
		}
		if len(parts) == 0 || len(parts) > 3 || hidden(parts) {
			continue
		}
		if len(parts) < 3 && !isFolder {
			continue
		}

		day, err := provider.ParseDayFolder(parts[0])
		if err != nil {
			return nil, &ObjectError{Key: obj.Key, Err: err}
		}
		builder.AddDay(day)
		if len(parts) == 1 {
			continue
		}

		user := reconcile.UserLabel(parts[1])
		builder.AddUser(day, user)
		if isFolder || len(parts) == 2 {
			continue
		}
		objects = append(objects, photoObject{day: day, user: user, key: obj.Key})
	}

	ids, err := p.hashAll(ctx, objects)
	if err != nil {
		return nil, err
	}
	for i, obj := range objects {
		builder.AddPhoto(obj.day, obj.user, ids[i])
	}

	snapshot := builder.Snapshot()
	p.logger.Debug("Scanned photo bucket",
		zap.String("bucket", p.bucket),
		zap.String("prefix", p.prefix),
		zap.Int("days", len(snapshot)),
		zap.Int("photos", len(objects)),
	)
	return snapshot, nil
}

func (p *Provider) hashAll(ctx context.Context, objects []photoObject) ([]reconcile.PhotoID, error) {
	ids := make([]reconcile.PhotoID, len(objects))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, obj := range objects {
		i, obj := i, obj
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := p.hashObject(ctx, obj.key)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (p *Provider) hashObject(ctx context.Context, key string) (reconcile.PhotoID, error) {
	r, err := p.client.GetObject(ctx, p.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", &ObjectError{Key: key, Err: err}
	}
	defer r.Close()

	id, err := provider.HashPhoto(r)
	if err != nil {
		return "", &ObjectError{Key: key, Err: err}
	}
	return id, nil
}

func hidden(parts []string) bool {
	for _, part := range parts {
		if part == "" || provider.IsHidden(part) {
			return true
		}
	}
	return false
}
