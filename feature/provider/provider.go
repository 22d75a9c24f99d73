package provider

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"photo-sync/core/reconcile"

	"github.com/minio/sha256-simd"
)

// IsHidden reports whether a folder or file name should be ignored by scans
// (".DS_Store", ".thumbnails" and the like).
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// ParseDayFolder parses a day folder name such as "2024-04-15".
func ParseDayFolder(name string) (reconcile.Day, error) {
	return reconcile.ParseDay(name)
}

// HashPhoto reads r to the end and returns its content identity.
func HashPhoto(r io.Reader) (reconcile.PhotoID, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash photo: %w", err)
	}
	return reconcile.PhotoID(hex.EncodeToString(h.Sum(nil))), nil
}

// Builder accumulates hashed photos into a Snapshot. Days and users are
// registered as they are discovered so that empty folders are kept.
// A Builder is not safe for concurrent use.
type Builder struct {
	snapshot reconcile.Snapshot
	index    map[reconcile.Day]map[reconcile.UserLabel]int
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		snapshot: make(reconcile.Snapshot),
		index:    make(map[reconcile.Day]map[reconcile.UserLabel]int),
	}
}

// AddDay registers a day with no users yet.
func (b *Builder) AddDay(day reconcile.Day) {
	if _, ok := b.index[day]; ok {
		return
	}
	b.index[day] = make(map[reconcile.UserLabel]int)
	b.snapshot[day] = nil
}

// AddUser registers a user folder for a day and returns its collection.
func (b *Builder) AddUser(day reconcile.Day, user reconcile.UserLabel) *reconcile.Collection {
	b.AddDay(day)
	if i, ok := b.index[day][user]; ok {
		return b.snapshot[day][i].Photos
	}
	photos := reconcile.NewCollection()
	b.index[day][user] = len(b.snapshot[day])
	b.snapshot[day] = append(b.snapshot[day], reconcile.UserCollection{User: user, Photos: photos})
	return photos
}

// AddPhoto records a photo for a user on a day.
func (b *Builder) AddPhoto(day reconcile.Day, user reconcile.UserLabel, id reconcile.PhotoID) {
	b.AddUser(day, user).Add(id)
}

// Snapshot returns the accumulated snapshot.
func (b *Builder) Snapshot() reconcile.Snapshot {
	return b.snapshot
}
