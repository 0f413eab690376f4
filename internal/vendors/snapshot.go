package vendors

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hellolocalo/localo-backend/internal/directory"
	redislib "github.com/redis/go-redis/v9"
)

const snapshotName = "vendor_directory"

type snapshotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type snapshotKeyer interface {
	SnapshotKey(name string) string
}

// DirectoryCache keeps the serialized vendor directory in Redis so public
// listing requests skip the relational rebuild inside the TTL window. Any
// write that changes what the public listing would show must call
// Invalidate; that includes catalog and category mutations owned by other
// services, which is why the cache is a shared collaborator rather than a
// private detail of this package.
type DirectoryCache struct {
	store snapshotStore
	keyer snapshotKeyer
	ttl   time.Duration
}

// NewDirectoryCache returns a cache bound to the store, or nil when the
// collaborators are incomplete. A nil cache is a valid no-op receiver.
func NewDirectoryCache(store snapshotStore, keyer snapshotKeyer, ttl time.Duration) *DirectoryCache {
	if store == nil || keyer == nil || ttl <= 0 {
		return nil
	}
	return &DirectoryCache{store: store, keyer: keyer, ttl: ttl}
}

func (c *DirectoryCache) load(ctx context.Context) (*directory.VendorDirectory, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	raw, err := c.store.Get(ctx, c.keyer.SnapshotKey(snapshotName))
	if err != nil {
		return nil, false
	}
	var vendors []directory.Vendor
	if err := json.Unmarshal([]byte(raw), &vendors); err != nil {
		return nil, false
	}
	dir := directory.NewVendorDirectory()
	for _, vendor := range vendors {
		dir.Add(vendor)
	}
	return dir, true
}

func (c *DirectoryCache) save(ctx context.Context, dir *directory.VendorDirectory) {
	if c == nil || c.store == nil {
		return
	}
	raw, err := json.Marshal(dir.All())
	if err != nil {
		return
	}
	// best effort: a failed cache write only costs the next rebuild
	_ = c.store.Set(ctx, c.keyer.SnapshotKey(snapshotName), raw, c.ttl)
}

// Invalidate drops the cached snapshot so the next read rebuilds from the
// database. Safe on a nil cache.
func (c *DirectoryCache) Invalidate(ctx context.Context) {
	if c == nil || c.store == nil {
		return
	}
	if err := c.store.Del(ctx, c.keyer.SnapshotKey(snapshotName)); err != nil && !errors.Is(err, redislib.Nil) {
		return
	}
}
