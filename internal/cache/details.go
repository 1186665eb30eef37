package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/five82/showcase/internal/site"
)

// FetchTimeout bounds a shared backend fetch. It runs detached from the
// caller that started it so other callers waiting on it are not cancelled
// with it.
const FetchTimeout = 15 * time.Second

// Details is a read-through site.DetailFetcher. Fresh entries are served from
// the store; misses are fetched once no matter how many callers ask at the
// same time. When the backend fails, a stale entry is served instead.
type Details struct {
	store   *Store
	next    site.DetailFetcher
	ttl     time.Duration
	timeout time.Duration
	logger  *log.Logger
	group   singleflight.Group
}

// NewDetails wraps next with store. A nil store disables caching.
func NewDetails(store *Store, next site.DetailFetcher, ttl time.Duration, logger *log.Logger) *Details {
	if logger == nil {
		logger = log.Default()
	}
	return &Details{store: store, next: next, ttl: ttl, timeout: FetchTimeout, logger: logger}
}

// FetchDetail implements site.DetailFetcher.
func (d *Details) FetchDetail(ctx context.Context, resource site.Resource, id int64) (site.Item, error) {
	if d.store == nil {
		return d.next.FetchDetail(ctx, resource, id)
	}

	cached, hit, err := d.store.Get(ctx, resource, id)
	if err != nil {
		d.logger.Warn("detail cache read failed", "resource", resource, "id", id, "error", err)
	}
	if hit && cached.Age(d.store.now()) < d.ttl {
		d.logger.Debug("detail cache hit", "resource", resource, "id", id)
		return cached.Item, nil
	}

	key := fmt.Sprintf("%s/%d", resource, id)
	shared := context.WithoutCancel(ctx)
	ch := d.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(shared, d.timeout)
		defer cancel()
		item, err := d.next.FetchDetail(fetchCtx, resource, id)
		if err != nil {
			return site.Item{}, err
		}
		if err := d.store.Put(fetchCtx, resource, item); err != nil {
			d.logger.Warn("detail cache write failed", "resource", resource, "id", id, "error", err)
		}
		return item, nil
	})

	var v any
	select {
	case <-ctx.Done():
		return site.Item{}, ctx.Err()
	case res := <-ch:
		v, err = res.Val, res.Err
	}
	if err != nil {
		if hit {
			d.logger.Warn("serving stale detail", "resource", resource, "id", id, "age", cached.Age(d.store.now()), "error", err)
			return cached.Item, nil
		}
		return site.Item{}, err
	}
	return v.(site.Item), nil
}
