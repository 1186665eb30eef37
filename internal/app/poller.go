package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/five82/showcase/internal/site"
	"github.com/five82/showcase/internal/state"
)

const (
	retryBase  = 2 * time.Second
	maxBackoff = 30 * time.Second
)

// PollOptions control the home content refresher.
type PollOptions struct {
	// Interval between successful refreshes. Zero refreshes until the first
	// success and then stops.
	Interval      time.Duration
	FeaturedCount int
	NewsCount     int
}

// StartPoller launches a background goroutine that keeps the store's home
// content fresh. Failures are retried with exponential backoff. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client site.ContentFetcher, opts PollOptions, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	go func() {
		for {
			wait := opts.Interval
			if err := refresh(ctx, store, client, opts); err != nil {
				failures := store.Snapshot().ConsecutiveFailures
				wait = calculateBackoff(failures-1, retryBase)
				if opts.Interval > 0 && opts.Interval < wait {
					wait = opts.Interval
				}
				logger.Warn("home refresh failed", "error", err, "failures", failures, "retry_in", wait)
			} else if opts.Interval <= 0 {
				return
			}

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff doubles base for every prior failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures < 0 {
		failures = 0
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return min(wait, maxBackoff)
}

// refresh loads every home page section concurrently and publishes the
// result. A failure in any section keeps the previous content.
func refresh(ctx context.Context, store *state.Store, client site.ContentFetcher, opts PollOptions) error {
	var content state.Content
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		heroes, err := client.FetchActiveHeroes(gctx)
		content.Heroes = heroes
		return err
	})
	g.Go(func() error {
		banners, err := client.FetchActivePromotions(gctx)
		content.Promotions = banners
		return err
	})
	g.Go(func() error {
		company, err := client.FetchCompany(gctx)
		if err != nil {
			return err
		}
		content.Company = company
		content.HasCompany = true
		return nil
	})
	g.Go(func() error {
		page, err := client.FetchPage(gctx, site.ResourceGames, 1, max(opts.FeaturedCount, 1))
		content.Featured = page.Items
		return err
	})
	g.Go(func() error {
		page, err := client.FetchPage(gctx, site.ResourceNews, 1, max(opts.NewsCount, 1))
		content.News = page.Items
		return err
	})

	if err := g.Wait(); err != nil {
		store.Update(nil, err)
		return err
	}
	store.Update(&content, nil)
	return nil
}
