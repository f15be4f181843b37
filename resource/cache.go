// Package resource loads the images referenced by a box tree.
//
// A Cache fetches each URL at most once, decoding it with the standard
// image decoders, golang.org/x/image codecs, or oksvg for SVG documents.
// Concurrent requests for the same URL share one fetch. Prefetch warms the
// cache for a page with bounded concurrency before painting starts.
package resource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gogpu/paged/internal/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultPrefetchLimit bounds concurrent fetches in Prefetch.
const DefaultPrefetchLimit = 8

type entry struct {
	img image.Image
	err error
}

// Cache memoizes decoded resources by URL. It is safe for concurrent use.
type Cache struct {
	fetcher Fetcher
	limit   int

	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithFetcher replaces the default fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *Cache) { c.fetcher = f }
}

// WithPrefetchLimit sets the maximum number of concurrent fetches in
// Prefetch.
func WithPrefetchLimit(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.limit = n
		}
	}
}

// NewCache returns an empty cache. Without WithFetcher it serves data URIs,
// local files relative to the working directory and unthrottled HTTP.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		limit:   DefaultPrefetchLimit,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		c.fetcher = NewRouter("", 0)
	}
	return c
}

// Match returns the image for rawURL, loading it on first use. Failures
// are remembered and returned as *LoadError.
func (c *Cache) Match(ctx context.Context, rawURL string) (image.Image, error) {
	if rawURL == "" {
		return nil, &LoadError{URL: rawURL, Err: ErrFetch}
	}
	if e, ok := c.lookup(rawURL); ok {
		return e.img, e.err
	}

	for retried := false; ; retried = true {
		v, err, shared := c.group.Do(rawURL, func() (any, error) {
			if e, ok := c.lookup(rawURL); ok {
				return e.img, e.err
			}
			img, err := c.load(ctx, rawURL)
			// A cancelled load says nothing about the resource itself.
			if !interrupted(err) {
				c.mu.Lock()
				c.entries[rawURL] = entry{img: img, err: err}
				c.mu.Unlock()
			}
			return img, err
		})
		// A joined load runs under the first caller's context. When that
		// caller gave up, load again under ours. The finished call may still
		// be registered, so forget it first.
		if shared && !retried && interrupted(err) && ctx.Err() == nil {
			c.group.Forget(rawURL)
			continue
		}
		if err != nil {
			return nil, err
		}
		return v.(image.Image), nil
	}
}

// Prefetch loads urls concurrently. Individual load failures are cached
// for Match to report; Prefetch only returns the context's error.
func (c *Cache) Prefetch(ctx context.Context, urls []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		if _, ok := c.lookup(u); ok {
			continue
		}
		g.Go(func() error {
			_, _ = c.Match(gctx, u)
			return nil
		})
	}
	_ = g.Wait()
	return ctx.Err()
}

// Len returns the number of cached entries, failures included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (c *Cache) lookup(rawURL string) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[rawURL]
	return e, ok
}

func (c *Cache) load(ctx context.Context, rawURL string) (image.Image, error) {
	start := time.Now()
	data, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if !errors.Is(err, ErrFetch) {
			err = fmt.Errorf("%w: %w", ErrFetch, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", err, ctxErr)
		}
		return nil, &LoadError{URL: rawURL, Err: err}
	}
	img, err := Decode(data)
	if err != nil {
		return nil, &LoadError{URL: rawURL, Err: err}
	}
	logging.Logger().Debug("resource loaded",
		"url", shorten(rawURL),
		"bytes", len(data),
		"size", img.Bounds().Size().String(),
		"elapsed", time.Since(start))
	return img, nil
}
