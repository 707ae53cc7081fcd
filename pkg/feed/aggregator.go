package feed

import (
	"context"
	"log/slog"
	"maps"

	"golang.org/x/sync/errgroup"

	"github.com/bilisweep/bilisweep/pkg/bili"
	"github.com/bilisweep/bilisweep/pkg/notify"
)

type fetchConfig struct {
	log *slog.Logger
}

// FetchOption configures a Fetch run.
type FetchOption func(*fetchConfig)

// WithLogger sets the logger for fetch progress diagnostics.
func WithLogger(log *slog.Logger) FetchOption {
	return func(c *fetchConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// Fetch runs the four feed pagers concurrently and merges their
// results into one collection keyed by id.
//
// The failure contract is all-or-nothing: the first feed to fail
// cancels the remaining fetches and no partial result is returned. The
// merge order is fixed — liked, mentioned, replied, system — so on an
// id collision the record from the later feed wins; a colliding system
// record overwrites all others.
func Fetch(ctx context.Context, client *bili.Client, opts ...FetchOption) (map[uint64]*notify.Record, error) {
	cfg := &fetchConfig{log: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	sources := []Source{Liked(client), Mentioned(client), Replied(client), System(client)}

	results := make([]map[uint64]*notify.Record, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			recs, err := Paginate(gctx, src)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[uint64]*notify.Record)
	for i, recs := range results {
		maps.Copy(merged, recs)
		cfg.log.LogAttrs(ctx, slog.LevelDebug, "feed fetched",
			slog.String("feed", sources[i].Name()),
			slog.Int("records", len(recs)),
		)
	}

	cfg.log.LogAttrs(ctx, slog.LevelInfo, "notifications fetched",
		slog.Int("total", len(merged)),
	)
	return merged, nil
}
