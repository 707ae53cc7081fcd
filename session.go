package bilisweep

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bilisweep/bilisweep/pkg/bili"
	"github.com/bilisweep/bilisweep/pkg/feed"
	"github.com/bilisweep/bilisweep/pkg/notify"
	"github.com/bilisweep/bilisweep/pkg/sweep"
)

// Session holds one authenticated notification-cleaning session: a
// client bound to a csrf credential and the collection of fetched
// notifications. It is safe for concurrent use.
type Session struct {
	client *bili.Client
	coll   *notify.Collection
	log    *slog.Logger
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	log  *slog.Logger
	http *http.Client
}

// WithLogger sets the logger used across the session's fetches and
// sweeps. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *sessionConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *sessionConfig) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a session for the given endpoints and csrf credential.
func New(cfg bili.Config, csrf string, opts ...Option) *Session {
	sc := &sessionConfig{log: slog.Default()}
	for _, opt := range opts {
		opt(sc)
	}

	clientOpts := []bili.Option{bili.WithLogger(sc.log)}
	if sc.http != nil {
		clientOpts = append(clientOpts, bili.WithHTTPClient(sc.http))
	}

	return &Session{
		client: bili.New(cfg, csrf, clientOpts...),
		coll:   notify.NewCollection(),
		log:    sc.log,
	}
}

// Collection is the session's notification collection. Callers use it
// to inspect fetched records and mark them for deletion.
func (s *Session) Collection() *notify.Collection { return s.coll }

// Refresh fetches all four feeds concurrently and replaces the
// collection with the merged result. On any failure the collection is
// left untouched.
func (s *Session) Refresh(ctx context.Context) error {
	records, err := feed.Fetch(ctx, s.client, feed.WithLogger(s.log))
	if err != nil {
		return err
	}
	s.coll.ReplaceAll(records)
	return nil
}

// Sweep deletes the currently selected records sequentially, pacing
// calls by cfg.Delay. It returns immediately; per-item outcomes arrive
// on the returned channel, which closes after the terminal done event.
// Cancelling ctx stops the run before the next deletion is dispatched.
func (s *Session) Sweep(ctx context.Context, cfg sweep.Config) <-chan sweep.Event {
	worker := sweep.NewWorker(s.client, s.coll, cfg, sweep.WithLogger(s.log))
	return worker.Run(ctx)
}
