package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/bilisweep/bilisweep/pkg/bili"
	"github.com/bilisweep/bilisweep/pkg/notify"
)

// Config holds deletion pacing. Values map to environment variables
// via pkg/config.
type Config struct {
	// Delay is the pause between successive deletion calls. The
	// throttle is deliberate: the service rate-limits deletions.
	Delay time.Duration `env:"SWEEP_DELETE_DELAY" envDefault:"3s"`
}

// EventKind classifies a worker event.
type EventKind uint8

const (
	// EventDeleted reports one successfully deleted notification.
	EventDeleted EventKind = iota
	// EventFailed reports one notification whose deletion call failed;
	// the worker continues with the next one.
	EventFailed
	// EventDone is the single terminal event of a run.
	EventDone
)

// Event is one per-item outcome or the terminal completion signal of a
// deletion run.
type Event struct {
	RunID uuid.UUID
	Kind  EventKind

	// ID is the notification the event refers to; zero for EventDone.
	ID uint64

	// Err carries the failure for EventFailed.
	Err error

	// Stopped marks an EventDone caused by cancellation rather than by
	// draining the whole selection.
	Stopped bool
}

// Worker deletes the selected records of a collection one at a time.
type Worker struct {
	client *bili.Client
	coll   *notify.Collection
	delay  time.Duration
	log    *slog.Logger
}

// WorkerOption configures a Worker.
type WorkerOption func(*Worker)

// WithLogger sets the logger for per-item progress.
func WithLogger(log *slog.Logger) WorkerOption {
	return func(w *Worker) {
		if log != nil {
			w.log = log
		}
	}
}

// NewWorker creates a deletion worker over the given client and
// shared collection.
func NewWorker(client *bili.Client, coll *notify.Collection, cfg Config, opts ...WorkerOption) *Worker {
	w := &Worker{
		client: client,
		coll:   coll,
		delay:  cfg.Delay,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run snapshots the currently selected records and deletes them
// strictly sequentially, spacing calls by the configured delay. It
// returns immediately; outcomes arrive on the returned channel, which
// is closed after the terminal EventDone.
//
// Cancelling ctx stops the run before the next deletion is dispatched.
// The channel is buffered for the whole run, so a slow consumer never
// blocks the worker.
func (w *Worker) Run(ctx context.Context) <-chan Event {
	targets := w.coll.SelectedSnapshot()
	events := make(chan Event, len(targets)+1)

	go w.run(ctx, uuid.New(), targets, events)
	return events
}

func (w *Worker) run(ctx context.Context, runID uuid.UUID, targets []notify.Record, events chan<- Event) {
	defer close(events)

	// Burst 1 with one interval per delay: the first call goes out
	// immediately, every following call waits out the full delay.
	// Wait also doubles as the between-iterations cancellation check.
	limiter := rate.NewLimiter(rate.Every(w.delay), 1)

	w.log.LogAttrs(ctx, slog.LevelInfo, "sweep started",
		slog.String("run_id", runID.String()),
		slog.Int("selected", len(targets)),
		slog.Duration("delay", w.delay),
	)

	stopped := false
	for _, rec := range targets {
		if err := limiter.Wait(ctx); err != nil {
			stopped = true
			break
		}

		// The in-flight call is never aborted: a half-sent delete may
		// or may not have taken effect server-side, so let it finish
		// and report its real outcome.
		err := Delete(context.WithoutCancel(ctx), w.client, rec)
		if err != nil {
			w.log.LogAttrs(ctx, slog.LevelWarn, "delete failed",
				slog.String("run_id", runID.String()),
				slog.Uint64("id", rec.ID),
				slog.String("category", rec.Category.String()),
				slog.Any("err", err),
			)
			events <- Event{RunID: runID, Kind: EventFailed, ID: rec.ID, Err: err}
			continue
		}

		w.coll.Remove(rec.ID)
		w.log.LogAttrs(ctx, slog.LevelInfo, "notification deleted",
			slog.String("run_id", runID.String()),
			slog.Uint64("id", rec.ID),
			slog.String("category", rec.Category.String()),
		)
		events <- Event{RunID: runID, Kind: EventDeleted, ID: rec.ID}
	}

	w.log.LogAttrs(ctx, slog.LevelInfo, "sweep finished",
		slog.String("run_id", runID.String()),
		slog.Bool("stopped", stopped),
		slog.Int("remaining", w.coll.SelectedCount()),
	)
	events <- Event{RunID: runID, Kind: EventDone, Stopped: stopped}
}
