package feed

import (
	"context"
	"fmt"

	"github.com/bilisweep/bilisweep/pkg/notify"
)

// Item is one notification row extracted from a feed page.
type Item struct {
	ID       uint64
	TypeCode uint8
	Content  string
}

// Cursor is the continuation token for the next page request: the
// server cursor id plus the last item's timestamp for the msgfeed
// feeds, or a single server-issued cursor value for the system feed.
// It lives only inside one pagination run.
type Cursor struct {
	ID   uint64
	Last uint64

	// End is the server's explicit end-of-list flag. Feeds without one
	// leave it false and terminate on an empty continuation page.
	End bool
}

// Page is one decoded page of a feed.
type Page struct {
	Items  []Item
	Cursor Cursor
}

// Source is one feed's pluggable pagination behavior.
type Source interface {
	Name() string

	// Seed fetches the first page and decides the deletion protocol for
	// every record of this run. The system feed performs its
	// primary/secondary endpoint fallback here, exactly once.
	Seed(ctx context.Context) (*Page, notify.Protocol, error)

	// Next fetches the page after cur.
	Next(ctx context.Context, cur Cursor) (*Page, error)

	// Record converts an extracted item into a notification record.
	Record(it Item, proto notify.Protocol) *notify.Record
}

// Paginate walks one feed to exhaustion and returns its records keyed
// by id. A seed page with no items yields ErrEmptyFeed.
func Paginate(ctx context.Context, src Source) (map[uint64]*notify.Record, error) {
	page, proto, err := src.Seed(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s feed: %w", src.Name(), err)
	}
	if len(page.Items) == 0 {
		return nil, fmt.Errorf("%s feed: %w", src.Name(), ErrEmptyFeed)
	}

	records := make(map[uint64]*notify.Record)
	for {
		for _, it := range page.Items {
			records[it.ID] = src.Record(it, proto)
		}

		if page.Cursor.End {
			break
		}

		next, err := src.Next(ctx, page.Cursor)
		if err != nil {
			return nil, fmt.Errorf("%s feed: %w", src.Name(), err)
		}
		if len(next.Items) == 0 {
			// Feeds without an end flag signal exhaustion with an empty
			// page. For the others this doubles as a termination guard.
			break
		}
		page = next
	}

	return records, nil
}
