package feed

import (
	"context"
	"fmt"

	"github.com/bilisweep/bilisweep/pkg/bili"
	"github.com/bilisweep/bilisweep/pkg/notify"
)

// msgfeedCursor is the cursor block shared by the liked, mentioned and
// replied feeds. Pointers distinguish a missing field from a zero one.
type msgfeedCursor struct {
	ID    *uint64 `json:"id"`
	IsEnd *bool   `json:"is_end"`
}

type msgfeedContent struct {
	Title         string `json:"title"`
	SourceContent string `json:"source_content"`
}

// msgfeedItem covers all three msgfeed variants; each feed reads only
// its own timestamp field.
type msgfeedItem struct {
	ID        *uint64        `json:"id"`
	LikeTime  *uint64        `json:"like_time"`
	AtTime    *uint64        `json:"at_time"`
	ReplyTime *uint64        `json:"reply_time"`
	Item      msgfeedContent `json:"item"`
}

type msgfeedBlock struct {
	Items  *[]msgfeedItem `json:"items"`
	Cursor *msgfeedCursor `json:"cursor"`
}

type msgfeedPayload struct {
	Data struct {
		msgfeedBlock
		// The liked feed nests its block one level deeper.
		Total *msgfeedBlock `json:"total"`
	} `json:"data"`
}

// msgfeedSource implements the shared pagination behavior of the
// liked, mentioned and replied feeds.
type msgfeedSource struct {
	client  *bili.Client
	name    string
	cat     notify.Category
	nested  bool // items live under data.total instead of data
	seedURL func() string
	pageURL func(id, last uint64) string
	timeOf  func(it msgfeedItem) *uint64
}

// Liked is the feed of notifications for received likes.
func Liked(c *bili.Client) Source {
	return &msgfeedSource{
		client:  c,
		name:    "liked",
		cat:     notify.CategoryLiked,
		nested:  true,
		seedURL: c.LikedSeedURL,
		pageURL: c.LikedPageURL,
		timeOf:  func(it msgfeedItem) *uint64 { return it.LikeTime },
	}
}

// Mentioned is the feed of notifications for mentions (ats).
func Mentioned(c *bili.Client) Source {
	return &msgfeedSource{
		client:  c,
		name:    "mentioned",
		cat:     notify.CategoryMentioned,
		seedURL: c.MentionedSeedURL,
		pageURL: c.MentionedPageURL,
		timeOf:  func(it msgfeedItem) *uint64 { return it.AtTime },
	}
}

// Replied is the feed of notifications for received replies.
func Replied(c *bili.Client) Source {
	return &msgfeedSource{
		client:  c,
		name:    "replied",
		cat:     notify.CategoryReplied,
		seedURL: c.RepliedSeedURL,
		pageURL: c.RepliedPageURL,
		timeOf:  func(it msgfeedItem) *uint64 { return it.ReplyTime },
	}
}

func (s *msgfeedSource) Name() string { return s.name }

func (s *msgfeedSource) Seed(ctx context.Context) (*Page, notify.Protocol, error) {
	page, err := s.fetch(ctx, s.seedURL())
	return page, notify.ProtocolGeneric, err
}

func (s *msgfeedSource) Next(ctx context.Context, cur Cursor) (*Page, error) {
	return s.fetch(ctx, s.pageURL(cur.ID, cur.Last))
}

func (s *msgfeedSource) Record(it Item, _ notify.Protocol) *notify.Record {
	return notify.NewRecord(it.ID, s.cat, it.Content)
}

func (s *msgfeedSource) fetch(ctx context.Context, rawURL string) (*Page, error) {
	var payload msgfeedPayload
	if err := s.client.GetJSON(ctx, rawURL, &payload); err != nil {
		return nil, err
	}

	block := payload.Data.msgfeedBlock
	if s.nested {
		if payload.Data.Total == nil {
			return nil, fmt.Errorf("%w: missing data.total", bili.ErrUnexpectedShape)
		}
		block = *payload.Data.Total
	}
	return s.page(block)
}

func (s *msgfeedSource) page(b msgfeedBlock) (*Page, error) {
	if b.Items == nil || b.Cursor == nil || b.Cursor.ID == nil || b.Cursor.IsEnd == nil {
		return nil, fmt.Errorf("%w: missing items or cursor", bili.ErrUnexpectedShape)
	}

	raw := *b.Items
	page := &Page{
		Items:  make([]Item, 0, len(raw)),
		Cursor: Cursor{ID: *b.Cursor.ID, End: *b.Cursor.IsEnd},
	}
	for _, it := range raw {
		if it.ID == nil {
			return nil, fmt.Errorf("%w: item without id", bili.ErrUnexpectedShape)
		}
		content := it.Item.Title
		if content == "" {
			content = it.Item.SourceContent
		}
		page.Items = append(page.Items, Item{ID: *it.ID, Content: content})
	}

	// The last item's timestamp is echoed back on the next request.
	if len(raw) > 0 {
		t := s.timeOf(raw[len(raw)-1])
		if t == nil {
			return nil, fmt.Errorf("%w: item without continuation timestamp", bili.ErrUnexpectedShape)
		}
		page.Cursor.Last = *t
	}

	return page, nil
}

type sysItem struct {
	ID      *uint64 `json:"id"`
	Type    *uint64 `json:"type"`
	Cursor  *uint64 `json:"cursor"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
}

type sysSeedPayload struct {
	Data struct {
		// A nil list (absent, not empty) on the primary endpoint
		// triggers the fallback to the unified endpoint.
		SystemNotifyList *[]sysItem `json:"system_notify_list"`
	} `json:"data"`
}

type sysPagePayload struct {
	Data *[]sysItem `json:"data"`
}

// systemSource paginates system notifications. The seed step may fall
// back from the primary endpoint to the unified one; continuation
// always goes through the same notify-list endpoint and terminates on
// an empty page, since this feed has no end flag.
type systemSource struct {
	client *bili.Client
}

// System is the feed of system notifications.
func System(c *bili.Client) Source {
	return &systemSource{client: c}
}

func (s *systemSource) Name() string { return "system" }

func (s *systemSource) Seed(ctx context.Context) (*Page, notify.Protocol, error) {
	var payload sysSeedPayload
	if err := s.client.GetJSON(ctx, s.client.SystemSeedURL(), &payload); err != nil {
		return nil, notify.ProtocolSystemPrimary, err
	}

	proto := notify.ProtocolSystemPrimary
	list := payload.Data.SystemNotifyList
	if list == nil {
		// Fallback decided once, at the seed step: records fetched
		// through the unified endpoint must be deleted through the
		// secondary wire format.
		proto = notify.ProtocolSystemSecondary

		var fallback sysSeedPayload
		if err := s.client.GetJSON(ctx, s.client.SystemUnifiedSeedURL(), &fallback); err != nil {
			return nil, proto, err
		}
		list = fallback.Data.SystemNotifyList
		if list == nil {
			// Neither endpoint has notifications; the pager reports
			// the empty seed.
			return &Page{}, proto, nil
		}
	}

	page, err := s.page(*list)
	return page, proto, err
}

func (s *systemSource) Next(ctx context.Context, cur Cursor) (*Page, error) {
	var payload sysPagePayload
	if err := s.client.GetJSON(ctx, s.client.SystemPageURL(cur.Last), &payload); err != nil {
		return nil, err
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("%w: missing data array", bili.ErrUnexpectedShape)
	}
	return s.page(*payload.Data)
}

func (s *systemSource) Record(it Item, proto notify.Protocol) *notify.Record {
	return notify.NewSystemRecord(it.ID, it.TypeCode, proto, it.Content)
}

func (s *systemSource) page(items []sysItem) (*Page, error) {
	page := &Page{Items: make([]Item, 0, len(items))}
	for _, it := range items {
		if it.ID == nil || it.Type == nil {
			return nil, fmt.Errorf("%w: item without id or type", bili.ErrUnexpectedShape)
		}
		content := it.Title
		if content == "" {
			content = it.Content
		}
		page.Items = append(page.Items, Item{
			ID:       *it.ID,
			TypeCode: uint8(*it.Type),
			Content:  content,
		})
	}

	// Each item carries its own cursor; the last one drives the next page.
	if len(items) > 0 {
		last := items[len(items)-1]
		if last.Cursor == nil {
			return nil, fmt.Errorf("%w: item without cursor", bili.ErrUnexpectedShape)
		}
		page.Cursor.Last = *last.Cursor
	}

	return page, nil
}
