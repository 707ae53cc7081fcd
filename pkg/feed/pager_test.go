package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilisweep/bilisweep/pkg/notify"
)

// scriptedSource replays a fixed sequence of pages.
type scriptedSource struct {
	pages     []*Page
	proto     notify.Protocol
	seedErr   error
	nextErr   error
	seedCalls int
	nextCalls int
	cursors   []Cursor
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Seed(context.Context) (*Page, notify.Protocol, error) {
	s.seedCalls++
	if s.seedErr != nil {
		return nil, s.proto, s.seedErr
	}
	return s.pages[0], s.proto, nil
}

func (s *scriptedSource) Next(_ context.Context, cur Cursor) (*Page, error) {
	s.nextCalls++
	s.cursors = append(s.cursors, cur)
	if s.nextErr != nil {
		return nil, s.nextErr
	}
	return s.pages[s.nextCalls], nil
}

func (s *scriptedSource) Record(it Item, proto notify.Protocol) *notify.Record {
	return notify.NewSystemRecord(it.ID, it.TypeCode, proto, it.Content)
}

func items(ids ...uint64) []Item {
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, Item{ID: id})
	}
	return out
}

func TestPaginate_MultiPage(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		pages: []*Page{
			{Items: items(1, 2, 3), Cursor: Cursor{ID: 3, Last: 300, End: false}},
			{Items: items(4, 5), Cursor: Cursor{ID: 5, Last: 500, End: true}},
		},
	}

	records, err := Paginate(context.Background(), src)
	require.NoError(t, err)

	assert.Len(t, records, 5)
	for id := uint64(1); id <= 5; id++ {
		assert.Contains(t, records, id)
	}

	// Exactly two fetch calls: the seed plus one continuation.
	assert.Equal(t, 1, src.seedCalls)
	assert.Equal(t, 1, src.nextCalls)
	require.Len(t, src.cursors, 1)
	assert.Equal(t, Cursor{ID: 3, Last: 300}, src.cursors[0])
}

func TestPaginate_EmptySeedIsError(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{pages: []*Page{{}}}

	records, err := Paginate(context.Background(), src)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, ErrEmptyFeed)
	assert.Contains(t, err.Error(), "scripted feed")
	assert.Zero(t, src.nextCalls)
}

func TestPaginate_EmptyContinuationPageTerminates(t *testing.T) {
	t.Parallel()

	// No end flag anywhere; the empty page is the termination signal.
	src := &scriptedSource{
		pages: []*Page{
			{Items: items(10, 11), Cursor: Cursor{Last: 7}},
			{},
		},
	}

	records, err := Paginate(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 1, src.nextCalls)
}

func TestPaginate_SeedErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &scriptedSource{seedErr: boom}

	_, err := Paginate(context.Background(), src)
	assert.ErrorIs(t, err, boom)
}

func TestPaginate_NextErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := &scriptedSource{
		pages:   []*Page{{Items: items(1), Cursor: Cursor{Last: 1}}},
		nextErr: boom,
	}

	_, err := Paginate(context.Background(), src)
	assert.ErrorIs(t, err, boom)
}

func TestPaginate_ProtocolReachesRecords(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		pages: []*Page{{Items: items(1, 2), Cursor: Cursor{End: true}}},
		proto: notify.ProtocolSystemSecondary,
	}

	records, err := Paginate(context.Background(), src)
	require.NoError(t, err)
	for _, rec := range records {
		assert.Equal(t, notify.ProtocolSystemSecondary, rec.Protocol)
	}
}

func TestPaginate_DuplicateIDsLastWins(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{
		pages: []*Page{
			{Items: []Item{{ID: 1, Content: "first"}}, Cursor: Cursor{Last: 1}},
			{Items: []Item{{ID: 1, Content: "second"}}, Cursor: Cursor{Last: 2, End: true}},
		},
	}

	records, err := Paginate(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[1].Content)
}
