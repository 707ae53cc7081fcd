package feed

import "errors"

// ErrEmptyFeed is returned when a feed's seed page carries no items.
// A feed with nothing in it is common (no new likes, no mentions), but
// the aggregation contract treats it the same as any other failure;
// callers that want to relax that can test for this sentinel with
// errors.Is.
var ErrEmptyFeed = errors.New("feed: no notifications")
