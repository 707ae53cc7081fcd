package bili

import (
	"net/url"
	"strconv"
)

// Feed and deletion endpoint builders. Paths and constant query values
// mirror what the web and mobile clients send; the message APIs reject
// requests without them.

const (
	likeFeedPath      = "/x/msgfeed/like"
	atFeedPath        = "/x/msgfeed/at"
	replyFeedPath     = "/x/msgfeed/reply"
	feedDeletePath    = "/x/msgfeed/del"
	systemSeedPath    = "/x/sys-msg/query_user_notify"
	systemUnifiedPath = "/x/sys-msg/query_unified_notify"
	systemPagePath    = "/x/sys-msg/query_notify_list"
	systemDeletePath  = "/x/sys-msg/del_notify_list"
)

func (c *Client) feedURL(path string, platform bool, extra url.Values) string {
	q := url.Values{}
	if platform {
		q.Set("platform", "web")
	}
	q.Set("build", "0")
	q.Set("mobi_app", "web")
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return c.api + path + "?" + q.Encode()
}

func (c *Client) systemURL(path string, extra url.Values) string {
	q := url.Values{}
	// The web client sends csrf twice; the API expects both occurrences.
	q.Set("csrf", c.csrf)
	q.Add("csrf", c.csrf)
	q.Set("build", "0")
	q.Set("mobi_app", "web")
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return c.message + path + "?" + q.Encode()
}

// LikedSeedURL is the first page of the liked feed.
func (c *Client) LikedSeedURL() string {
	return c.feedURL(likeFeedPath, true, nil)
}

// LikedPageURL continues the liked feed from the given cursor id and
// the last item's like_time.
func (c *Client) LikedPageURL(id, likeTime uint64) string {
	return c.feedURL(likeFeedPath, true, url.Values{
		"id":        {strconv.FormatUint(id, 10)},
		"like_time": {strconv.FormatUint(likeTime, 10)},
	})
}

// MentionedSeedURL is the first page of the at feed.
func (c *Client) MentionedSeedURL() string {
	return c.feedURL(atFeedPath, false, nil)
}

// MentionedPageURL continues the at feed.
func (c *Client) MentionedPageURL(id, atTime uint64) string {
	return c.feedURL(atFeedPath, false, url.Values{
		"id":      {strconv.FormatUint(id, 10)},
		"at_time": {strconv.FormatUint(atTime, 10)},
	})
}

// RepliedSeedURL is the first page of the reply feed.
func (c *Client) RepliedSeedURL() string {
	return c.feedURL(replyFeedPath, true, nil)
}

// RepliedPageURL continues the reply feed.
func (c *Client) RepliedPageURL(id, replyTime uint64) string {
	return c.feedURL(replyFeedPath, true, url.Values{
		"id":         {strconv.FormatUint(id, 10)},
		"reply_time": {strconv.FormatUint(replyTime, 10)},
	})
}

// SystemSeedURL is the primary seed endpoint for the system feed.
func (c *Client) SystemSeedURL() string {
	return c.systemURL(systemSeedPath, url.Values{"page_size": {"20"}})
}

// SystemUnifiedSeedURL is the fallback seed endpoint, used when the
// primary seed response carries no notification list at all.
func (c *Client) SystemUnifiedSeedURL() string {
	return c.systemURL(systemUnifiedPath, url.Values{"page_size": {"10"}})
}

// SystemPageURL continues the system feed from a server-issued cursor.
// Both seed endpoints continue through this single endpoint.
func (c *Client) SystemPageURL(cursor uint64) string {
	return c.systemURL(systemPagePath, url.Values{
		"data_type": {"1"},
		"cursor":    {strconv.FormatUint(cursor, 10)},
	})
}

// FeedDeleteURL is the form-encoded deletion endpoint for liked,
// replied and mentioned notifications.
func (c *Client) FeedDeleteURL() string {
	return c.api + feedDeletePath
}

// SystemDeleteURL is the JSON deletion endpoint for system
// notifications. The mobile build/app pair is required here.
func (c *Client) SystemDeleteURL() string {
	q := url.Values{}
	q.Set("build", "8140300")
	q.Set("mobi_app", "android")
	q.Set("csrf", c.csrf)
	return c.message + systemDeletePath + "?" + q.Encode()
}
