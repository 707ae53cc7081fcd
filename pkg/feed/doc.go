// Package feed walks the four notification feeds (liked, mentioned,
// replied, system) to exhaustion and aggregates them into one id-keyed
// record set.
//
// Every feed shares one pagination shape: seed the first page, extract
// items and a continuation cursor, loop until the server signals the
// end of the list. Source captures the pieces that differ per feed —
// response layout, cursor fields, end-of-list detection and, for the
// system feed, a one-time primary/secondary seed fallback that decides
// which deletion protocol its records carry.
//
// Fetch runs all four feeds concurrently with an all-or-nothing
// contract: if any feed fails (including an empty seed page, reported
// as ErrEmptyFeed), no partial result is returned.
package feed
