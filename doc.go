// Package bilisweep fetches bilibili notifications across all four
// feeds and deletes them in bulk, throttled to stay under the service's
// rate limits.
//
// The root package is a thin facade over the building blocks:
//
//   - pkg/bili: credentialed HTTP client and endpoint builders
//   - pkg/feed: per-feed pagination and the concurrent aggregator
//   - pkg/notify: the shared notification collection
//   - pkg/sweep: deletion dispatch and the throttled worker
//
// A Session ties them together: Refresh pulls every feed and replaces
// the collection, callers mark records via the collection's selection
// API, and Sweep deletes the marked records one by one.
package bilisweep
