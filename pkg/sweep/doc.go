// Package sweep deletes selected notifications against the two
// deletion wire protocols.
//
// Delete dispatches a single record to the endpoint its protocol tag
// demands: liked/replied/mentioned records go through the form-encoded
// msgfeed endpoint, system records through the JSON sys-msg endpoint
// with either the `ids` or the `station_ids` array.
//
// Worker drains the selected subset of a collection strictly
// sequentially, waiting a configurable delay between successive calls
// to respect the service's rate limits. Cancellation is cooperative
// and checked between iterations only; a call already in flight is
// allowed to finish and its outcome is still reported, since a
// half-sent delete may or may not have taken effect server-side.
// Progress is reported as a stream of Events ending in exactly one
// terminal EventDone.
package sweep
