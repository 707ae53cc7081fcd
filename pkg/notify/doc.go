// Package notify holds the notification domain model: the Record
// entity, its category and deletion-protocol tags, and the shared
// Collection that aggregation fills, the caller's UI toggles, and the
// deletion worker drains.
//
// Collection mutations are individually atomic and never span I/O, so
// concurrent fetches and deletions are never serialized behind the
// collection lock.
package notify
