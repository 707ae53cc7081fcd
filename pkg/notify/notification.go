package notify

// Category identifies which feed produced a notification. The numeric
// values of the first three are the wire `tp` codes the generic
// deletion endpoint expects.
type Category uint8

const (
	CategoryLiked     Category = 0
	CategoryReplied   Category = 1
	CategoryMentioned Category = 2
	CategorySystem    Category = 3
)

func (c Category) String() string {
	switch c {
	case CategoryLiked:
		return "liked"
	case CategoryReplied:
		return "replied"
	case CategoryMentioned:
		return "mentioned"
	case CategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Protocol tags a record with the wire format its deletion must use.
// System notifications come from one of two endpoints with differing
// deletion payloads; the tag is decided once, when the feed is seeded.
type Protocol uint8

const (
	// ProtocolGeneric deletes through the form-encoded msgfeed endpoint.
	ProtocolGeneric Protocol = iota
	// ProtocolSystemPrimary deletes through the sys-msg endpoint using
	// the `ids` array.
	ProtocolSystemPrimary
	// ProtocolSystemSecondary deletes through the sys-msg endpoint using
	// the `station_ids` array.
	ProtocolSystemSecondary
)

func (p Protocol) String() string {
	switch p {
	case ProtocolGeneric:
		return "generic"
	case ProtocolSystemPrimary:
		return "system-primary"
	case ProtocolSystemSecondary:
		return "system-secondary"
	default:
		return "unknown"
	}
}

// Record is one pending notification. ID is the merge key across feeds;
// Selected is mutated only by the caller between fetch and deletion.
type Record struct {
	ID       uint64
	Category Category

	// TypeCode is the wire `tp` value sent on deletion: the category
	// code for feed notifications, the server-supplied per-item type
	// for system notifications.
	TypeCode uint8

	Protocol Protocol

	// Content is display text for the caller's list rendering; it takes
	// no part in deletion.
	Content string

	Selected bool
}

// NewRecord creates a feed notification (liked, replied or mentioned).
func NewRecord(id uint64, cat Category, content string) *Record {
	return &Record{
		ID:       id,
		Category: cat,
		TypeCode: uint8(cat),
		Protocol: ProtocolGeneric,
		Content:  content,
	}
}

// NewSystemRecord creates a system notification carrying its own wire
// type code and the deletion protocol of the endpoint that produced it.
func NewSystemRecord(id uint64, typeCode uint8, proto Protocol, content string) *Record {
	return &Record{
		ID:       id,
		Category: CategorySystem,
		TypeCode: typeCode,
		Protocol: proto,
		Content:  content,
	}
}
