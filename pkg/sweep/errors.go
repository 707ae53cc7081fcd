package sweep

import "errors"

// ErrUnknownProtocol is returned when a record carries a protocol tag
// the dispatcher has no wire format for.
var ErrUnknownProtocol = errors.New("sweep: unknown deletion protocol")
