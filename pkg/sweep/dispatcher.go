package sweep

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bilisweep/bilisweep/pkg/bili"
	"github.com/bilisweep/bilisweep/pkg/notify"
)

// The sys-msg deletion endpoint only accepts the mobile client's
// build/app identification.
const (
	systemDeleteBuild = 8140300
	systemDeleteApp   = "android"
)

// systemDeletePayload is the JSON body of a system deletion. Exactly
// one of IDs and StationIDs carries the target; the other must be
// present and empty, not null.
type systemDeletePayload struct {
	CSRF       string   `json:"csrf"`
	IDs        []uint64 `json:"ids"`
	StationIDs []uint64 `json:"station_ids"`
	Type       uint8    `json:"type"`
	Build      int      `json:"build"`
	MobiApp    string   `json:"mobi_app"`
}

// Delete removes one notification through the wire protocol selected
// by the record's protocol tag. Any transport failure, non-zero
// response code or unparseable body is returned as an error carrying
// the raw response for diagnostics.
func Delete(ctx context.Context, client *bili.Client, rec notify.Record) error {
	switch rec.Protocol {
	case notify.ProtocolGeneric:
		form := url.Values{
			"tp":         {strconv.FormatUint(uint64(rec.TypeCode), 10)},
			"id":         {strconv.FormatUint(rec.ID, 10)},
			"build":      {"0"},
			"mobi_app":   {"web"},
			"csrf_token": {client.CSRF()},
			"csrf":       {client.CSRF()},
		}
		return client.PostForm(ctx, client.FeedDeleteURL(), form)

	case notify.ProtocolSystemPrimary:
		return client.PostJSON(ctx, client.SystemDeleteURL(), systemDeletePayload{
			CSRF:       client.CSRF(),
			IDs:        []uint64{rec.ID},
			StationIDs: []uint64{},
			Type:       rec.TypeCode,
			Build:      systemDeleteBuild,
			MobiApp:    systemDeleteApp,
		})

	case notify.ProtocolSystemSecondary:
		return client.PostJSON(ctx, client.SystemDeleteURL(), systemDeletePayload{
			CSRF:       client.CSRF(),
			IDs:        []uint64{},
			StationIDs: []uint64{rec.ID},
			Type:       rec.TypeCode,
			Build:      systemDeleteBuild,
			MobiApp:    systemDeleteApp,
		})

	default:
		return fmt.Errorf("%w: %d", ErrUnknownProtocol, rec.Protocol)
	}
}
