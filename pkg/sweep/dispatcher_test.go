package sweep_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilisweep/bilisweep/pkg/bili"
	"github.com/bilisweep/bilisweep/pkg/notify"
	"github.com/bilisweep/bilisweep/pkg/sweep"
)

func deleteClient(serverURL string) *bili.Client {
	return bili.New(bili.Config{
		APIBaseURL:     serverURL,
		MessageBaseURL: serverURL,
	}, "csrf-token")
}

type systemBody struct {
	CSRF       string   `json:"csrf"`
	IDs        []uint64 `json:"ids"`
	StationIDs []uint64 `json:"station_ids"`
	Type       uint8    `json:"type"`
	Build      int      `json:"build"`
	MobiApp    string   `json:"mobi_app"`
}

func TestDelete_GenericUsesFormEndpoint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/x/msgfeed/del", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "2", r.PostForm.Get("tp"))
		assert.Equal(t, "77", r.PostForm.Get("id"))
		assert.Equal(t, "0", r.PostForm.Get("build"))
		assert.Equal(t, "web", r.PostForm.Get("mobi_app"))
		assert.Equal(t, "csrf-token", r.PostForm.Get("csrf"))
		assert.Equal(t, "csrf-token", r.PostForm.Get("csrf_token"))

		w.Write([]byte(`{"code":0}`))
	}))
	defer server.Close()

	rec := notify.NewRecord(77, notify.CategoryMentioned, "")
	err := sweep.Delete(context.Background(), deleteClient(server.URL), *rec)
	assert.NoError(t, err)
}

func TestDelete_SystemPrimaryUsesIDsArray(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/x/sys-msg/del_notify_list", r.URL.Path)
		assert.Equal(t, "8140300", r.URL.Query().Get("build"))
		assert.Equal(t, "android", r.URL.Query().Get("mobi_app"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var body systemBody
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, []uint64{88}, body.IDs)
		assert.NotNil(t, body.StationIDs)
		assert.Empty(t, body.StationIDs)
		assert.Equal(t, uint8(4), body.Type)
		assert.Equal(t, 8140300, body.Build)
		assert.Equal(t, "android", body.MobiApp)
		assert.Equal(t, "csrf-token", body.CSRF)

		// The payload must carry empty arrays, never nulls.
		assert.Contains(t, string(raw), `"station_ids":[]`)

		w.Write([]byte(`{"code":0}`))
	}))
	defer server.Close()

	rec := notify.NewSystemRecord(88, 4, notify.ProtocolSystemPrimary, "")
	err := sweep.Delete(context.Background(), deleteClient(server.URL), *rec)
	assert.NoError(t, err)
}

func TestDelete_SystemSecondaryUsesStationIDsArray(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var body systemBody
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, []uint64{99}, body.StationIDs)
		assert.NotNil(t, body.IDs)
		assert.Empty(t, body.IDs)
		assert.Contains(t, string(raw), `"ids":[]`)

		w.Write([]byte(`{"code":0}`))
	}))
	defer server.Close()

	rec := notify.NewSystemRecord(99, 1, notify.ProtocolSystemSecondary, "")
	err := sweep.Delete(context.Background(), deleteClient(server.URL), *rec)
	assert.NoError(t, err)
}

func TestDelete_NonZeroCodeCarriesBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":21002,"message":"rate limited"}`))
	}))
	defer server.Close()

	rec := notify.NewRecord(1, notify.CategoryLiked, "")
	err := sweep.Delete(context.Background(), deleteClient(server.URL), *rec)

	var apiErr *bili.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, int64(21002), apiErr.Code)
	assert.Contains(t, string(apiErr.Body), "rate limited")
}

func TestDelete_UnknownProtocol(t *testing.T) {
	t.Parallel()

	rec := notify.Record{ID: 1, Protocol: notify.Protocol(42)}
	err := sweep.Delete(context.Background(), deleteClient("http://unused.invalid"), rec)
	assert.ErrorIs(t, err, sweep.ErrUnknownProtocol)
}
