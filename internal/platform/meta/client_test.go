package meta

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/ad-launcher/internal/pkg/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		BaseURL:       server.URL,
		APIVersion:    "v21.0",
		AccessToken:   "tok_123",
		Timeout:       5 * time.Second,
		RatePerSecond: 1000,
		RateBurst:     1000,
	}, logger.Discard(), nil)
}

func TestGetSendsTokenAsQueryParam(t *testing.T) {
	var gotPath, gotToken, gotFields string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		gotFields = r.URL.Query().Get("fields")
		w.Write([]byte(`{"id":"act_1","account_status":1}`))
	})

	require.NoError(t, client.GetAdAccount(context.Background(), "act_1"))
	assert.Equal(t, "/v21.0/act_1", gotPath)
	assert.Equal(t, "tok_123", gotToken)
	assert.Equal(t, "id,account_status", gotFields)
}

func TestPostIsFormEncoded(t *testing.T) {
	var gotContentType, gotName, gotToken string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotName = r.PostForm.Get("name")
		gotToken = r.URL.Query().Get("access_token")
		w.Write([]byte(`{"id":"120001"}`))
	})

	fields := url.Values{}
	fields.Set("name", "Summer Push")
	id, err := client.CreateEntity(context.Background(), "act_1", "campaigns", fields)
	require.NoError(t, err)

	assert.Equal(t, "120001", id)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "Summer Push", gotName)
	assert.Equal(t, "tok_123", gotToken)
}

func TestErrorEnvelopeDecoded(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190,"error_subcode":463}}`))
	})

	_, err := client.CreateEntity(context.Background(), "act_1", "campaigns", url.Values{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 190, apiErr.Code)
	assert.Equal(t, 463, apiErr.Subcode)
	assert.Contains(t, apiErr.Message, "Invalid OAuth access token")
}

func TestCreateEntityMissingID(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	_, err := client.CreateEntity(context.Background(), "act_1", "adsets", url.Values{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no id")
}

func TestBatchUnpacksSubResponses(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/v21.0", r.URL.Path)

		var reqs []BatchRequest
		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("batch")), &reqs))
		require.Len(t, reqs, 2)
		assert.Equal(t, http.MethodGet, reqs[0].Method)

		// one healthy sub-response, one failed: the failure is logged,
		// never raised
		w.Write([]byte(`[
			{"code":200,"body":"{\"data\":[]}"},
			{"code":400,"body":"{\"error\":{\"message\":\"nope\"}}"}
		]`))
	})

	subs, err := client.Batch(context.Background(), []BatchRequest{
		{Method: http.MethodGet, RelativeURL: "120001/insights"},
		{Method: http.MethodGet, RelativeURL: "120002/insights"},
	})
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, 200, subs[0].Code)
	assert.Equal(t, 400, subs[1].Code)
}

func TestBatchEmpty(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty batch")
	})
	subs, err := client.Batch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, subs)
}

func TestBatchInsights(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"code":200,"body":"{\"data\":[{\"impressions\":\"1000\",\"clicks\":\"50\",\"spend\":\"12.34\",\"date_start\":\"2026-08-01\",\"date_stop\":\"2026-08-31\",\"actions\":[{\"action_type\":\"lead\",\"value\":\"3\"}]}]}"},
			{"code":400,"body":"{\"error\":{\"message\":\"unknown entity\"}}"}
		]`))
	})

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	byEntity, err := client.BatchInsights(context.Background(), []string{"120001", "120002"}, from, to)
	require.NoError(t, err)

	require.Contains(t, byEntity, "120001")
	assert.NotContains(t, byEntity, "120002")
	rows := byEntity["120001"]
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1000), rows[0].Impressions)
	assert.Equal(t, int64(3), rows[0].Conversions)
	assert.Equal(t, "120001", rows[0].EntityID)
}

func TestGetInsightsParsesRows(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("time_range"), `"since":"2026-08-01"`)
		w.Write([]byte(`{"data":[{"impressions":"200","clicks":"10","spend":"5.50","ctr":"5.0","cpc":"0.55","date_start":"2026-08-01","date_stop":"2026-08-31","actions":[{"action_type":"offsite_conversion","value":"2"},{"action_type":"link_click","value":"9"}]}]}`))
	})

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	rows, err := client.GetInsights(context.Background(), "120001", from, to)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(200), rows[0].Impressions)
	assert.Equal(t, 5.50, rows[0].Spend)
	// only conversion-type actions count
	assert.Equal(t, int64(2), rows[0].Conversions)
}

func TestUploadImageMultipart(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		_, header, err := r.FormFile("filename")
		require.NoError(t, err)
		assert.Equal(t, "creative.jpg", header.Filename)
		w.Write([]byte(`{"images":{"creative.jpg":{"hash":"abc123","url":"https://cdn/x.jpg"}}}`))
	})

	upload, err := client.UploadImage(context.Background(), "act_1", "creative.jpg", []byte{0xFF, 0xD8})
	require.NoError(t, err)
	assert.Equal(t, "abc123", upload.Hash)
}
