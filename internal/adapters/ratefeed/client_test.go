package ratefeed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/storefront_backoffice/internal/adapters/ratefeed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeed(t *testing.T, status int, body string) *ratefeed.APIClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return ratefeed.NewClient(srv.URL + "/v6/latest/")
}

func TestFetchRate(t *testing.T) {
	feed := newFeed(t, http.StatusOK, `{"result":"success","base_code":"USD","rates":{"USD":1,"PYG":7312.55,"EUR":0.92}}`)

	rate, err := feed.FetchRate(context.Background(), "USD", "PYG")

	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("7312.55")), "got %s", rate)
}

func TestFetchRate_MissingLocalQuote(t *testing.T) {
	feed := newFeed(t, http.StatusOK, `{"result":"success","base_code":"USD","rates":{"USD":1}}`)

	_, err := feed.FetchRate(context.Background(), "USD", "PYG")

	assert.ErrorContains(t, err, "no PYG quote")
}

func TestFetchRate_FeedError(t *testing.T) {
	feed := newFeed(t, http.StatusNotFound, `{"result":"error","error-type":"unsupported-code"}`)

	_, err := feed.FetchRate(context.Background(), "USD", "PYG")

	assert.ErrorContains(t, err, "unsupported-code")
}
