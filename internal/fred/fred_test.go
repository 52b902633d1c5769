package fred

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/errors"
)

func testKey() func() string {
	return func() string { return "demo" }
}

func TestLatestObservation(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the most recent value as a percent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/fred/series/observations", r.URL.Path)
			assert.Equal(t, "AAA", r.URL.Query().Get("series_id"))
			assert.Equal(t, "demo", r.URL.Query().Get("api_key"))
			assert.Equal(t, "desc", r.URL.Query().Get("sort_order"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))

			//nolint:errcheck // test server
			w.Write([]byte(`{"observations": [{"date": "2024-06-03", "value": "4.7"}]}`))
		}))
		defer server.Close()

		client := NewYieldClientWithBaseURL(server.URL, testKey())
		value, err := client.LatestObservation(ctx, "AAA")
		require.NoError(t, err)
		assert.InDelta(t, 4.7, value, 1e-9)
	})

	t.Run("missing observation value is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// FRED reports missing observations with a literal ".".
			//nolint:errcheck // test server
			w.Write([]byte(`{"observations": [{"date": "2024-06-03", "value": "."}]}`))
		}))
		defer server.Close()

		client := NewYieldClientWithBaseURL(server.URL, testKey())
		_, err := client.LatestObservation(ctx, "AAA")
		assert.ErrorContains(t, err, "non-numeric")
	})

	t.Run("no observations", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			//nolint:errcheck // test server
			w.Write([]byte(`{"observations": []}`))
		}))
		defer server.Close()

		client := NewYieldClientWithBaseURL(server.URL, testKey())
		_, err := client.LatestObservation(ctx, "AAA")
		assert.Error(t, err)
	})

	t.Run("missing api key", func(t *testing.T) {
		client := NewYieldClient(func() string { return "" })
		_, err := client.LatestObservation(ctx, "AAA")
		assert.ErrorIs(t, err, apperrors.ErrMissingAPIKey)
	})
}
