package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestParseChart(t *testing.T) {
	client := NewFinanceClient()

	chartResponse := func(timestamps []int64, closes []*float64) Response {
		return Response{
			Chart: Chart{
				Result: []Result{
					{
						Meta:      Meta{Symbol: "AAA", Currency: "USD", LongName: "Alpha Corp"},
						Timestamp: timestamps,
						Indicators: IndicatorsContainer{
							Quote: []Quote{{Close: closes}},
						},
					},
				},
			},
		}
	}

	t.Run("parses closes in order", func(t *testing.T) {
		base := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		resp := chartResponse(
			[]int64{base.Unix(), base.AddDate(0, 0, 1).Unix(), base.AddDate(0, 0, 2).Unix()},
			[]*float64{floatPtr(58), floatPtr(59), floatPtr(60)},
		)

		chart, err := client.ParseChart(resp)
		require.NoError(t, err)
		assert.Equal(t, "AAA", chart.Symbol)
		require.Len(t, chart.Indicators, 3)

		latest, ok := chart.LatestClose()
		require.True(t, ok)
		assert.InDelta(t, 60.0, latest.PriceClose, 1e-9)
	})

	t.Run("drops null closes", func(t *testing.T) {
		base := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		resp := chartResponse(
			[]int64{base.Unix(), base.AddDate(0, 0, 1).Unix(), base.AddDate(0, 0, 2).Unix()},
			[]*float64{floatPtr(58), nil, floatPtr(60)},
		)

		chart, err := client.ParseChart(resp)
		require.NoError(t, err)
		assert.Len(t, chart.Indicators, 2)
	})

	t.Run("no timestamps", func(t *testing.T) {
		resp := chartResponse([]int64{}, []*float64{})
		resp.Chart.Result[0].Indicators.Quote = []Quote{}

		_, err := client.ParseChart(resp)
		assert.Error(t, err)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		base := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		resp := chartResponse(
			[]int64{base.Unix(), base.AddDate(0, 0, 1).Unix()},
			[]*float64{floatPtr(58)},
		)

		_, err := client.ParseChart(resp)
		assert.Error(t, err)
	})
}

func TestPriceChartDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		chart PriceChart
		want  string
	}{
		{"long name preferred", PriceChart{Symbol: "AAA", LongName: "Alpha Corporation", Shortname: "Alpha"}, "Alpha Corporation"},
		{"short name fallback", PriceChart{Symbol: "AAA", Shortname: "Alpha"}, "Alpha"},
		{"symbol fallback", PriceChart{Symbol: "AAA"}, "AAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chart.DisplayName())
		})
	}
}

func TestQueryChartRange(t *testing.T) {
	t.Run("fetches and decodes a chart", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAA"))
			assert.Equal(t, "1mo", r.URL.Query().Get("range"))

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test server
			w.Write([]byte(`{
				"chart": {
					"result": [{
						"meta": {"symbol": "AAA", "currency": "USD", "longName": "Alpha Corp"},
						"timestamp": [1717200000, 1717286400],
						"indicators": {"quote": [{"close": [59.0, 60.0], "volume": [1000, 1100]}]}
					}],
					"error": null
				}
			}`))
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		resp, err := client.QueryChartRange(context.Background(), "AAA", "1mo")
		require.NoError(t, err)

		chart, err := client.ParseChart(resp)
		require.NoError(t, err)
		latest, ok := chart.LatestClose()
		require.True(t, ok)
		assert.InDelta(t, 60.0, latest.PriceClose, 1e-9)
	})

	t.Run("yahoo error payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test server
			w.Write([]byte(`{"chart": {"result": [{}], "error": "No data found, symbol may be delisted"}}`))
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		_, err := client.QueryChartRange(context.Background(), "DLST", "1mo")
		assert.ErrorContains(t, err, "delisted")
	})

	t.Run("empty result set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test server
			w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
		}))
		defer server.Close()

		client := NewFinanceClientWithBaseURL(server.URL)
		_, err := client.QueryChartRange(context.Background(), "AAA", "1mo")
		assert.Error(t, err)
	})
}

func TestQueryQuoteSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.Equal(t, "AAA", r.URL.Query().Get("symbols"))

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck // test server
		w.Write([]byte(`{
			"quoteResponse": {
				"result": [{"symbol": "AAA", "longName": "Alpha Corp", "epsTrailingTwelveMonths": 5.25}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	client := NewFinanceClientWithBaseURL(server.URL)
	summary, err := client.QueryQuoteSummary(context.Background(), "AAA")
	require.NoError(t, err)
	require.NotNil(t, summary.EpsTrailingTwelveMonths)
	assert.InDelta(t, 5.25, *summary.EpsTrailingTwelveMonths, 1e-9)
}
