package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo
// Finance chart API. This type maps directly to the chart response
// format, containing nested structures for metadata, timestamps, and
// price indicators.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level chart payload: an array of results (typically
// one element) plus an optional error message from Yahoo.
type Chart struct {
	Result []Result `json:"result"`
	Error  *string  `json:"error"`
}

// Result holds the metadata, timestamps and indicator arrays for one
// symbol.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

// Meta holds symbol metadata (name, currency, exchange).
type Meta struct {
	Currency         string `json:"currency"`
	Symbol           string `json:"symbol"`
	ExchangeName     string `json:"exchangeName"`
	FullExchangeName string `json:"fullExchangeName"`
	LongName         string `json:"longName"`
	Shortname        string `json:"shortName"`
}

// IndicatorsContainer wraps the quote indicator arrays.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote holds the OHLCV arrays. Entries are pointers because Yahoo
// returns explicit nulls for days without data.
type Quote struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
}

// QuoteSummaryResponse represents the raw JSON response from the Yahoo
// v7 quote endpoint, used for the trailing-EPS fallback.
type QuoteSummaryResponse struct {
	QuoteResponse struct {
		Result []QuoteSummary `json:"result"`
		Error  *string        `json:"error"`
	} `json:"quoteResponse"`
}

// QuoteSummary holds the subset of quote fields the tracker consumes.
type QuoteSummary struct {
	Symbol                  string   `json:"symbol"`
	LongName                string   `json:"longName"`
	ShortName               string   `json:"shortName"`
	RegularMarketPrice      *float64 `json:"regularMarketPrice"`
	EpsTrailingTwelveMonths *float64 `json:"epsTrailingTwelveMonths"`
}

// PriceChart represents a parsed and structured price chart. This is
// the application's internal representation after parsing the raw
// Response; days without a close price are dropped during parsing.
type PriceChart struct {
	Currency         string       `json:"currency"`
	Symbol           string       `json:"symbol"`
	ExchangeName     string       `json:"exchangeName"`
	FullExchangeName string       `json:"fullExchangeName"`
	LongName         string       `json:"longName"`
	Shortname        string       `json:"shortName"`
	Indicators       []Indicators `json:"indicators"`
}

// Indicators represents a single day's price data for a symbol.
type Indicators struct {
	Date       time.Time
	PriceClose float64
	Volume     int64
}

// LatestClose returns the most recent observation in the chart.
// The second return value is false when the chart holds no usable days.
func (c PriceChart) LatestClose() (Indicators, bool) {
	if len(c.Indicators) == 0 {
		return Indicators{}, false
	}
	return c.Indicators[len(c.Indicators)-1], true
}

// DisplayName returns the provider's long-form display name, falling
// back to the short name and finally to the symbol itself.
func (c PriceChart) DisplayName() string {
	if c.LongName != "" {
		return c.LongName
	}
	if c.Shortname != "" {
		return c.Shortname
	}
	return c.Symbol
}
