package request

// AddHoldingRequest carries the raw user input for adding a holding.
// Fields arrive as strings, exactly as the entry form supplies them;
// validation converts them to typed values.
type AddHoldingRequest struct {
	Symbol         string `json:"symbol"`
	Shares         string `json:"shares"`
	PurchaseDate   string `json:"purchaseDate"`
	PurchasePrice  string `json:"purchasePrice"`
	AlertThreshold string `json:"alertThreshold"`
}

// ProviderKeysRequest carries provider API keys to store encrypted.
// Empty fields are left unchanged.
type ProviderKeysRequest struct {
	AlphaVantageKey string `json:"alphaVantageKey"`
	FredKey         string `json:"fredKey"`
}
