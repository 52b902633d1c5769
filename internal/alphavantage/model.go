package alphavantage

import "time"

// overviewResponse maps the raw OVERVIEW payload. Alpha Vantage encodes
// every numeric field as a string and uses "None" for missing values.
type overviewResponse struct {
	Symbol       string `json:"Symbol"`
	Name         string `json:"Name"`
	EPS          string `json:"EPS"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// earningsResponse maps the raw EARNINGS payload.
type earningsResponse struct {
	Symbol         string `json:"symbol"`
	AnnualEarnings []struct {
		FiscalDateEnding string `json:"fiscalDateEnding"`
		ReportedEPS      string `json:"reportedEPS"`
	} `json:"annualEarnings"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// Overview is the parsed company overview. EPS is nil when the field is
// absent or not numeric; that is a normal condition, not an error.
type Overview struct {
	Symbol string
	Name   string
	EPS    *float64
}

// AnnualEPS is one fiscal year's reported earnings per share.
type AnnualEPS struct {
	FiscalYearEnd time.Time
	EPS           float64
}
