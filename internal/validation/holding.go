package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mvanderkolk/Portfolio-Tracker-Backend/internal/api/request"
)

// NewHolding is the validated, typed form of an add-holding request.
type NewHolding struct {
	Symbol         string
	Shares         int64
	PurchaseDate   time.Time
	PurchasePrice  float64
	AlertThreshold *float64
}

var sharesPattern = regexp.MustCompile(`^[0-9]+$`)

// ParseAddHolding validates raw add-holding input and converts it to
// typed values. Rules, applied at creation time only:
//   - symbol: non-empty, normalized to upper case
//   - shares: digits only, a non-negative integer
//   - purchaseDate: must parse as YYYY-MM-DD
//   - purchasePrice: a non-negative decimal
//   - alertThreshold: optional; non-numeric input is treated as absent
func ParseAddHolding(req request.AddHoldingRequest) (NewHolding, error) {
	errors := make(map[string]string)
	var parsed NewHolding

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		errors["symbol"] = "symbol is required"
	}
	parsed.Symbol = symbol

	shares := strings.TrimSpace(req.Shares)
	if !sharesPattern.MatchString(shares) {
		errors["shares"] = "shares must be a non-negative whole number"
	} else {
		value, err := strconv.ParseInt(shares, 10, 64)
		if err != nil {
			errors["shares"] = "shares must be a non-negative whole number"
		} else {
			parsed.Shares = value
		}
	}

	purchaseDate, err := time.Parse("2006-01-02", strings.TrimSpace(req.PurchaseDate))
	if err != nil {
		errors["purchaseDate"] = "purchase date must be in YYYY-MM-DD format"
	} else {
		parsed.PurchaseDate = purchaseDate.UTC()
	}

	purchasePrice, err := strconv.ParseFloat(strings.TrimSpace(req.PurchasePrice), 64)
	if err != nil {
		errors["purchasePrice"] = "purchase price must be a number"
	} else if purchasePrice < 0 {
		errors["purchasePrice"] = "purchase price cannot be negative"
	} else {
		parsed.PurchasePrice = purchasePrice
	}

	// Optional: a threshold that does not parse is treated as absent,
	// not rejected.
	if threshold := strings.TrimSpace(req.AlertThreshold); threshold != "" {
		if value, err := strconv.ParseFloat(threshold, 64); err == nil {
			parsed.AlertThreshold = &value
		}
	}

	if len(errors) > 0 {
		return NewHolding{}, &Error{Fields: errors}
	}
	return parsed, nil
}
