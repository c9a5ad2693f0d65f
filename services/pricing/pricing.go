package pricing

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"tadreeb/models"
)

const (
	CurrencyAED = "AED"
	CurrencyUSD = "USD"
)

// ErrNoPricing is the terminal state of an item offered in neither
// currency; the wizard must refuse to move past the payment step on it.
var ErrNoPricing = errors.New("no pricing available")

// Offers says which currencies an item can actually be bought in.
type Offers struct {
	HasAED bool `json:"hasAed"`
	HasUSD bool `json:"hasUsd"`
}

// ResolveOffers inspects an item's raw price fields. A currency is offered
// iff its field parses as a finite number greater than zero; absent, zero,
// negative or non-numeric values all mean "not offered".
func ResolveOffers(item models.BookableItem) Offers {
	return Offers{
		HasAED: offered(item.PriceAED),
		HasUSD: offered(item.PriceUSD),
	}
}

// PickDefaultCurrency returns the auto-selected currency for the offer
// set. When both currencies are offered it returns "": price ambiguity is
// never silently resolved, the user must choose explicitly. When neither
// is offered it also returns "" and the caller must treat ErrNoPricing.
func PickDefaultCurrency(o Offers) string {
	switch {
	case o.HasAED && !o.HasUSD:
		return CurrencyAED
	case o.HasUSD && !o.HasAED:
		return CurrencyUSD
	}
	return ""
}

// Amount returns the item's price in the given currency, 0 when absent.
func Amount(item models.BookableItem, currency string) float64 {
	var raw any
	switch currency {
	case CurrencyAED:
		raw = item.PriceAED
	case CurrencyUSD:
		raw = item.PriceUSD
	default:
		return 0
	}
	v, ok := numericValue(raw)
	if !ok {
		return 0
	}
	return v
}

func offered(raw any) bool {
	v, ok := numericValue(raw)
	return ok && v > 0
}

// numericValue tolerates the shapes price fields have historically arrived
// in: JSON numbers, numeric strings, and json.Number.
func numericValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
