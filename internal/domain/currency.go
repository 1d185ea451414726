/**
 * @description
 * Static reference table of the currencies a transfer can be denominated in.
 * Entries are display metadata plus a USD conversion rate; nothing here is
 * mutated at runtime.
 */

package domain

import "github.com/shopspring/decimal"

// Currency describes one supported asset.
type Currency struct {
	Title          string
	Label          string // balance key, e.g. "trc20"
	Network        string // auto-filled into the transfer form
	Rate           decimal.Decimal
	ProcessingTime string
	Fee            string
}

// currencies is ordered as the selection cards are displayed.
var currencies = []Currency{
	{Title: "USDT", Label: "trc20", Network: "TRC20", Rate: decimal.NewFromInt(1), ProcessingTime: "10-30 minutes", Fee: "1 USDT"},
	{Title: "BTC", Label: "btc", Network: "BTC", Rate: decimal.NewFromInt(65000), ProcessingTime: "30-60 minutes", Fee: "0.0001 BTC"},
	{Title: "ETH", Label: "eth", Network: "ETH", Rate: decimal.NewFromInt(3500), ProcessingTime: "15-45 minutes", Fee: "0.002 ETH"},
	{Title: "USD", Label: "usd", Network: "SWIFT", Rate: decimal.NewFromInt(1), ProcessingTime: "1-3 business days", Fee: "25 USD"},
	{Title: "EUR", Label: "euro", Network: "SEPA", Rate: decimal.NewFromFloat(1.08), ProcessingTime: "1-2 business days", Fee: "20 EUR"},
	{Title: "DASH", Label: "dash", Network: "DASH", Rate: decimal.NewFromFloat(32.50), ProcessingTime: "5-15 minutes", Fee: "0.01 DASH"},
}

// Currencies returns the catalog in display order.
func Currencies() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// CurrencyByTitle looks up a catalog entry by its display title (e.g. "BTC").
func CurrencyByTitle(title string) (Currency, bool) {
	for _, c := range currencies {
		if c.Title == title {
			return c, true
		}
	}
	return Currency{}, false
}

// USDValue converts an amount of the currency to its USD equivalent,
// rounded to 2 decimal places.
func (c Currency) USDValue(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.Rate).Round(2)
}
