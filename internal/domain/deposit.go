/**
 * @description
 * Static table of the deposit wallet addresses shown on the payment screen.
 * Each supported asset has one fixed receiving address; the dashboard only
 * displays and copies these, it never generates them.
 */

package domain

// DepositWallet is one fixed receiving address for an asset.
type DepositWallet struct {
	Label   string `json:"label"`
	Network string `json:"network"`
	Address string `json:"address"`
}

var depositWallets = []DepositWallet{
	{Label: "USDT", Network: "TRC20", Address: "TNt7b9Nm3BJmYdeVFkavpd6NEmTUs9NxYD"},
	{Label: "BTC", Network: "Bitcoin", Address: "bc1q7qz9s0v36v3yqq7ss2y5zk7jcz960wzfscrm9a"},
	{Label: "ETH", Network: "ERC20", Address: "0x195fe4951A047BE75E400c00b95d019D0565f012"},
	{Label: "DASH", Network: "Dash", Address: "Xx3KoZqSHkxxwBaUAJonE7RFXDbDvFp37v"},
}

// DepositWallets returns the deposit addresses in display order.
func DepositWallets() []DepositWallet {
	out := make([]DepositWallet, len(depositWallets))
	copy(out, depositWallets)
	return out
}

// DepositWalletByLabel looks up the deposit address for an asset label
// (e.g. "BTC").
func DepositWalletByLabel(label string) (DepositWallet, bool) {
	for _, w := range depositWallets {
		if w.Label == label {
			return w, true
		}
	}
	return DepositWallet{}, false
}

// DepositLimit is one display row of the payment screen's transfer
// information card.
type DepositLimit struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DepositLimits returns the fixed per-transaction limits.
func DepositLimits() []DepositLimit {
	return []DepositLimit{
		{Value: "1 000", Label: "Min. per transaction"},
		{Value: "3 000 000", Label: "Max. per transaction"},
		{Value: "Instantly", Label: "Transfer term"},
	}
}
