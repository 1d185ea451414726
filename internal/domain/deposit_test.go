package domain

import "testing"

func TestDepositWallets(t *testing.T) {
	wallets := DepositWallets()
	if len(wallets) != 4 {
		t.Fatalf("expected 4 deposit wallets, got %d", len(wallets))
	}
	for _, w := range wallets {
		if w.Address == "" || w.Network == "" {
			t.Errorf("wallet %q has empty fields: %+v", w.Label, w)
		}
	}
}

func TestDepositWalletByLabel(t *testing.T) {
	testCases := []struct {
		label       string
		wantNetwork string
		wantOK      bool
	}{
		{"USDT", "TRC20", true},
		{"BTC", "Bitcoin", true},
		{"ETH", "ERC20", true},
		{"DASH", "Dash", true},
		{"EUR", "", false},
		{"btc", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			w, ok := DepositWalletByLabel(tc.label)
			if ok != tc.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tc.wantOK)
			}
			if w.Network != tc.wantNetwork {
				t.Errorf("network: got %q, want %q", w.Network, tc.wantNetwork)
			}
		})
	}
}
