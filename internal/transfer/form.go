/**
 * @description
 * This file implements the transfer form controller: it collects the fields
 * of one outbound transfer request, validates them, and derives the network
 * and the USD-equivalent display value from the selected currency.
 *
 * Validation mirrors the dashboard's rules: every field except the memo is
 * required, the wallet address must be at least 10 characters, the amount
 * must parse to a finite number greater than zero, and the priority must be
 * one of the three enumerated speeds.
 */

package transfer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/selewanto/dashboard/internal/domain"
)

// Field names a form input, used as the key of field-level errors and as the
// focus target after a currency selection.
type Field string

const (
	FieldCurrency Field = "currency"
	FieldFullName Field = "fullName"
	FieldWallet   Field = "wallet"
	FieldNetwork  Field = "network"
	FieldAmount   Field = "amount"
	FieldMemo     Field = "memo"
	FieldPriority Field = "priority"
)

// FieldErrors maps a field to its validation message. Errors are field-level
// and never block validation of the other fields.
type FieldErrors map[Field]string

// Form holds the state of the transfer input form.
type Form struct {
	Request domain.TransferRequest
	focus   Field
}

// NewForm returns an empty form with the default priority preselected.
func NewForm() *Form {
	return &Form{Request: domain.TransferRequest{Priority: domain.PriorityStandard}}
}

// SelectCurrency picks a catalog currency: it sets the currency field,
// overwrites the network with the catalog entry's network string, and moves
// focus to the amount input. Unknown titles are ignored.
func (f *Form) SelectCurrency(title string) bool {
	c, ok := domain.CurrencyByTitle(title)
	if !ok {
		return false
	}
	f.Request.Currency = c.Title
	f.Request.Network = c.Network
	f.focus = FieldAmount
	return true
}

// Focus returns the field that should currently hold input focus.
func (f *Form) Focus() Field {
	return f.focus
}

// Reset clears every field back to its initial value, including the selected
// currency and the derived network.
func (f *Form) Reset() {
	f.Request = domain.TransferRequest{Priority: domain.PriorityStandard}
	f.focus = ""
}

// Validate checks all fields and returns the per-field error messages.
// An empty map means the form is submittable.
func (f *Form) Validate() FieldErrors {
	errs := FieldErrors{}
	req := f.Request

	if strings.TrimSpace(req.Currency) == "" {
		errs[FieldCurrency] = "Currency is required"
	}
	if strings.TrimSpace(req.FullName) == "" {
		errs[FieldFullName] = "Full name is required"
	}
	switch {
	case strings.TrimSpace(req.Wallet) == "":
		errs[FieldWallet] = "Wallet address is required"
	case len(req.Wallet) < 10:
		errs[FieldWallet] = "Enter a valid wallet address"
	}
	if strings.TrimSpace(req.Network) == "" {
		errs[FieldNetwork] = "Network is required"
	}
	if msg := validateAmount(req.Amount); msg != "" {
		errs[FieldAmount] = msg
	}
	if !domain.ValidPriority(req.Priority) {
		errs[FieldPriority] = "Invalid priority"
	}
	return errs
}

func validateAmount(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Amount is required"
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return "Amount must be a valid number"
	}
	if v <= 0 {
		return "Amount must be greater than 0"
	}
	return ""
}

// USDValue returns the amount converted at the selected currency's rate,
// rounded to 2 decimal places. Zero when no currency is selected or the
// amount does not parse.
func (f *Form) USDValue() decimal.Decimal {
	c, ok := domain.CurrencyByTitle(f.Request.Currency)
	if !ok {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(f.Request.Amount))
	if err != nil {
		return decimal.Zero
	}
	return c.USDValue(amount)
}

// ComposeMail renders the request into the mail payload sent to the backend.
// The message is the freeform multi-line summary the support desk receives.
func (f *Form) ComposeMail(email string, accountID int64) domain.MailRequest {
	req := f.Request

	var b strings.Builder
	fmt.Fprintf(&b, "Currency: %s\n", req.Currency)
	fmt.Fprintf(&b, "Full Name: %s\n", req.FullName)
	fmt.Fprintf(&b, "Wallet: %s\n", req.Wallet)
	fmt.Fprintf(&b, "Network: %s\n", req.Network)
	fmt.Fprintf(&b, "Amount: %s\n", req.Amount)
	fmt.Fprintf(&b, "Priority: %s\n", req.Priority)
	if req.Memo != "" {
		fmt.Fprintf(&b, "Memo: %s\n", req.Memo)
	}
	fmt.Fprintf(&b, "USD Value: $%s", f.USDValue().StringFixed(2))

	return domain.MailRequest{
		Email:   email,
		Message: b.String(),
		UserID:  strconv.FormatInt(accountID, 10),
		Subject: "Transfer - " + req.Currency,
	}
}
