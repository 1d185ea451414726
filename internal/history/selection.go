/**
 * @description
 * Transaction history view state: a selection set over an externally
 * supplied, read-only transaction list, plus a local-only delete that hides
 * rows from this view without touching the underlying store.
 *
 * The local delete deliberately sends nothing to the backend; the hidden
 * rows reappear on the next session fetch. A confirmed deletion endpoint
 * would be needed before this could be made durable.
 */

package history

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/selewanto/dashboard/internal/domain"
)

// View maintains selection and local-delete state for one transaction list.
type View struct {
	source   []domain.Transaction
	selected map[uuid.UUID]bool
	deleted  map[uuid.UUID]bool
}

// NewView wraps the given transaction list. The list is not copied; the view
// never mutates it.
func NewView(transactions []domain.Transaction) *View {
	return &View{
		source:   transactions,
		selected: make(map[uuid.UUID]bool),
		deleted:  make(map[uuid.UUID]bool),
	}
}

// Visible returns the rows not hidden by a local delete, in source order.
func (v *View) Visible() []domain.Transaction {
	out := make([]domain.Transaction, 0, len(v.source))
	for _, tx := range v.source {
		if !v.deleted[tx.ID] {
			out = append(out, tx)
		}
	}
	return out
}

// Source returns the underlying list, untouched by any local delete.
func (v *View) Source() []domain.Transaction {
	return v.source
}

// IsSelected reports membership of id in the selection set.
func (v *View) IsSelected(id uuid.UUID) bool {
	return v.selected[id]
}

// SelectedCount returns the size of the selection set.
func (v *View) SelectedCount() int {
	return len(v.selected)
}

// Toggle flips membership of id in the selection set.
func (v *View) Toggle(id uuid.UUID) {
	if v.selected[id] {
		delete(v.selected, id)
	} else {
		v.selected[id] = true
	}
}

// AllSelected reports whether every visible row is selected and the list is
// non-empty.
func (v *View) AllSelected() bool {
	visible := v.Visible()
	return len(visible) > 0 && len(v.selected) == len(visible)
}

// ToggleSelectAll clears the selection when everything is already selected,
// otherwise selects every visible row. Calling it twice restores the
// original selection state.
func (v *View) ToggleSelectAll() {
	if v.AllSelected() {
		v.selected = make(map[uuid.UUID]bool)
		return
	}
	for _, tx := range v.Visible() {
		v.selected[tx.ID] = true
	}
}

// DeleteSelected hides the selected rows from this view and clears the
// selection. Local-only: no request is sent and the source list keeps its
// length.
func (v *View) DeleteSelected() {
	for id := range v.selected {
		v.deleted[id] = true
	}
	v.selected = make(map[uuid.UUID]bool)
}

// paymentSystems maps raw backend codes to their display names.
var paymentSystems = map[string]string{
	"trc20":  "TRC-20",
	"usdt":   "USDT",
	"usdt-d": "USDTD",
	"usdtd":  "USDTD",
	"eth":    "ETH",
	"btc":    "BTC",
	"eur":    "EUR",
	"usd":    "USD",
}

// NormalizePaymentSystem converts a raw payment-system code to its display
// form; unknown codes are upper-cased as-is.
func NormalizePaymentSystem(ps string) string {
	if display, ok := paymentSystems[strings.ToLower(ps)]; ok {
		return display
	}
	return strings.ToUpper(ps)
}

// HasStatusIcon reports whether the status belongs to the icon-backed set.
// Statuses outside it render as a plain text badge.
func HasStatusIcon(status domain.TransactionStatus) bool {
	return domain.KnownStatuses[status]
}

// FormatDate renders a transaction date as dd.mm.yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
