/**
 * @description
 * Transfer submission types: the priority enum, the staged form payload and
 * the mail body the dashboard POSTs when a transfer is submitted.
 */

package domain

// Priority selects the requested transfer speed.
type Priority string

const (
	PriorityStandard Priority = "standard"
	PriorityExpress  Priority = "express"
	PriorityInstant  Priority = "instant"
)

// ValidPriority reports whether p is one of the three accepted values.
func ValidPriority(p Priority) bool {
	return p == PriorityStandard || p == PriorityExpress || p == PriorityInstant
}

// TransferRequest is the staged payload of one outbound transfer submission.
// It exists only for the duration of a single submission; the network field
// is always derived from the selected currency, never edited independently.
type TransferRequest struct {
	Currency string
	FullName string
	Wallet   string
	Network  string
	Amount   string
	Memo     string
	Priority Priority
}

// MailRequest is the body POSTed to /send-mail when a transfer is submitted.
type MailRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Subject string `json:"subject"`
}
