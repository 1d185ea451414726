/**
 * @description
 * This file defines the core domain models for the dashboard service: the user
 * record with its embedded balance map and transaction history, plus the role
 * and transaction-status enumerations.
 *
 * @notes
 * - A user's transactions are stored and edited as one document (the admin
 *   panel rewrites the whole array), so Transaction carries no foreign keys.
 * - Transaction.Status has two overlapping enumerations in the wild: the
 *   narrow badge set (success/pending/error) and the richer icon set
 *   (completed/pending/failed/insurance/declaration/tax). Both are kept; see
 *   KnownStatuses and the history view's fallback rendering.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role governs which admin affordances a user sees.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "SuperAdmin"
)

// IsAdmin reports whether the role grants access to the admin panel.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Balance maps a currency code to the held amount.
// Keys: trc20, btc, eth, usd, eur, usdtd.
type Balance map[string]float64

// TransactionStatus is the rich status set rendered with icons.
type TransactionStatus string

const (
	StatusCompleted   TransactionStatus = "completed"
	StatusPending     TransactionStatus = "pending"
	StatusFailed      TransactionStatus = "failed"
	StatusInsurance   TransactionStatus = "insurance"
	StatusDeclaration TransactionStatus = "declaration"
	StatusTax         TransactionStatus = "tax"

	// Legacy badge statuses. Older records still carry these; they render as
	// colored text badges instead of icons.
	StatusSuccess TransactionStatus = "success"
	StatusError   TransactionStatus = "error"
)

// KnownStatuses is the icon-backed set. Statuses outside it fall back to the
// legacy badge rendering.
var KnownStatuses = map[TransactionStatus]bool{
	StatusCompleted:   true,
	StatusPending:     true,
	StatusFailed:      true,
	StatusInsurance:   true,
	StatusDeclaration: true,
	StatusTax:         true,
}

// Transaction is one row of a user's history. Records are written by admins
// and by backend jobs only; the dashboard never mutates them.
type Transaction struct {
	ID            uuid.UUID         `json:"_id"`
	Date          time.Time         `json:"date"`
	Sum           float64           `json:"sum"`
	Country       string            `json:"country,omitempty"`
	PaymentSystem string            `json:"ps"`
	TransactionID string            `json:"transaction_id"`
	Status        TransactionStatus `json:"status"`
}

// User is the central record exposed over /users/me and managed by the admin
// panel. Replaced wholesale on every session fetch.
type User struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	LastName     string        `json:"lastName"`
	AccountID    int64         `json:"account_id"`
	Blocked      bool          `json:"blocked"`
	Role         Role          `json:"role"`
	Balance      Balance       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
	CreatedBy    *uuid.UUID    `json:"create_ad,omitempty"`
	LastLogin    *time.Time    `json:"lastLogin,omitempty"`
	PasswordHash string        `json:"-"`
}

// AdminSummary is the reduced shape served by /users/admins to populate the
// admin filter's choice list.
type AdminSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
