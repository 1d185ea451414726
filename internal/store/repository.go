/**
 * @description
 * This file defines the `Repository` interface, which specifies the contract
 * for all data access operations required by the dashboard service. By
 * defining an interface, we decouple the application's business logic from
 * the specific database implementation (e.g., PostgreSQL), making the code
 * more modular and easier to test.
 */

package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/selewanto/dashboard/internal/domain"
)

// ListOptions carries the pagination, sorting and filter parameters of an
// admin list query, as sent by the admin panel's data provider
// (_start/_end/_sort/_order plus field filters).
type ListOptions struct {
	Start     int
	End       int
	SortField string
	SortOrder string // "ASC" or "DESC"

	// Filters. Nil means not filtered.
	Role      *domain.Role
	CreatedBy *uuid.UUID
}

// Limit returns the page size implied by the range, defaulting to 10.
func (o ListOptions) Limit() int {
	if o.End > o.Start {
		return o.End - o.Start
	}
	return 10
}

// Repository defines the set of methods for interacting with the database.
type Repository interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, opts ListOptions) ([]domain.User, int, error)
	ListAdminSummaries(ctx context.Context) ([]domain.AdminSummary, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// SweepStalePendingTransactions marks pending transactions older than
	// cutoff as failed and returns the number of users touched.
	SweepStalePendingTransactions(ctx context.Context, cutoff time.Time) (int64, error)
}
