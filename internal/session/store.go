/**
 * @description
 * Session state for the dashboard: the authenticated user's identity and
 * balances, refreshed from the backend. A failed refresh clears the stored
 * identity so stale data is never shown as current.
 */

package session

import (
	"context"
	"sync"

	"github.com/selewanto/dashboard/internal/domain"
)

// Fetcher loads the current user from the backend using the stored token.
type Fetcher interface {
	GetCurrentUser(ctx context.Context) (*domain.User, error)
}

// Store holds the current session identity. Safe for concurrent use.
type Store struct {
	fetcher Fetcher

	mu      sync.RWMutex
	user    *domain.User
	loading bool
}

func NewStore(fetcher Fetcher) *Store {
	return &Store{fetcher: fetcher}
}

// User returns the current identity, or nil when signed out or after a
// failed refresh.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading reports whether a refresh is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Refresh fetches the current user. On error the stored identity is cleared
// and the error returned; callers treat a cleared identity as signed out.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	user, err := s.fetcher.GetCurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.user = nil
		return err
	}
	s.user = user
	return nil
}

// Clear drops the stored identity, e.g. on sign-out.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Balance returns the amount held for the given asset key, or zero when no
// user is loaded or the key is absent.
func (s *Store) Balance(asset string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0
	}
	return s.user.Balance[asset]
}

// Transactions returns the loaded user's transaction history, or nil.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	return s.user.Transactions
}
