package tokenstore

import (
	"errors"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, err := s.Get(DashboardToken); !errors.Is(err, ErrNoToken) {
		t.Fatalf("empty store: got %v", err)
	}

	if err := s.Set(DashboardToken, "  abc.def.ghi\n"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(DashboardToken)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "abc.def.ghi" {
		t.Errorf("got %q", got)
	}

	// The admin token lives independently.
	if _, err := s.Get(AdminToken); !errors.Is(err, ErrNoToken) {
		t.Errorf("admin token should be absent: got %v", err)
	}

	if err := s.Clear(DashboardToken); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Get(DashboardToken); !errors.Is(err, ErrNoToken) {
		t.Errorf("after clear: got %v", err)
	}
	if err := s.Clear(DashboardToken); err != nil {
		t.Errorf("second clear should be a no-op: %v", err)
	}
}
