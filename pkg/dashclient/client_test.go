package dashclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/selewanto/dashboard/internal/domain"
)

func TestGetCurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.User{Email: "user@example.com", AccountID: 40271})
	}))
	defer srv.Close()

	user, err := NewClient(srv.URL, "tok123").GetCurrentUser(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentUser: %v", err)
	}
	if user.Email != "user@example.com" || user.AccountID != 40271 {
		t.Errorf("got %+v", user)
	}

	_, err = NewClient(srv.URL, "wrong").GetCurrentUser(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("bad token: got %v", err)
	}
}

func TestSendMail(t *testing.T) {
	var received domain.MailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/send-mail" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	req := domain.MailRequest{Email: "user@example.com", Message: "m", UserID: "1", Subject: "Transfer - BTC"}
	if err := NewClient(srv.URL, "tok").SendMail(context.Background(), req); err != nil {
		t.Fatalf("SendMail: %v", err)
	}
	if received.Subject != "Transfer - BTC" {
		t.Errorf("received %+v", received)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Mail queue unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "tok").SendMail(context.Background(), domain.MailRequest{})
	if err == nil || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected a server error, got %v", err)
	}
}
