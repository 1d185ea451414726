/**
 * @description
 * This file contains the HTTP handlers for the dashboard's API endpoints.
 * Handlers are responsible for parsing incoming requests, calling the
 * appropriate methods on the application service, and writing the HTTP
 * response. They act as the bridge between the web layer and the business
 * logic layer.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/selewanto/dashboard/internal/app"
	"github.com/selewanto/dashboard/internal/domain"
	"github.com/selewanto/dashboard/internal/store"
)

// Handlers holds the application service that handlers will use.
type Handlers struct {
	service       *app.Service
	limiter       *app.RedisRateLimiter
	mailRateLimit int
}

// NewHandlers creates the handler set.
func NewHandlers(service *app.Service, limiter *app.RedisRateLimiter, mailRateLimit int) *Handlers {
	return &Handlers{service: service, limiter: limiter, mailRateLimit: mailRateLimit}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginHandler authenticates a dashboard account.
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, app.AudienceDashboard)
}

// AdminLoginHandler authenticates an admin account.
func (h *Handlers) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, app.AudienceAdmin)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request, audience string) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password, audience)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidCredentials):
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		case errors.Is(err, app.ErrNotAdmin):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			log.Printf("level=error component=api msg=\"login failed\" err=%v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// CurrentUserHandler serves GET /users/me.
func (h *Handlers) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		log.Printf("level=error component=api msg=\"failed to load current user\" user_id=%s err=%v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ListAdminsHandler serves GET /users/admins.
func (h *Handlers) ListAdminsHandler(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.ListAdminSummaries(r.Context())
	if err != nil {
		log.Printf("level=error component=api msg=\"failed to list admins\" err=%v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if admins == nil {
		admins = []domain.AdminSummary{}
	}
	writeJSON(w, http.StatusOK, admins)
}

type depositInfoResponse struct {
	Wallets []domain.DepositWallet `json:"wallets"`
	Limits  []domain.DepositLimit  `json:"limits"`
}

// DepositInfoHandler serves GET /deposit-wallets: the fixed receiving
// addresses plus the per-transaction limits shown on the payment screen.
func (h *Handlers) DepositInfoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, depositInfoResponse{
		Wallets: domain.DepositWallets(),
		Limits:  domain.DepositLimits(),
	})
}

// SendMailHandler serves POST /send-mail: it validates, rate-limits and
// queues the transfer mail for the delivery consumer.
func (h *Handlers) SendMailHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req domain.MailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if h.limiter != nil && h.mailRateLimit > 0 {
		count, retryAfter, err := h.limiter.ConsumeRateLimit(r.Context(), "send_mail", userID.String(), h.mailRateLimit, time.Minute)
		if err != nil {
			log.Printf("level=warn component=api msg=\"rate limiter unavailable; allowing request\" err=%v", err)
		} else if count > h.mailRateLimit {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
	}

	if err := h.service.QueueTransferMail(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, app.ErrMailRejected):
			http.Error(w, "email, message and subject are required", http.StatusBadRequest)
		case errors.Is(err, app.ErrMailUnavailable):
			http.Error(w, "Mail queue unavailable", http.StatusBadGateway)
		default:
			log.Printf("level=error component=api msg=\"failed to queue mail\" user_id=%s err=%v", userID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// writeJSON is a helper to write JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// If encoding fails, we can't send a JSON error, so just log it.
		log.Printf("level=error component=api msg=\"failed to encode response\" err=%v", err)
	}
}
