/**
 * @description
 * Admin CRUD over the /users resource, following the json-server request
 * conventions the admin panel's data provider speaks: _start/_end ranges,
 * _sort/_order, field filters as plain query params, and the unpaginated
 * total in the X-Total-Count header.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/selewanto/dashboard/internal/app"
	"github.com/selewanto/dashboard/internal/domain"
	"github.com/selewanto/dashboard/internal/store"
)

func parseListOptions(r *http.Request) store.ListOptions {
	q := r.URL.Query()
	opts := store.ListOptions{
		SortField: q.Get("_sort"),
		SortOrder: q.Get("_order"),
	}
	if v, err := strconv.Atoi(q.Get("_start")); err == nil && v >= 0 {
		opts.Start = v
	}
	if v, err := strconv.Atoi(q.Get("_end")); err == nil && v > opts.Start {
		opts.End = v
	}
	if raw := q.Get("role"); raw != "" {
		role := domain.Role(raw)
		opts.Role = &role
	}
	if raw := q.Get("create_ad"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			opts.CreatedBy = &id
		}
	}
	return opts
}

// ListUsersHandler serves GET /users for the admin panel.
func (h *Handlers) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	users, total, err := h.service.ListUsers(r.Context(), actor, parseListOptions(r))
	if err != nil {
		h.writeAdminError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}

	w.Header().Set("Access-Control-Expose-Headers", "X-Total-Count")
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	writeJSON(w, http.StatusOK, users)
}

// GetUserHandler serves GET /users/{id}.
func (h *Handlers) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r)
	if !ok {
		return
	}
	user, err := h.service.GetUser(r.Context(), actor, id)
	if err != nil {
		h.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CreateUserHandler serves POST /users.
func (h *Handlers) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	var input app.UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.CreateUser(r.Context(), actor, input)
	if err != nil {
		h.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// UpdateUserHandler serves PUT /users/{id}.
func (h *Handlers) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r)
	if !ok {
		return
	}
	var input app.UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), actor, id, input)
	if err != nil {
		h.writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUserHandler serves DELETE /users/{id}.
func (h *Handlers) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, id, ok := h.actorAndID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteUser(r.Context(), actor, id); err != nil {
		h.writeAdminError(w, err)
		return
	}
	// json-server responds with the deleted resource's empty body.
	writeJSON(w, http.StatusOK, map[string]string{})
}

func (h *Handlers) actorAndID(w http.ResponseWriter, r *http.Request) (*domain.User, uuid.UUID, bool) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return nil, uuid.Nil, false
	}
	return actor, id, true
}

func (h *Handlers) writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, store.ErrUserNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	case errors.Is(err, store.ErrEmailTaken):
		http.Error(w, "Email already registered", http.StatusConflict)
	case errors.Is(err, app.ErrPasswordTooShort):
		http.Error(w, "Password must be at least 6 characters", http.StatusBadRequest)
	default:
		log.Printf("level=error component=api msg=\"admin operation failed\" err=%v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
