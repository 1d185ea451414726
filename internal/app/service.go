/**
 * @description
 * This file contains the core business logic for the dashboard service:
 * authentication, the session and admin read endpoints, the transfer mail
 * queue, and the role-gated admin CRUD over user records.
 *
 * Role gating: a non-SuperAdmin admin only ever sees and manages role=user
 * records they created themselves, and can never assign a role. Only a
 * SuperAdmin manages other admins.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/selewanto/dashboard/internal/domain"
	"github.com/selewanto/dashboard/internal/store"
	"github.com/selewanto/dashboard/pkg/rabbitmq"
)

// Token audiences. The dashboard and the admin panel authenticate
// separately and their tokens are not interchangeable.
const (
	AudienceDashboard = "dashboard"
	AudienceAdmin     = "admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAdmin           = errors.New("account has no admin access")
	ErrForbidden          = errors.New("operation not permitted for this role")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrMailRejected       = errors.New("mail request rejected")
	ErrMailUnavailable    = errors.New("mail queue unavailable")
)

const minPasswordLength = 6

// Service implements the dashboard's use cases on top of the repository and
// the event producer.
type Service struct {
	repo      store.Repository
	publisher rabbitmq.Publisher
	exchange  string
	jwtSecret []byte
	jwtTTL    time.Duration
}

// NewService creates the application service.
func NewService(repo store.Repository, publisher rabbitmq.Publisher, exchange, jwtSecret string, jwtTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		exchange:  exchange,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
	}
}

// Login authenticates an email/password pair for the given audience and
// returns a signed token plus the user record. Admin audience additionally
// requires an admin role.
func (s *Service) Login(ctx context.Context, email, password, audience string) (string, *domain.User, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if audience == AudienceAdmin && !user.Role.IsAdmin() {
		return "", nil, ErrNotAdmin
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("level=warn component=service msg=\"failed to record last login\" user_id=%s err=%v", user.ID, err)
	}
	user.LastLogin = &now
	return token, user, nil
}

// CurrentUser returns the full record behind /users/me.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.FindUserByID(ctx, userID)
}

// ListAdminSummaries returns the admin choice list for the panel's filter.
func (s *Service) ListAdminSummaries(ctx context.Context) ([]domain.AdminSummary, error) {
	return s.repo.ListAdminSummaries(ctx)
}

// QueueTransferMail validates and publishes a transfer mail request to the
// broker. The consumer delivers the actual email.
func (s *Service) QueueTransferMail(ctx context.Context, req domain.MailRequest) error {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.Subject) == "" {
		return ErrMailRejected
	}
	event := rabbitmq.MailRequestedEvent{Mail: req, Timestamp: time.Now().UTC()}
	if err := s.publisher.PublishMailRequested(ctx, s.exchange, event); err != nil {
		log.Printf("level=error component=service msg=\"failed to publish mail requested event\" user_id=%s err=%v", req.UserID, err)
		return fmt.Errorf("%w: %v", ErrMailUnavailable, err)
	}
	return nil
}

// UserInput is the admin panel's create/update payload.
type UserInput struct {
	Email        string               `json:"email"`
	Name         string               `json:"name"`
	LastName     string               `json:"lastName"`
	AccountID    int64                `json:"account_id"`
	Blocked      bool                 `json:"blocked"`
	Role         domain.Role          `json:"role"`
	Balance      domain.Balance       `json:"balance"`
	Transactions []domain.Transaction `json:"transactions"`
	Password     string               `json:"password,omitempty"`
}

// scopeToActor narrows list filters for non-SuperAdmin actors to role=user
// records they created.
func scopeToActor(actor *domain.User, opts *store.ListOptions) {
	if actor.Role == domain.RoleSuperAdmin {
		return
	}
	role := domain.RoleUser
	opts.Role = &role
	createdBy := actor.ID
	opts.CreatedBy = &createdBy
}

// ListUsers returns one admin list page plus the total for the actor's scope.
func (s *Service) ListUsers(ctx context.Context, actor *domain.User, opts store.ListOptions) ([]domain.User, int, error) {
	if !actor.Role.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	scopeToActor(actor, &opts)
	return s.repo.ListUsers(ctx, opts)
}

// GetUser returns one record if the actor's scope covers it.
func (s *Service) GetUser(ctx context.Context, actor *domain.User, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser creates a record on behalf of the actor. Non-SuperAdmin actors
// always create role=user records attributed to themselves.
func (s *Service) CreateUser(ctx context.Context, actor *domain.User, input UserInput) (*domain.User, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}
	role := domain.RoleUser
	createdBy := actor.ID
	if actor.Role == domain.RoleSuperAdmin && input.Role != "" {
		role = input.Role
	}

	hash, err := hashPassword(input.Password, true)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        strings.TrimSpace(input.Email),
		Name:         input.Name,
		LastName:     input.LastName,
		AccountID:    input.AccountID,
		Blocked:      input.Blocked,
		Role:         role,
		Balance:      input.Balance,
		Transactions: input.Transactions,
		CreatedBy:    &createdBy,
		PasswordHash: hash,
	}
	if user.Balance == nil {
		user.Balance = domain.Balance{}
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser rewrites a record the actor's scope covers. The role only
// changes when a SuperAdmin sets it; a blank password keeps the stored hash.
func (s *Service) UpdateUser(ctx context.Context, actor *domain.User, id uuid.UUID, input UserInput) (*domain.User, error) {
	user, err := s.GetUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	user.Email = strings.TrimSpace(input.Email)
	user.Name = input.Name
	user.LastName = input.LastName
	user.AccountID = input.AccountID
	user.Blocked = input.Blocked
	user.Balance = input.Balance
	user.Transactions = input.Transactions
	if actor.Role == domain.RoleSuperAdmin && input.Role != "" {
		user.Role = input.Role
	}
	if input.Password != "" {
		hash, err := hashPassword(input.Password, false)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a record the actor's scope covers.
func (s *Service) DeleteUser(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, id)
}

func (s *Service) authorize(actor *domain.User, target *domain.User) error {
	if actor.Role == domain.RoleSuperAdmin {
		return nil
	}
	if !actor.Role.IsAdmin() {
		return ErrForbidden
	}
	if target.Role != domain.RoleUser {
		return ErrForbidden
	}
	if target.CreatedBy == nil || *target.CreatedBy != actor.ID {
		return ErrForbidden
	}
	return nil
}

func hashPassword(password string, required bool) (string, error) {
	if password == "" {
		if required {
			return "", ErrPasswordTooShort
		}
		return "", nil
	}
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
