/**
 * @description
 * This file provides the PostgreSQL implementation of the `Repository`
 * interface. User balances and transaction histories are stored as jsonb
 * documents on the users table because the admin panel edits them as one
 * unit; only the fields the list views filter and sort on are real columns.
 */

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selewanto/dashboard/internal/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// sortColumns whitelists the sortable list fields against their columns.
var sortColumns = map[string]string{
	"id":         "id",
	"email":      "email",
	"name":       "name",
	"lastName":   "last_name",
	"account_id": "account_id",
	"role":       "role",
	"lastLogin":  "last_login",
}

// PostgresRepository is a concrete implementation of the Repository interface for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, name, last_name, account_id, blocked, role, balance, transactions, created_by, last_login, password_hash`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user            domain.User
		balanceJSON     []byte
		transactionJSON []byte
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.LastName,
		&user.AccountID,
		&user.Blocked,
		&user.Role,
		&balanceJSON,
		&transactionJSON,
		&user.CreatedBy,
		&user.LastLogin,
		&user.PasswordHash,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if len(balanceJSON) > 0 {
		if err := json.Unmarshal(balanceJSON, &user.Balance); err != nil {
			return nil, fmt.Errorf("decoding balance: %w", err)
		}
	}
	if len(transactionJSON) > 0 {
		if err := json.Unmarshal(transactionJSON, &user.Transactions); err != nil {
			return nil, fmt.Errorf("decoding transactions: %w", err)
		}
	}
	return &user, nil
}

// FindUserByID retrieves a user from the database by their ID.
func (r *PostgresRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// FindUserByEmail retrieves a user by email, matched case-insensitively.
func (r *PostgresRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(btrim(email)) = lower(btrim($1))`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// ListUsers returns one page of users plus the unpaginated total matching
// the filters, for the list response's X-Total-Count header.
func (r *PostgresRepository) ListUsers(ctx context.Context, opts ListOptions) ([]domain.User, int, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if opts.Role != nil {
		args = append(args, *opts.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if opts.CreatedBy != nil {
		args = append(args, *opts.CreatedBy)
		where = append(where, fmt.Sprintf("created_by = $%d", len(args)))
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM users"+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[opts.SortField]
	if !ok {
		column = "id"
	}
	order := "ASC"
	if strings.EqualFold(opts.SortOrder, "DESC") {
		order = "DESC"
	}

	args = append(args, opts.Limit())
	limitPos := len(args)
	args = append(args, opts.Start)
	offsetPos := len(args)
	query := fmt.Sprintf("SELECT %s FROM users%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		userColumns, whereClause, column, order, limitPos, offsetPos)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]domain.User, 0, opts.Limit())
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListAdminSummaries returns the id and display name of every admin account.
func (r *PostgresRepository) ListAdminSummaries(ctx context.Context) ([]domain.AdminSummary, error) {
	query := `SELECT id, name FROM users WHERE role IN ($1, $2) ORDER BY name`
	rows, err := r.db.Query(ctx, query, domain.RoleAdmin, domain.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.AdminSummary
	for rows.Next() {
		var a domain.AdminSummary
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// CreateUser inserts a new user record into the database.
func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	balanceJSON, transactionJSON, err := encodeDocuments(user)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO users (id, email, name, last_name, account_id, blocked, role, balance, transactions, created_by, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `
	_, err = r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.LastName,
		user.AccountID,
		user.Blocked,
		user.Role,
		balanceJSON,
		transactionJSON,
		user.CreatedBy,
		user.PasswordHash,
	)
	if err != nil {
		// Check for unique constraint violation
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// UpdateUser rewrites a user record, including the whole balance and
// transaction documents.
func (r *PostgresRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	balanceJSON, transactionJSON, err := encodeDocuments(user)
	if err != nil {
		return err
	}
	query := `
        UPDATE users
        SET email = $2, name = $3, last_name = $4, account_id = $5, blocked = $6,
            role = $7, balance = $8, transactions = $9, password_hash = $10
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.LastName,
		user.AccountID,
		user.Blocked,
		user.Role,
		balanceJSON,
		transactionJSON,
		user.PasswordHash,
	)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUser removes a user record.
func (r *PostgresRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin stamps a successful sign-in.
func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	return err
}

// SweepStalePendingTransactions rewrites pending history entries older than
// cutoff to failed, inside the jsonb documents, and returns the number of
// users whose history changed.
func (r *PostgresRepository) SweepStalePendingTransactions(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
        UPDATE users
        SET transactions = (
            SELECT COALESCE(jsonb_agg(
                CASE WHEN t->>'status' = 'pending' AND (t->>'date')::timestamptz < $1
                     THEN jsonb_set(t, '{status}', '"failed"')
                     ELSE t
                END), '[]'::jsonb)
            FROM jsonb_array_elements(transactions) AS t
        )
        WHERE EXISTS (
            SELECT 1 FROM jsonb_array_elements(transactions) AS t
            WHERE t->>'status' = 'pending' AND (t->>'date')::timestamptz < $1
        )
    `
	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func encodeDocuments(user *domain.User) ([]byte, []byte, error) {
	balance := user.Balance
	if balance == nil {
		balance = domain.Balance{}
	}
	transactions := user.Transactions
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	balanceJSON, err := json.Marshal(balance)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding balance: %w", err)
	}
	transactionJSON, err := json.Marshal(transactions)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding transactions: %w", err)
	}
	return balanceJSON, transactionJSON, nil
}
