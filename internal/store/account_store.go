package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/admin-panel/internal/model"
)

// CreateAccount inserts a new account and returns it with its assigned ID.
// Emails are unique regardless of case.
func (s *SQLiteStore) CreateAccount(ctx context.Context, a model.Account) (model.Account, error) {
	a.Email = strings.TrimSpace(a.Email)
	if a.Email == "" {
		return model.Account{}, fmt.Errorf("account email must not be empty")
	}
	if a.Role == "" {
		a.Role = "user"
	}
	a.CreatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (name, email, role, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.Name, a.Email, a.Role, a.PasswordHash, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, fmt.Errorf("account %s: %w", a.Email, ErrConflict)
		}
		return model.Account{}, fmt.Errorf("creating account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Account{}, fmt.Errorf("reading account id: %w", err)
	}
	a.ID = id
	return a, nil
}

// GetAccountByEmail looks up an account by email, ignoring case.
func (s *SQLiteStore) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var a model.Account
	err := s.db.GetContext(ctx, &a,
		"SELECT * FROM accounts WHERE email = ?", strings.TrimSpace(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting account %s: %w", email, err)
	}
	return &a, nil
}

// GetAccountByID looks up an account by its numeric ID.
func (s *SQLiteStore) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	var a model.Account
	err := s.db.GetContext(ctx, &a, "SELECT * FROM accounts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting account %d: %w", id, err)
	}
	return &a, nil
}
