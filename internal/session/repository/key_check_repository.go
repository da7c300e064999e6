// Package repository persists session key checks in PostgreSQL and MySQL.
//
// Both implementations are transaction-aware through database.GetTx.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/journal/internal/database"
	apperrors "github.com/allisson/journal/internal/errors"
	sessionDomain "github.com/allisson/journal/internal/session/domain"
)

// PostgreSQLKeyCheckRepository implements key check persistence for PostgreSQL.
type PostgreSQLKeyCheckRepository struct {
	db *sql.DB
}

// NewPostgreSQLKeyCheckRepository creates a new PostgreSQL key check repository.
func NewPostgreSQLKeyCheckRepository(db *sql.DB) *PostgreSQLKeyCheckRepository {
	return &PostgreSQLKeyCheckRepository{db: db}
}

// Get returns the key check for an identity or sessionDomain.ErrKeyCheckNotFound.
func (p *PostgreSQLKeyCheckRepository) Get(ctx context.Context, identity string) (*sessionDomain.KeyCheck, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT identity, algorithm, encrypted_key, key_iv, created_at
			  FROM key_checks WHERE identity = $1`

	return scanKeyCheck(querier.QueryRowContext(ctx, query, identity))
}

// Create inserts a key check. An existing identity yields a conflict error.
func (p *PostgreSQLKeyCheckRepository) Create(ctx context.Context, keyCheck *sessionDomain.KeyCheck) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO key_checks (identity, algorithm, encrypted_key, key_iv, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		keyCheck.Identity,
		keyCheck.WrappedKey.Algorithm,
		keyCheck.WrappedKey.Ciphertext,
		keyCheck.WrappedKey.IV,
		keyCheck.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create key check")
	}
	return nil
}

// MySQLKeyCheckRepository implements key check persistence for MySQL.
type MySQLKeyCheckRepository struct {
	db *sql.DB
}

// NewMySQLKeyCheckRepository creates a new MySQL key check repository.
func NewMySQLKeyCheckRepository(db *sql.DB) *MySQLKeyCheckRepository {
	return &MySQLKeyCheckRepository{db: db}
}

// Get returns the key check for an identity or sessionDomain.ErrKeyCheckNotFound.
func (m *MySQLKeyCheckRepository) Get(ctx context.Context, identity string) (*sessionDomain.KeyCheck, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT identity, algorithm, encrypted_key, key_iv, created_at
			  FROM key_checks WHERE identity = ?`

	return scanKeyCheck(querier.QueryRowContext(ctx, query, identity))
}

// Create inserts a key check.
func (m *MySQLKeyCheckRepository) Create(ctx context.Context, keyCheck *sessionDomain.KeyCheck) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO key_checks (identity, algorithm, encrypted_key, key_iv, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		keyCheck.Identity,
		keyCheck.WrappedKey.Algorithm,
		keyCheck.WrappedKey.Ciphertext,
		keyCheck.WrappedKey.IV,
		keyCheck.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create key check")
	}
	return nil
}

func scanKeyCheck(row *sql.Row) (*sessionDomain.KeyCheck, error) {
	var keyCheck sessionDomain.KeyCheck

	err := row.Scan(
		&keyCheck.Identity,
		&keyCheck.WrappedKey.Algorithm,
		&keyCheck.WrappedKey.Ciphertext,
		&keyCheck.WrappedKey.IV,
		&keyCheck.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sessionDomain.ErrKeyCheckNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get key check")
	}

	return &keyCheck, nil
}
