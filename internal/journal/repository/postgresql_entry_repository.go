package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/journal/internal/database"
	apperrors "github.com/allisson/journal/internal/errors"
	journalDomain "github.com/allisson/journal/internal/journal/domain"
)

const entryColumns = `id, parent_entry_id, encrypted_content, content_iv, encrypted_prompt, prompt_iv,
	encrypted_data_key, data_key_iv, algorithm, created_at`

// PostgreSQLEntryRepository implements EntryRepository for PostgreSQL.
type PostgreSQLEntryRepository struct {
	db *sql.DB
}

// NewPostgreSQLEntryRepository creates a new PostgreSQL entry repository.
func NewPostgreSQLEntryRepository(db *sql.DB) *PostgreSQLEntryRepository {
	return &PostgreSQLEntryRepository{db: db}
}

// Create inserts a new entry.
func (p *PostgreSQLEntryRepository) Create(ctx context.Context, entry *journalDomain.Entry) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO entries (` + entryColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		entry.ID,
		nullUUID(entry.ParentID),
		entry.Content.Ciphertext,
		entry.Content.IV,
		nullString(entry.Prompt.Ciphertext),
		nullString(entry.Prompt.IV),
		entry.DataKey.Ciphertext,
		entry.DataKey.IV,
		entry.DataKey.Algorithm,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create entry")
	}
	return nil
}

// GetByID returns a live entry or journalDomain.ErrEntryNotFound.
func (p *PostgreSQLEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*journalDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1 AND deleted_at IS NULL`

	entry, err := scanPostgreSQLEntry(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, journalDomain.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get entry")
	}
	return entry, nil
}

// ListChildren returns the live follow-ups of the given parents.
func (p *PostgreSQLEntryRepository) ListChildren(
	ctx context.Context,
	parentIDs []uuid.UUID,
) ([]*journalDomain.Entry, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, p.db)

	ids := make([]string, len(parentIDs))
	for i, id := range parentIDs {
		ids[i] = id.String()
	}

	query := `SELECT ` + entryColumns + ` FROM entries
			  WHERE parent_entry_id = ANY($1::uuid[]) AND deleted_at IS NULL
			  ORDER BY created_at ASC`

	return p.list(ctx, querier, query, pq.Array(ids))
}

// ListRoots returns live thread roots ordered by created_at descending.
func (p *PostgreSQLEntryRepository) ListRoots(
	ctx context.Context,
	offset, limit int,
) ([]*journalDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + entryColumns + ` FROM entries
			  WHERE parent_entry_id IS NULL AND deleted_at IS NULL
			  ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	return p.list(ctx, querier, query, limit, offset)
}

// Delete soft deletes an entry.
func (p *PostgreSQLEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE entries SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete entry")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to delete entry")
	}
	if rows == 0 {
		return journalDomain.ErrEntryNotFound
	}
	return nil
}

func (p *PostgreSQLEntryRepository) list(
	ctx context.Context,
	querier database.Querier,
	query string,
	args ...any,
) ([]*journalDomain.Entry, error) {
	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list entries")
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []*journalDomain.Entry
	for rows.Next() {
		entry, err := scanPostgreSQLEntry(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan entry")
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list entries")
	}
	return entries, nil
}

func scanPostgreSQLEntry(s scanner) (*journalDomain.Entry, error) {
	var entry journalDomain.Entry
	var parentID uuid.NullUUID
	var prompt, promptIV sql.NullString

	err := s.Scan(
		&entry.ID,
		&parentID,
		&entry.Content.Ciphertext,
		&entry.Content.IV,
		&prompt,
		&promptIV,
		&entry.DataKey.Ciphertext,
		&entry.DataKey.IV,
		&entry.DataKey.Algorithm,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		id := parentID.UUID
		entry.ParentID = &id
	}
	entry.Prompt = optionalBlob(prompt, promptIV)
	return &entry, nil
}
