package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/journal/internal/database"
	apperrors "github.com/allisson/journal/internal/errors"
	journalDomain "github.com/allisson/journal/internal/journal/domain"
)

// MySQLEntryRepository implements EntryRepository for MySQL.
type MySQLEntryRepository struct {
	db *sql.DB
}

// NewMySQLEntryRepository creates a new MySQL entry repository.
func NewMySQLEntryRepository(db *sql.DB) *MySQLEntryRepository {
	return &MySQLEntryRepository{db: db}
}

// Create inserts a new entry.
func (m *MySQLEntryRepository) Create(ctx context.Context, entry *journalDomain.Entry) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO entries (` + entryColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := marshalID(entry.ID)
	if err != nil {
		return err
	}

	var parentID []byte
	if entry.ParentID != nil {
		if parentID, err = marshalID(*entry.ParentID); err != nil {
			return err
		}
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		parentID,
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
func (m *MySQLEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*journalDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ? AND deleted_at IS NULL`

	binID, err := marshalID(id)
	if err != nil {
		return nil, err
	}

	entry, err := scanMySQLEntry(querier.QueryRowContext(ctx, query, binID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, journalDomain.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get entry")
	}
	return entry, nil
}

// ListChildren returns the live follow-ups of the given parents.
func (m *MySQLEntryRepository) ListChildren(
	ctx context.Context,
	parentIDs []uuid.UUID,
) ([]*journalDomain.Entry, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, m.db)

	args := make([]any, len(parentIDs))
	for i, id := range parentIDs {
		binID, err := marshalID(id)
		if err != nil {
			return nil, err
		}
		args[i] = binID
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(parentIDs)), ", ")

	query := `SELECT ` + entryColumns + ` FROM entries
			  WHERE parent_entry_id IN (` + placeholders + `) AND deleted_at IS NULL
			  ORDER BY created_at ASC`

	return m.list(ctx, querier, query, args...)
}

// ListRoots returns live thread roots ordered by created_at descending.
func (m *MySQLEntryRepository) ListRoots(ctx context.Context, offset, limit int) ([]*journalDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + entryColumns + ` FROM entries
			  WHERE parent_entry_id IS NULL AND deleted_at IS NULL
			  ORDER BY created_at DESC LIMIT ? OFFSET ?`

	return m.list(ctx, querier, query, limit, offset)
}

// Delete soft deletes an entry.
func (m *MySQLEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE entries SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	binID, err := marshalID(id)
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), binID)
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

func (m *MySQLEntryRepository) list(
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
		entry, err := scanMySQLEntry(rows)
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

func scanMySQLEntry(s scanner) (*journalDomain.Entry, error) {
	var entry journalDomain.Entry
	var id, parentID []byte
	var prompt, promptIV sql.NullString

	err := s.Scan(
		&id,
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

	if entry.ID, err = unmarshalID(id); err != nil {
		return nil, err
	}
	if parentID != nil {
		parent, err := unmarshalID(parentID)
		if err != nil {
			return nil, err
		}
		entry.ParentID = &parent
	}
	entry.Prompt = optionalBlob(prompt, promptIV)
	return &entry, nil
}
