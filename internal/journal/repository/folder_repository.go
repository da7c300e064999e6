package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	journalDomain "github.com/allisson/journal/internal/journal/domain"
)

// PostgreSQLFolderRepository implements FolderRepository for PostgreSQL.
type PostgreSQLFolderRepository struct {
	store recordStore[journalDomain.Folder]
}

// NewPostgreSQLFolderRepository creates a new PostgreSQL folder repository.
func NewPostgreSQLFolderRepository(db *sql.DB) *PostgreSQLFolderRepository {
	return &PostgreSQLFolderRepository{
		store: recordStore[journalDomain.Folder]{
			db: db, table: folderTable, ids: postgresIDs, placeholders: postgresPlaceholders,
		},
	}
}

func (p *PostgreSQLFolderRepository) Create(ctx context.Context, folder *journalDomain.Folder) error {
	return p.store.create(ctx, folder)
}

// GetByID returns journalDomain.ErrFolderNotFound for unknown ids.
func (p *PostgreSQLFolderRepository) GetByID(ctx context.Context, id uuid.UUID) (*journalDomain.Folder, error) {
	return p.store.getByID(ctx, id)
}

func (p *PostgreSQLFolderRepository) List(ctx context.Context) ([]*journalDomain.Folder, error) {
	return p.store.list(ctx)
}

// MySQLFolderRepository implements FolderRepository for MySQL.
type MySQLFolderRepository struct {
	store recordStore[journalDomain.Folder]
}

// NewMySQLFolderRepository creates a new MySQL folder repository.
func NewMySQLFolderRepository(db *sql.DB) *MySQLFolderRepository {
	return &MySQLFolderRepository{
		store: recordStore[journalDomain.Folder]{
			db: db, table: folderTable, ids: mysqlIDs, placeholders: mysqlPlaceholders,
		},
	}
}

func (m *MySQLFolderRepository) Create(ctx context.Context, folder *journalDomain.Folder) error {
	return m.store.create(ctx, folder)
}

// GetByID returns journalDomain.ErrFolderNotFound for unknown ids.
func (m *MySQLFolderRepository) GetByID(ctx context.Context, id uuid.UUID) (*journalDomain.Folder, error) {
	return m.store.getByID(ctx, id)
}

func (m *MySQLFolderRepository) List(ctx context.Context) ([]*journalDomain.Folder, error) {
	return m.store.list(ctx)
}
