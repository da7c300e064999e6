package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	journalDomain "github.com/allisson/journal/internal/journal/domain"
)

// PostgreSQLGoalRepository implements GoalRepository for PostgreSQL.
type PostgreSQLGoalRepository struct {
	store recordStore[journalDomain.Goal]
}

// NewPostgreSQLGoalRepository creates a new PostgreSQL goal repository.
func NewPostgreSQLGoalRepository(db *sql.DB) *PostgreSQLGoalRepository {
	return &PostgreSQLGoalRepository{
		store: recordStore[journalDomain.Goal]{
			db: db, table: goalTable, ids: postgresIDs, placeholders: postgresPlaceholders,
		},
	}
}

func (p *PostgreSQLGoalRepository) Create(ctx context.Context, goal *journalDomain.Goal) error {
	return p.store.create(ctx, goal)
}

// GetByID returns journalDomain.ErrGoalNotFound for unknown ids.
func (p *PostgreSQLGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*journalDomain.Goal, error) {
	return p.store.getByID(ctx, id)
}

func (p *PostgreSQLGoalRepository) List(ctx context.Context) ([]*journalDomain.Goal, error) {
	return p.store.list(ctx)
}

// MySQLGoalRepository implements GoalRepository for MySQL.
type MySQLGoalRepository struct {
	store recordStore[journalDomain.Goal]
}

// NewMySQLGoalRepository creates a new MySQL goal repository.
func NewMySQLGoalRepository(db *sql.DB) *MySQLGoalRepository {
	return &MySQLGoalRepository{
		store: recordStore[journalDomain.Goal]{
			db: db, table: goalTable, ids: mysqlIDs, placeholders: mysqlPlaceholders,
		},
	}
}

func (m *MySQLGoalRepository) Create(ctx context.Context, goal *journalDomain.Goal) error {
	return m.store.create(ctx, goal)
}

// GetByID returns journalDomain.ErrGoalNotFound for unknown ids.
func (m *MySQLGoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*journalDomain.Goal, error) {
	return m.store.getByID(ctx, id)
}

func (m *MySQLGoalRepository) List(ctx context.Context) ([]*journalDomain.Goal, error) {
	return m.store.list(ctx)
}
