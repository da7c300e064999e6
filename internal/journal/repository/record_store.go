package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	"github.com/allisson/journal/internal/database"
	apperrors "github.com/allisson/journal/internal/errors"
	journalDomain "github.com/allisson/journal/internal/journal/domain"
)

// sealedRecord is the storage shape shared by folders and goals: a required
// encrypted field, an optional encrypted field and the record's wrapped key.
type sealedRecord struct {
	ID        uuid.UUID
	Primary   cryptoDomain.EncryptedBlob
	Secondary cryptoDomain.EncryptedBlob
	DataKey   cryptoDomain.WrappedKey
	CreatedAt time.Time
}

// recordTable maps a domain type onto a sealedRecord table.
type recordTable[T any] struct {
	name       string
	columns    string
	notFound   error
	toRecord   func(*T) sealedRecord
	fromRecord func(sealedRecord) *T
}

var folderTable = recordTable[journalDomain.Folder]{
	name: "folders",
	columns: `id, encrypted_name, name_iv, encrypted_description, description_iv,
	encrypted_data_key, data_key_iv, algorithm, created_at`,
	notFound: journalDomain.ErrFolderNotFound,
	toRecord: func(f *journalDomain.Folder) sealedRecord {
		return sealedRecord{ID: f.ID, Primary: f.Name, Secondary: f.Description, DataKey: f.DataKey, CreatedAt: f.CreatedAt}
	},
	fromRecord: func(r sealedRecord) *journalDomain.Folder {
		return &journalDomain.Folder{
			ID: r.ID, Name: r.Primary, Description: r.Secondary, DataKey: r.DataKey, CreatedAt: r.CreatedAt,
		}
	},
}

var goalTable = recordTable[journalDomain.Goal]{
	name: "goals",
	columns: `id, encrypted_goal, goal_iv, encrypted_description, description_iv,
	encrypted_data_key, data_key_iv, algorithm, created_at`,
	notFound: journalDomain.ErrGoalNotFound,
	toRecord: func(g *journalDomain.Goal) sealedRecord {
		return sealedRecord{ID: g.ID, Primary: g.Title, Secondary: g.Description, DataKey: g.DataKey, CreatedAt: g.CreatedAt}
	},
	fromRecord: func(r sealedRecord) *journalDomain.Goal {
		return &journalDomain.Goal{
			ID: r.ID, Title: r.Primary, Description: r.Secondary, DataKey: r.DataKey, CreatedAt: r.CreatedAt,
		}
	},
}

// idCodec converts ids to and from the driver's column representation.
type idCodec struct {
	encode func(uuid.UUID) (any, error)
	// scanTarget returns a destination for Scan and a function reading the id back.
	scanTarget func() (any, func() (uuid.UUID, error))
}

var postgresIDs = idCodec{
	encode: func(id uuid.UUID) (any, error) { return id, nil },
	scanTarget: func() (any, func() (uuid.UUID, error)) {
		var id uuid.UUID
		return &id, func() (uuid.UUID, error) { return id, nil }
	},
}

var mysqlIDs = idCodec{
	encode: func(id uuid.UUID) (any, error) { return marshalID(id) },
	scanTarget: func() (any, func() (uuid.UUID, error)) {
		var b []byte
		return &b, func() (uuid.UUID, error) { return unmarshalID(b) }
	},
}

// recordStore runs the folder and goal queries for one SQL dialect.
type recordStore[T any] struct {
	db           *sql.DB
	table        recordTable[T]
	ids          idCodec
	placeholders func(n int) []string
}

func postgresPlaceholders(n int) []string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", i+1)
	}
	return p
}

func mysqlPlaceholders(n int) []string {
	p := make([]string, n)
	for i := range p {
		p[i] = "?"
	}
	return p
}

func (s recordStore[T]) create(ctx context.Context, item *T) error {
	querier := database.GetTx(ctx, s.db)
	record := s.table.toRecord(item)

	id, err := s.ids.encode(record.ID)
	if err != nil {
		return err
	}

	p := s.placeholders(9)
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)`,
		s.table.name, s.table.columns, p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[7], p[8],
	)

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		record.Primary.Ciphertext,
		record.Primary.IV,
		nullString(record.Secondary.Ciphertext),
		nullString(record.Secondary.IV),
		record.DataKey.Ciphertext,
		record.DataKey.IV,
		record.DataKey.Algorithm,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create "+s.table.name)
	}
	return nil
}

func (s recordStore[T]) getByID(ctx context.Context, id uuid.UUID) (*T, error) {
	querier := database.GetTx(ctx, s.db)

	encoded, err := s.ids.encode(id)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = %s`, s.table.columns, s.table.name, s.placeholders(1)[0])

	record, err := s.scan(querier.QueryRowContext(ctx, query, encoded))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.table.notFound
		}
		return nil, apperrors.Wrap(err, "failed to get "+s.table.name)
	}
	return s.table.fromRecord(record), nil
}

func (s recordStore[T]) list(ctx context.Context) ([]*T, error) {
	querier := database.GetTx(ctx, s.db)

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at ASC`, s.table.columns, s.table.name)

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list "+s.table.name)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []*T
	for rows.Next() {
		record, err := s.scan(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan "+s.table.name)
		}
		items = append(items, s.table.fromRecord(record))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to list "+s.table.name)
	}
	return items, nil
}

func (s recordStore[T]) scan(row scanner) (sealedRecord, error) {
	var record sealedRecord
	var secondary, secondaryIV sql.NullString
	idDest, readID := s.ids.scanTarget()

	err := row.Scan(
		idDest,
		&record.Primary.Ciphertext,
		&record.Primary.IV,
		&secondary,
		&secondaryIV,
		&record.DataKey.Ciphertext,
		&record.DataKey.IV,
		&record.DataKey.Algorithm,
		&record.CreatedAt,
	)
	if err != nil {
		return sealedRecord{}, err
	}

	if record.ID, err = readID(); err != nil {
		return sealedRecord{}, err
	}
	record.Secondary = optionalBlob(secondary, secondaryIV)
	return record, nil
}
