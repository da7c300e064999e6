// Package repository implements journal record persistence for PostgreSQL and MySQL.
//
// Records are stored exactly as produced by the use cases: every encrypted
// field is a base64 ciphertext column plus a base64 IV column, and each row
// carries its own wrapped data key. Optional fields are NULL when empty.
//
// PostgreSQL stores ids as native UUID; MySQL stores them as BINARY(16).
// All repositories are transaction-aware through database.GetTx.
package repository

import (
	"database/sql"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	apperrors "github.com/allisson/journal/internal/errors"
)

type scanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func optionalBlob(ciphertext, iv sql.NullString) cryptoDomain.EncryptedBlob {
	return cryptoDomain.EncryptedBlob{Ciphertext: ciphertext.String, IV: iv.String}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func marshalID(id uuid.UUID) ([]byte, error) {
	b, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal id")
	}
	return b, nil
}

func unmarshalID(b []byte) (uuid.UUID, error) {
	var id uuid.UUID
	if err := id.UnmarshalBinary(b); err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to unmarshal id")
	}
	return id, nil
}
