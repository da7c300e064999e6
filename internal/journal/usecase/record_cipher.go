package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	cryptoService "github.com/allisson/journal/internal/crypto/service"
	apperrors "github.com/allisson/journal/internal/errors"
	sessionUseCase "github.com/allisson/journal/internal/session/usecase"
)

// recordCipher seals and opens the fields of one record under that record's
// own data key. The plaintext data key never outlives a single call.
type recordCipher struct {
	keys     sessionUseCase.KeyGuard
	envelope cryptoService.EnvelopeCrypto
}

// seal generates a fresh data key, wraps it through the session and encrypts
// each field with it. Blobs are returned in field order.
func (r recordCipher) seal(
	ctx context.Context,
	fields ...string,
) (cryptoDomain.WrappedKey, []cryptoDomain.EncryptedBlob, error) {
	dataKey, err := r.envelope.GenerateDataKey()
	if err != nil {
		return cryptoDomain.WrappedKey{}, nil, err
	}
	defer dataKey.Destroy()

	wrapped, err := r.keys.WrapDataKey(ctx, dataKey)
	if err != nil {
		return cryptoDomain.WrappedKey{}, nil, err
	}

	blobs := make([]cryptoDomain.EncryptedBlob, len(fields))
	for i, field := range fields {
		blob, err := r.envelope.EncryptText(field, dataKey)
		if err != nil {
			return cryptoDomain.WrappedKey{}, nil, err
		}
		blobs[i] = blob
	}

	return wrapped, blobs, nil
}

// open unwraps the record's data key and decrypts each blob in order.
func (r recordCipher) open(
	ctx context.Context,
	wrapped cryptoDomain.WrappedKey,
	blobs ...cryptoDomain.EncryptedBlob,
) ([]string, error) {
	dataKey, err := r.keys.UnwrapDataKey(ctx, wrapped)
	if err != nil {
		return nil, err
	}
	defer dataKey.Destroy()

	fields := make([]string, len(blobs))
	for i, blob := range blobs {
		plaintext, err := r.envelope.DecryptText(blob, dataKey)
		if err != nil {
			return nil, err
		}
		fields[i] = plaintext
	}

	return fields, nil
}

// openEach decrypts records in order with open. Records that fail to decrypt
// are logged under kind and dropped; any other error aborts.
func openEach[R, D any](
	ctx context.Context,
	logger *slog.Logger,
	kind string,
	records []R,
	idOf func(R) uuid.UUID,
	open func(context.Context, R) (D, error),
) ([]D, error) {
	opened := make([]D, 0, len(records))
	for _, record := range records {
		item, err := open(ctx, record)
		if err != nil {
			if apperrors.Is(err, cryptoDomain.ErrDecryptionFailed) {
				logger.Warn(kind+" decryption failed", slog.String(kind+"_id", idOf(record).String()))
				continue
			}
			return nil, err
		}
		opened = append(opened, item)
	}
	return opened, nil
}
