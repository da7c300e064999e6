package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	cryptoService "github.com/allisson/journal/internal/crypto/service"
	apperrors "github.com/allisson/journal/internal/errors"
	sessionDomain "github.com/allisson/journal/internal/session/domain"
	sessionUseCase "github.com/allisson/journal/internal/session/usecase"
)

// CredentialCheck is the outcome of verify-credentials.
type CredentialCheck string

const (
	CredentialsMatch       CredentialCheck = "match"
	CredentialsMismatch    CredentialCheck = "mismatch"
	CredentialsNoReference CredentialCheck = "no_reference"
)

// ErrCredentialsMismatch is returned when the derived key fails the stored key check.
var ErrCredentialsMismatch = errors.New("credentials do not match the stored key check")

// RunVerifyCredentials derives the master key for email and password and checks
// it against the stored key check without unlocking anything or writing a new
// reference. password is zeroed before returning.
func RunVerifyCredentials(
	ctx context.Context,
	kdf cryptoService.KeyDeriver,
	envelope cryptoService.EnvelopeCrypto,
	keyChecks sessionUseCase.KeyCheckRepository,
	logger *slog.Logger,
	writer io.Writer,
	email string,
	password []byte,
	format string,
) error {
	defer cryptoDomain.Zero(password)

	email = sessionDomain.NormalizeEmail(email)
	identity := sessionDomain.Identity(email)

	masterKey, err := kdf.DeriveMasterKey(email, string(password))
	if err != nil {
		return fmt.Errorf("failed to derive master key: %w", err)
	}
	defer masterKey.Destroy()

	result, err := checkCredentials(ctx, envelope, keyChecks, identity, masterKey)
	if err != nil {
		return err
	}

	logger.Info("credentials verified", slog.String("identity", identity), slog.String("result", string(result)))

	if format == "json" {
		if err := outputCredentialsJSON(writer, identity, result); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputCredentialsText(writer, result)
	}

	if result == CredentialsMismatch {
		return ErrCredentialsMismatch
	}
	return nil
}

func checkCredentials(
	ctx context.Context,
	envelope cryptoService.EnvelopeCrypto,
	keyChecks sessionUseCase.KeyCheckRepository,
	identity string,
	masterKey *cryptoDomain.MasterKey,
) (CredentialCheck, error) {
	keyCheck, err := keyChecks.Get(ctx, identity)
	if apperrors.Is(err, sessionDomain.ErrKeyCheckNotFound) {
		return CredentialsNoReference, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load key check: %w", err)
	}

	probe, err := envelope.DecryptKey(keyCheck.WrappedKey, masterKey)
	if apperrors.Is(err, cryptoDomain.ErrDecryptionFailed) {
		return CredentialsMismatch, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to verify key check: %w", err)
	}
	probe.Destroy()
	return CredentialsMatch, nil
}

func outputCredentialsText(writer io.Writer, result CredentialCheck) {
	switch result {
	case CredentialsMatch:
		_, _ = fmt.Fprintln(writer, "Credentials match the stored key check.")
	case CredentialsMismatch:
		_, _ = fmt.Fprintln(writer, "Credentials do NOT match the stored key check.")
	case CredentialsNoReference:
		_, _ = fmt.Fprintln(writer, "No key check stored for this email. The first unlock will create one.")
	}
}

func outputCredentialsJSON(writer io.Writer, identity string, result CredentialCheck) error {
	jsonBytes, err := json.MarshalIndent(map[string]any{
		"identity": identity,
		"result":   result,
		"match":    result == CredentialsMatch,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
