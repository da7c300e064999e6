package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	cryptoService "github.com/allisson/journal/internal/crypto/service"
	apperrors "github.com/allisson/journal/internal/errors"
	sessionDomain "github.com/allisson/journal/internal/session/domain"
)

// DefaultPollInterval is how often the auto-lock poller compares idle time to the timeout.
const DefaultPollInterval = 30 * time.Second

// Config holds the session settings.
type Config struct {
	AutoLockEnabled bool
	AutoLockTimeout time.Duration
	PollInterval    time.Duration
	KeyCheckEnabled bool
}

// Option customizes a Session.
type Option func(*Session)

// WithClock replaces time.Now. Used by tests to move the idle clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithKeyCheckRepository enables verification of the derived key against a stored reference.
func WithKeyCheckRepository(repo KeyCheckRepository) Option {
	return func(s *Session) {
		s.keyChecks = repo
	}
}

// Session is the single owner and single writer of the master key.
//
// State transitions happen under mu. Wrap and unwrap hold the read lock for the
// whole cipher call, so Lock waits for in-flight operations and never zeroes a
// key that is still in use. generation increments on every transition out of
// Unlocking so a slow unlock that lost a race with Lock or EndSession is discarded.
type Session struct {
	kdf       cryptoService.KeyDeriver
	envelope  cryptoService.EnvelopeCrypto
	keyChecks KeyCheckRepository
	logger    *slog.Logger
	now       func() time.Time

	keyCheckEnabled bool
	pollInterval    time.Duration

	mu              sync.RWMutex
	state           sessionDomain.State
	masterKey       *cryptoDomain.MasterKey
	generation      uint64
	lastActivity    time.Time
	unlockedAt      time.Time
	autoLockEnabled bool
	autoLockTimeout time.Duration

	pollerID   uint64
	pollerStop chan struct{}
	pollers    sync.WaitGroup
}

// NewSession creates a Locked session.
func NewSession(
	kdf cryptoService.KeyDeriver,
	envelope cryptoService.EnvelopeCrypto,
	cfg Config,
	logger *slog.Logger,
	opts ...Option,
) *Session {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	s := &Session{
		kdf:             kdf,
		envelope:        envelope,
		logger:          logger,
		now:             time.Now,
		keyCheckEnabled: cfg.KeyCheckEnabled,
		pollInterval:    pollInterval,
		state:           sessionDomain.StateLocked,
		autoLockEnabled: cfg.AutoLockEnabled && cfg.AutoLockTimeout > 0,
		autoLockTimeout: cfg.AutoLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Unlock derives the master key and, when a key check repository is configured,
// verifies it against the identity's reference ciphertext.
//
// Calling Unlock while Unlocked replaces the current master key.
func (s *Session) Unlock(ctx context.Context, email, password string) error {
	email = sessionDomain.NormalizeEmail(email)

	s.mu.Lock()
	if s.state == sessionDomain.StateUnlocking {
		s.mu.Unlock()
		return sessionDomain.ErrUnlockInProgress
	}
	s.clearLocked()
	s.state = sessionDomain.StateUnlocking
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	masterKey, err := s.deriveAndVerify(ctx, email, password)
	if err != nil {
		s.abortUnlock(generation)
		s.logger.Info("session unlock failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation || s.state != sessionDomain.StateUnlocking {
		masterKey.Destroy()
		return apperrors.Wrap(sessionDomain.ErrSessionLocked, "session was locked during unlock")
	}
	if err := ctx.Err(); err != nil {
		masterKey.Destroy()
		s.state = sessionDomain.StateLocked
		s.generation++
		return err
	}

	now := s.now()
	s.masterKey = masterKey
	s.state = sessionDomain.StateUnlocked
	s.lastActivity = now
	s.unlockedAt = now
	s.restartPollerLocked()

	s.logger.Info("session unlocked", slog.Bool("auto_lock_enabled", s.autoLockEnabled))
	return nil
}

func (s *Session) deriveAndVerify(
	ctx context.Context,
	email, password string,
) (*cryptoDomain.MasterKey, error) {
	masterKey, err := s.kdf.DeriveMasterKey(email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sessionDomain.ErrInvalidCredentials, err)
	}

	if !s.keyCheckEnabled || s.keyChecks == nil {
		return masterKey, nil
	}

	if err := s.verifyKey(ctx, sessionDomain.Identity(email), masterKey); err != nil {
		masterKey.Destroy()
		return nil, err
	}
	return masterKey, nil
}

// verifyKey stores a fresh reference on first use and checks it afterwards.
func (s *Session) verifyKey(ctx context.Context, identity string, masterKey *cryptoDomain.MasterKey) error {
	keyCheck, err := s.keyChecks.Get(ctx, identity)
	if err != nil && !apperrors.Is(err, sessionDomain.ErrKeyCheckNotFound) {
		return err
	}

	if keyCheck != nil {
		probe, err := s.envelope.DecryptKey(keyCheck.WrappedKey, masterKey)
		if err != nil {
			if apperrors.Is(err, cryptoDomain.ErrDecryptionFailed) {
				return sessionDomain.ErrInvalidCredentials
			}
			return err
		}
		probe.Destroy()
		return nil
	}

	probe, err := s.envelope.GenerateDataKey()
	if err != nil {
		return err
	}
	defer probe.Destroy()

	wrapped, err := s.envelope.EncryptKey(probe, masterKey)
	if err != nil {
		return err
	}

	return s.keyChecks.Create(ctx, &sessionDomain.KeyCheck{
		Identity:   identity,
		WrappedKey: wrapped,
		CreatedAt:  s.now().UTC(),
	})
}

func (s *Session) abortUnlock(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation == generation && s.state == sessionDomain.StateUnlocking {
		s.state = sessionDomain.StateLocked
		s.generation++
	}
}

// Lock clears the master key. Locking a locked session is a no-op.
func (s *Session) Lock() {
	s.transitionToLocked("manual")
}

// EndSession forces Locked, aborting an unlock in progress.
func (s *Session) EndSession() {
	s.transitionToLocked("session_ended")
}

func (s *Session) transitionToLocked(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == sessionDomain.StateLocked {
		return
	}
	s.clearLocked()
	s.generation++
	s.logger.Info("session locked", slog.String("reason", reason))
}

// clearLocked zeroes the master key and stops the poller. Callers hold mu.
func (s *Session) clearLocked() {
	s.stopPollerLocked()
	s.masterKey.Destroy()
	s.masterKey = nil
	s.state = sessionDomain.StateLocked
	s.lastActivity = time.Time{}
	s.unlockedAt = time.Time{}
}

// RecordActivity updates the last activity timestamp while Unlocked.
func (s *Session) RecordActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == sessionDomain.StateUnlocked {
		s.lastActivity = s.now()
	}
}

// SetAutoLock changes the idle timeout. The poller is restarted or cancelled accordingly.
func (s *Session) SetAutoLock(enabled bool, timeoutMinutes int) error {
	if enabled && timeoutMinutes <= 0 {
		return sessionDomain.ErrInvalidAutoLockTimeout
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.autoLockEnabled = enabled
	if enabled {
		s.autoLockTimeout = time.Duration(timeoutMinutes) * time.Minute
	}
	s.restartPollerLocked()

	s.logger.Info("auto-lock updated",
		slog.Bool("enabled", enabled),
		slog.Int("timeout_minutes", timeoutMinutes))
	return nil
}

// State returns a snapshot of the session.
func (s *Session) State() sessionDomain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := sessionDomain.Status{
		State:           s.state,
		AutoLockEnabled: s.autoLockEnabled,
		AutoLockTimeout: s.autoLockTimeout,
	}
	if s.state == sessionDomain.StateUnlocked {
		lastActivity, unlockedAt := s.lastActivity, s.unlockedAt
		status.LastActivityAt = &lastActivity
		status.UnlockedAt = &unlockedAt
	}
	return status
}

// EnsureUnlocked lets callers fail fast before touching the record store.
func (s *Session) EnsureUnlocked() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != sessionDomain.StateUnlocked {
		return sessionDomain.ErrSessionLocked
	}
	return nil
}

// WrapDataKey wraps a data key under the master key.
func (s *Session) WrapDataKey(
	ctx context.Context,
	dataKey *cryptoDomain.DataKey,
) (cryptoDomain.WrappedKey, error) {
	if err := ctx.Err(); err != nil {
		return cryptoDomain.WrappedKey{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != sessionDomain.StateUnlocked {
		return cryptoDomain.WrappedKey{}, sessionDomain.ErrSessionLocked
	}
	return s.envelope.EncryptKey(dataKey, s.masterKey)
}

// UnwrapDataKey unwraps a data key with the master key.
func (s *Session) UnwrapDataKey(
	ctx context.Context,
	wrapped cryptoDomain.WrappedKey,
) (*cryptoDomain.DataKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != sessionDomain.StateUnlocked {
		return nil, sessionDomain.ErrSessionLocked
	}
	return s.envelope.DecryptKey(wrapped, s.masterKey)
}

// Close locks the session and waits for the auto-lock poller to exit.
func (s *Session) Close() {
	s.transitionToLocked("shutdown")
	s.pollers.Wait()
}

// restartPollerLocked stops any running poller and starts a new one when the
// session is Unlocked with auto-lock enabled. Callers hold mu.
func (s *Session) restartPollerLocked() {
	s.stopPollerLocked()

	if s.state != sessionDomain.StateUnlocked || !s.autoLockEnabled {
		return
	}

	s.pollerID++
	stop := make(chan struct{})
	s.pollerStop = stop

	s.pollers.Add(1)
	go s.poll(s.pollerID, stop)
}

// stopPollerLocked is idempotent. It does not wait for the goroutine because the
// poller may itself be blocked on mu. Callers hold mu.
func (s *Session) stopPollerLocked() {
	if s.pollerStop != nil {
		close(s.pollerStop)
		s.pollerStop = nil
	}
}

func (s *Session) poll(id uint64, stop <-chan struct{}) {
	defer s.pollers.Done()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if s.lockIfIdle(id) {
				return
			}
		}
	}
}

// lockIfIdle reports whether the poller should exit.
func (s *Session) lockIfIdle(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.pollerID || s.pollerStop == nil {
		return true
	}
	if s.state != sessionDomain.StateUnlocked {
		return true
	}

	idle := s.now().Sub(s.lastActivity)
	if idle < s.autoLockTimeout {
		return false
	}

	s.clearLocked()
	s.generation++
	s.logger.Info("session locked",
		slog.String("reason", "auto_lock"),
		slog.Duration("idle", idle))
	return true
}
