package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	"github.com/allisson/journal/internal/metrics"
	sessionDomain "github.com/allisson/journal/internal/session/domain"
)

const metricsDomain = "session"

// sessionUseCaseWithMetrics decorates SessionUseCase with business metrics.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics instrumentation.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	s.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	s.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (s *sessionUseCaseWithMetrics) Unlock(ctx context.Context, email, password string) error {
	start := time.Now()
	err := s.next.Unlock(ctx, email, password)
	s.record(ctx, "session_unlock", start, err)
	return err
}

func (s *sessionUseCaseWithMetrics) Lock() {
	start := time.Now()
	s.next.Lock()
	s.record(context.Background(), "session_lock", start, nil)
}

func (s *sessionUseCaseWithMetrics) EndSession() {
	start := time.Now()
	s.next.EndSession()
	s.record(context.Background(), "session_end", start, nil)
}

func (s *sessionUseCaseWithMetrics) SetAutoLock(enabled bool, timeoutMinutes int) error {
	start := time.Now()
	err := s.next.SetAutoLock(enabled, timeoutMinutes)
	s.record(context.Background(), "session_set_auto_lock", start, err)
	return err
}

func (s *sessionUseCaseWithMetrics) WrapDataKey(
	ctx context.Context,
	dataKey *cryptoDomain.DataKey,
) (cryptoDomain.WrappedKey, error) {
	start := time.Now()
	wrapped, err := s.next.WrapDataKey(ctx, dataKey)
	s.record(ctx, "data_key_wrap", start, err)
	return wrapped, err
}

func (s *sessionUseCaseWithMetrics) UnwrapDataKey(
	ctx context.Context,
	wrapped cryptoDomain.WrappedKey,
) (*cryptoDomain.DataKey, error) {
	start := time.Now()
	dataKey, err := s.next.UnwrapDataKey(ctx, wrapped)
	s.record(ctx, "data_key_unwrap", start, err)
	return dataKey, err
}

func (s *sessionUseCaseWithMetrics) EnsureUnlocked() error {
	return s.next.EnsureUnlocked()
}

func (s *sessionUseCaseWithMetrics) RecordActivity() {
	s.next.RecordActivity()
}

func (s *sessionUseCaseWithMetrics) State() sessionDomain.Status {
	return s.next.State()
}
