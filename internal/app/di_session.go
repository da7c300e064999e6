package app

import (
	"fmt"
	"sync"

	"github.com/allisson/journal/internal/database"
	"github.com/allisson/journal/internal/metrics"
	sessionDomain "github.com/allisson/journal/internal/session/domain"
	sessionHTTP "github.com/allisson/journal/internal/session/http"
	sessionRepository "github.com/allisson/journal/internal/session/repository"
	sessionUseCase "github.com/allisson/journal/internal/session/usecase"
)

type sessionComponents struct {
	keyCheckRepo sessionUseCase.KeyCheckRepository
	session      *sessionUseCase.Session
	useCase      sessionUseCase.SessionUseCase
	handler      *sessionHTTP.SessionHandler

	keyCheckRepoInit sync.Once
	sessionInit      sync.Once
	useCaseInit      sync.Once
	handlerInit      sync.Once
}

// KeyCheckRepository returns the key check store for the configured driver.
func (c *Container) KeyCheckRepository() (sessionUseCase.KeyCheckRepository, error) {
	err := c.once(&c.session.keyCheckRepoInit, "keyCheckRepository", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for key check repository: %w", err)
		}
		switch c.config.DBDriver {
		case database.DriverMySQL:
			c.session.keyCheckRepo = sessionRepository.NewMySQLKeyCheckRepository(db)
		case database.DriverPostgres:
			c.session.keyCheckRepo = sessionRepository.NewPostgreSQLKeyCheckRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.session.keyCheckRepo, nil
}

// Session returns the process-wide journal session. It starts Locked.
func (c *Container) Session() (*sessionUseCase.Session, error) {
	err := c.once(&c.session.sessionInit, "session", func() error {
		session, err := c.initSession()
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.session.session = session
		c.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.session.session, nil
}

// SessionUseCase returns the session, wrapped with metrics when enabled.
func (c *Container) SessionUseCase() (sessionUseCase.SessionUseCase, error) {
	err := c.once(&c.session.useCaseInit, "sessionUseCase", func() error {
		session, err := c.Session()
		if err != nil {
			return err
		}
		if !c.config.MetricsEnabled {
			c.session.useCase = session
			return nil
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for session: %w", err)
		}
		c.session.useCase = sessionUseCase.NewSessionUseCaseWithMetrics(session, businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.session.useCase, nil
}

// SessionHandler returns the HTTP handler for the session endpoints.
func (c *Container) SessionHandler() (*sessionHTTP.SessionHandler, error) {
	err := c.once(&c.session.handlerInit, "sessionHandler", func() error {
		useCase, err := c.SessionUseCase()
		if err != nil {
			return err
		}
		c.session.handler = sessionHTTP.NewSessionHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.session.handler, nil
}

func (c *Container) initSession() (*sessionUseCase.Session, error) {
	envelope, err := c.Envelope()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope for session: %w", err)
	}

	var opts []sessionUseCase.Option
	if c.config.KeyCheckEnabled {
		keyChecks, err := c.KeyCheckRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get key check repository for session: %w", err)
		}
		opts = append(opts, sessionUseCase.WithKeyCheckRepository(keyChecks))
	}

	session := sessionUseCase.NewSession(
		c.KeyDeriver(),
		envelope,
		sessionUseCase.Config{
			AutoLockEnabled: c.config.AutoLockEnabled,
			AutoLockTimeout: c.config.AutoLockTimeout,
			PollInterval:    c.config.AutoLockPollInterval,
			KeyCheckEnabled: c.config.KeyCheckEnabled,
		},
		c.Logger(),
		opts...,
	)

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for session: %w", err)
	}
	if provider != nil {
		err := metrics.RegisterSessionStateGauge(provider.MeterProvider(), c.config.MetricsNamespace, func() int64 {
			if session.State().State == sessionDomain.StateUnlocked {
				return 1
			}
			return 0
		})
		if err != nil {
			session.Close()
			return nil, err
		}
	}

	return session, nil
}
