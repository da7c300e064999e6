package app

import (
	"fmt"
	"sync"

	"github.com/allisson/journal/internal/database"
	journalHTTP "github.com/allisson/journal/internal/journal/http"
	journalRepository "github.com/allisson/journal/internal/journal/repository"
	journalUseCase "github.com/allisson/journal/internal/journal/usecase"
)

type journalComponents struct {
	entryRepo  journalUseCase.EntryRepository
	folderRepo journalUseCase.FolderRepository
	goalRepo   journalUseCase.GoalRepository

	entryUseCase  journalUseCase.EntryUseCase
	folderUseCase journalUseCase.FolderUseCase
	goalUseCase   journalUseCase.GoalUseCase

	entryHandler  *journalHTTP.EntryHandler
	folderHandler *journalHTTP.FolderHandler
	goalHandler   *journalHTTP.GoalHandler

	reposInit         sync.Once
	entryUseCaseInit  sync.Once
	folderUseCaseInit sync.Once
	goalUseCaseInit   sync.Once
	handlersInit      sync.Once
}

func (c *Container) initJournalRepositories() error {
	return c.once(&c.journal.reposInit, "journalRepositories", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for journal repositories: %w", err)
		}
		switch c.config.DBDriver {
		case database.DriverMySQL:
			c.journal.entryRepo = journalRepository.NewMySQLEntryRepository(db)
			c.journal.folderRepo = journalRepository.NewMySQLFolderRepository(db)
			c.journal.goalRepo = journalRepository.NewMySQLGoalRepository(db)
		case database.DriverPostgres:
			c.journal.entryRepo = journalRepository.NewPostgreSQLEntryRepository(db)
			c.journal.folderRepo = journalRepository.NewPostgreSQLFolderRepository(db)
			c.journal.goalRepo = journalRepository.NewPostgreSQLGoalRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
}

// EntryRepository returns the entry store for the configured driver.
func (c *Container) EntryRepository() (journalUseCase.EntryRepository, error) {
	if err := c.initJournalRepositories(); err != nil {
		return nil, err
	}
	return c.journal.entryRepo, nil
}

// FolderRepository returns the folder store for the configured driver.
func (c *Container) FolderRepository() (journalUseCase.FolderRepository, error) {
	if err := c.initJournalRepositories(); err != nil {
		return nil, err
	}
	return c.journal.folderRepo, nil
}

// GoalRepository returns the goal store for the configured driver.
func (c *Container) GoalRepository() (journalUseCase.GoalRepository, error) {
	if err := c.initJournalRepositories(); err != nil {
		return nil, err
	}
	return c.journal.goalRepo, nil
}

// EntryUseCase returns the entry use case.
func (c *Container) EntryUseCase() (journalUseCase.EntryUseCase, error) {
	err := c.once(&c.journal.entryUseCaseInit, "entryUseCase", func() error {
		txManager, err := c.TxManager()
		if err != nil {
			return fmt.Errorf("failed to get tx manager for entry use case: %w", err)
		}
		entryRepo, err := c.EntryRepository()
		if err != nil {
			return fmt.Errorf("failed to get entry repository for entry use case: %w", err)
		}
		keys, err := c.SessionUseCase()
		if err != nil {
			return fmt.Errorf("failed to get session for entry use case: %w", err)
		}
		envelope, err := c.Envelope()
		if err != nil {
			return fmt.Errorf("failed to get envelope for entry use case: %w", err)
		}

		decryptor := journalUseCase.NewThreadDecryptor(keys, envelope, c.Logger())
		useCase := journalUseCase.NewEntryUseCase(txManager, entryRepo, keys, envelope, decryptor)

		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				return fmt.Errorf("failed to get business metrics for entry use case: %w", err)
			}
			useCase = journalUseCase.NewEntryUseCaseWithMetrics(useCase, businessMetrics)
		}
		c.journal.entryUseCase = useCase
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.journal.entryUseCase, nil
}

// FolderUseCase returns the folder use case.
func (c *Container) FolderUseCase() (journalUseCase.FolderUseCase, error) {
	err := c.once(&c.journal.folderUseCaseInit, "folderUseCase", func() error {
		folderRepo, err := c.FolderRepository()
		if err != nil {
			return fmt.Errorf("failed to get folder repository for folder use case: %w", err)
		}
		keys, err := c.SessionUseCase()
		if err != nil {
			return fmt.Errorf("failed to get session for folder use case: %w", err)
		}
		envelope, err := c.Envelope()
		if err != nil {
			return fmt.Errorf("failed to get envelope for folder use case: %w", err)
		}

		useCase := journalUseCase.NewFolderUseCase(folderRepo, keys, envelope, c.Logger())
		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				return fmt.Errorf("failed to get business metrics for folder use case: %w", err)
			}
			useCase = journalUseCase.NewFolderUseCaseWithMetrics(useCase, businessMetrics)
		}
		c.journal.folderUseCase = useCase
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.journal.folderUseCase, nil
}

// GoalUseCase returns the goal use case.
func (c *Container) GoalUseCase() (journalUseCase.GoalUseCase, error) {
	err := c.once(&c.journal.goalUseCaseInit, "goalUseCase", func() error {
		goalRepo, err := c.GoalRepository()
		if err != nil {
			return fmt.Errorf("failed to get goal repository for goal use case: %w", err)
		}
		keys, err := c.SessionUseCase()
		if err != nil {
			return fmt.Errorf("failed to get session for goal use case: %w", err)
		}
		envelope, err := c.Envelope()
		if err != nil {
			return fmt.Errorf("failed to get envelope for goal use case: %w", err)
		}

		useCase := journalUseCase.NewGoalUseCase(goalRepo, keys, envelope, c.Logger())
		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				return fmt.Errorf("failed to get business metrics for goal use case: %w", err)
			}
			useCase = journalUseCase.NewGoalUseCaseWithMetrics(useCase, businessMetrics)
		}
		c.journal.goalUseCase = useCase
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.journal.goalUseCase, nil
}

func (c *Container) initJournalHandlers() error {
	return c.once(&c.journal.handlersInit, "journalHandlers", func() error {
		entries, err := c.EntryUseCase()
		if err != nil {
			return err
		}
		folders, err := c.FolderUseCase()
		if err != nil {
			return err
		}
		goals, err := c.GoalUseCase()
		if err != nil {
			return err
		}

		logger := c.Logger()
		c.journal.entryHandler = journalHTTP.NewEntryHandler(entries, logger)
		c.journal.folderHandler = journalHTTP.NewFolderHandler(folders, logger)
		c.journal.goalHandler = journalHTTP.NewGoalHandler(goals, logger)
		return nil
	})
}

// EntryHandler returns the HTTP handler for entries.
func (c *Container) EntryHandler() (*journalHTTP.EntryHandler, error) {
	if err := c.initJournalHandlers(); err != nil {
		return nil, err
	}
	return c.journal.entryHandler, nil
}

// FolderHandler returns the HTTP handler for folders.
func (c *Container) FolderHandler() (*journalHTTP.FolderHandler, error) {
	if err := c.initJournalHandlers(); err != nil {
		return nil, err
	}
	return c.journal.folderHandler, nil
}

// GoalHandler returns the HTTP handler for goals.
func (c *Container) GoalHandler() (*journalHTTP.GoalHandler, error) {
	if err := c.initJournalHandlers(); err != nil {
		return nil, err
	}
	return c.journal.goalHandler, nil
}
