package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	journalDomain "github.com/allisson/journal/internal/journal/domain"
	"github.com/allisson/journal/internal/metrics"
)

const metricsDomain = "journal"

func recordMetrics(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	m.RecordOperation(ctx, metricsDomain, operation, status)
	m.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// entryUseCaseWithMetrics decorates EntryUseCase with business metrics.
type entryUseCaseWithMetrics struct {
	next    EntryUseCase
	metrics metrics.BusinessMetrics
}

// NewEntryUseCaseWithMetrics wraps an EntryUseCase with metrics instrumentation.
func NewEntryUseCaseWithMetrics(useCase EntryUseCase, m metrics.BusinessMetrics) EntryUseCase {
	return &entryUseCaseWithMetrics{next: useCase, metrics: m}
}

func (e *entryUseCaseWithMetrics) Create(
	ctx context.Context,
	content, prompt string,
	parentID *uuid.UUID,
) (*journalDomain.Entry, error) {
	start := time.Now()
	entry, err := e.next.Create(ctx, content, prompt, parentID)
	recordMetrics(ctx, e.metrics, "entry_create", start, err)
	return entry, err
}

func (e *entryUseCaseWithMetrics) GetThread(
	ctx context.Context,
	id uuid.UUID,
	policy journalDomain.DecryptPolicy,
) (*journalDomain.ThreadNode, error) {
	start := time.Now()
	tree, err := e.next.GetThread(ctx, id, policy)
	recordMetrics(ctx, e.metrics, "entry_get_thread", start, err)
	return tree, err
}

func (e *entryUseCaseWithMetrics) ListHistory(
	ctx context.Context,
	offset, limit int,
) ([]*journalDomain.ThreadNode, error) {
	start := time.Now()
	history, err := e.next.ListHistory(ctx, offset, limit)
	recordMetrics(ctx, e.metrics, "entry_list_history", start, err)
	return history, err
}

func (e *entryUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := e.next.Delete(ctx, id)
	recordMetrics(ctx, e.metrics, "entry_delete", start, err)
	return err
}

// folderUseCaseWithMetrics decorates FolderUseCase with business metrics.
type folderUseCaseWithMetrics struct {
	next    FolderUseCase
	metrics metrics.BusinessMetrics
}

// NewFolderUseCaseWithMetrics wraps a FolderUseCase with metrics instrumentation.
func NewFolderUseCaseWithMetrics(useCase FolderUseCase, m metrics.BusinessMetrics) FolderUseCase {
	return &folderUseCaseWithMetrics{next: useCase, metrics: m}
}

func (f *folderUseCaseWithMetrics) Create(
	ctx context.Context,
	name, description string,
) (*journalDomain.DecryptedFolder, error) {
	start := time.Now()
	folder, err := f.next.Create(ctx, name, description)
	recordMetrics(ctx, f.metrics, "folder_create", start, err)
	return folder, err
}

func (f *folderUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*journalDomain.DecryptedFolder, error) {
	start := time.Now()
	folder, err := f.next.Get(ctx, id)
	recordMetrics(ctx, f.metrics, "folder_get", start, err)
	return folder, err
}

func (f *folderUseCaseWithMetrics) List(ctx context.Context) ([]*journalDomain.DecryptedFolder, error) {
	start := time.Now()
	folders, err := f.next.List(ctx)
	recordMetrics(ctx, f.metrics, "folder_list", start, err)
	return folders, err
}

// goalUseCaseWithMetrics decorates GoalUseCase with business metrics.
type goalUseCaseWithMetrics struct {
	next    GoalUseCase
	metrics metrics.BusinessMetrics
}

// NewGoalUseCaseWithMetrics wraps a GoalUseCase with metrics instrumentation.
func NewGoalUseCaseWithMetrics(useCase GoalUseCase, m metrics.BusinessMetrics) GoalUseCase {
	return &goalUseCaseWithMetrics{next: useCase, metrics: m}
}

func (g *goalUseCaseWithMetrics) Create(
	ctx context.Context,
	title, description string,
) (*journalDomain.DecryptedGoal, error) {
	start := time.Now()
	goal, err := g.next.Create(ctx, title, description)
	recordMetrics(ctx, g.metrics, "goal_create", start, err)
	return goal, err
}

func (g *goalUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*journalDomain.DecryptedGoal, error) {
	start := time.Now()
	goal, err := g.next.Get(ctx, id)
	recordMetrics(ctx, g.metrics, "goal_get", start, err)
	return goal, err
}

func (g *goalUseCaseWithMetrics) List(ctx context.Context) ([]*journalDomain.DecryptedGoal, error) {
	start := time.Now()
	goals, err := g.next.List(ctx)
	recordMetrics(ctx, g.metrics, "goal_list", start, err)
	return goals, err
}
