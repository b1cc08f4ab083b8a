package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

type entryService struct {
	entries repository.TimeEntryRepo
	tasks   repository.TaskRepo
	uow     db.UnitOfWork
	checks  RemoteChecks
	obs     UseCaseObserver
	now     func() time.Time
}

// NewEntryService creates the entry use-case service. The validator's
// remote checks are wired to the store's authoritative procedures.
func NewEntryService(entries repository.TimeEntryRepo, tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) EntryService {
	checks := RemoteChecks{
		Overlap:      entries.CheckOverlap,
		MonthlyLimit: entries.CheckMonthlyLimit,
	}
	return NewEntryServiceWithChecks(entries, tasks, uow, checks, observers...)
}

// NewEntryServiceWithChecks creates the entry service with explicit remote
// checks, letting tests substitute deterministic fakes for the overlap and
// quota procedures.
func NewEntryServiceWithChecks(entries repository.TimeEntryRepo, tasks repository.TaskRepo, uow db.UnitOfWork, checks RemoteChecks, observers ...UseCaseObserver) EntryService {
	return &entryService{
		entries: entries,
		tasks:   tasks,
		uow:     uow,
		checks:  checks,
		obs:     useCaseObserverOrNoop(observers),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Log validates the candidate and persists it. Validation failures leave no
// effects; the candidate either passes every check and is stored whole, or
// nothing happens.
func (s *entryService) Log(ctx context.Context, c domain.Candidate) (*domain.TimeEntry, error) {
	started := s.now()

	if err := ValidateCandidate(ctx, c, s.now(), s.checks); err != nil {
		s.observe(ctx, started, err)
		return nil, err
	}

	entry := c.Entry(s.now())
	entry.ID = uuid.New().String()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTimeEntryRepo(tx).Create(ctx, entry)
	})
	if err != nil {
		err = &domain.PersistenceError{Op: "saving time entry", Err: err}
		s.observe(ctx, started, err)
		return nil, err
	}

	// Refresh the task's logged-time aggregate. Fire-and-forget: a failure
	// here must not undo an already-persisted entry, so it is only logged.
	if entry.TaskID != "" {
		if err := s.tasks.RecomputeLoggedSeconds(ctx, entry.TaskID); err != nil {
			s.obs.ObserveUseCase(ctx, UseCaseEvent{
				Name:    "recompute_task_hours",
				Success: false,
				Err:     err,
				Fields:  map[string]any{"task_id": entry.TaskID},
			})
		}
	}

	s.observe(ctx, started, nil)
	return entry, nil
}

func (s *entryService) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.TimeEntry, error) {
	return s.entries.ListByUser(ctx, userID, limit)
}

func (s *entryService) observe(ctx context.Context, started time.Time, err error) {
	s.obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:     "log_entry",
		Duration: s.now().Sub(started),
		Success:  err == nil,
		Err:      err,
	})
}
