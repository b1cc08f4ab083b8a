package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

type timesheetService struct {
	entries repository.TimeEntryRepo
	sheets  repository.TimesheetRepo
	tasks   repository.TaskRepo
	uow     db.UnitOfWork
	obs     UseCaseObserver
	now     func() time.Time
}

// NewTimesheetService creates the timesheet use-case service.
func NewTimesheetService(entries repository.TimeEntryRepo, sheets repository.TimesheetRepo, tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TimesheetService {
	return &timesheetService{
		entries: entries,
		sheets:  sheets,
		tasks:   tasks,
		uow:     uow,
		obs:     useCaseObserverOrNoop(observers),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *timesheetService) ListEligibleEntries(ctx context.Context, userID string, weekStart time.Time) iter.Seq2[EligibleEntry, error] {
	weekStart = domain.WeekStartOf(weekStart)
	return func(yield func(EligibleEntry, error) bool) {
		orphans, err := s.entries.ListOrphaned(ctx, userID, weekStart)
		if err != nil {
			yield(EligibleEntry{}, &domain.PersistenceError{Op: "listing orphaned entries", Err: err})
			return
		}
		for _, e := range orphans {
			ee := EligibleEntry{Entry: e}
			if e.TaskID != "" {
				task, terr := s.tasks.GetByID(ctx, e.TaskID)
				switch {
				case terr == nil:
					ee.TaskCode = task.Code
					ee.TaskTitle = task.Title
				case !errors.Is(terr, repository.ErrNotFound):
					// A stale task reference just leaves the label blank;
					// a real storage fault stops the listing.
					yield(EligibleEntry{}, &domain.PersistenceError{Op: "resolving task", Err: terr})
					return
				}
			}
			if !yield(ee, nil) {
				return
			}
		}
	}
}

// Create materializes a timesheet from the selected entries. Header insert,
// association rows, and the written-back hour totals are one transaction: a
// failure at any step rolls the whole timesheet back, so a header can never
// exist without its associations or with stale zero totals.
func (s *timesheetService) Create(ctx context.Context, userID, orgID string, weekStart time.Time, selectedEntryIDs []string) (*domain.Timesheet, error) {
	started := s.now()
	if len(selectedEntryIDs) == 0 {
		s.observe(ctx, started, domain.ErrEmptySelection)
		return nil, domain.ErrEmptySelection
	}

	weekStart = domain.WeekStartOf(weekStart)
	now := s.now()
	ts := &domain.Timesheet{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		UserID:    userID,
		WeekStart: weekStart,
		WeekEnd:   domain.WeekEndOf(weekStart),
		Status:    domain.TimesheetDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSheets := repository.NewSQLiteTimesheetRepo(tx)
		txEntries := repository.NewSQLiteTimeEntryRepo(tx)

		// The selection may only claim the user's own unassigned entries of
		// this week; re-checked inside the transaction so a concurrent claim
		// cannot slip one through.
		orphans, err := txEntries.ListOrphaned(ctx, userID, weekStart)
		if err != nil {
			return err
		}
		eligible := make(map[string]bool, len(orphans))
		for _, e := range orphans {
			eligible[e.ID] = true
		}
		for _, id := range selectedEntryIDs {
			if !eligible[id] {
				return &domain.ValidationError{
					Reason: fmt.Sprintf("entry %s is not an unassigned entry in the week of %s",
						id, weekStart.Format("2006-01-02")),
				}
			}
		}

		if err := txSheets.Create(ctx, ts); err != nil {
			return err
		}
		if err := txSheets.InsertEntries(ctx, ts.ID, selectedEntryIDs); err != nil {
			return err
		}
		total, billable, err := txSheets.ComputeHours(ctx, ts.ID)
		if err != nil {
			return err
		}
		if err := txSheets.UpdateHours(ctx, ts.ID, total, billable, now); err != nil {
			return err
		}
		ts.TotalHours = total
		ts.BillableHours = billable
		return nil
	})
	if err != nil {
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			err = &domain.PersistenceError{Op: "creating timesheet", Err: err}
		}
		s.observe(ctx, started, err)
		return nil, err
	}

	s.observe(ctx, started, nil)
	return ts, nil
}

func (s *timesheetService) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	return s.sheets.GetByID(ctx, id)
}

func (s *timesheetService) ListByUser(ctx context.Context, userID string) ([]*domain.Timesheet, error) {
	return s.sheets.ListByUser(ctx, userID)
}

func (s *timesheetService) Entries(ctx context.Context, timesheetID string) ([]*domain.TimeEntry, error) {
	return s.entries.ListByTimesheet(ctx, timesheetID)
}

func (s *timesheetService) observe(ctx context.Context, started time.Time, err error) {
	s.obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:     "timesheet_create",
		Duration: s.now().Sub(started),
		Success:  err == nil,
		Err:      err,
	})
}
