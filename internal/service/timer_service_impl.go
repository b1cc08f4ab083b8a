package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
)

type timerService struct {
	timers   repository.TimerRepo
	profiles repository.ProfileRepo
	tasks    repository.TaskRepo
	obs      UseCaseObserver
	now      func() time.Time
}

// NewTimerService creates the timer use-case service.
func NewTimerService(timers repository.TimerRepo, profiles repository.ProfileRepo, tasks repository.TaskRepo, observers ...UseCaseObserver) TimerService {
	return &timerService{
		timers:   timers,
		profiles: profiles,
		tasks:    tasks,
		obs:      useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// load returns the user's timer, constructing an idle one from the profile
// on first use.
func (s *timerService) load(ctx context.Context, userID string) (*domain.Timer, error) {
	t, err := s.timers.Get(ctx, userID)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, &domain.PersistenceError{Op: "loading timer", Err: err}
	}

	orgID := "default"
	defaultBillable := false
	if p, perr := s.profiles.Get(ctx, userID); perr == nil {
		orgID = p.OrgID
		defaultBillable = p.DefaultBillable
	}
	return domain.NewTimer(userID, orgID, defaultBillable), nil
}

// transition runs fn against the loaded timer and persists the result only
// if fn succeeds, so rejected transitions leave no trace.
func (s *timerService) transition(ctx context.Context, userID, name string, fn func(t *domain.Timer) error) (*domain.Timer, error) {
	started := s.now()
	t, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		s.observe(ctx, name, started, err)
		return nil, err
	}
	if err := s.timers.Save(ctx, t); err != nil {
		err = &domain.PersistenceError{Op: "saving timer", Err: err}
		s.observe(ctx, name, started, err)
		return nil, err
	}
	s.observe(ctx, name, started, nil)
	return t, nil
}

func (s *timerService) Start(ctx context.Context, userID string, kind domain.TimerKind, fixedDurationSeconds int) (*domain.Timer, error) {
	return s.transition(ctx, userID, "timer_start", func(t *domain.Timer) error {
		return t.Start(kind, fixedDurationSeconds, s.now())
	})
}

func (s *timerService) Pause(ctx context.Context, userID string) (*domain.Timer, error) {
	return s.transition(ctx, userID, "timer_pause", func(t *domain.Timer) error {
		return t.Pause(s.now())
	})
}

func (s *timerService) Resume(ctx context.Context, userID string) (*domain.Timer, error) {
	return s.transition(ctx, userID, "timer_resume", func(t *domain.Timer) error {
		return t.Resume(s.now())
	})
}

func (s *timerService) Stop(ctx context.Context, userID string) (domain.Candidate, error) {
	started := s.now()
	t, err := s.load(ctx, userID)
	if err != nil {
		return domain.Candidate{}, err
	}
	cand, err := t.Stop(s.now())
	if err != nil {
		s.observe(ctx, "timer_stop", started, err)
		return domain.Candidate{}, err
	}
	if err := s.timers.Save(ctx, t); err != nil {
		err = &domain.PersistenceError{Op: "saving timer", Err: err}
		s.observe(ctx, "timer_stop", started, err)
		return domain.Candidate{}, err
	}
	s.observe(ctx, "timer_stop", started, nil)
	return cand, nil
}

func (s *timerService) Discard(ctx context.Context, userID string) error {
	_, err := s.transition(ctx, userID, "timer_discard", func(t *domain.Timer) error {
		t.Reset()
		return nil
	})
	return err
}

func (s *timerService) Status(ctx context.Context, userID string) (*domain.Timer, error) {
	return s.load(ctx, userID)
}

func (s *timerService) SetTask(ctx context.Context, userID, taskID string) (*domain.Timer, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, userID, "timer_set_task", func(t *domain.Timer) error {
		return t.SetTask(task.ID, task.ProjectID)
	})
}

func (s *timerService) SetDescription(ctx context.Context, userID, text string) (*domain.Timer, error) {
	return s.transition(ctx, userID, "timer_set_description", func(t *domain.Timer) error {
		return t.SetDescription(text)
	})
}

func (s *timerService) SetBillable(ctx context.Context, userID string, billable bool) (*domain.Timer, error) {
	return s.transition(ctx, userID, "timer_set_billable", func(t *domain.Timer) error {
		return t.SetBillable(billable)
	})
}

func (s *timerService) observe(ctx context.Context, name string, started time.Time, err error) {
	s.obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:     name,
		Duration: s.now().Sub(started),
		Success:  err == nil,
		Err:      err,
	})
}
