package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/harbor/internal/db"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/alexanderramin/harbor/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	uow      db.UnitOfWork
	clock    domain.Clock
	newID    domain.IDFunc
	logger   *slog.Logger
	observer UseCaseObserver

	mu        sync.Mutex
	listeners []ChangeListener
}

// PlanServiceOption customizes a PlanService.
type PlanServiceOption func(*planService)

// WithClock replaces the system clock.
func WithClock(c domain.Clock) PlanServiceOption {
	return func(s *planService) { s.clock = c }
}

// WithIDs replaces uuid generation.
func WithIDs(f domain.IDFunc) PlanServiceOption {
	return func(s *planService) { s.newID = f }
}

// WithLogger sets the logger handed to the plan repository.
func WithLogger(l *slog.Logger) PlanServiceOption {
	return func(s *planService) { s.logger = l }
}

// WithObserver reports use cases to obs.
func WithObserver(obs UseCaseObserver) PlanServiceOption {
	return func(s *planService) { s.observer = obs }
}

func NewPlanService(uow db.UnitOfWork, opts ...PlanServiceOption) PlanService {
	s := &planService{
		uow:      uow,
		clock:    domain.SystemClock{},
		newID:    uuid.NewString,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *planService) Today() int {
	return domain.TodayIndex(s.clock.Now())
}

func (s *planService) repo(tx db.DBTX) repository.PlanRepo {
	return repository.NewDocumentPlanRepo(repository.NewSQLiteDocumentRepo(tx), s.clock, s.newID, s.logger)
}

func (s *planService) OnChange(l ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *planService) notify(ctx context.Context, p *domain.PlanState) {
	s.mu.Lock()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l(ctx, p.Clone())
	}
}

// mutate loads, applies fn and saves inside one transaction, then signals
// listeners with the committed state.
func (s *planService) mutate(ctx context.Context, fn func(p *domain.PlanState) error) (*domain.PlanState, error) {
	var out *domain.PlanState
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.repo(tx)
		p, err := repo.Load(ctx)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		if err := repo.Save(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, out)
	return out, nil
}

// Load returns the current plan and writes it back, so a first-run seed or
// a repaired document keeps stable ids across processes. A seed standing in
// for an unreadable document is not written; only a mutation replaces it.
func (s *planService) Load(ctx context.Context) (*domain.PlanState, error) {
	var p *domain.PlanState
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.repo(tx)
		var (
			src repository.PlanSource
			err error
		)
		if p, src, err = repo.LoadWithSource(ctx); err != nil {
			return err
		}
		if src == repository.SourceFallback {
			return nil
		}
		return repo.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *planService) AddItem(ctx context.Context, c domain.Collection, n domain.NewItem) (item domain.Item, err error) {
	fields := map[string]any{"collection": string(c)}
	defer observe(ctx, s.observer, "add-item", time.Now(), fields, &err)

	today := s.Today()
	_, err = s.mutate(ctx, func(p *domain.PlanState) error {
		var addErr error
		item, addErr = p.Add(c, n, today, s.newID)
		return addErr
	})
	if err != nil {
		return domain.Item{}, err
	}
	fields["id"] = item.ID
	fields["day"] = item.Day
	return item, nil
}

func (s *planService) RemoveItem(ctx context.Context, c domain.Collection, id string) (removed bool, err error) {
	fields := map[string]any{"collection": string(c), "id": id}
	defer observe(ctx, s.observer, "remove-item", time.Now(), fields, &err)

	_, err = s.mutate(ctx, func(p *domain.PlanState) error {
		var rmErr error
		removed, rmErr = p.Remove(c, id)
		return rmErr
	})
	fields["removed"] = removed
	return removed, err
}

func (s *planService) Reset(ctx context.Context, confirmed bool) (p *domain.PlanState, err error) {
	defer observe(ctx, s.observer, "reset", time.Now(), map[string]any{"confirmed": confirmed}, &err)

	if !confirmed {
		return nil, domain.ErrResetNotConfirmed
	}
	today := s.Today()
	return s.mutate(ctx, func(p *domain.PlanState) error {
		extra := p.Extra
		*p = *domain.NewDefaultPlan(today, s.newID)
		p.Extra = extra
		return nil
	})
}

func (s *planService) ApplyRoutine(ctx context.Context, routineID string, day int) (added []domain.Entry, err error) {
	fields := map[string]any{"routine": routineID, "day": day}
	defer observe(ctx, s.observer, "apply-routine", time.Now(), fields, &err)

	r, ok := domain.LookupRoutine(routineID)
	if !ok {
		fields["known"] = false
		return nil, nil
	}
	_, err = s.mutate(ctx, func(p *domain.PlanState) error {
		var applyErr error
		added, applyErr = p.ApplyRoutine(r, day, s.newID)
		return applyErr
	})
	fields["added"] = len(added)
	return added, err
}

func (s *planService) UpdateNotes(ctx context.Context, u NotesUpdate) (p *domain.PlanState, err error) {
	defer observe(ctx, s.observer, "update-notes", time.Now(), nil, &err)

	return s.mutate(ctx, func(p *domain.PlanState) error {
		apply := func(dst *string, src *string) {
			if src != nil {
				*dst = strings.TrimSpace(*src)
			}
		}
		apply(&p.Notes, u.Notes)
		apply(&p.Safety.PrefFoods, u.PrefFoods)
		apply(&p.Safety.AvoidFoods, u.AvoidFoods)
		apply(&p.Safety.MobilityNotes, u.MobilityNotes)
		apply(&p.Safety.EmergencyContact, u.EmergencyContact)
		return nil
	})
}

func (s *planService) SetMode(ctx context.Context, m domain.Mode) (p *domain.PlanState, err error) {
	defer observe(ctx, s.observer, "set-mode", time.Now(), map[string]any{"mode": string(m)}, &err)
	return s.mutate(ctx, func(p *domain.PlanState) error { return p.SetMode(m) })
}

func (s *planService) SetView(ctx context.Context, v domain.View) (p *domain.PlanState, err error) {
	defer observe(ctx, s.observer, "set-view", time.Now(), map[string]any{"view": string(v)}, &err)
	return s.mutate(ctx, func(p *domain.PlanState) error { return p.SetView(v) })
}

func (s *planService) SetAlertsEnabled(ctx context.Context, enabled bool) (p *domain.PlanState, err error) {
	defer observe(ctx, s.observer, "set-alerts", time.Now(), map[string]any{"enabled": enabled}, &err)
	return s.mutate(ctx, func(p *domain.PlanState) error {
		p.AlertsEnabled = enabled
		return nil
	})
}

func (s *planService) Routines() []domain.Routine {
	return domain.Routines()
}
