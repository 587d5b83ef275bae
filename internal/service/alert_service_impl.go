package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/harbor/internal/alerts"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/alexanderramin/harbor/internal/repository"
)

// PermissionForgetter clears a remembered notification permission.
type PermissionForgetter interface {
	Clear(ctx context.Context) error
}

type alertService struct {
	plans     PlanService
	scheduler *alerts.Scheduler
	notifier  alerts.Notifier
	perms     PermissionForgetter
	clock     domain.Clock
	logger    *slog.Logger
	observer  UseCaseObserver
}

// NewAlertService wires the scheduler to plans: every plan change
// reschedules today's alerts.
func NewAlertService(plans PlanService, scheduler *alerts.Scheduler, notifier alerts.Notifier, perms PermissionForgetter, clock domain.Clock, logger *slog.Logger, observers ...UseCaseObserver) AlertService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if clock == nil {
		clock = domain.SystemClock{}
	}
	s := &alertService{
		plans:     plans,
		scheduler: scheduler,
		notifier:  notifier,
		perms:     perms,
		clock:     clock,
		logger:    logger,
		observer:  useCaseObserverOrNoop(observers),
	}
	plans.OnChange(s.onPlanChange)
	return s
}

func (s *alertService) onPlanChange(ctx context.Context, p *domain.PlanState) {
	if _, err := s.reschedule(ctx, p); err != nil {
		s.logger.ErrorContext(ctx, "alerts_reschedule_failed", "error", err.Error())
	}
}

// reschedule arms alerts for p. When the scheduler had to switch alerts
// off, the cleared flag is persisted; the resulting change notification
// re-enters here with alerts off and only cancels.
func (s *alertService) reschedule(ctx context.Context, p *domain.PlanState) (alerts.Result, error) {
	res := s.scheduler.Schedule(ctx, p, s.clock.Now())
	if res.Disabled {
		if _, err := s.plans.SetAlertsEnabled(ctx, false); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *alertService) status(ctx context.Context, enabled bool) (AlertStatus, error) {
	perm, err := s.notifier.Permission(ctx)
	if err != nil {
		return AlertStatus{}, err
	}
	return AlertStatus{Enabled: enabled, Permission: perm, Armed: s.scheduler.Armed()}, nil
}

func (s *alertService) Enable(ctx context.Context) (st AlertStatus, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "enable-alerts", time.Now(), fields, &err)

	p, err := s.plans.Load(ctx)
	if err != nil {
		return AlertStatus{}, err
	}
	if p.AlertsEnabled {
		fields["already_enabled"] = true
		return s.Refresh(ctx)
	}

	perm, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		return AlertStatus{}, err
	}
	fields["permission"] = string(perm)
	if perm == alerts.PermissionUnsupported {
		// This process cannot show alerts; another one may.
		return s.status(ctx, p.AlertsEnabled)
	}
	if perm != alerts.PermissionGranted {
		if _, err := s.plans.SetAlertsEnabled(ctx, false); err != nil {
			return AlertStatus{}, err
		}
		return s.status(ctx, false)
	}

	// The change listener arms today's alerts.
	if _, err := s.plans.SetAlertsEnabled(ctx, true); err != nil {
		return AlertStatus{}, err
	}
	fields["armed"] = len(s.scheduler.Armed())
	return s.status(ctx, true)
}

func (s *alertService) Refresh(ctx context.Context) (st AlertStatus, err error) {
	defer observe(ctx, s.observer, "refresh-alerts", time.Now(), nil, &err)

	p, err := s.plans.Load(ctx)
	if err != nil {
		return AlertStatus{}, err
	}
	res, err := s.reschedule(ctx, p)
	if err != nil {
		return AlertStatus{}, err
	}
	return s.status(ctx, p.AlertsEnabled && !res.Disabled)
}

func (s *alertService) Disable(ctx context.Context) (st AlertStatus, err error) {
	defer observe(ctx, s.observer, "disable-alerts", time.Now(), nil, &err)

	if _, err := s.plans.SetAlertsEnabled(ctx, false); err != nil {
		return AlertStatus{}, err
	}
	s.scheduler.CancelAll()
	return s.status(ctx, false)
}

func (s *alertService) Status(ctx context.Context) (AlertStatus, error) {
	p, err := s.plans.Load(ctx)
	if err != nil {
		return AlertStatus{}, err
	}
	return s.status(ctx, p.AlertsEnabled)
}

func (s *alertService) ForgetPermission(ctx context.Context) error {
	if s.perms == nil {
		return nil
	}
	if err := s.perms.Clear(ctx); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}
