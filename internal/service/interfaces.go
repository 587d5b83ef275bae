package service

import (
	"context"

	"github.com/alexanderramin/harbor/internal/alerts"
	"github.com/alexanderramin/harbor/internal/domain"
)

// ChangeListener runs after every persisted plan mutation with a copy of
// the new state.
type ChangeListener func(ctx context.Context, p *domain.PlanState)

// NotesUpdate carries the notes and safety fields to overwrite. Nil fields
// are left unchanged.
type NotesUpdate struct {
	Notes            *string
	PrefFoods        *string
	AvoidFoods       *string
	MobilityNotes    *string
	EmergencyContact *string
}

type PlanService interface {
	Load(ctx context.Context) (*domain.PlanState, error)
	AddItem(ctx context.Context, c domain.Collection, n domain.NewItem) (domain.Item, error)
	RemoveItem(ctx context.Context, c domain.Collection, id string) (bool, error)
	// Reset replaces the plan with a fresh seeded default. It refuses with
	// domain.ErrResetNotConfirmed unless confirmed is true.
	Reset(ctx context.Context, confirmed bool) (*domain.PlanState, error)
	// ApplyRoutine adds a preset's items on day. An unknown routine adds
	// nothing and is not an error.
	ApplyRoutine(ctx context.Context, routineID string, day int) ([]domain.Entry, error)
	UpdateNotes(ctx context.Context, u NotesUpdate) (*domain.PlanState, error)
	SetMode(ctx context.Context, m domain.Mode) (*domain.PlanState, error)
	SetView(ctx context.Context, v domain.View) (*domain.PlanState, error)
	SetAlertsEnabled(ctx context.Context, enabled bool) (*domain.PlanState, error)
	Routines() []domain.Routine
	OnChange(l ChangeListener)
	// Today is the current day slot according to the service clock.
	Today() int
}

// AlertStatus is a snapshot of the alert subsystem.
type AlertStatus struct {
	Enabled    bool
	Permission alerts.Permission
	Armed      []alerts.Fire
}

type AlertService interface {
	// Enable asks for permission once. A grant arms today's alerts; a
	// denial leaves alerts off.
	Enable(ctx context.Context) (AlertStatus, error)
	Refresh(ctx context.Context) (AlertStatus, error)
	Disable(ctx context.Context) (AlertStatus, error)
	Status(ctx context.Context) (AlertStatus, error)
	// ForgetPermission clears a remembered answer so Enable asks again.
	ForgetPermission(ctx context.Context) error
}
