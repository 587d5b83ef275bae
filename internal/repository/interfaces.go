package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/harbor/internal/domain"
)

// Storage keys for the documents table.
const (
	PlanKey       = "harbor-plan-data"
	PermissionKey = "harbor-notification-permission"
	// UnreadablePlanKey keeps a copy of a plan document that could not be
	// decoded, so the seeded replacement never loses it.
	UnreadablePlanKey = "harbor-plan-data-unreadable"
)

var ErrNotFound = errors.New("not found")

// DocumentRepo is a string key-value store.
type DocumentRepo interface {
	// Get returns the stored body and true, or "" and false when key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, body string) error
	Delete(ctx context.Context, key string) error
}

// PlanSource says where a loaded plan came from.
type PlanSource int

const (
	SourceStored PlanSource = iota
	// SourceSeeded means no document was stored yet.
	SourceSeeded
	// SourceFallback means a stored document could not be decoded.
	SourceFallback
)

// PlanRepo loads and saves the single plan document.
type PlanRepo interface {
	Load(ctx context.Context) (*domain.PlanState, error)
	LoadWithSource(ctx context.Context) (*domain.PlanState, PlanSource, error)
	Save(ctx context.Context, p *domain.PlanState) error
}
