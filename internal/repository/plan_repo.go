package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/harbor/internal/domain"
)

// DocumentPlanRepo stores the plan as one JSON document under PlanKey.
type DocumentPlanRepo struct {
	docs   DocumentRepo
	clock  domain.Clock
	newID  domain.IDFunc
	logger *slog.Logger
}

// NewDocumentPlanRepo creates a PlanRepo over docs. A nil logger discards.
func NewDocumentPlanRepo(docs DocumentRepo, clock domain.Clock, newID domain.IDFunc, logger *slog.Logger) *DocumentPlanRepo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DocumentPlanRepo{docs: docs, clock: clock, newID: newID, logger: logger}
}

// Load returns the persisted plan merged over defaults and normalized. A
// missing or unreadable document yields a freshly seeded plan; only storage
// failures are returned as errors.
func (r *DocumentPlanRepo) Load(ctx context.Context) (*domain.PlanState, error) {
	p, _, err := r.LoadWithSource(ctx)
	return p, err
}

// LoadWithSource is Load that also reports whether the plan was stored,
// seeded fresh, or seeded in place of an unreadable document. An
// unreadable document is copied to UnreadablePlanKey first.
func (r *DocumentPlanRepo) LoadWithSource(ctx context.Context) (*domain.PlanState, PlanSource, error) {
	today := domain.TodayIndex(r.clock.Now())
	raw, ok, err := r.docs.Get(ctx, PlanKey)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return domain.NewDefaultPlan(today, r.newID), SourceSeeded, nil
	}
	p, err := domain.DecodePlan([]byte(raw), today, r.newID)
	if err != nil {
		r.logger.DebugContext(ctx, "plan_document_unreadable", "error", err.Error())
		if err := r.docs.Set(ctx, UnreadablePlanKey, raw); err != nil {
			return nil, 0, fmt.Errorf("keeping unreadable plan: %w", err)
		}
		return domain.NewDefaultPlan(today, r.newID), SourceFallback, nil
	}
	return p, SourceStored, nil
}

func (r *DocumentPlanRepo) Save(ctx context.Context, p *domain.PlanState) error {
	raw, err := domain.EncodePlan(p)
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return r.docs.Set(ctx, PlanKey, string(raw))
}
