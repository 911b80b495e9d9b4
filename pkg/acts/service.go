package acts

import (
	"context"
	"database/sql"
	"time"

	"github.com/petedyestory/tapedeck/pkg/errcodes"
	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveActOptions struct {
	ID        *int
	ActNumber *int

	// IncludeElements loads the act's story elements ordered by sort_order.
	IncludeElements bool
}

type ListStoryElementsOptions struct {
	ActID       *int
	ElementType *string
}

// ElementCounts summarizes an act's outline for the structure grid on the
// home page.
type ElementCounts struct {
	JourneyPoints int `json:"journey_points"`
	KeyMoments    int `json:"key_moments"`
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// ListActs returns every act ordered by act number.
func (svc *Service) ListActs(ctx context.Context) ([]*models.Act, error) {
	acts := []*models.Act{}
	err := svc.db.
		NewSelect().
		Model(&acts).
		Order("a.act_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return acts, nil
}

func (svc *Service) RetrieveAct(ctx context.Context, opts RetrieveActOptions) (*models.Act, error) {
	act := &models.Act{}
	q := svc.db.NewSelect().Model(act)
	if opts.ID != nil {
		q = q.Where("a.id = ?", *opts.ID)
	}
	if opts.ActNumber != nil {
		q = q.Where("a.act_number = ?", *opts.ActNumber)
	}
	if opts.IncludeElements {
		q = q.Relation("Elements", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("se.sort_order ASC")
		})
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Act")
		}
		return nil, errors.WithStack(err)
	}

	return act, nil
}

// ListStoryElements returns story elements ordered by sort_order, optionally
// filtered by act and element type.
func (svc *Service) ListStoryElements(ctx context.Context, opts ListStoryElementsOptions) ([]*models.StoryElement, error) {
	elements := []*models.StoryElement{}
	q := svc.db.
		NewSelect().
		Model(&elements).
		Order("se.sort_order ASC")
	if opts.ActID != nil {
		q = q.Where("se.act_id = ?", *opts.ActID)
	}
	if opts.ElementType != nil {
		q = q.Where("se.element_type = ?", *opts.ElementType)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return elements, nil
}

// ElementCountsByAct returns per-act journey point and key moment counts.
func (svc *Service) ElementCountsByAct(ctx context.Context) (map[int]ElementCounts, error) {
	var rows []struct {
		ActID       int    `bun:"act_id"`
		ElementType string `bun:"element_type"`
		Count       int    `bun:"count"`
	}
	err := svc.db.
		NewSelect().
		Model((*models.StoryElement)(nil)).
		Column("se.act_id", "se.element_type").
		ColumnExpr("COUNT(*) AS count").
		Where("se.act_id IS NOT NULL").
		Group("se.act_id", "se.element_type").
		Scan(ctx, &rows)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	counts := map[int]ElementCounts{}
	for _, row := range rows {
		c := counts[row.ActID]
		switch row.ElementType {
		case models.ElementTypeJourneyPoint:
			c.JourneyPoints = row.Count
		case models.ElementTypeKeyMoment:
			c.KeyMoments = row.Count
		}
		counts[row.ActID] = c
	}
	return counts, nil
}

// UpsertAct inserts or updates an act keyed on act_number. Last write wins.
func (svc *Service) UpsertAct(ctx context.Context, act *models.Act) error {
	now := time.Now()
	if act.CreatedAt.IsZero() {
		act.CreatedAt = now
	}
	act.UpdatedAt = now

	_, err := svc.db.NewInsert().
		Model(act).
		On("CONFLICT (act_number) DO UPDATE").
		Set("updated_at = EXCLUDED.updated_at").
		Set("title = EXCLUDED.title").
		Set("description = EXCLUDED.description").
		Set("duration_target = EXCLUDED.duration_target").
		Set("tone = EXCLUDED.tone").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// CreateStoryElement inserts a single outline element.
func (svc *Service) CreateStoryElement(ctx context.Context, element *models.StoryElement) error {
	if element.CreatedAt.IsZero() {
		element.CreatedAt = time.Now()
	}
	_, err := svc.db.NewInsert().
		Model(element).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// DeleteStoryElements clears the outline so the population script can rebuild
// it from scratch. Clip links cascade away with the elements.
func (svc *Service) DeleteStoryElements(ctx context.Context) error {
	_, err := svc.db.NewDelete().
		Model((*models.StoryElement)(nil)).
		Where("1 = 1").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}
