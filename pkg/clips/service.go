package clips

import (
	"context"
	"database/sql"
	"time"

	"github.com/petedyestory/tapedeck/pkg/errcodes"
	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveClipOptions struct {
	ID *int

	IncludeVideo bool
}

type ListClipsOptions struct {
	VideoID *int
}

// LinkedClip pairs a clip with its link metadata for a story element.
type LinkedClip struct {
	Clip           *models.Clip
	IsPrimary      bool
	RelevanceNotes *string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) RetrieveClip(ctx context.Context, opts RetrieveClipOptions) (*models.Clip, error) {
	clip := &models.Clip{}
	q := svc.db.NewSelect().Model(clip)
	if opts.ID != nil {
		q = q.Where("c.id = ?", *opts.ID)
	}
	if opts.IncludeVideo {
		q = q.Relation("Video")
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Clip")
		}
		return nil, errors.WithStack(err)
	}

	return clip, nil
}

// ListClips returns clips in display order, optionally scoped to one tape.
func (svc *Service) ListClips(ctx context.Context, opts ListClipsOptions) ([]*models.Clip, error) {
	clips := []*models.Clip{}
	q := svc.db.
		NewSelect().
		Model(&clips).
		Order("c.sort_order ASC", "c.filename ASC")
	if opts.VideoID != nil {
		q = q.Where("c.video_id = ?", *opts.VideoID)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return clips, nil
}

// ListClipsForStoryElement returns the clips linked to a story element,
// primary link first, each with its parent tape loaded for URL derivation.
func (svc *Service) ListClipsForStoryElement(ctx context.Context, storyElementID int) ([]*LinkedClip, error) {
	links := []*models.ClipStoryLink{}
	err := svc.db.
		NewSelect().
		Model(&links).
		Relation("Clip").
		Relation("Clip.Video").
		Where("csl.story_element_id = ?", storyElementID).
		Order("csl.is_primary DESC", "csl.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	linked := make([]*LinkedClip, 0, len(links))
	for _, link := range links {
		if link.Clip == nil {
			continue
		}
		linked = append(linked, &LinkedClip{
			Clip:           link.Clip,
			IsPrimary:      link.IsPrimary,
			RelevanceNotes: link.RelevanceNotes,
		})
	}
	return linked, nil
}

// UpsertClip inserts or updates a clip keyed on (video_id, filename). Last
// write wins.
func (svc *Service) UpsertClip(ctx context.Context, clip *models.Clip) error {
	now := time.Now()
	if clip.CreatedAt.IsZero() {
		clip.CreatedAt = now
	}
	clip.UpdatedAt = now

	_, err := svc.db.NewInsert().
		Model(clip).
		On("CONFLICT (video_id, filename) DO UPDATE").
		Set("updated_at = EXCLUDED.updated_at").
		Set("title = EXCLUDED.title").
		Set("storage_path = EXCLUDED.storage_path").
		Set("thumbnail_path = EXCLUDED.thumbnail_path").
		Set("start_time = EXCLUDED.start_time").
		Set("duration_seconds = EXCLUDED.duration_seconds").
		Set("description = EXCLUDED.description").
		Set("sort_order = EXCLUDED.sort_order").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// UpdateClipDescription sets just the description, used by the description
// backfill script so it does not clobber other columns.
func (svc *Service) UpdateClipDescription(ctx context.Context, clipID int, description string) error {
	_, err := svc.db.NewUpdate().
		Model((*models.Clip)(nil)).
		Set("description = ?", description).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", clipID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// UpsertClipStoryLink links a clip to a story element, idempotent on the
// composite key. Re-linking updates the primary flag and notes.
func (svc *Service) UpsertClipStoryLink(ctx context.Context, link *models.ClipStoryLink) error {
	_, err := svc.db.NewInsert().
		Model(link).
		On("CONFLICT (clip_id, story_element_id) DO UPDATE").
		Set("is_primary = EXCLUDED.is_primary").
		Set("relevance_notes = EXCLUDED.relevance_notes").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}
