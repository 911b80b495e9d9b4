package videos

import (
	"context"
	"database/sql"
	"time"

	"github.com/petedyestory/tapedeck/pkg/errcodes"
	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveVideoOptions struct {
	ID       *int
	Filename *string

	IncludeClips bool
}

type ListVideosOptions struct {
	// OnlyWithClips drops tapes that have no extracted clips; the archive
	// grid has nothing to show for them.
	OnlyWithClips bool

	IncludeClips bool
}

type ListVideosForActOptions struct {
	ActID int

	IncludeClips bool
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) RetrieveVideo(ctx context.Context, opts RetrieveVideoOptions) (*models.Video, error) {
	video := &models.Video{}
	q := svc.db.NewSelect().Model(video)
	if opts.ID != nil {
		q = q.Where("v.id = ?", *opts.ID)
	}
	if opts.Filename != nil {
		q = q.Where("v.filename = ?", *opts.Filename)
	}
	if opts.IncludeClips {
		q = q.Relation("Clips", clipOrder)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Video")
		}
		return nil, errors.WithStack(err)
	}

	if err := video.UnmarshalData(); err != nil {
		return nil, err
	}
	return video, nil
}

// ListVideos returns tapes ordered by filename for stable display order.
func (svc *Service) ListVideos(ctx context.Context, opts ListVideosOptions) ([]*models.Video, error) {
	videos := []*models.Video{}
	q := svc.db.
		NewSelect().
		Model(&videos).
		Order("v.filename ASC")
	if opts.OnlyWithClips {
		q = q.Where("EXISTS (SELECT 1 FROM clips c WHERE c.video_id = v.id)")
	}
	if opts.IncludeClips {
		q = q.Relation("Clips", clipOrder)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, video := range videos {
		if err := video.UnmarshalData(); err != nil {
			return nil, err
		}
	}
	return videos, nil
}

// ListVideosForAct returns the tapes linked to an act, primary links first.
func (svc *Service) ListVideosForAct(ctx context.Context, opts ListVideosForActOptions) ([]*models.Video, error) {
	videos := []*models.Video{}
	q := svc.db.
		NewSelect().
		Model(&videos).
		Join("JOIN video_acts AS va ON va.video_id = v.id").
		Where("va.act_id = ?", opts.ActID).
		Order("va.priority ASC", "v.filename ASC")
	if opts.IncludeClips {
		q = q.Relation("Clips", clipOrder)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, video := range videos {
		if err := video.UnmarshalData(); err != nil {
			return nil, err
		}
	}
	return videos, nil
}

// UpsertVideo inserts or updates a tape keyed on filename. Last write wins.
func (svc *Service) UpsertVideo(ctx context.Context, video *models.Video) error {
	now := time.Now()
	if video.CreatedAt.IsZero() {
		video.CreatedAt = now
	}
	video.UpdatedAt = now
	if video.ProcessingStatus == "" {
		video.ProcessingStatus = models.ProcessingStatusForWordCount(video.TranscriptWordCount)
	}

	if err := video.MarshalData(); err != nil {
		return err
	}

	_, err := svc.db.NewInsert().
		Model(video).
		On("CONFLICT (filename) DO UPDATE").
		Set("updated_at = EXCLUDED.updated_at").
		Set("title = EXCLUDED.title").
		Set("summary = EXCLUDED.summary").
		Set("duration_seconds = EXCLUDED.duration_seconds").
		Set("characters = EXCLUDED.characters").
		Set("chapters = EXCLUDED.chapters").
		Set("highlights = EXCLUDED.highlights").
		Set("transcript_word_count = EXCLUDED.transcript_word_count").
		Set("processing_status = EXCLUDED.processing_status").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// LinkVideoToAct records that a tape's footage is relevant to an act. The
// link is idempotent on (video_id, act_id); re-linking updates the priority.
func (svc *Service) LinkVideoToAct(ctx context.Context, videoID, actID, priority int) error {
	link := &models.VideoAct{
		VideoID:  videoID,
		ActID:    actID,
		Priority: priority,
	}
	_, err := svc.db.NewInsert().
		Model(link).
		On("CONFLICT (video_id, act_id) DO UPDATE").
		Set("priority = EXCLUDED.priority").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func clipOrder(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("c.sort_order ASC", "c.filename ASC")
}
