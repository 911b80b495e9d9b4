package clips

import (
	"context"
	"database/sql"
	"testing"

	"github.com/petedyestory/tapedeck/pkg/migrations"
	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// In-memory SQLite is per-connection; keep the pool at one.
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	return db
}

func ptrString(s string) *string { return &s }

func seedVideo(t *testing.T, db *bun.DB, filename string) *models.Video {
	t.Helper()
	video := &models.Video{Filename: filename, Title: filename}
	_, err := db.NewInsert().Model(video).Exec(context.Background())
	require.NoError(t, err)
	return video
}

func seedElement(t *testing.T, db *bun.DB, title string) *models.StoryElement {
	t.Helper()
	element := &models.StoryElement{ElementType: models.ElementTypeKeyMoment, Title: title}
	_, err := db.NewInsert().Model(element).Exec(context.Background())
	require.NoError(t, err)
	return element
}

func TestUpsertClip_IdempotentOnVideoAndFilename(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	video := seedVideo(t, db, "Pete-Dye-Golf-Club")

	first := &models.Clip{VideoID: video.ID, Filename: "001-intro.mp4", SortOrder: 1}
	require.NoError(t, svc.UpsertClip(ctx, first))

	second := &models.Clip{
		VideoID:     video.ID,
		Filename:    "001-intro.mp4",
		SortOrder:   1,
		Description: ptrString("Pete walks the first fairway"),
	}
	require.NoError(t, svc.UpsertClip(ctx, second))

	clips, err := svc.ListClips(ctx, ListClipsOptions{VideoID: &video.ID})
	require.NoError(t, err)
	require.Len(t, clips, 1)
	assert.Equal(t, first.ID, clips[0].ID)
	require.NotNil(t, clips[0].Description)
	assert.Equal(t, "Pete walks the first fairway", *clips[0].Description)
}

func TestUpsertClip_SameFilenameOnDifferentTapes(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	videoA := seedVideo(t, db, "Tape-A")
	videoB := seedVideo(t, db, "Tape-B")

	require.NoError(t, svc.UpsertClip(ctx, &models.Clip{VideoID: videoA.ID, Filename: "001-intro.mp4"}))
	require.NoError(t, svc.UpsertClip(ctx, &models.Clip{VideoID: videoB.ID, Filename: "001-intro.mp4"}))

	all, err := svc.ListClips(ctx, ListClipsOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListClipsForStoryElement_PrimaryFirstWithVideoLoaded(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	video := seedVideo(t, db, "Pete-Dye-Golf-Club")
	element := seedElement(t, db, "The Island Green")

	supporting := &models.Clip{VideoID: video.ID, Filename: "001-approach.mp4", SortOrder: 1}
	require.NoError(t, svc.UpsertClip(ctx, supporting))
	best := &models.Clip{VideoID: video.ID, Filename: "002-the-green.mp4", SortOrder: 2}
	require.NoError(t, svc.UpsertClip(ctx, best))

	require.NoError(t, svc.UpsertClipStoryLink(ctx, &models.ClipStoryLink{
		ClipID: supporting.ID, StoryElementID: element.ID,
	}))
	require.NoError(t, svc.UpsertClipStoryLink(ctx, &models.ClipStoryLink{
		ClipID: best.ID, StoryElementID: element.ID, IsPrimary: true,
		RelevanceNotes: ptrString("matched on: island green"),
	}))

	linked, err := svc.ListClipsForStoryElement(ctx, element.ID)
	require.NoError(t, err)
	require.Len(t, linked, 2)

	assert.True(t, linked[0].IsPrimary)
	assert.Equal(t, best.ID, linked[0].Clip.ID)
	require.NotNil(t, linked[0].Clip.Video, "parent tape loaded for URL derivation")
	assert.Equal(t, "Pete-Dye-Golf-Club", linked[0].Clip.Video.Filename)
	assert.False(t, linked[1].IsPrimary)
}

func TestUpsertClipStoryLink_IdempotentOnCompositeKey(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	video := seedVideo(t, db, "Tape-A")
	element := seedElement(t, db, "Moment")
	clip := &models.Clip{VideoID: video.ID, Filename: "001.mp4"}
	require.NoError(t, svc.UpsertClip(ctx, clip))

	link := &models.ClipStoryLink{ClipID: clip.ID, StoryElementID: element.ID, IsPrimary: true}
	require.NoError(t, svc.UpsertClipStoryLink(ctx, link))
	// Demoting on re-link updates in place.
	relink := &models.ClipStoryLink{ClipID: clip.ID, StoryElementID: element.ID, IsPrimary: false}
	require.NoError(t, svc.UpsertClipStoryLink(ctx, relink))

	linked, err := svc.ListClipsForStoryElement(ctx, element.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.False(t, linked[0].IsPrimary)
}

func TestUpdateClipDescription_TouchesOnlyDescription(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	video := seedVideo(t, db, "Tape-A")
	clip := &models.Clip{
		VideoID:   video.ID,
		Filename:  "007-the-island-green.mp4",
		SortOrder: 7,
		StartTime: ptrString("00:04:12"),
	}
	require.NoError(t, svc.UpsertClip(ctx, clip))

	require.NoError(t, svc.UpdateClipDescription(ctx, clip.ID, "Pete surveys the island green"))

	got, err := svc.RetrieveClip(ctx, RetrieveClipOptions{ID: &clip.ID})
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Pete surveys the island green", *got.Description)
	assert.Equal(t, 7, got.SortOrder)
	require.NotNil(t, got.StartTime)
	assert.Equal(t, "00:04:12", *got.StartTime)
}
