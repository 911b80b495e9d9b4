package playback

import (
	"testing"

	"github.com/petedyestory/tapedeck/pkg/assets"
	"github.com/petedyestory/tapedeck/pkg/config"
	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *assets.Resolver {
	return assets.NewResolver(&config.SiteConfig{
		AssetMode:        config.AssetModeLocal,
		ClipsBucket:      "clips",
		ThumbnailsBucket: "thumbnails",
	})
}

func testVideos() []*models.Video {
	return []*models.Video{
		{
			ID:       1,
			Filename: "Pete-Dye-Golf-Club",
			Title:    "Pete Dye Golf Club",
			Clips: []*models.Clip{
				{ID: 10, Filename: "001-course-tour.mp4", SortOrder: 1},
				{ID: 11, Filename: "002-signature-holes.mp4", SortOrder: 2},
			},
		},
		{
			ID:       2,
			Filename: "Grand-Opening",
			Title:    "Grand Opening",
			Clips: []*models.Clip{
				{ID: 20, Filename: "001-ribbon.mp4", SortOrder: 1},
			},
		},
		{ID: 3, Filename: "Empty-Tape", Title: "Empty Tape"},
	}
}

func TestBuildPlaylist_ResolvesURLsAndSkipsCliplessTapes(t *testing.T) {
	t.Parallel()
	p := BuildPlaylist(testVideos(), testResolver())

	require.Len(t, p.Tapes, 2)
	assert.Equal(t, []int{2, 1}, p.ClipCounts())

	assert.Equal(t, "/clips/Pete_Dye_Golf_Club__001-course-tour.mp4", p.Tapes[0].Clips[0].URL)
	assert.Equal(t, "/thumbnails/Pete_Dye_Golf_Club__002-signature-holes.jpg", p.Tapes[0].Clips[1].ThumbnailURL)
	assert.Equal(t, "/clips/Grand_Opening__001-ribbon.mp4", p.Tapes[1].Clips[0].URL)
}

func TestPlaylist_EntryFollowsSessionNavigation(t *testing.T) {
	t.Parallel()
	p := BuildPlaylist(testVideos(), testResolver())
	s := p.Session()

	s.Open(0, 0)
	entry := p.Entry(s.Position())
	require.NotNil(t, entry)
	assert.Equal(t, 10, entry.ClipID)

	s.NextClip()
	entry = p.Entry(s.Position())
	require.NotNil(t, entry)
	assert.Equal(t, 11, entry.ClipID)

	s.NextTape()
	entry = p.Entry(s.Position())
	require.NotNil(t, entry)
	assert.Equal(t, 20, entry.ClipID)
}

func TestPlaylist_EntryOutOfRange(t *testing.T) {
	t.Parallel()
	p := &Playlist{}

	assert.Nil(t, p.Entry(0, 0))
}

func TestPlaylist_FindClip(t *testing.T) {
	t.Parallel()
	p := BuildPlaylist(testVideos(), testResolver())

	tape, clip, ok := p.FindClip(20)
	require.True(t, ok)
	assert.Equal(t, 1, tape)
	assert.Equal(t, 0, clip)

	_, _, ok = p.FindClip(999)
	assert.False(t, ok)
}
