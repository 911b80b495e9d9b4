package assets

import (
	"testing"

	"github.com/petedyestory/tapedeck/pkg/config"
	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/stretchr/testify/assert"
)

func ptrString(s string) *string { return &s }

func clipFor(videoFilename, clipFilename string) *models.Clip {
	return &models.Clip{
		Filename: clipFilename,
		Video:    &models.Video{Filename: videoFilename},
	}
}

func localResolver() *Resolver {
	return NewResolver(&config.SiteConfig{
		AssetMode:        config.AssetModeLocal,
		ClipsBucket:      "clips",
		ThumbnailsBucket: "thumbnails",
	})
}

func storageResolver() *Resolver {
	return NewResolver(&config.SiteConfig{
		AssetMode:        config.AssetModeStorage,
		StorageBaseURL:   "https://cdn.example.com/media",
		ClipsBucket:      "clips",
		ThumbnailsBucket: "thumbnails",
	})
}

func TestClipURL_FullURLPassthrough(t *testing.T) {
	t.Parallel()
	clip := clipFor("Pete-Dye-1", "001-intro.mp4")
	clip.StoragePath = ptrString("https://elsewhere.example.com/v/001.mp4")

	assert.Equal(t, "https://elsewhere.example.com/v/001.mp4", storageResolver().ClipURL(clip))
	assert.Equal(t, "https://elsewhere.example.com/v/001.mp4", localResolver().ClipURL(clip))
}

func TestClipURL_RootRelativePassthrough(t *testing.T) {
	t.Parallel()
	clip := clipFor("Pete-Dye-1", "001-intro.mp4")
	clip.StoragePath = ptrString("/custom/001.mp4")

	assert.Equal(t, "/custom/001.mp4", storageResolver().ClipURL(clip))
}

func TestClipURL_BareKeyComposesWithStorageBase(t *testing.T) {
	t.Parallel()
	clip := clipFor("Pete-Dye-1", "001-intro.mp4")
	clip.StoragePath = ptrString("some key.mp4")

	assert.Equal(t, "https://cdn.example.com/media/clips/some%20key.mp4", storageResolver().ClipURL(clip))
}

func TestClipURL_BareKeyWithoutStorageBaseServesRootRelative(t *testing.T) {
	t.Parallel()
	r := NewResolver(&config.SiteConfig{
		AssetMode:        config.AssetModeStorage,
		ClipsBucket:      "clips",
		ThumbnailsBucket: "thumbnails",
	})
	clip := clipFor("Pete-Dye-1", "001-intro.mp4")
	clip.StoragePath = ptrString("some-key.mp4")

	assert.Equal(t, "/some-key.mp4", r.ClipURL(clip))
}

func TestClipURL_DerivedKeyLocal(t *testing.T) {
	t.Parallel()
	clip := clipFor("Pete-Dye-1", "001-intro.mp4")

	assert.Equal(t, "/clips/Pete_Dye_1__001-intro.mp4", localResolver().ClipURL(clip))
}

func TestClipURL_DerivedKeyStorage(t *testing.T) {
	t.Parallel()
	clip := clipFor("Pete-Dye-1", "001-intro.mp4")

	assert.Equal(t, "https://cdn.example.com/media/clips/Pete_Dye_1__001-intro.mp4", storageResolver().ClipURL(clip))
}

func TestThumbnailURL_DerivedKeyUsesJPGAndThumbnailsBucket(t *testing.T) {
	t.Parallel()
	clip := clipFor("Pete-Dye-1", "001-intro.mp4")

	assert.Equal(t, "/thumbnails/Pete_Dye_1__001-intro.jpg", localResolver().ThumbnailURL(clip))
	assert.Equal(t, "https://cdn.example.com/media/thumbnails/Pete_Dye_1__001-intro.jpg", storageResolver().ThumbnailURL(clip))
}

func TestDerivedBaseName_NormalizesDashesAndStripsExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Pete_Dye_Golf_Club__007-the-island-green", DerivedBaseName(clipFor("Pete-Dye-Golf-Club", "007-the-island-green.mp4")))
	assert.Equal(t, "Interview_1__raw", DerivedBaseName(clipFor("Interview-1", "raw.mp4")))
}

func TestDerivedBaseName_MissingVideo(t *testing.T) {
	t.Parallel()
	clip := &models.Clip{Filename: "001-intro.mp4"}

	assert.Equal(t, "__001-intro", DerivedBaseName(clip))
}

func TestResolution_IsPure(t *testing.T) {
	t.Parallel()
	r := storageResolver()
	clip := clipFor("Pete-Dye-1", "002-fairway.mp4")

	first := r.ClipURL(clip)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.ClipURL(clip))
	}
}

// End-to-end: a tape's clips resolve to the flat object keys the clip
// optimization step writes, in both deployment modes.
func TestResolver_PeteDyeGolfClubScenario(t *testing.T) {
	t.Parallel()
	video := &models.Video{Filename: "Pete-Dye-Golf-Club"}
	clips := []*models.Clip{
		{Filename: "001-course-tour.mp4", Video: video},
		{Filename: "002-signature-holes.mp4", Video: video},
	}

	local := localResolver()
	assert.Equal(t, "/clips/Pete_Dye_Golf_Club__001-course-tour.mp4", local.ClipURL(clips[0]))
	assert.Equal(t, "/thumbnails/Pete_Dye_Golf_Club__002-signature-holes.jpg", local.ThumbnailURL(clips[1]))

	storage := storageResolver()
	assert.Equal(t, "https://cdn.example.com/media/clips/Pete_Dye_Golf_Club__002-signature-holes.mp4", storage.ClipURL(clips[1]))
	assert.Equal(t, "https://cdn.example.com/media/thumbnails/Pete_Dye_Golf_Club__001-course-tour.jpg", storage.ThumbnailURL(clips[0]))
}
