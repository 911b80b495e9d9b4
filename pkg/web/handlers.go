package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/petedyestory/tapedeck/pkg/acts"
	"github.com/petedyestory/tapedeck/pkg/assets"
	"github.com/petedyestory/tapedeck/pkg/categories"
	"github.com/petedyestory/tapedeck/pkg/clips"
	"github.com/petedyestory/tapedeck/pkg/errcodes"
	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/petedyestory/tapedeck/pkg/playback"
	"github.com/petedyestory/tapedeck/pkg/revalidate"
	"github.com/petedyestory/tapedeck/pkg/sitedata"
	"github.com/petedyestory/tapedeck/pkg/videos"
	"github.com/pkg/errors"
)

// featuredNames is the display order of the central figures on the
// characters page.
var featuredNames = []string{"Pete Dye", "James D. LaRosa", "Jimmy LaRosa", "Louie Ellis"}

type handler struct {
	actService   *acts.Service
	videoService *videos.Service
	clipService  *clips.Service
	store        *sitedata.Store
	resolver     *assets.Resolver
	classifier   *categories.Classifier
	cache        *revalidate.Cache
	outline      *Outline
}

// ClipView is a clip rendered as a playable thumbnail, addressed by its
// playlist position.
type ClipView struct {
	Title        string
	URL          string
	ThumbnailURL string
	TapeIndex    int
	ClipIndex    int
	IsPrimary    bool
}

// playlist builds (or reuses) the URL-resolved playlist every playable page
// shares. Tape order is stable, so playlist positions stay valid for the
// cache window.
func (h *handler) playlist(ctx context.Context) (*playback.Playlist, error) {
	return revalidate.Fetch(ctx, h.cache, "playlist", func(ctx context.Context) (*playback.Playlist, error) {
		tapes, err := h.videoService.ListVideos(ctx, videos.ListVideosOptions{
			OnlyWithClips: true,
			IncludeClips:  true,
		})
		if err != nil {
			return nil, err
		}
		return playback.BuildPlaylist(tapes, h.resolver), nil
	})
}

// TapeView is one tape card on a grid page.
type TapeView struct {
	Video playback.Tape
	Clips []ClipView
}

// Section is a labelled group of tape cards.
type Section struct {
	Label string
	Tapes []TapeView
}

func clipViews(tapeIndex int, tape playback.Tape) []ClipView {
	views := make([]ClipView, 0, len(tape.Clips))
	for clipIndex, entry := range tape.Clips {
		views = append(views, ClipView{
			Title:        entry.Title,
			URL:          entry.URL,
			ThumbnailURL: entry.ThumbnailURL,
			TapeIndex:    tapeIndex,
			ClipIndex:    clipIndex,
		})
	}
	return views
}

// home renders the landing page with the film structure grid.
func (h *handler) home(c echo.Context) error {
	ctx := c.Request().Context()

	actList, err := h.actService.ListActs(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	counts, err := h.actService.ElementCountsByAct(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	playlist, err := h.playlist(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	type actCard struct {
		Act    *models.Act
		Counts acts.ElementCounts
	}
	cards := make([]actCard, 0, len(actList))
	for _, act := range actList {
		cards = append(cards, actCard{Act: act, Counts: counts[act.ID]})
	}

	clipCount := 0
	for _, count := range playlist.ClipCounts() {
		clipCount += count
	}

	return c.Render(http.StatusOK, "home", map[string]interface{}{
		"Acts":      cards,
		"ClipCount": clipCount,
	})
}

// archive renders the category-grouped tape grid.
func (h *handler) archive(c echo.Context) error {
	ctx := c.Request().Context()

	playlist, err := h.playlist(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	// A tape lands in exactly one primary category plus any number of
	// "Featuring" buckets.
	byLabel := map[string][]TapeView{}
	clipCount := 0
	for tapeIndex, tape := range playlist.Tapes {
		view := TapeView{Video: tape, Clips: clipViews(tapeIndex, tape)}
		clipCount += len(tape.Clips)

		label := h.classifier.Classify(tape.Title)
		byLabel[label] = append(byLabel[label], view)
		for _, person := range h.classifier.Featuring(tape.Title) {
			byLabel[person] = append(byLabel[person], view)
		}
	}

	var sections []Section
	for _, label := range h.classifier.Labels() {
		if tapes := byLabel[label]; len(tapes) > 0 {
			sections = append(sections, Section{Label: label, Tapes: tapes})
		}
	}
	for _, label := range h.classifier.PeopleLabels() {
		if tapes := byLabel[label]; len(tapes) > 0 {
			sections = append(sections, Section{Label: label, Tapes: tapes})
		}
	}

	return c.Render(http.StatusOK, "archive", map[string]interface{}{
		"Sections":  sections,
		"TapeCount": len(playlist.Tapes),
		"ClipCount": clipCount,
		"Playlist":  playlist,
	})
}

// act renders an act's outline with the clips linked to each element.
func (h *handler) act(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Act")
	}

	act, err := h.actService.RetrieveAct(ctx, acts.RetrieveActOptions{
		ID:              &id,
		IncludeElements: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	playlist, err := h.playlist(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	type elementView struct {
		Element *models.StoryElement
		Clips   []ClipView
	}
	var journeyPoints, keyMoments []elementView
	for _, element := range act.Elements {
		view := elementView{Element: element}

		linked, err := h.clipService.ListClipsForStoryElement(ctx, element.ID)
		if err != nil {
			return errors.WithStack(err)
		}
		for _, lc := range linked {
			tapeIndex, clipIndex, ok := playlist.FindClip(lc.Clip.ID)
			if !ok {
				continue
			}
			entry := playlist.Entry(tapeIndex, clipIndex)
			view.Clips = append(view.Clips, ClipView{
				Title:        entry.Title,
				URL:          entry.URL,
				ThumbnailURL: entry.ThumbnailURL,
				TapeIndex:    tapeIndex,
				ClipIndex:    clipIndex,
				IsPrimary:    lc.IsPrimary,
			})
		}

		switch element.ElementType {
		case models.ElementTypeJourneyPoint:
			journeyPoints = append(journeyPoints, view)
		case models.ElementTypeKeyMoment:
			keyMoments = append(keyMoments, view)
		}
	}

	tapes, err := h.videoService.ListVideosForAct(ctx, videos.ListVideosForActOptions{
		ActID:        act.ID,
		IncludeClips: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Render(http.StatusOK, "act", map[string]interface{}{
		"Act":           act,
		"JourneyPoints": journeyPoints,
		"KeyMoments":    keyMoments,
		"Tapes":         tapes,
		"Playlist":      playlist,
	})
}

// characters renders the character index from the bundled profiles.
func (h *handler) characters(c echo.Context) error {
	return c.Render(http.StatusOK, "characters", map[string]interface{}{
		"Featured":   h.store.Featured(featuredNames),
		"Characters": h.store.Characters(),
	})
}

// character renders one profile, keyed by exact name.
func (h *handler) character(c echo.Context) error {
	name := c.Param("name")
	profile, ok := h.store.Character(name)
	if !ok {
		return errcodes.NotFound("Character")
	}

	return c.Render(http.StatusOK, "character", map[string]interface{}{
		"Character": profile,
	})
}

// video renders a tape's detail page from its bundled analysis, with any
// extracted clips from the database alongside.
func (h *handler) video(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")

	analysisData, hasAnalysis := h.store.Analysis(slug)

	playlist, err := h.playlist(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	var tapeClips []ClipView
	haveTape := false
	for tapeIndex, tape := range playlist.Tapes {
		if tape.Filename != slug {
			continue
		}
		haveTape = true
		tapeClips = clipViews(tapeIndex, tape)
		break
	}

	if !hasAnalysis && !haveTape {
		return errcodes.NotFound("Video")
	}

	title := analysisData.Title
	if title == "" {
		title = sitedata.HumanizeSlug(slug)
	}

	data := map[string]interface{}{
		"Title":    title,
		"Analysis": analysisData,
		"Clips":    tapeClips,
	}
	if len(tapeClips) > 0 {
		data["Playlist"] = playlist
	}
	return c.Render(http.StatusOK, "video", data)
}

// timeline renders the year-grouped event list.
func (h *handler) timeline(c echo.Context) error {
	years := h.store.TimelineByYear()

	data := map[string]interface{}{"Years": years}
	if len(years) > 0 {
		data["FirstYear"] = years[0].Year
		data["LastYear"] = years[len(years)-1].Year
	}

	return c.Render(http.StatusOK, "timeline", data)
}

// outlinePage renders the film outline markdown.
func (h *handler) outlinePage(c echo.Context) error {
	ctx := c.Request().Context()

	content, err := h.outline.HTML(ctx, h.cache)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Render(http.StatusOK, "outline", map[string]interface{}{
		"Content": content,
	})
}

// player renders the no-script playback page. Navigation links are computed
// from the same session transitions the client script uses.
func (h *handler) player(c echo.Context) error {
	ctx := c.Request().Context()

	params := playerParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	playlist, err := h.playlist(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(playlist.Tapes) == 0 {
		return errcodes.NotFound("Clip")
	}

	session := playlist.Session()
	session.Open(params.Tape, params.Clip)
	tapeIndex, clipIndex := session.Position()
	entry := playlist.Entry(tapeIndex, clipIndex)
	if entry == nil {
		return errcodes.NotFound("Clip")
	}

	return c.Render(http.StatusOK, "player", map[string]interface{}{
		"Playlist":    playlist,
		"Tape":        playlist.Tapes[tapeIndex],
		"Entry":       entry,
		"TapeIndex":   tapeIndex,
		"ClipIndex":   clipIndex,
		"ClipNumber":  clipIndex + 1,
		"ClipTotal":   len(playlist.Tapes[tapeIndex].Clips),
		"HasPrevClip": session.HasPrevClip(),
		"HasNextClip": session.HasNextClip(),
		"HasPrevTape": session.HasPrevTape(),
		"HasNextTape": session.HasNextTape(),
		"PrevClip":    clipIndex - 1,
		"NextClip":    clipIndex + 1,
		"PrevTape":    tapeIndex - 1,
		"NextTape":    tapeIndex + 1,
		"CloseURL":    "/archive",
	})
}

// refresh drops every cached read so the next render sees fresh rows. The
// import scripts call this after mutating the database.
func (h *handler) refresh(c echo.Context) error {
	h.cache.InvalidateAll()
	return errors.WithStack(c.JSON(http.StatusOK, map[string]bool{"ok": true}))
}

type playerParams struct {
	Tape int `query:"tape" json:"tape" validate:"gte=0"`
	Clip int `query:"clip" json:"clip" validate:"gte=0"`
}
