// Command import-tapes backfills the videos, clips, and video_acts tables
// from a directory of per-tape pipeline output folders. Each folder may hold
// an analysis/ subfolder (structured JSON plus transcript) and a clips/
// subfolder of extracted mp4s; folders with neither are skipped.
package main

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/petedyestory/tapedeck/pkg/acts"
	"github.com/petedyestory/tapedeck/pkg/analysis"
	"github.com/petedyestory/tapedeck/pkg/clips"
	"github.com/petedyestory/tapedeck/pkg/config"
	"github.com/petedyestory/tapedeck/pkg/database"
	"github.com/petedyestory/tapedeck/pkg/migrations"
	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/petedyestory/tapedeck/pkg/videos"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	app := &cli.App{
		Name:  "import-tapes",
		Usage: "backfill videos and clips from pipeline output folders",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output-dir",
				Usage:    "directory of per-tape pipeline output folders",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "web-clips-dir",
				Usage: "directory of web-optimized clip files (optional)",
			},
			&cli.StringFlag{
				Name:  "thumbnails-dir",
				Usage: "directory of clip thumbnails (optional)",
			},
		},
		Action: func(c *cli.Context) error {
			imp := importer{
				log:           log,
				outputDir:     c.String("output-dir"),
				webClipsDir:   c.String("web-clips-dir"),
				thumbnailsDir: c.String("thumbnails-dir"),
			}
			return imp.run(c.Context)
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

type importer struct {
	log           logger.Logger
	outputDir     string
	webClipsDir   string
	thumbnailsDir string

	videoService *videos.Service
	clipService  *clips.Service
	actIDs       map[int]int
}

var leadingDigitsDash = regexp.MustCompile(`^\d+-`)

func (imp *importer) run(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		return err
	}

	imp.videoService = videos.NewService(db)
	imp.clipService = clips.NewService(db)

	actList, err := acts.NewService(db).ListActs(ctx)
	if err != nil {
		return err
	}
	imp.actIDs = map[int]int{}
	for _, act := range actList {
		imp.actIDs[act.ActNumber] = act.ID
	}

	entries, err := os.ReadDir(imp.outputDir)
	if err != nil {
		return errors.Wrapf(err, "failed to read output dir: %s", imp.outputDir)
	}

	videoCount := 0
	clipCount := 0
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		imported, err := imp.importTape(ctx, entry.Name())
		if err != nil {
			// One bad tape never aborts the batch.
			imp.log.Err(err).Warn("tape import failed", logger.Data{"video": entry.Name()})
			continue
		}
		if imported < 0 {
			continue
		}
		videoCount++
		clipCount += imported
	}

	imp.log.Info("import complete", logger.Data{"videos": videoCount, "clips": clipCount})
	return nil
}

// importTape processes one tape folder. It returns the number of clips
// imported, or -1 when the folder was skipped.
func (imp *importer) importTape(ctx context.Context, videoDir string) (int, error) {
	tapePath := filepath.Join(imp.outputDir, videoDir)
	analysisPath := filepath.Join(tapePath, "analysis", analysis.AnalysisFilename)
	clipsPath := filepath.Join(tapePath, "clips")

	clipFiles := listClipFiles(clipsPath)

	file, err := loadAnalysis(analysisPath)
	if err != nil {
		imp.log.Err(err).Warn("malformed analysis, continuing without it", logger.Data{"video": videoDir})
	}
	if file == nil && len(clipFiles) == 0 {
		imp.log.Info("skipping tape", logger.Data{"video": videoDir, "reason": "no analysis or clips"})
		return -1, nil
	}

	meta := analysis.ExtractMetadata(videoDir, file)

	wordCount := 0
	if transcript, err := os.ReadFile(filepath.Join(tapePath, "analysis", analysis.TranscriptFilename)); err == nil {
		wordCount = analysis.CountWords(string(transcript))
	}

	video := &models.Video{
		Filename:            videoDir,
		Title:               meta.Title,
		Characters:          meta.Characters,
		Chapters:            meta.Chapters,
		Highlights:          meta.Highlights,
		TranscriptWordCount: wordCount,
		ProcessingStatus:    models.ProcessingStatusForWordCount(wordCount),
	}
	if meta.Summary != "" {
		video.Summary = &meta.Summary
	}
	if meta.DurationSeconds > 0 {
		video.DurationSeconds = &meta.DurationSeconds
	}

	if err := imp.videoService.UpsertVideo(ctx, video); err != nil {
		return 0, err
	}
	imp.log.Info("upserted tape", logger.Data{
		"video":  videoDir,
		"status": video.ProcessingStatus,
		"words":  wordCount,
	})

	for i, actNumber := range analysis.ActsForVideo(videoDir) {
		actID, ok := imp.actIDs[actNumber]
		if !ok {
			continue
		}
		priority := models.VideoActPrioritySecondary
		if i == 0 {
			priority = models.VideoActPriorityPrimary
		}
		if err := imp.videoService.LinkVideoToAct(ctx, video.ID, actID, priority); err != nil {
			return 0, err
		}
	}

	imported := 0
	for _, clipFile := range clipFiles {
		if err := imp.importClip(ctx, video, videoDir, clipFile); err != nil {
			imp.log.Err(err).Warn("clip import failed", logger.Data{"video": videoDir, "clip": clipFile})
			continue
		}
		imported++
	}
	return imported, nil
}

func (imp *importer) importClip(ctx context.Context, video *models.Video, videoDir, clipFile string) error {
	clipName := strings.TrimSuffix(clipFile, ".mp4")
	safeName := analysis.SanitizeFilename(videoDir) + "__" + analysis.SanitizeFilename(clipName)

	clip := &models.Clip{
		VideoID:   video.ID,
		Filename:  safeName + ".mp4",
		SortOrder: models.ParseSortOrder(clipName),
	}

	title := leadingDigitsDash.ReplaceAllString(clipName, "")
	title = strings.Join(strings.Fields(strings.ReplaceAll(title, "-", " ")), " ")
	if title == "" {
		title = clipName
	}
	clip.Title = &title

	// The web-optimized rendition and thumbnail are keyed by the sanitized
	// name; record their storage keys only when the files actually exist.
	if imp.webClipsDir != "" {
		if key := safeName + ".mp4"; fileExists(filepath.Join(imp.webClipsDir, key)) {
			clip.StoragePath = &key
		}
	}
	if imp.thumbnailsDir != "" {
		if key := safeName + ".jpg"; fileExists(filepath.Join(imp.thumbnailsDir, key)) {
			clip.ThumbnailPath = &key
		}
	}

	return imp.clipService.UpsertClip(ctx, clip)
}

func loadAnalysis(path string) (*analysis.File, error) {
	if !fileExists(path) {
		return nil, nil
	}
	return analysis.ParseFile(path)
}

func listClipFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".mp4") {
			files = append(files, entry.Name())
		}
	}
	return files
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
