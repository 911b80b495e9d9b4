// Command clip-descriptions backfills clip descriptions from the chapter
// breakdown in each tape's legacy synthesis analysis. Clips are matched to
// chapters positionally; extras fall back to the tape summary.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/petedyestory/tapedeck/pkg/analysis"
	"github.com/petedyestory/tapedeck/pkg/clips"
	"github.com/petedyestory/tapedeck/pkg/config"
	"github.com/petedyestory/tapedeck/pkg/database"
	"github.com/petedyestory/tapedeck/pkg/migrations"
	"github.com/petedyestory/tapedeck/pkg/videos"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

// summaryLineRE grabs just the first line of the SUMMARY section; the full
// multi-paragraph extraction is too long for a clip caption.
var summaryLineRE = regexp.MustCompile(`\*\*1\. SUMMARY\*\*:\s*\n([^\n*]+)`)

func main() {
	log := logger.New()

	app := &cli.App{
		Name:  "clip-descriptions",
		Usage: "backfill clip descriptions from chapter breakdowns",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output-dir",
				Usage:    "directory of per-tape pipeline output folders",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, log, c.String("output-dir"))
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

func run(ctx context.Context, log logger.Logger, outputDir string) error {
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

	videoService := videos.NewService(db)
	clipService := clips.NewService(db)

	tapes, err := videoService.ListVideos(ctx, videos.ListVideosOptions{})
	if err != nil {
		return err
	}
	log.Info("loaded tapes", logger.Data{"videos": len(tapes)})

	updated := 0
	for _, tape := range tapes {
		videoName := strings.Replace(tape.Filename, ".mp4", "", 1)
		analysisPath := filepath.Join(outputDir, videoName, "analysis", analysis.AnalysisFilename)

		file, err := analysis.ParseFile(analysisPath)
		if err != nil {
			log.Err(err).Warn("no usable analysis", logger.Data{"video": videoName})
			continue
		}
		synthesis := file.VideoAnalysis.SynthesisText
		if synthesis == "" {
			log.Info("no synthesis text", logger.Data{"video": videoName})
			continue
		}

		chapters := analysis.ParseChapterBreakdown(synthesis)
		summary := ""
		if m := summaryLineRE.FindStringSubmatch(synthesis); m != nil {
			summary = strings.TrimSpace(m[1])
		}
		log.Info("parsed breakdown", logger.Data{"video": videoName, "chapters": len(chapters)})

		tapeClips, err := clipService.ListClips(ctx, clips.ListClipsOptions{VideoID: &tape.ID})
		if err != nil {
			return err
		}

		for i, clip := range tapeClips {
			description := ""
			switch {
			case i < len(chapters):
				description = chapters[i].Description
			case summary != "":
				description = "From: " + summary
				if len(summary) > 150 {
					description = "From: " + summary[:150] + "..."
				}
			default:
				description = fmt.Sprintf("Clip %d from %s", i+1, videoName)
			}

			if err := clipService.UpdateClipDescription(ctx, clip.ID, description); err != nil {
				log.Err(err).Warn("update failed", logger.Data{"clip_id": clip.ID})
				continue
			}
			updated++
		}
	}

	log.Info("descriptions updated", logger.Data{"clips": updated})
	return nil
}
