// Command fix-text runs a regex find/replace over clip titles, clip
// descriptions, and tape summaries. The defaults correct a recurring
// misidentification in the archive's analysis output: the governor at the
// 1993 opening was Gaston Caperton, not Bill Clinton.
package main

import (
	"context"
	"os"
	"regexp"

	"github.com/petedyestory/tapedeck/pkg/clips"
	"github.com/petedyestory/tapedeck/pkg/config"
	"github.com/petedyestory/tapedeck/pkg/database"
	"github.com/petedyestory/tapedeck/pkg/migrations"
	"github.com/petedyestory/tapedeck/pkg/videos"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

const (
	defaultPattern     = `(?i)\b(?:gov\.?|governor)\s+bill\s+clinton\b`
	defaultReplacement = "West Virginia Governor Gaston Caperton"
)

func main() {
	log := logger.New()

	app := &cli.App{
		Name:  "fix-text",
		Usage: "regex find/replace over clip and tape text fields",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "pattern",
				Usage: "regular expression to find",
				Value: defaultPattern,
			},
			&cli.StringFlag{
				Name:  "replacement",
				Usage: "replacement text",
				Value: defaultReplacement,
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, log, c.String("pattern"), c.String("replacement"))
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

func run(ctx context.Context, log logger.Logger, pattern, replacement string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return errors.Wrapf(err, "invalid pattern: %s", pattern)
	}

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

	videosUpdated := 0
	tapes, err := videoService.ListVideos(ctx, videos.ListVideosOptions{})
	if err != nil {
		return err
	}
	for _, tape := range tapes {
		if tape.Summary == nil {
			continue
		}
		fixed := re.ReplaceAllString(*tape.Summary, replacement)
		if fixed == *tape.Summary {
			continue
		}
		tape.Summary = &fixed
		if err := videoService.UpsertVideo(ctx, tape); err != nil {
			log.Err(err).Warn("video update failed", logger.Data{"video": tape.Filename})
			continue
		}
		videosUpdated++
		log.Info("fixed tape summary", logger.Data{"video": tape.Filename})
	}

	clipsUpdated := 0
	allClips, err := clipService.ListClips(ctx, clips.ListClipsOptions{})
	if err != nil {
		return err
	}
	for _, clip := range allClips {
		changed := false
		if clip.Title != nil {
			if fixed := re.ReplaceAllString(*clip.Title, replacement); fixed != *clip.Title {
				clip.Title = &fixed
				changed = true
			}
		}
		if clip.Description != nil {
			if fixed := re.ReplaceAllString(*clip.Description, replacement); fixed != *clip.Description {
				clip.Description = &fixed
				changed = true
			}
		}
		if !changed {
			continue
		}
		if err := clipService.UpsertClip(ctx, clip); err != nil {
			log.Err(err).Warn("clip update failed", logger.Data{"clip": clip.Filename})
			continue
		}
		clipsUpdated++
		log.Info("fixed clip text", logger.Data{"clip": clip.Filename})
	}

	log.Info("fix complete", logger.Data{"videos": videosUpdated, "clips": clipsUpdated})
	return nil
}
