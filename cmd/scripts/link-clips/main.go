// Command link-clips connects extracted clips to story elements by matching
// keywords in the parent tape's folder name against element titles. The first
// matched element becomes the primary link for every clip on the tape.
package main

import (
	"context"
	"os"
	"strings"

	"github.com/petedyestory/tapedeck/pkg/acts"
	"github.com/petedyestory/tapedeck/pkg/clips"
	"github.com/petedyestory/tapedeck/pkg/config"
	"github.com/petedyestory/tapedeck/pkg/database"
	"github.com/petedyestory/tapedeck/pkg/migrations"
	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/petedyestory/tapedeck/pkg/videos"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

// keywordRule maps a substring of a tape's folder name to the story element
// titles its clips support. Rule order matters: the first rule that matches
// contributes the primary element.
type keywordRule struct {
	keyword  string
	elements []string
}

// storyKeywords is the curated tape-to-element mapping. Element strings are
// matched as substrings of story element titles, so "Pete's perfectionism"
// finds "Pete's perfectionism and the creative partnership".
var storyKeywords = []keywordRule{
	// Act I
	{"Coal_Mining", []string{"LaRosa immigrant story", "Heritage"}},
	{"Harris_Holt", []string{"Pete Dye at the height", "Pete's commitment"}},
	{"Interview_With_Pete_Dye", []string{"Pete Dye at the height", "Pete's commitment", "Pete's perfectionism"}},
	{"1982-1988", []string{"LaRosa immigrant story", "The rejected first site"}},

	// Act II
	{"Construction", []string{"The long road", "Near-misses"}},
	{"Simpson_Creek", []string{"The long road"}},
	{"1985", []string{"The long road"}},
	{"1987", []string{"The long road"}},
	{"1989", []string{"The long road", "The team that formed"}},
	{"1990", []string{"The long road"}},
	{"1991", []string{"The long road"}},
	{"1992", []string{"The long road"}},
	{"1993", []string{"The long road", "Near-misses"}},
	{"1994", []string{"The long road"}},
	{"Papa_Jim", []string{"Pete's perfectionism", "Partnership"}},
	{"Christmas_Party", []string{"The team that formed"}},
	{"DiMaggio", []string{"The team that formed"}},
	{"Dinner", []string{"The team that formed"}},
	{"Member-Guest", []string{"The team that formed"}},

	// Act III
	{"Grand_Opening", []string{"July 4, 1995", "Opening Day", "The Bell on #12"}},
	{"Opening_7-3-1993", []string{"July 4, 1995", "Opening Day"}},
	{"back_nine", []string{"July 4, 1995"}},
	{"Citizen_of_the_Year", []string{"National recognition"}},
	{"CBS_Promo", []string{"National recognition"}},
	{"WV_Classic", []string{"The traditions that took root", "Legacy"}},
	{"Nationwide_Tour", []string{"The traditions that took root"}},
}

func main() {
	log := logger.New()

	app := &cli.App{
		Name:  "link-clips",
		Usage: "link clips to story elements by tape name keywords",
		Action: func(c *cli.Context) error {
			return run(c.Context, log)
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

func run(ctx context.Context, log logger.Logger) error {
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

	clipService := clips.NewService(db)

	tapes, err := videos.NewService(db).ListVideos(ctx, videos.ListVideosOptions{
		OnlyWithClips: true,
		IncludeClips:  true,
	})
	if err != nil {
		return err
	}
	elements, err := acts.NewService(db).ListStoryElements(ctx, acts.ListStoryElementsOptions{})
	if err != nil {
		return err
	}
	log.Info("loaded", logger.Data{"videos": len(tapes), "story_elements": len(elements)})

	linksCreated := 0
	for _, tape := range tapes {
		elementIDs := matchElements(tape.Filename, elements)
		if len(elementIDs) == 0 {
			continue
		}

		for _, clip := range tape.Clips {
			for i, elementID := range elementIDs {
				link := &models.ClipStoryLink{
					ClipID:         clip.ID,
					StoryElementID: elementID,
					IsPrimary:      i == 0,
				}
				if err := clipService.UpsertClipStoryLink(ctx, link); err != nil {
					log.Err(err).Warn("link failed", logger.Data{"clip_id": clip.ID, "story_element_id": elementID})
					continue
				}
				linksCreated++
			}
		}
		log.Info("linked tape", logger.Data{
			"video":    tape.Filename,
			"clips":    len(tape.Clips),
			"elements": len(elementIDs),
		})
	}

	log.Info("linking complete", logger.Data{"links": linksCreated})
	return nil
}

// matchElements resolves a tape's folder name into story element IDs, in
// keyword-table order with duplicates removed.
func matchElements(filename string, elements []*models.StoryElement) []int {
	var titles []string
	for _, rule := range storyKeywords {
		if strings.Contains(filename, rule.keyword) {
			titles = append(titles, rule.elements...)
		}
	}

	seen := map[int]bool{}
	var ids []int
	for _, title := range titles {
		for _, element := range elements {
			if !strings.Contains(element.Title, title) || seen[element.ID] {
				continue
			}
			seen[element.ID] = true
			ids = append(ids, element.ID)
		}
	}
	return ids
}
