// Command populate-outline resets the story_elements table and seeds the
// three-act film structure: acts, journey points, key moments, themes, and
// character profiles.
package main

import (
	"context"
	"os"

	"github.com/petedyestory/tapedeck/pkg/acts"
	"github.com/petedyestory/tapedeck/pkg/config"
	"github.com/petedyestory/tapedeck/pkg/database"
	"github.com/petedyestory/tapedeck/pkg/migrations"
	"github.com/petedyestory/tapedeck/pkg/models"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	app := &cli.App{
		Name:  "populate-outline",
		Usage: "seed acts and story elements from the film outline",
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

	svc := acts.NewService(db)

	// Seeding is a full rebuild. Clip links cascade away with the elements
	// and get recreated by link-clips.
	if err := svc.DeleteStoryElements(ctx); err != nil {
		return err
	}
	log.Info("cleared story elements")

	actIDs := map[int]int{}
	for _, act := range seedActs() {
		if err := svc.UpsertAct(ctx, act); err != nil {
			return err
		}
		actIDs[act.ActNumber] = act.ID
		log.Info("upserted act", logger.Data{"act_number": act.ActNumber, "title": act.Title})
	}

	count := 0
	for actNumber, elements := range seedJourneyPoints() {
		actID := actIDs[actNumber]
		for _, element := range elements {
			element.ActID = &actID
			if err := svc.CreateStoryElement(ctx, element); err != nil {
				return err
			}
			count++
		}
	}
	for _, moment := range seedKeyMoments() {
		actID := actIDs[moment.actNumber]
		moment.element.ActID = &actID
		if err := svc.CreateStoryElement(ctx, moment.element); err != nil {
			return err
		}
		count++
	}
	for _, element := range seedThemes() {
		if err := svc.CreateStoryElement(ctx, element); err != nil {
			return err
		}
		count++
	}
	for _, element := range seedCharacters() {
		if err := svc.CreateStoryElement(ctx, element); err != nil {
			return err
		}
		count++
	}

	log.Info("outline populated", logger.Data{"acts": len(actIDs), "elements": count})
	return nil
}

func str(s string) *string {
	return &s
}

func seedActs() []*models.Act {
	return []*models.Act{
		{
			ActNumber:      1,
			Title:          "THE DREAM",
			Description:    str("Introduce the LaRosa family heritage, Pete Dye, and the improbable partnership they formed."),
			DurationTarget: str("8-10 min"),
			Tone:           str("Aspirational, nostalgic, underdog setup"),
		},
		{
			ActNumber:      2,
			Title:          "THE STRUGGLE",
			Description:    str("The years of obstacles, the relationships that formed, and what it took to keep going."),
			DurationTarget: str("10-15 min"),
			Tone:           str("Gritty, determined, moments of humor and camaraderie"),
		},
		{
			ActNumber:      3,
			Title:          "THE ARRIVAL",
			Description:    str("The opening, national recognition, and the legacy that followed."),
			DurationTarget: str("10-15 min"),
			Tone:           str("Triumphant, emotional, reflective"),
		},
	}
}

func seedJourneyPoints() map[int][]*models.StoryElement {
	return map[int][]*models.StoryElement{
		1: {
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "The LaRosa immigrant story",
				Description: str("Coal miners who built a life in West Virginia"),
				SortOrder:   1,
			},
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "Pete Dye at the height of his career",
				Description: str("Legendary architect, known for impossible projects"),
				SortOrder:   2,
			},
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "The rejected first site vs. the abandoned strip mine",
				Description: str("Pete chose the coal mine site that no one else could see potential in"),
				SortOrder:   3,
			},
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "Pete's commitment",
				Description: str(`"If you give me total freedom, this could be one of the finest inland courses in the country."`),
				Quote:       str("If you give me total freedom, this could be one of the finest inland courses in the country."),
				SortOrder:   4,
			},
		},
		2: {
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "The long road",
				Description: str("18 years of setbacks, weather, financial pressure, skeptics"),
				SortOrder:   1,
			},
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "Pete's perfectionism and the creative partnership",
				Description: str("The bond between Pete Dye and James D. LaRosa"),
				SortOrder:   2,
			},
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "The team that formed",
				Description: str("Superintendent, pros, staff who became family"),
				SortOrder:   3,
			},
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "Near-misses and close calls",
				Description: str("Challenges that would have stopped most people"),
				SortOrder:   4,
			},
		},
		3: {
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "July 4, 1995 — The Grand Opening",
				Description: str("The Grand Opening celebration after 18 years"),
				SortOrder:   1,
			},
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "National recognition",
				Description: str("Links Magazine, Golf Digest, USGA rankings"),
				SortOrder:   2,
			},
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "The traditions that took root",
				Description: str("Tournaments, members, community"),
				SortOrder:   3,
			},
			{
				ElementType: models.ElementTypeJourneyPoint,
				Title:       "What it means to West Virginia",
				Description: str("Legacy for the next generation"),
				SortOrder:   4,
			},
		},
	}
}

type keyMoment struct {
	actNumber int
	element   *models.StoryElement
}

func seedKeyMoments() []keyMoment {
	return []keyMoment{
		{
			actNumber: 2,
			element: &models.StoryElement{
				ElementType:  models.ElementTypeKeyMoment,
				Title:        "Pete Names the Club",
				Description:  str(`On the 6th fairway, after years of debating names, Pete asks Jimmy: "Do we have a name yet?" Jimmy says no. Pete: "The hell with it. Let's call it Pete Dye." A handshake. Then: "I want you to know this will be the only club named after me."`),
				WhyItMatters: str("This is when Pete stakes his legacy on this project. Of 100+ courses, he chose this one."),
				Quote:        str("The hell with it. Let's call it Pete Dye... I want you to know this will be the only club named after me."),
				SortOrder:    10,
			},
		},
		{
			actNumber: 3,
			element: &models.StoryElement{
				ElementType:  models.ElementTypeKeyMoment,
				Title:        "The Bell on #12",
				Description:  str("A bell was installed on the 12th hole in memory of Pete's father, the man who built Pete's first nine holes. On Grand Opening morning, Pete sees it for the first time and rings it. The emotion is visible."),
				WhyItMatters: str("This is the emotional climax. The father-son thread runs through the whole story: James D. and Jimmy, Pete and his father."),
				SortOrder:    11,
			},
		},
		{
			actNumber: 3,
			element: &models.StoryElement{
				ElementType:  models.ElementTypeKeyMoment,
				Title:        "Opening Day",
				Description:  str("After 15-18 years of work, the course is finally real. Standing on the first tee with family. Bagpipes. Fireworks. The dream made tangible."),
				WhyItMatters: str("The payoff moment. Everything they endured was for this."),
				SortOrder:    12,
			},
		},
	}
}

func seedThemes() []*models.StoryElement {
	themes := []struct {
		title       string
		description string
	}{
		{"Perseverance", "18 years of refusing to quit"},
		{"Partnership", "The bond between a coal mining family and a golf legend"},
		{"West Virginia Pride", "Putting an overlooked place on the map"},
		{"Heritage", "Coal mining past meets championship golf future"},
		{"Legacy", "What we build and what we leave behind"},
	}
	elements := make([]*models.StoryElement, 0, len(themes))
	for i, theme := range themes {
		elements = append(elements, &models.StoryElement{
			ElementType: models.ElementTypeTheme,
			Title:       theme.title,
			Description: str(theme.description),
			SortOrder:   i + 1,
		})
	}
	return elements
}

func seedCharacters() []*models.StoryElement {
	characters := []struct {
		title       string
		description string
		quote       string
	}{
		{
			title:       "James D. LaRosa",
			description: "Son of Italian immigrants, worked the coal mines, built a business. The dreamer who refused to give up.",
			quote:       "The toughest, most tenacious, never-give-up son of a gun I ever worked for.",
		},
		{
			title:       "Jimmy LaRosa",
			description: "James D.'s son. Worked alongside his father and Pete for 18 years. Managed the project, secured financing, carries the story forward. Primary narrator.",
		},
		{
			title:       "Pete Dye",
			description: "The architect. One of golf's greatest designers. Perfectionist, mentor, friend. Of 100+ courses, this is the only one he put his name on.",
		},
		{
			title:       "Alice Dye",
			description: "Pete's wife and collaborator. Pushed for the course to be welcoming to all players. Her influence shaped the final design.",
			quote:       "Pete, if this is designed to be a men's club, you won't finish the course.",
		},
	}
	elements := make([]*models.StoryElement, 0, len(characters))
	for i, char := range characters {
		element := &models.StoryElement{
			ElementType: models.ElementTypeCharacter,
			Title:       char.title,
			Description: str(char.description),
			SortOrder:   i + 1,
		}
		if char.quote != "" {
			element.Quote = str(char.quote)
		}
		elements = append(elements, element)
	}
	return elements
}
