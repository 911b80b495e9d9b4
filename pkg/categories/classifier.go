package categories

import (
	"strings"
)

// CatchAllLabel is returned when no group's keywords match.
const CatchAllLabel = "Archive"

// Group is one ordered classification rule: a video whose display title
// contains any of Keywords (case-insensitive) lands in the bucket Label.
type Group struct {
	Label    string
	Keywords []string
}

// Person is a cross-cutting "Featuring ..." bucket. A video can land in a
// person bucket and a primary category at the same time.
type Person struct {
	Label    string
	Keywords []string
}

// Classifier assigns display categories to tapes by keyword matching on their
// titles. It is a curation heuristic, not a taxonomy; the only guarantees are
// that classification is total and deterministic. Group order is priority
// order and the first match wins.
type Classifier struct {
	groups []Group
	people []Person
}

func NewClassifier(groups []Group, people []Person) *Classifier {
	return &Classifier{groups: groups, people: people}
}

// Classify returns the label of the first group whose keywords match the
// title, or CatchAllLabel when none do.
func (c *Classifier) Classify(title string) string {
	lowered := strings.ToLower(title)
	for _, group := range c.groups {
		for _, keyword := range group.Keywords {
			if strings.Contains(lowered, keyword) {
				return group.Label
			}
		}
	}
	return CatchAllLabel
}

// Featuring returns the person buckets the title matches, in table order.
// Unlike Classify this does not short-circuit; a title can feature several
// people.
func (c *Classifier) Featuring(title string) []string {
	lowered := strings.ToLower(title)
	var labels []string
	for _, person := range c.people {
		for _, keyword := range person.Keywords {
			if strings.Contains(lowered, keyword) {
				labels = append(labels, person.Label)
				break
			}
		}
	}
	return labels
}

// Labels returns every label the classifier can produce for Classify, with
// the catch-all last. Useful for rendering category sections in a stable
// order even when some are empty.
func (c *Classifier) Labels() []string {
	labels := make([]string, 0, len(c.groups)+1)
	for _, group := range c.groups {
		labels = append(labels, group.Label)
	}
	return append(labels, CatchAllLabel)
}

// PeopleLabels returns every "Featuring" label in table order.
func (c *Classifier) PeopleLabels() []string {
	labels := make([]string, 0, len(c.people))
	for _, person := range c.people {
		labels = append(labels, person.Label)
	}
	return labels
}

// DefaultGroups is the curated ruleset for the archive grid.
func DefaultGroups() []Group {
	return []Group{
		{Label: "Coal Mine Origins", Keywords: []string{"coal", "mining", "miner"}},
		{Label: "Building the Course", Keywords: []string{"construction", "cleanup", "clearing", "shaping"}},
		{Label: "Celebrations & Milestones", Keywords: []string{"opening", "grand", "award", "citizen of the year", "dedication"}},
		{Label: "Tournament Play", Keywords: []string{"classic", "nationwide", "tournament", "championship"}},
		{Label: "Interviews & Voices", Keywords: []string{"interview", "narrated", "oral history"}},
	}
}

// DefaultPeople is the curated "Featuring" ruleset.
func DefaultPeople() []Person {
	return []Person{
		{Label: "Featuring Pete Dye", Keywords: []string{"pete dye", "pete_dye"}},
		{Label: "Featuring the LaRosas", Keywords: []string{"larosa"}},
		{Label: "Featuring Louie Ellis", Keywords: []string{"louie ellis", "louie_ellis"}},
	}
}
