package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacySynthesis = `**1. SUMMARY**:
Footage of the grand opening ceremony, July 4th 1995.

**2. CHARACTERS**:
- Pete Dye: course architect
- Jimmy LaRosa: project manager
- Louie Ellis

**3. CHAPTER BREAKDOWN**:
- **0:00:00 - 0:05:00**: Bagpipes on the first tee
- **5:00 - The Bell**: Pete rings the bell on twelve
- A long unmarked chapter describing the fireworks
- x

HIGHLIGHTS:
- fireworks finale
`

func TestParseFile_StructuredFormat(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, AnalysisFilename)
	require.NoError(t, os.WriteFile(path, []byte(`{
		"video_analysis": {
			"title": "Grand Opening",
			"summary": "The opening day celebration.",
			"characters": [{"name": "Pete Dye", "role": "architect"}],
			"chapters": [{"title": "First Tee", "start_time": "00:00", "summary": "Bagpipes"}],
			"highlights": [{"title": "The Bell", "timestamp": "05:00"}],
			"total_duration_minutes": 2.5
		}
	}`), 0o600))

	file, err := ParseFile(path)
	require.NoError(t, err)

	meta := ExtractMetadata("Grand_Opening-1995", file)
	assert.Equal(t, "Grand Opening", meta.Title)
	assert.Equal(t, "The opening day celebration.", meta.Summary)
	assert.Equal(t, []string{"Pete Dye"}, meta.Characters)
	require.Len(t, meta.Chapters, 1)
	assert.Equal(t, "First Tee", meta.Chapters[0].Title)
	assert.Equal(t, []string{"The Bell"}, meta.Highlights)
	assert.Equal(t, 150.0, meta.DurationSeconds)
}

func TestParseFile_Malformed(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, AnalysisFilename)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := ParseFile(path)
	assert.Error(t, err)
}

func TestExtractMetadata_LegacySynthesisFallback(t *testing.T) {
	t.Parallel()
	file := &File{VideoAnalysis: VideoAnalysis{SynthesisText: legacySynthesis}}

	meta := ExtractMetadata("Grand_Opening-1995", file)
	assert.Equal(t, "Grand Opening - 1995", meta.Title, "directory name fallback")
	assert.Equal(t, "Footage of the grand opening ceremony, July 4th 1995.", meta.Summary)
	assert.Equal(t, []string{"Pete Dye", "Jimmy LaRosa", "Louie Ellis"}, meta.Characters)
}

func TestExtractMetadata_NilFile(t *testing.T) {
	t.Parallel()

	meta := ExtractMetadata("Coal_Mining_Footage", nil)
	assert.Equal(t, "Coal Mining Footage", meta.Title)
	assert.Empty(t, meta.Summary)
}

func TestExtractSummary_NoSectionUsesHead(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "just plain text", ExtractSummary("just plain text"))
}

func TestParseChapterBreakdown_HandlesAllLineFormats(t *testing.T) {
	t.Parallel()

	chapters := ParseChapterBreakdown(legacySynthesis)
	require.Len(t, chapters, 3)

	assert.Equal(t, "0:00:00 - 0:05:00", chapters[0].TimeRange)
	assert.Equal(t, "Bagpipes on the first tee", chapters[0].Description)

	assert.Equal(t, "5:00 - The Bell", chapters[1].TimeRange)
	assert.Equal(t, "Pete rings the bell on twelve", chapters[1].Description)

	assert.Empty(t, chapters[2].TimeRange)
	assert.Equal(t, "A long unmarked chapter describing the fireworks", chapters[2].Description)
}

func TestParseChapterBreakdown_NoSection(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseChapterBreakdown("**1. SUMMARY**: nothing else"))
}

func TestCountWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 3, CountWords("  three  word transcript\n"))
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Petes-Tape", SanitizeFilename("Pete's Tape"))
	assert.Equal(t, "Dinner-and-Awards", SanitizeFilename("Dinner & Awards"))
	assert.Equal(t, "1990-1991", SanitizeFilename("1990–1991"))
	assert.Equal(t, "trimmed", SanitizeFilename("--trimmed--"))
	assert.LessOrEqual(t, len(SanitizeFilename("a very long name that keeps going and going and going and going and going")), 60)
}

func TestActsForVideo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{1}, ActsForVideo("Coal_Mining_Footage"))
	assert.Equal(t, []int{1}, ActsForVideo("Narrated_by_Harris_Holt"))
	assert.Equal(t, []int{3}, ActsForVideo("Grand_Opening_1995"))
	assert.Equal(t, []int{3}, ActsForVideo("WV_Classic_Disc_II"))
	assert.Equal(t, []int{3}, ActsForVideo("Citizen_of_the_Year_Dinner"))
	assert.Equal(t, []int{1, 2}, ActsForVideo("Interview_With_Pete_Dye"))
	assert.Equal(t, []int{1, 2, 3}, ActsForVideo("Highlights_and_Interviews"))
	assert.Equal(t, []int{2}, ActsForVideo("Simpson_Creek_1989"))
}
