package playback

import (
	"github.com/petedyestory/tapedeck/pkg/assets"
	"github.com/petedyestory/tapedeck/pkg/models"
)

// Playlist is the flattened, URL-resolved form of the archive that both the
// server-rendered player page and the client script consume. Tape order and
// clip order here define the navigation order of a Session built from it.
type Playlist struct {
	Tapes []Tape `json:"tapes"`
}

type Tape struct {
	VideoID  int     `json:"video_id"`
	Title    string  `json:"title"`
	Filename string  `json:"filename"`
	Clips    []Entry `json:"clips"`
}

type Entry struct {
	ClipID          int      `json:"clip_id"`
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	ThumbnailURL    string   `json:"thumbnail_url"`
	StartTime       *string  `json:"start_time,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}

// BuildPlaylist resolves every clip of every tape up front. Tapes without
// clips are skipped; they have nothing to play and would make clip index 0
// invalid.
func BuildPlaylist(videos []*models.Video, resolver *assets.Resolver) *Playlist {
	playlist := &Playlist{}
	for _, video := range videos {
		if len(video.Clips) == 0 {
			continue
		}
		tape := Tape{
			VideoID:  video.ID,
			Title:    video.Title,
			Filename: video.Filename,
			Clips:    make([]Entry, 0, len(video.Clips)),
		}
		for _, clip := range video.Clips {
			if clip.Video == nil {
				clip.Video = video
			}
			tape.Clips = append(tape.Clips, Entry{
				ClipID:          clip.ID,
				Title:           clip.DisplayTitle(),
				URL:             resolver.ClipURL(clip),
				ThumbnailURL:    resolver.ThumbnailURL(clip),
				StartTime:       clip.StartTime,
				DurationSeconds: clip.DurationSeconds,
			})
		}
		playlist.Tapes = append(playlist.Tapes, tape)
	}
	return playlist
}

// ClipCounts returns the per-tape clip counts a Session needs.
func (p *Playlist) ClipCounts() []int {
	counts := make([]int, len(p.Tapes))
	for i, tape := range p.Tapes {
		counts[i] = len(tape.Clips)
	}
	return counts
}

// Session returns a fresh closed Session over this playlist.
func (p *Playlist) Session() *Session {
	return NewSession(p.ClipCounts())
}

// Entry returns the playlist entry at a session position, or nil when the
// position is out of range (empty playlist).
func (p *Playlist) Entry(tapeIndex, clipIndex int) *Entry {
	if tapeIndex < 0 || tapeIndex >= len(p.Tapes) {
		return nil
	}
	tape := p.Tapes[tapeIndex]
	if clipIndex < 0 || clipIndex >= len(tape.Clips) {
		return nil
	}
	return &tape.Clips[clipIndex]
}

// FindClip locates a clip by ID, returning its session position.
func (p *Playlist) FindClip(clipID int) (tapeIndex, clipIndex int, ok bool) {
	for ti, tape := range p.Tapes {
		for ci, entry := range tape.Clips {
			if entry.ClipID == clipID {
				return ti, ci, true
			}
		}
	}
	return 0, 0, false
}
