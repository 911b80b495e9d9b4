package playback

// Session tracks the currently playing position across a nested two-level
// sequence: tape, then clip within that tape. The zero value is a closed
// session. All navigation is clamped at boundaries, never wrapped.
//
// The server renders one page per session state (the /player route) and a
// small client script mirrors the same transitions for keyboard and swipe
// input; both sides must agree on these rules, so they live here in one
// place with the client kept intentionally dumb.
type Session struct {
	// ClipCounts[i] is the number of clips on tape i.
	ClipCounts []int

	open       bool
	tapeIndex  int
	clipIndex  int
	originTape int
	originClip int
}

func NewSession(clipCounts []int) *Session {
	return &Session{ClipCounts: clipCounts}
}

// Open starts playback at the given tape and clip, recording them as the
// origin so Close can reset to it. Out-of-range positions are clamped into
// the valid range rather than rejected.
func (s *Session) Open(tapeIndex, clipIndex int) {
	tapeIndex = clampInt(tapeIndex, 0, len(s.ClipCounts)-1)
	clipIndex = clampInt(clipIndex, 0, s.lastClip(tapeIndex))

	s.open = true
	s.tapeIndex = tapeIndex
	s.clipIndex = clipIndex
	s.originTape = tapeIndex
	s.originClip = clipIndex
}

// Close ends playback and resets position to the origin tape and clip, so a
// later Open on the same thumbnail starts fresh instead of resuming wherever
// navigation left off.
func (s *Session) Close() {
	s.open = false
	s.tapeIndex = s.originTape
	s.clipIndex = s.originClip
}

func (s *Session) IsOpen() bool { return s.open }

// Position reports the current tape and clip indexes.
func (s *Session) Position() (tapeIndex, clipIndex int) {
	return s.tapeIndex, s.clipIndex
}

// NextClip advances within the current tape. No-op at the last clip.
func (s *Session) NextClip() {
	if !s.open {
		return
	}
	if s.clipIndex < s.lastClip(s.tapeIndex) {
		s.clipIndex++
	}
}

// PrevClip steps back within the current tape. No-op at the first clip.
func (s *Session) PrevClip() {
	if !s.open {
		return
	}
	if s.clipIndex > 0 {
		s.clipIndex--
	}
}

// NextTape moves to the first clip of the next tape. No-op at the last tape.
func (s *Session) NextTape() {
	if !s.open {
		return
	}
	if s.tapeIndex < len(s.ClipCounts)-1 {
		s.tapeIndex++
		s.clipIndex = 0
	}
}

// PrevTape moves to the first clip of the previous tape. No-op at tape 0.
func (s *Session) PrevTape() {
	if !s.open {
		return
	}
	if s.tapeIndex > 0 {
		s.tapeIndex--
		s.clipIndex = 0
	}
}

// MediaEnded auto-advances to the next clip of the same tape. Unlike the
// explicit tape controls it never crosses a tape boundary; at the last clip
// playback simply stops.
func (s *Session) MediaEnded() {
	s.NextClip()
}

// HasNextClip reports whether NextClip would move.
func (s *Session) HasNextClip() bool {
	return s.open && s.clipIndex < s.lastClip(s.tapeIndex)
}

// HasPrevClip reports whether PrevClip would move.
func (s *Session) HasPrevClip() bool {
	return s.open && s.clipIndex > 0
}

// HasNextTape reports whether NextTape would move.
func (s *Session) HasNextTape() bool {
	return s.open && s.tapeIndex < len(s.ClipCounts)-1
}

// HasPrevTape reports whether PrevTape would move.
func (s *Session) HasPrevTape() bool {
	return s.open && s.tapeIndex > 0
}

func (s *Session) lastClip(tapeIndex int) int {
	if tapeIndex < 0 || tapeIndex >= len(s.ClipCounts) {
		return 0
	}
	last := s.ClipCounts[tapeIndex] - 1
	if last < 0 {
		return 0
	}
	return last
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
