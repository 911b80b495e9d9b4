package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func openSession(clipCounts []int, tape, clip int) *Session {
	s := NewSession(clipCounts)
	s.Open(tape, clip)
	return s
}

func assertPosition(t *testing.T, s *Session, tape, clip int) {
	t.Helper()
	gotTape, gotClip := s.Position()
	assert.Equal(t, tape, gotTape)
	assert.Equal(t, clip, gotClip)
}

func TestSession_OpenRecordsPosition(t *testing.T) {
	t.Parallel()
	s := openSession([]int{3, 2}, 1, 1)

	assert.True(t, s.IsOpen())
	assertPosition(t, s, 1, 1)
}

func TestSession_NextPrevClipRoundTrip(t *testing.T) {
	t.Parallel()
	s := openSession([]int{3}, 0, 0)

	s.NextClip()
	assertPosition(t, s, 0, 1)
	s.PrevClip()
	assertPosition(t, s, 0, 0)
}

func TestSession_NextClipClampsAtLastClip(t *testing.T) {
	t.Parallel()
	s := openSession([]int{2}, 0, 1)

	assert.False(t, s.HasNextClip())
	s.NextClip()
	s.NextClip()
	s.NextClip()
	assertPosition(t, s, 0, 1)
}

func TestSession_PrevClipClampsAtFirstClip(t *testing.T) {
	t.Parallel()
	s := openSession([]int{2}, 0, 0)

	assert.False(t, s.HasPrevClip())
	s.PrevClip()
	assertPosition(t, s, 0, 0)
}

func TestSession_TapeNavigationResetsClipToFirst(t *testing.T) {
	t.Parallel()
	s := openSession([]int{3, 4, 2}, 1, 3)

	s.NextTape()
	assertPosition(t, s, 2, 0)

	s.NextClip()
	s.PrevTape()
	assertPosition(t, s, 1, 0)
}

func TestSession_TapeNavigationClampsAtEnds(t *testing.T) {
	t.Parallel()
	s := openSession([]int{2, 2}, 1, 0)

	assert.False(t, s.HasNextTape())
	s.NextTape()
	assertPosition(t, s, 1, 0)

	s.PrevTape()
	assert.False(t, s.HasPrevTape())
	s.PrevTape()
	assertPosition(t, s, 0, 0)
}

func TestSession_MediaEndedAdvancesWithinTapeOnly(t *testing.T) {
	t.Parallel()
	s := openSession([]int{2, 3}, 0, 0)

	s.MediaEnded()
	assertPosition(t, s, 0, 1)

	// Last clip of the tape: stays put, never crosses to the next tape.
	s.MediaEnded()
	s.MediaEnded()
	assertPosition(t, s, 0, 1)
}

func TestSession_CloseResetsToOrigin(t *testing.T) {
	t.Parallel()
	s := openSession([]int{3, 3, 3}, 0, 1)

	s.NextTape()
	s.NextTape()
	s.NextClip()
	assertPosition(t, s, 2, 1)

	s.Close()
	assert.False(t, s.IsOpen())
	assertPosition(t, s, 0, 1)
}

func TestSession_CloseThenReopenIsDeterministic(t *testing.T) {
	t.Parallel()
	s := NewSession([]int{3, 2})

	s.Open(1, 1)
	s.PrevTape()
	s.Close()

	s.Open(1, 1)
	assertPosition(t, s, 1, 1)
}

func TestSession_OpenClampsOutOfRangePositions(t *testing.T) {
	t.Parallel()
	s := NewSession([]int{2, 3})

	s.Open(5, 9)
	assertPosition(t, s, 1, 2)

	s.Open(-1, -1)
	assertPosition(t, s, 0, 0)
}

func TestSession_NavigationIgnoredWhenClosed(t *testing.T) {
	t.Parallel()
	s := NewSession([]int{3})

	s.NextClip()
	s.NextTape()
	assert.False(t, s.IsOpen())
	assertPosition(t, s, 0, 0)
}
