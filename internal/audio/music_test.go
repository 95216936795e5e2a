package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

type fakeStream struct {
	pos, length int
	closed      bool
}

func (s *fakeStream) Stream(samples [][2]float64) (int, bool) {
	return 0, false
}

func (s *fakeStream) Err() error       { return nil }
func (s *fakeStream) Len() int         { return s.length }
func (s *fakeStream) Position() int    { return s.pos }
func (s *fakeStream) Seek(p int) error { s.pos = p; return nil }
func (s *fakeStream) Close() error     { s.closed = true; return nil }

var testFormat = beep.Format{SampleRate: 48000, NumChannels: 2, Precision: 2}

func TestMusicTrackClock(t *testing.T) {
	epoch := time.Unix(1000, 0)
	c := testingclock.NewFakePassiveClock(epoch)
	stream := &fakeStream{length: 48000 * 10}
	track := newMusicTrack(c, testFormat, stream, time.Second)

	// Silent lead in follows the wall clock
	assert.Equal(t, -time.Second, track.Now())
	c.SetTime(epoch.Add(400 * time.Millisecond))
	assert.Equal(t, -600*time.Millisecond, track.Now())

	// Playing, the sample position drives the clock
	c.SetTime(epoch.Add(1500 * time.Millisecond))
	stream.pos = 24000
	assert.Equal(t, 500*time.Millisecond, track.Now())

	// Interpolated between refills, at most one buffer ahead
	c.SetTime(epoch.Add(1505 * time.Millisecond))
	assert.Equal(t, 505*time.Millisecond, track.Now())
	c.SetTime(epoch.Add(1600 * time.Millisecond))
	assert.Equal(t, 500*time.Millisecond+bufferPeriod, track.Now())

	// A refill that lags the interpolation does not move the clock back
	stream.pos = 24480
	assert.Equal(t, 500*time.Millisecond+bufferPeriod, track.Now())

	assert.Equal(t, 10*time.Second, track.Length())
	assert.NoError(t, track.Close())
	assert.True(t, stream.closed)
}

func TestDecode(t *testing.T) {
	dir := t.TempDir()

	t.Run("wav", func(t *testing.T) {
		path := filepath.Join(dir, "silence.wav")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, wav.Encode(f, beep.Silence(4800), testFormat))
		require.NoError(t, f.Close())

		stream, format, err := Decode(path)
		require.NoError(t, err)
		defer stream.Close()
		assert.Equal(t, testFormat.SampleRate, format.SampleRate)
		assert.Equal(t, 4800, stream.Len())
	})

	t.Run("unsupported", func(t *testing.T) {
		path := filepath.Join(dir, "song.flac")
		require.NoError(t, os.WriteFile(path, []byte("fLaC"), 0o644))
		_, _, err := Decode(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := Decode(filepath.Join(dir, "missing.ogg"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt", func(t *testing.T) {
		path := filepath.Join(dir, "broken.wav")
		require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))
		_, _, err := Decode(path)
		assert.Error(t, err)
	})
}
