package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"k8s.io/utils/clock"
)

// bufferPeriod is the speaker buffer length, one frame at 60 fps.
const bufferPeriod = time.Second / 60

// Decode opens a music file by extension.
func Decode(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, beep.Format{}, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(file))
	}
	if nil != err {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unable to decode %s: %w", file, err)
	}
	return streamer, format, nil
}

// MusicTrack plays a decoded stream through the speaker and uses its sample
// position as the clock. Between speaker buffer refills the position is
// interpolated from the wall clock.
type MusicTrack struct {
	clock  clock.PassiveClock
	format beep.Format
	stream beep.StreamSeekCloser
	lock   func()
	unlock func()
	stop   func()

	start   time.Time
	lastPos int
	lastAt  time.Time
	mono    monotonic
}

// Play opens the speaker and starts the file after delay of silence.
func Play(c clock.PassiveClock, file string, delay time.Duration) (*MusicTrack, error) {
	stream, format, err := Decode(file)
	if nil != err {
		return nil, err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(bufferPeriod)); nil != err {
		stream.Close()
		return nil, fmt.Errorf("unable to open speaker: %w", err)
	}

	t := newMusicTrack(c, format, stream, delay)
	t.lock, t.unlock, t.stop = speaker.Lock, speaker.Unlock, speaker.Clear
	speaker.Play(beep.Seq(beep.Silence(format.SampleRate.N(delay)), stream))
	return t, nil
}

func newMusicTrack(c clock.PassiveClock, format beep.Format, stream beep.StreamSeekCloser, delay time.Duration) *MusicTrack {
	start := c.Now().Add(delay)
	return &MusicTrack{
		clock:  c,
		format: format,
		stream: stream,
		lock:   func() {},
		unlock: func() {},
		stop:   func() {},
		start:  start,
		lastAt: start,
	}
}

func (t *MusicTrack) Now() time.Duration {
	now := t.clock.Now()
	if now.Before(t.start) {
		return t.mono.clamp(now.Sub(t.start))
	}

	t.lock()
	pos := t.stream.Position()
	t.unlock()
	if pos != t.lastPos {
		t.lastPos = pos
		t.lastAt = now
	}

	since := now.Sub(t.lastAt)
	if since > bufferPeriod {
		since = bufferPeriod
	}
	return t.mono.clamp(t.format.SampleRate.D(pos) + since)
}

// Length is the duration of the whole stream.
func (t *MusicTrack) Length() time.Duration {
	return t.format.SampleRate.D(t.stream.Len())
}

func (t *MusicTrack) Close() error {
	t.stop()
	return t.stream.Close()
}
