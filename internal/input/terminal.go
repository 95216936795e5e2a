package input

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
	"github.com/eiannone/keyboard"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Terminal reads keystrokes from the controlling terminal. Terminals report
// no key releases, so a lane is released once its key stops repeating for
// the repeat timeout.
type Terminal struct {
	keys    <-chan keyboard.KeyEvent
	close   func() error
	lane    func(r rune) int
	track   Clock
	wall    clock.PassiveClock
	timeout time.Duration
	log     logrus.FieldLogger

	down []bool
	seen []time.Time
}

// OpenTerminal puts the terminal in raw mode and starts reading keys. lane
// maps a rune to a lane or -1.
func OpenTerminal(lanes int, lane func(r rune) int, timeout time.Duration, track Clock, log logrus.FieldLogger) (*Terminal, error) {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	t := newTerminal(keys, lanes, lane, timeout, track, clock.RealClock{}, log)
	t.close = keyboard.Close
	return t, nil
}

func newTerminal(keys <-chan keyboard.KeyEvent, lanes int, lane func(r rune) int, timeout time.Duration, track Clock, wall clock.PassiveClock, log logrus.FieldLogger) *Terminal {
	return &Terminal{
		keys:    keys,
		close:   func() error { return nil },
		lane:    lane,
		track:   track,
		wall:    wall,
		timeout: timeout,
		log:     log.WithField("source", "terminal"),
		down:    make([]bool, lanes),
		seen:    make([]time.Time, lanes),
	}
}

func (t *Terminal) Poll() ([]game.Input, bool, error) {
	var inputs []game.Input
	for {
		select {
		case ev := <-t.keys:
			if nil != ev.Err {
				return inputs, false, fmt.Errorf("unable to read keyboard: %w", ev.Err)
			}
			if ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC {
				return inputs, true, nil
			}
			inputs = t.key(inputs, ev.Rune)
			continue
		default:
		}
		break
	}
	return t.expire(inputs), false, nil
}

func (t *Terminal) key(inputs []game.Input, r rune) []game.Input {
	lane := t.lane(r)
	if lane < 0 || lane >= len(t.down) {
		return inputs
	}
	t.seen[lane] = t.wall.Now()
	if t.down[lane] {
		return inputs
	}
	t.down[lane] = true
	return append(inputs, game.Input{Lane: lane, Time: t.track.Now()})
}

// expire releases lanes whose key has stopped repeating, stamped at the
// last time the key was seen.
func (t *Terminal) expire(inputs []game.Input) []game.Input {
	now := t.track.Now()
	for lane, down := range t.down {
		if !down {
			continue
		}
		idle := t.wall.Since(t.seen[lane])
		if idle < t.timeout {
			continue
		}
		t.down[lane] = false
		inputs = append(inputs, game.Input{Lane: lane, Time: now - idle, Release: true})
	}
	return inputs
}

func (t *Terminal) Close() error {
	if err := t.close(); nil != err {
		t.log.WithError(err).Warn("unable to close keyboard")
		return err
	}
	return nil
}
