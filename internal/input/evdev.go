package input

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"git.lost.host/meutraa/beatline/internal/game"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey  = 0x01
	keyEsc = 1

	keyReleased = 0
	keyPressed  = 1
)

// keyEvent is struct input_event on 64 bit Linux.
type keyEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

func (e *keyEvent) time() time.Time {
	return time.Unix(e.Sec, e.Usec*int64(time.Microsecond))
}

// rawInput is a lane event still carrying its kernel timestamp.
type rawInput struct {
	lane    int
	at      time.Time
	release bool
}

// Evdev reads a Linux input device directly, which reports real key
// releases and kernel timestamps. The reader goroutine never touches the
// track; timestamps are converted in Poll.
type Evdev struct {
	file   io.ReadCloser
	lane   func(code uint16) int
	track  Clock
	wall   clock.PassiveClock
	log    logrus.FieldLogger
	events chan rawInput
	quit   chan struct{}
	err    chan error
	done   chan struct{}
	once   sync.Once
}

// OpenEvdev starts reading the device, e.g. /dev/input/event3. lane maps a
// key code to a lane or -1.
func OpenEvdev(device string, lane func(code uint16) int, track Clock, log logrus.FieldLogger) (*Evdev, error) {
	file, err := os.Open(device)
	if nil != err {
		return nil, fmt.Errorf("unable to open input device: %w", err)
	}
	e := newEvdev(file, lane, track, clock.RealClock{}, log)
	go e.read()
	return e, nil
}

func newEvdev(r io.ReadCloser, lane func(code uint16) int, track Clock, wall clock.PassiveClock, log logrus.FieldLogger) *Evdev {
	return &Evdev{
		file:   r,
		lane:   lane,
		track:  track,
		wall:   wall,
		log:    log.WithField("source", "evdev"),
		events: make(chan rawInput, 128),
		quit:   make(chan struct{}),
		err:    make(chan error, 1),
		done:   make(chan struct{}),
	}
}

func (e *Evdev) read() {
	var ev keyEvent
	for {
		if err := binary.Read(e.file, binary.LittleEndian, &ev); nil != err {
			e.log.WithError(err).Debug("input device closed")
			e.err <- err
			return
		}
		if ev.Type != evKey {
			continue
		}
		if ev.Code == keyEsc && ev.Value == keyPressed {
			close(e.quit)
			return
		}
		if ev.Value != keyPressed && ev.Value != keyReleased {
			// Autorepeat
			continue
		}
		lane := e.lane(ev.Code)
		if lane < 0 {
			continue
		}
		select {
		case e.events <- rawInput{lane: lane, at: ev.time(), release: ev.Value == keyReleased}:
		case <-e.done:
			return
		}
	}
}

// stamp converts the kernel event time to track time.
func (e *Evdev) stamp(at time.Time) time.Duration {
	return e.track.Now() - e.wall.Since(at)
}

func (e *Evdev) Poll() ([]game.Input, bool, error) {
	var inputs []game.Input
	for drained := false; !drained; {
		select {
		case in := <-e.events:
			inputs = append(inputs, game.Input{
				Lane:    in.lane,
				Time:    e.stamp(in.at),
				Release: in.release,
			})
		default:
			drained = true
		}
	}

	select {
	case <-e.quit:
		return inputs, true, nil
	case err := <-e.err:
		if err == io.EOF {
			return inputs, true, nil
		}
		return inputs, false, fmt.Errorf("unable to read input device: %w", err)
	default:
	}
	return inputs, false, nil
}

// Close stops the reader and closes the device.
func (e *Evdev) Close() error {
	e.once.Do(func() { close(e.done) })
	return e.file.Close()
}
