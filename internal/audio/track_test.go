package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testingclock "k8s.io/utils/clock/testing"
)

func TestWallTrack(t *testing.T) {
	epoch := time.Unix(1000, 0)
	c := testingclock.NewFakePassiveClock(epoch)
	track := NewWallTrack(c, 1500*time.Millisecond)

	assert.Equal(t, -1500*time.Millisecond, track.Now())

	c.SetTime(epoch.Add(time.Second))
	assert.Equal(t, -500*time.Millisecond, track.Now())

	c.SetTime(epoch.Add(2 * time.Second))
	assert.Equal(t, 500*time.Millisecond, track.Now())

	// A clock step back does not move the track back
	c.SetTime(epoch.Add(1900 * time.Millisecond))
	assert.Equal(t, 500*time.Millisecond, track.Now())

	assert.NoError(t, track.Close())
}

func TestMonotonic(t *testing.T) {
	var m monotonic
	assert.Equal(t, -time.Second, m.clamp(-time.Second))
	assert.Equal(t, time.Second, m.clamp(time.Second))
	assert.Equal(t, time.Second, m.clamp(0))
	assert.Equal(t, 2*time.Second, m.clamp(2*time.Second))
}
