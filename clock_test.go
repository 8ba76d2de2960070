package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDropClock(t *testing.T) {
	c := NewDropClock(time.Second)
	assert.Equal(t, time.Second, c.Interval())

	assert.False(t, c.Advance(0))
	assert.False(t, c.Advance(400*time.Millisecond))
	assert.False(t, c.Advance(time.Second))
	assert.Equal(t, time.Second, c.Elapsed())

	assert.True(t, c.Advance(time.Second+time.Millisecond))
	// stays due until someone resets it
	assert.True(t, c.Advance(time.Second+2*time.Millisecond))

	c.Reset()
	assert.Zero(t, c.Elapsed())
	assert.False(t, c.Advance(1500*time.Millisecond))
	assert.Equal(t, 498*time.Millisecond, c.Elapsed())
}

func TestDropClockLargeGap(t *testing.T) {
	c := NewDropClock(time.Second)
	assert.True(t, c.Advance(5*time.Second))
	assert.Equal(t, 5*time.Second, c.Elapsed())
}

func TestDropClockInterval(t *testing.T) {
	assert.Panics(t, func() { NewDropClock(0) })
	assert.Panics(t, func() { NewDropClock(-time.Millisecond) })
}
