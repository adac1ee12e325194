package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerCountsTicks(t *testing.T) {
	tm := StartTimer(5 * time.Millisecond)
	defer tm.Stop()

	time.Sleep(60 * time.Millisecond)
	elapsed := tm.Elapsed()
	assert.Greater(t, elapsed, time.Duration(0))
}

func TestTimerStopIsIdempotent(t *testing.T) {
	tm := StartTimer(5 * time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	tm.Stop()
	frozen := tm.Elapsed()

	// parar de novo não entra em pânico nem altera o valor congelado
	tm.Stop()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, frozen, tm.Elapsed())
}
