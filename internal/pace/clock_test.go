package pace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPacerWaitBlocksRoughlyOneInterval(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)

	start := time.Now()
	p.Wait()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 15*time.Millisecond)
	assert.Equal(t, int64(1), p.Ticks())
}

func TestPacerCatchesUpAfterSlowConsumer(t *testing.T) {
	p := NewPacer(10 * time.Millisecond)

	// A consumer that takes longer than the interval between calls
	// should not make Wait stack the missed delay onto the next call.
	time.Sleep(30 * time.Millisecond)

	start := time.Now()
	p.Wait()
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 10*time.Millisecond)
	assert.Equal(t, int64(1), p.Ticks())
}
