package antispam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_AdmitsUpToLimit(t *testing.T) {
	tr := NewTracker()
	base := time.Unix(1000, 0)

	for i := 0; i < 5; i++ {
		ok := tr.RecordAndCheck(1, base.Add(time.Duration(i)*time.Second), 10*time.Second, 5)
		assert.True(t, ok, "request %d within the limit must pass", i+1)
	}

	ok := tr.RecordAndCheck(1, base.Add(5*time.Second), 10*time.Second, 5)
	assert.False(t, ok, "sixth request inside the window must be rejected")
}

func TestTracker_WindowSlides(t *testing.T) {
	tr := NewTracker()
	base := time.Unix(1000, 0)

	for i := 0; i < 5; i++ {
		tr.RecordAndCheck(1, base, 10*time.Second, 5)
	}
	// 11 seconds later the old entries have aged out
	ok := tr.RecordAndCheck(1, base.Add(11*time.Second), 10*time.Second, 5)
	assert.True(t, ok)
}

func TestTracker_RecordsEvenOnViolation(t *testing.T) {
	tr := NewTracker()
	base := time.Unix(1000, 0)

	for i := 0; i < 3; i++ {
		tr.RecordAndCheck(1, base, 10*time.Second, 1)
	}
	// the rejected events still occupy the window, so the next one within
	// the interval is rejected too
	ok := tr.RecordAndCheck(1, base.Add(time.Second), 10*time.Second, 1)
	assert.False(t, ok)
}

func TestTracker_ViolationCounter(t *testing.T) {
	tr := NewTracker()

	assert.Equal(t, 0, tr.ViolationCount(1))
	assert.Equal(t, 1, tr.IncrementViolation(1))
	assert.Equal(t, 2, tr.IncrementViolation(1))
	assert.Equal(t, 2, tr.ViolationCount(1))
	assert.Equal(t, 0, tr.ViolationCount(2), "counters are per user")

	tr.ResetViolation(1)
	assert.Equal(t, 0, tr.ViolationCount(1))
}

func TestTracker_PruneIdle(t *testing.T) {
	tr := NewTracker()
	base := time.Unix(1000, 0)

	tr.RecordAndCheck(1, base, 10*time.Second, 5)
	tr.RecordAndCheck(2, base.Add(time.Minute), 10*time.Second, 5)
	tr.RecordAndCheck(3, base, 10*time.Second, 5)
	tr.IncrementViolation(3)

	pruned := tr.PruneIdle(base.Add(time.Minute+time.Second), 10*time.Second)
	assert.Equal(t, 1, pruned, "only user 1 is idle without violations")

	// pruning must not change decisions for the active user
	ok := tr.RecordAndCheck(2, base.Add(time.Minute+2*time.Second), 10*time.Second, 5)
	assert.True(t, ok)
}
