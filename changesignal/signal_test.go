package changesignal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalFiresOnce(t *testing.T) {
	s := New()
	assert.False(t, s.HasFired())

	s.Fire()
	assert.True(t, s.HasFired())

	select {
	case <-s.Done():
	default:
		t.Fatal("Done channel should be closed after Fire")
	}

	assert.NotPanics(t, s.Fire)
	assert.True(t, s.HasFired())
}

func TestSignalIndependentInstances(t *testing.T) {
	a := New()
	b := New()

	a.Fire()

	assert.True(t, a.HasFired())
	assert.False(t, b.HasFired())
}
