package sim

import (
	"errors"
	"testing"

	"github.com/milk9111/roadrush/tuning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloaderPoll(t *testing.T) {
	s := newSim(t, Options{DisableSpawner: true})
	original := s.Tuning()

	events := make(chan string, 4)
	loads := 0
	var loadErr error
	r := NewReloader(s, events, func() (*tuning.Tuning, error) {
		loads++
		if loadErr != nil {
			return nil, loadErr
		}
		next, err := tuning.LoadAll()
		require.NoError(t, err)
		next.Ragdoll.MaxActive = 3
		return next, nil
	})

	applied, err := r.Poll()
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 0, loads)

	events <- tuning.RagdollFile
	events <- tuning.SurfacesFile
	applied, err = r.Poll()
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 1, loads, "a burst of changes reloads once")
	assert.Equal(t, 3, s.Tuning().Ragdoll.MaxActive)
	assert.NotSame(t, original, s.Tuning())

	current := s.Tuning()
	loadErr = errors.New("bad yaml")
	events <- tuning.RagdollFile
	applied, err = r.Poll()
	require.ErrorIs(t, err, loadErr)
	assert.False(t, applied)
	assert.Same(t, current, s.Tuning())
}
