package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceLifecycle(t *testing.T) {
	t.Run("starts idle", func(t *testing.T) {
		var r Resource[[]float64]
		assert.Equal(t, StateIdle, r.State())
		_, ok := r.Value()
		assert.False(t, ok)
		_, pending := r.Pending()
		assert.False(t, pending)
	})

	t.Run("begin then resolve", func(t *testing.T) {
		var r Resource[[]float64]
		gen := r.Begin()
		assert.Equal(t, StateLoading, r.State())

		pendingGen, pending := r.Pending()
		require.True(t, pending)
		assert.Equal(t, gen, pendingGen)

		require.True(t, r.Resolve(gen, []float64{1, 2, 3}))
		v, ok := r.Value()
		require.True(t, ok)
		assert.Equal(t, []float64{1, 2, 3}, v)
		assert.Equal(t, StateSuccess, r.State())
	})

	t.Run("begin then fail keeps cause", func(t *testing.T) {
		var r Resource[int]
		cause := errors.New("boom")
		gen := r.Begin()
		require.True(t, r.Fail(gen, "something broke", cause))
		assert.Equal(t, StateError, r.State())
		assert.Equal(t, "something broke", r.Message())
		assert.ErrorIs(t, r.Cause(), cause)
	})

	t.Run("second completion is ignored", func(t *testing.T) {
		var r Resource[int]
		gen := r.Begin()
		require.True(t, r.Resolve(gen, 1))
		assert.False(t, r.Resolve(gen, 2))
		assert.False(t, r.Fail(gen, "late", errors.New("late")))
		v, _ := r.Value()
		assert.Equal(t, 1, v)
	})
}

func TestResourceGenerations(t *testing.T) {
	t.Run("superseded fetch is discarded", func(t *testing.T) {
		var r Resource[int]
		first := r.Begin()
		second := r.Begin()
		assert.NotEqual(t, first, second)

		assert.False(t, r.Resolve(first, 1))
		assert.Equal(t, StateLoading, r.State())
		assert.True(t, r.Resolve(second, 2))
	})

	t.Run("invalidate keeps visible state", func(t *testing.T) {
		var r Resource[int]
		gen := r.Begin()
		r.Invalidate()

		assert.Equal(t, StateLoading, r.State())
		_, pending := r.Pending()
		assert.False(t, pending)
		assert.False(t, r.Resolve(gen, 1))
		assert.Equal(t, StateLoading, r.State())
	})

	t.Run("reset returns to idle and drops in-flight result", func(t *testing.T) {
		var r Resource[int]
		gen := r.Begin()
		r.Reset()
		assert.Equal(t, StateIdle, r.State())
		assert.False(t, r.Resolve(gen, 1))
		assert.Equal(t, StateIdle, r.State())
	})

	t.Run("begin clears previous outcome", func(t *testing.T) {
		var r Resource[int]
		gen := r.Begin()
		r.Fail(gen, "bad", errors.New("bad"))
		r.Begin()
		assert.Empty(t, r.Message())
		assert.NoError(t, r.Cause())
		assert.Equal(t, StateLoading, r.Snapshot().State)
	})
}
