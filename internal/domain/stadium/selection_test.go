//go:build unit

package stadium_test

import (
	"testing"

	"arenahub-booking/internal/domain/stadium"
	"arenahub-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection(t *testing.T) {
	catalog := builder.BuildCatalog(3)

	t.Run("proceed needs a stadium", func(t *testing.T) {
		sel := stadium.NewSelection()
		require.ErrorIs(t, sel.Proceed(), stadium.ErrNoStadiumSelected)
		assert.False(t, sel.Proceeded())
	})

	t.Run("select then proceed", func(t *testing.T) {
		sel := stadium.NewSelection()
		st, changed, err := sel.Select(catalog, 2)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, int64(2), st.ID())

		require.NoError(t, sel.Proceed())
		assert.True(t, sel.Proceeded())
	})

	t.Run("reselecting the same stadium keeps proceed", func(t *testing.T) {
		sel := stadium.ReconstructSelection(2, true)
		_, changed, err := sel.Select(catalog, 2)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.True(t, sel.Proceeded())
	})

	t.Run("switching stadium withdraws proceed", func(t *testing.T) {
		sel := stadium.ReconstructSelection(2, true)
		_, changed, err := sel.Select(catalog, 3)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, int64(3), sel.SelectedID())
		assert.False(t, sel.Proceeded())
	})

	t.Run("unknown stadium leaves selection alone", func(t *testing.T) {
		sel := stadium.ReconstructSelection(2, true)
		_, _, err := sel.Select(catalog, 42)
		require.ErrorIs(t, err, stadium.ErrStadiumNotFound)
		assert.Equal(t, int64(2), sel.SelectedID())
		assert.True(t, sel.Proceeded())
	})

	t.Run("clear", func(t *testing.T) {
		sel := stadium.ReconstructSelection(2, true)
		sel.Clear()
		assert.False(t, sel.HasSelection())
		assert.False(t, sel.Proceeded())
	})

	t.Run("reconstruct drops invalid ids", func(t *testing.T) {
		sel := stadium.ReconstructSelection(0, true)
		assert.False(t, sel.HasSelection())
		assert.False(t, sel.Proceeded())
	})
}
