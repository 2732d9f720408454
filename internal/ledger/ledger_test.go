package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/caro/internal/apperror"
	"github.com/rocketscienceinc/caro/internal/entity"
)

func at(row, column int64) entity.Coordinate {
	return entity.Coordinate{Row: row, Column: column}
}

func TestLedger_Record(t *testing.T) {
	t.Run("Appends moves in order", func(t *testing.T) {
		l := New()

		require.NoError(t, l.Record(at(0, 0)))
		require.NoError(t, l.Record(at(2, 1)))

		assert.Equal(t, []entity.Coordinate{at(0, 0), at(2, 1)}, l.History())
		assert.True(t, l.Contains(at(2, 1)))
		latest, ok := l.Latest()
		require.True(t, ok)
		assert.Equal(t, at(2, 1), latest)
	})

	t.Run("Error on negative coordinate", func(t *testing.T) {
		l := New()

		require.ErrorIs(t, l.Record(at(-1, 0)), apperror.ErrOutOfBounds)
		require.ErrorIs(t, l.Record(at(0, -1)), apperror.ErrOutOfBounds)
		assert.Empty(t, l.History())
	})

	t.Run("Error on duplicate", func(t *testing.T) {
		l := New()
		require.NoError(t, l.Record(at(1, 1)))

		err := l.Record(at(1, 1))

		require.ErrorIs(t, err, apperror.ErrAlreadyOccupied)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("Drops one redo entry", func(t *testing.T) {
		// Given: two undone moves
		l := New()
		require.NoError(t, l.Record(at(0, 0)))
		require.NoError(t, l.Record(at(0, 1)))
		_, err := l.Undo()
		require.NoError(t, err)
		_, err = l.Undo()
		require.NoError(t, err)
		require.Equal(t, []entity.Coordinate{at(0, 1), at(0, 0)}, l.Undone())

		// When: a fresh move is recorded
		require.NoError(t, l.Record(at(5, 5)))

		// Then: only the top of the redo stack is discarded
		assert.Equal(t, []entity.Coordinate{at(0, 1)}, l.Undone())
	})
}

func TestLedger_UndoRedo(t *testing.T) {
	t.Run("Round trip restores the history", func(t *testing.T) {
		l := New()
		require.NoError(t, l.Record(at(0, 0)))
		require.NoError(t, l.Record(at(3, 4)))
		before := l.History()

		undone, err := l.Undo()
		require.NoError(t, err)
		assert.Equal(t, at(3, 4), undone)
		assert.False(t, l.Contains(at(3, 4)))

		redone, err := l.Redo()
		require.NoError(t, err)
		assert.Equal(t, at(3, 4), redone)
		assert.Equal(t, before, l.History())
		assert.Empty(t, l.Undone())
		assert.True(t, l.Contains(at(3, 4)))
	})

	t.Run("Redo is last in first out", func(t *testing.T) {
		l := New()
		require.NoError(t, l.Record(at(0, 0)))
		require.NoError(t, l.Record(at(0, 1)))
		_, _ = l.Undo()
		_, _ = l.Undo()

		first, err := l.Redo()
		require.NoError(t, err)
		second, err := l.Redo()
		require.NoError(t, err)

		assert.Equal(t, at(0, 0), first)
		assert.Equal(t, at(0, 1), second)
	})

	t.Run("Error on empty stacks", func(t *testing.T) {
		l := New()

		_, err := l.Undo()
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)

		_, err = l.Redo()
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
	})

	t.Run("Redo of a coordinate already replayed fails", func(t *testing.T) {
		// Given: undone [B, A], then B is played again, which pops A
		l := New()
		require.NoError(t, l.Record(at(0, 0)))
		require.NoError(t, l.Record(at(1, 1)))
		_, _ = l.Undo()
		_, _ = l.Undo()
		require.NoError(t, l.Record(at(1, 1)))

		// When: the remaining redo entry is the coordinate just played
		_, err := l.Redo()

		// Then: nothing changes
		require.ErrorIs(t, err, apperror.ErrAlreadyOccupied)
		assert.Equal(t, []entity.Coordinate{at(1, 1)}, l.History())
		assert.Equal(t, []entity.Coordinate{at(1, 1)}, l.Undone())
	})
}

func TestLedger_Reset(t *testing.T) {
	l := New()
	require.NoError(t, l.Record(at(0, 0)))
	require.NoError(t, l.Record(at(1, 0)))
	_, _ = l.Undo()

	l.Reset()

	assert.Empty(t, l.History())
	assert.Empty(t, l.Undone())
	assert.False(t, l.Contains(at(0, 0)))
	_, ok := l.Latest()
	assert.False(t, ok)
}
