package board

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/caro/internal/apperror"
	"github.com/rocketscienceinc/caro/internal/entity"
)

var ErrEmptyTile = errors.New("cannot place an empty tile")

// Store owns a mutable grid and keeps count of the occupied tiles.
type Store struct {
	g *grid
}

func NewStore(height, width int) (*Store, error) {
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidBoardSize, height, width)
	}

	return &Store{g: newGrid(height, width)}, nil
}

// Board returns a view that follows later changes to the store.
func (that *Store) Board() Board {
	return Board{g: that.g}
}

func (that *Store) OccupiedCount() int64 {
	return that.g.occupied
}

// SetTile places state on an empty in-range tile.
func (that *Store) SetTile(pos entity.Coordinate, state entity.TileState) error {
	if state == entity.TileEmpty {
		return fmt.Errorf("%w: at %s", ErrEmptyTile, pos)
	}

	if err := that.CanSet(pos); err != nil {
		return err
	}

	that.g.cells[pos.Row][pos.Column] = state
	that.g.occupied++

	return nil
}

// CanSet reports the error SetTile would return for pos without changing anything.
func (that *Store) CanSet(pos entity.Coordinate) error {
	if !that.g.contains(pos) {
		return fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, pos)
	}

	if that.g.cells[pos.Row][pos.Column] != entity.TileEmpty {
		return fmt.Errorf("%w: %s", apperror.ErrAlreadyOccupied, pos)
	}

	return nil
}

// UnsetTile empties an in-range tile. The caller must pair it with an earlier SetTile,
// otherwise the occupied count drifts.
func (that *Store) UnsetTile(pos entity.Coordinate) error {
	if !that.g.contains(pos) {
		return fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, pos)
	}

	that.g.cells[pos.Row][pos.Column] = entity.TileEmpty
	that.g.occupied--

	return nil
}

// Reset empties every tile. Dimensions are kept.
func (that *Store) Reset() {
	for i := range that.g.cells {
		clear(that.g.cells[i])
	}
	that.g.occupied = 0
}
