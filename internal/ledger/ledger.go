// Package ledger keeps one player's move history together with its redo stack.
package ledger

import (
	"fmt"

	"github.com/rocketscienceinc/caro/internal/apperror"
	"github.com/rocketscienceinc/caro/internal/entity"
)

type Ledger struct {
	history  []entity.Coordinate
	undone   []entity.Coordinate
	occupied map[entity.Coordinate]struct{}
}

func New() *Ledger {
	return &Ledger{occupied: make(map[entity.Coordinate]struct{})}
}

// Record appends pos to the history. A recorded move drops one entry from the top of the
// redo stack.
func (that *Ledger) Record(pos entity.Coordinate) error {
	if err := that.CanRecord(pos); err != nil {
		return err
	}

	that.history = append(that.history, pos)
	that.occupied[pos] = struct{}{}
	if n := len(that.undone); n > 0 {
		that.undone = that.undone[:n-1]
	}

	return nil
}

// CanRecord reports the error Record would return for pos.
func (that *Ledger) CanRecord(pos entity.Coordinate) error {
	if pos.Row < 0 || pos.Column < 0 {
		return fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, pos)
	}

	if that.Contains(pos) {
		return fmt.Errorf("%w: %s", apperror.ErrAlreadyOccupied, pos)
	}

	return nil
}

// Undo moves the latest move onto the redo stack and returns it.
func (that *Ledger) Undo() (entity.Coordinate, error) {
	n := len(that.history)
	if n == 0 {
		return entity.Coordinate{}, fmt.Errorf("%w: nothing to undo", apperror.ErrOutOfBounds)
	}

	pos := that.history[n-1]
	that.history = that.history[:n-1]
	that.undone = append(that.undone, pos)
	delete(that.occupied, pos)

	return pos, nil
}

// NextRedo returns the move Redo would replay.
func (that *Ledger) NextRedo() (entity.Coordinate, error) {
	n := len(that.undone)
	if n == 0 {
		return entity.Coordinate{}, fmt.Errorf("%w: nothing to redo", apperror.ErrOutOfBounds)
	}

	pos := that.undone[n-1]
	if that.Contains(pos) {
		return entity.Coordinate{}, fmt.Errorf("%w: redo of %s", apperror.ErrAlreadyOccupied, pos)
	}

	return pos, nil
}

// Redo replays the most recently undone move and returns it.
func (that *Ledger) Redo() (entity.Coordinate, error) {
	pos, err := that.NextRedo()
	if err != nil {
		return entity.Coordinate{}, err
	}

	that.undone = that.undone[:len(that.undone)-1]
	that.history = append(that.history, pos)
	that.occupied[pos] = struct{}{}

	return pos, nil
}

func (that *Ledger) Contains(pos entity.Coordinate) bool {
	_, ok := that.occupied[pos]
	return ok
}

// Latest returns the last move in the history.
func (that *Ledger) Latest() (entity.Coordinate, bool) {
	if len(that.history) == 0 {
		return entity.Coordinate{}, false
	}
	return that.history[len(that.history)-1], true
}

// History returns a copy of the moves in play order.
func (that *Ledger) History() []entity.Coordinate {
	return append([]entity.Coordinate{}, that.history...)
}

// Undone returns a copy of the redo stack, oldest undo first.
func (that *Ledger) Undone() []entity.Coordinate {
	return append([]entity.Coordinate{}, that.undone...)
}

func (that *Ledger) Len() int {
	return len(that.history)
}

func (that *Ledger) Reset() {
	that.history = nil
	that.undone = nil
	clear(that.occupied)
}
