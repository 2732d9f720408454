// Package rules decides when a game ends: it scans lines of tiles through a coordinate
// and applies the run length and blocked-end policy of the selected rule.
package rules

import (
	"github.com/rocketscienceinc/caro/internal/board"
	"github.com/rocketscienceinc/caro/internal/entity"
)

// Direction is a unit step along one of the four line orientations.
type Direction struct {
	DRow    int64
	DColumn int64
}

var (
	Horizontal      = Direction{DRow: 0, DColumn: 1}
	Vertical        = Direction{DRow: 1, DColumn: 0}
	ForwardDiagonal = Direction{DRow: 1, DColumn: 1}
	BackDiagonal    = Direction{DRow: 1, DColumn: -1}

	Directions = [4]Direction{Horizontal, Vertical, ForwardDiagonal, BackDiagonal}
)

// Run is the contiguous line of the anchor owner's tiles through the anchor.
type Run struct {
	Length       int
	BlockedStart bool
	BlockedEnd   bool
}

// Blocked returns the number of ends (0, 1 or 2) touching an opponent tile.
func (that Run) Blocked() int {
	blocked := 0
	if that.BlockedStart {
		blocked++
	}
	if that.BlockedEnd {
		blocked++
	}
	return blocked
}

// Scan measures the run through anchor along dir. An empty or off-board anchor yields
// a zero Run. The board edge does not block.
func Scan(b board.Board, anchor entity.Coordinate, dir Direction) Run {
	owner, ok := b.At(anchor)
	if !ok || owner == entity.TileEmpty {
		return Run{}
	}

	back, blockedStart := walk(b, anchor, -dir.DRow, -dir.DColumn, owner)
	forward, blockedEnd := walk(b, anchor, dir.DRow, dir.DColumn, owner)

	// both walks counted the anchor
	return Run{
		Length:       back + forward - 1,
		BlockedStart: blockedStart,
		BlockedEnd:   blockedEnd,
	}
}

// walk steps from pos while tiles belong to owner. It returns the number of owner tiles
// seen, pos included, and whether the first other tile on the board is the opponent's.
func walk(b board.Board, pos entity.Coordinate, dr, dc int64, owner entity.TileState) (int, bool) {
	steps := 0
	for {
		tile, ok := b.At(pos)
		if !ok {
			return steps, false
		}
		if tile != owner {
			return steps, tile == owner.Opponent()
		}

		steps++
		pos = pos.Add(dr, dc)
	}
}
