// Package board holds the tile grid of a game and read-only views over it.
package board

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/caro/internal/apperror"
	"github.com/rocketscienceinc/caro/internal/entity"
)

type grid struct {
	cells    [][]entity.TileState
	height   int
	width    int
	occupied int64
}

func newGrid(height, width int) *grid {
	cells := make([][]entity.TileState, height)
	for i := range cells {
		cells[i] = make([]entity.TileState, width)
	}

	return &grid{cells: cells, height: height, width: width}
}

func (that *grid) contains(pos entity.Coordinate) bool {
	return that.height > 0 && that.width > 0 &&
		pos.Row >= 0 && pos.Row < int64(that.height) &&
		pos.Column >= 0 && pos.Column < int64(that.width)
}

// Board is a read-only view of a grid. The zero value is an empty 0x0 board.
type Board struct {
	g *grid
}

// New builds a detached board from rectangular rows, e.g. to verify an arbitrary position.
func New(rows [][]entity.TileState) (Board, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}

	g := newGrid(height, width)
	for i, row := range rows {
		if len(row) != width {
			return Board{}, fmt.Errorf("%w: row %d has %d tiles, want %d", apperror.ErrInvalidBoardSize, i, len(row), width)
		}
		for j, tile := range row {
			g.cells[i][j] = tile
			if tile != entity.TileEmpty {
				g.occupied++
			}
		}
	}

	return Board{g: g}, nil
}

func (that Board) Height() int {
	if that.g == nil {
		return 0
	}
	return that.g.height
}

func (that Board) Width() int {
	if that.g == nil {
		return 0
	}
	return that.g.width
}

// Contains reports whether pos lies within [0,height) x [0,width).
func (that Board) Contains(pos entity.Coordinate) bool {
	return that.g != nil && that.g.contains(pos)
}

// Occupied returns the number of non-empty tiles.
func (that Board) Occupied() int64 {
	if that.g == nil {
		return 0
	}
	return that.g.occupied
}

// IsFull reports whether every tile is taken. A board without tiles is never full.
func (that Board) IsFull() bool {
	area := int64(that.Height()) * int64(that.Width())
	return area > 0 && that.Occupied() == area
}

// At returns the tile at pos; ok is false when pos is off the board.
func (that Board) At(pos entity.Coordinate) (entity.TileState, bool) {
	if !that.Contains(pos) {
		return entity.TileEmpty, false
	}
	return that.g.cells[pos.Row][pos.Column], true
}

func (that Board) Tile(row, column int64) (entity.TileState, error) {
	tile, ok := that.At(entity.Coordinate{Row: row, Column: column})
	if !ok {
		return entity.TileEmpty, fmt.Errorf("%w: tile (%d, %d)", apperror.ErrOutOfBounds, row, column)
	}
	return tile, nil
}

// Row returns a copy of row i.
func (that Board) Row(i int64) ([]entity.TileState, error) {
	if i < 0 || i >= int64(that.Height()) {
		return nil, fmt.Errorf("%w: row %d", apperror.ErrOutOfBounds, i)
	}

	row := make([]entity.TileState, that.g.width)
	copy(row, that.g.cells[i])

	return row, nil
}

// Column returns a copy of column j.
func (that Board) Column(j int64) ([]entity.TileState, error) {
	if j < 0 || j >= int64(that.Width()) {
		return nil, fmt.Errorf("%w: column %d", apperror.ErrOutOfBounds, j)
	}

	column := make([]entity.TileState, that.g.height)
	for i := range column {
		column[i] = that.g.cells[i][j]
	}

	return column, nil
}

// Rows returns a deep copy of the whole grid.
func (that Board) Rows() [][]entity.TileState {
	rows := make([][]entity.TileState, that.Height())
	for i := range rows {
		rows[i] = make([]entity.TileState, that.g.width)
		copy(rows[i], that.g.cells[i])
	}
	return rows
}

// String draws the grid one row per line.
func (that Board) String() string {
	var sb strings.Builder
	for i := 0; i < that.Height(); i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, tile := range that.g.cells[i] {
			sb.WriteString(tile.String())
		}
	}
	return sb.String()
}
