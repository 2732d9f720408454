package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/caro/internal/board"
	"github.com/rocketscienceinc/caro/internal/entity"
)

// parseBoard reads rows written with 'X' for player1, 'O' for player2 and '.' for empty.
func parseBoard(t *testing.T, rows ...string) board.Board {
	t.Helper()

	tiles := make([][]entity.TileState, len(rows))
	for i, row := range rows {
		tiles[i] = make([]entity.TileState, len(row))
		for j, r := range row {
			switch r {
			case 'X':
				tiles[i][j] = entity.TilePlayer1
			case 'O':
				tiles[i][j] = entity.TilePlayer2
			case '.':
				tiles[i][j] = entity.TileEmpty
			default:
				t.Fatalf("unexpected tile %q in row %d", r, i)
			}
		}
	}

	b, err := board.New(tiles)
	require.NoError(t, err)

	return b
}

func at(row, column int64) *entity.Coordinate {
	return &entity.Coordinate{Row: row, Column: column}
}
