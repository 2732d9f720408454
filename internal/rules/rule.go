package rules

import (
	"fmt"

	"github.com/rocketscienceinc/caro/internal/apperror"
	"github.com/rocketscienceinc/caro/internal/board"
	"github.com/rocketscienceinc/caro/internal/entity"
)

// Tolerance says how many blocked ends a winning run may have.
type Tolerance uint8

const (
	// OpenEnds wins only with both ends open.
	OpenEnds Tolerance = iota
	// OneBlockedEnd wins with at most one end blocked.
	OneBlockedEnd
	// NotBothBlocked wins unless both ends are blocked.
	NotBothBlocked
)

func (that Tolerance) Allows(blocked int) bool {
	switch that {
	case OpenEnds:
		return blocked == 0
	case OneBlockedEnd:
		return blocked <= 1
	case NotBothBlocked:
		return blocked < 2
	default:
		return false
	}
}

// Rule is a win policy: a run of at least Length tiles whose blocked ends satisfy
// Tolerance.
type Rule struct {
	Type      entity.RuleType
	Length    int
	Tolerance Tolerance
}

var (
	TicTacToe    = Rule{Type: entity.RuleTicTacToe, Length: 3, Tolerance: OpenEnds}
	FourBlockOne = Rule{Type: entity.RuleFourBlockOne, Length: 4, Tolerance: OneBlockedEnd}
	FiveBlockTwo = Rule{Type: entity.RuleFiveBlockTwo, Length: 5, Tolerance: NotBothBlocked}
)

// ForType returns the rule selected by a rule tag.
func ForType(ruleType entity.RuleType) (Rule, error) {
	switch ruleType {
	case entity.RuleTicTacToe:
		return TicTacToe, nil
	case entity.RuleFourBlockOne:
		return FourBlockOne, nil
	case entity.RuleFiveBlockTwo:
		return FiveBlockTwo, nil
	default:
		return Rule{}, fmt.Errorf("%w: %s", apperror.ErrUnknownRule, ruleType)
	}
}

// WinsAt reports whether the tile at pos completes a winning run in any direction.
func (that Rule) WinsAt(b board.Board, pos entity.Coordinate) bool {
	for _, dir := range Directions {
		run := Scan(b, pos, dir)
		if run.Length >= that.Length && that.Tolerance.Allows(run.Blocked()) {
			return true
		}
	}
	return false
}

// CheckWin evaluates only anchor when it is a non-empty tile on the board, otherwise
// every tile in row-major order, stopping at the first win.
func (that Rule) CheckWin(b board.Board, anchor *entity.Coordinate) entity.Verdict {
	if anchor != nil {
		if tile, ok := b.At(*anchor); ok && tile != entity.TileEmpty {
			return that.checkWinAt(b, *anchor, tile)
		}
	}

	for i := 0; i < b.Height(); i++ {
		for j := 0; j < b.Width(); j++ {
			pos := entity.Coordinate{Row: int64(i), Column: int64(j)}
			tile, _ := b.At(pos)
			if tile == entity.TileEmpty {
				continue
			}
			if verdict := that.checkWinAt(b, pos, tile); verdict != entity.VerdictOngoing {
				return verdict
			}
		}
	}

	return entity.VerdictOngoing
}

func (that Rule) checkWinAt(b board.Board, pos entity.Coordinate, tile entity.TileState) entity.Verdict {
	if that.WinsAt(b, pos) {
		return entity.WinFor(tile)
	}
	return entity.VerdictOngoing
}

// CheckDraw reports a draw when every tile is taken. It does not look for wins.
func (that Rule) CheckDraw(b board.Board) entity.Verdict {
	if b.IsFull() {
		return entity.VerdictDraw
	}
	return entity.VerdictOngoing
}
