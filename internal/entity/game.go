package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/caro/internal/apperror"
)

// Coordinate is a (row, column) position. It has no bounds of its own.
type Coordinate struct {
	Row    int64 `json:"row" yaml:"row"`
	Column int64 `json:"column" yaml:"column"`
}

// Less orders coordinates row first, then column.
func (that Coordinate) Less(other Coordinate) bool {
	return that.Row < other.Row || (that.Row == other.Row && that.Column < other.Column)
}

// Add returns the coordinate shifted by dr rows and dc columns.
func (that Coordinate) Add(dr, dc int64) Coordinate {
	return Coordinate{Row: that.Row + dr, Column: that.Column + dc}
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Column)
}

type TileState uint8

const (
	TileEmpty TileState = iota
	TilePlayer1
	TilePlayer2
)

// Opponent returns the other player's tile, or TileEmpty for an empty tile.
func (that TileState) Opponent() TileState {
	switch that {
	case TilePlayer1:
		return TilePlayer2
	case TilePlayer2:
		return TilePlayer1
	default:
		return TileEmpty
	}
}

func (that TileState) String() string {
	switch that {
	case TilePlayer1:
		return "X"
	case TilePlayer2:
		return "O"
	default:
		return "."
	}
}

type Participant uint8

const (
	Player1 Participant = iota
	Player2
)

// Tile returns the tile a participant places.
func (that Participant) Tile() TileState {
	if that == Player2 {
		return TilePlayer2
	}
	return TilePlayer1
}

// Turn returns the game state in which the participant may act.
func (that Participant) Turn() GameState {
	if that == Player2 {
		return StatePlayer2Turn
	}
	return StatePlayer1Turn
}

func (that Participant) String() string {
	if that == Player2 {
		return "player2"
	}
	return "player1"
}

type GameState uint8

const (
	StateNotInProgress GameState = iota
	StatePlayer1Turn
	StatePlayer2Turn
	StatePlayer1Won
	StatePlayer2Won
	StateDrawn
)

// IsOver reports whether the state is terminal.
func (that GameState) IsOver() bool {
	return that == StatePlayer1Won || that == StatePlayer2Won || that == StateDrawn
}

// IsTurn reports whether a player is expected to act.
func (that GameState) IsTurn() bool {
	return that == StatePlayer1Turn || that == StatePlayer2Turn
}

func (that GameState) String() string {
	switch that {
	case StatePlayer1Turn:
		return "player1-turn"
	case StatePlayer2Turn:
		return "player2-turn"
	case StatePlayer1Won:
		return "player1-won"
	case StatePlayer2Won:
		return "player2-won"
	case StateDrawn:
		return "drawn"
	default:
		return "not-in-progress"
	}
}

type RuleType uint8

const (
	RuleTicTacToe RuleType = iota
	RuleFourBlockOne
	RuleFiveBlockTwo
)

var ruleNames = map[RuleType]string{
	RuleTicTacToe:    "tic-tac-toe",
	RuleFourBlockOne: "four-block-one",
	RuleFiveBlockTwo: "five-block-two",
}

func (that RuleType) String() string {
	if name, ok := ruleNames[that]; ok {
		return name
	}
	return fmt.Sprintf("rule(%d)", uint8(that))
}

// ParseRuleType accepts the names produced by RuleType.String, case-insensitively.
func ParseRuleType(name string) (RuleType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for rule, ruleName := range ruleNames {
		if ruleName == name {
			return rule, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", apperror.ErrUnknownRule, name)
}

// Verdict is the result of an end-of-game evaluation.
type Verdict uint8

const (
	VerdictOngoing Verdict = iota
	VerdictPlayer1Win
	VerdictPlayer2Win
	VerdictDraw
	VerdictRuleNotFound
)

// WinFor returns the winning verdict for the owner of a tile.
func WinFor(tile TileState) Verdict {
	switch tile {
	case TilePlayer1:
		return VerdictPlayer1Win
	case TilePlayer2:
		return VerdictPlayer2Win
	default:
		return VerdictOngoing
	}
}

// State maps a terminal verdict to its game state. ok is false for Ongoing and RuleNotFound.
func (that Verdict) State() (GameState, bool) {
	switch that {
	case VerdictPlayer1Win:
		return StatePlayer1Won, true
	case VerdictPlayer2Win:
		return StatePlayer2Won, true
	case VerdictDraw:
		return StateDrawn, true
	default:
		return StateNotInProgress, false
	}
}

func (that Verdict) String() string {
	switch that {
	case VerdictPlayer1Win:
		return "player1-win"
	case VerdictPlayer2Win:
		return "player2-win"
	case VerdictDraw:
		return "draw"
	case VerdictRuleNotFound:
		return "rule-not-found"
	default:
		return "ongoing"
	}
}
