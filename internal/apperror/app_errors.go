package apperror

import "errors"

var (
	ErrOutOfBounds      = errors.New("position is out of bounds")
	ErrAlreadyOccupied  = errors.New("tile is already occupied")
	ErrWrongTurn        = errors.New("it's not your turn")
	ErrRuleNotFound     = errors.New("no rule is set")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidFirstTurn = errors.New("first turn must be player1 or player2 turn")
	ErrGameInProgress   = errors.New("game is in progress")
	ErrUnknownRule      = errors.New("unknown rule")
)
