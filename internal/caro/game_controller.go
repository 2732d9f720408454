// Package caro runs one two-player grid game: turn order, moves, undo and redo, and
// end-of-game detection through the configured rule.
//
// A Game is not safe for concurrent use. Callers sharing a Game between goroutines must
// serialize access, for example through pool.Pool.
package caro

import (
	"fmt"

	"github.com/rocketscienceinc/caro/internal/apperror"
	"github.com/rocketscienceinc/caro/internal/board"
	"github.com/rocketscienceinc/caro/internal/entity"
	"github.com/rocketscienceinc/caro/internal/ledger"
	"github.com/rocketscienceinc/caro/internal/rules"
)

const (
	DefaultHeight = 1000
	DefaultWidth  = 1000
	DefaultRule   = entity.RuleFourBlockOne
)

type player[T any] struct {
	ledger  *ledger.Ledger
	info    T
	hasInfo bool
	latest  *entity.Coordinate
}

func newPlayer[T any]() *player[T] {
	return &player[T]{ledger: ledger.New()}
}

// Game is a session generic over the payload callers attach to each participant.
type Game[T any] struct {
	players [2]*player[T]
	store   *board.Store
	judge   *rules.Judge
	state   entity.GameState
	verdict entity.Verdict
}

func New[T any]() *Game[T] {
	return &Game[T]{state: entity.StateNotInProgress}
}

// RegisterPlayerInfo attaches info to a participant, replacing any earlier payload.
func (that *Game[T]) RegisterPlayerInfo(who entity.Participant, info T) error {
	p, err := that.playerFor(who)
	if err != nil {
		return err
	}

	p.info = info
	p.hasInfo = true

	return nil
}

func (that *Game[T]) PlayerInfo(who entity.Participant) (T, bool) {
	var zero T
	if !validParticipant(who) || that.players[who] == nil || !that.players[who].hasInfo {
		return zero, false
	}
	return that.players[who].info, true
}

// SetBoardSize replaces the board. Both move ledgers are cleared with it.
func (that *Game[T]) SetBoardSize(height, width int) error {
	if that.state.IsTurn() {
		return fmt.Errorf("%w: cannot resize the board", apperror.ErrGameInProgress)
	}

	store, err := board.NewStore(height, width)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	that.store = store
	that.resetPlayers()

	return nil
}

func (that *Game[T]) SetRule(ruleType entity.RuleType) error {
	judge := that.judge
	if judge == nil {
		judge = rules.NewJudge()
	}

	if err := judge.SetRule(ruleType); err != nil {
		return fmt.Errorf("failed to set rule: %w", err)
	}
	that.judge = judge

	return nil
}

// UnsetRule removes the rule. Play goes on but the end of the game is no longer detected
// until a rule is set again, or the game is started afresh.
func (that *Game[T]) UnsetRule() {
	that.judge = nil
}

// Rule returns the active rule.
func (that *Game[T]) Rule() (entity.RuleType, bool) {
	if that.judge == nil {
		return 0, false
	}

	rule, ok := that.judge.Rule()
	return rule.Type, ok
}

// Start hands the first turn to a player, creating a default board and rule when none was
// configured.
func (that *Game[T]) Start(firstTurn entity.GameState) error {
	if !firstTurn.IsTurn() {
		return fmt.Errorf("%w: got %s", apperror.ErrInvalidFirstTurn, firstTurn)
	}

	if that.state.IsTurn() {
		return fmt.Errorf("%w: %s", apperror.ErrGameInProgress, that.state)
	}

	for i := range that.players {
		if that.players[i] == nil {
			that.players[i] = newPlayer[T]()
		}
	}

	if that.store == nil {
		store, err := board.NewStore(DefaultHeight, DefaultWidth)
		if err != nil {
			return fmt.Errorf("failed to create board: %w", err)
		}
		that.store = store
	}

	if that.judge == nil {
		if err := that.SetRule(DefaultRule); err != nil {
			return err
		}
	}

	that.state = firstTurn
	that.verdict = entity.VerdictOngoing

	return nil
}

// Stop clears the board and both ledgers and forgets the outcome.
func (that *Game[T]) Stop() {
	that.resetPlayers()
	if that.store != nil {
		that.store.Reset()
	}

	that.state = entity.StateNotInProgress
	that.verdict = entity.VerdictOngoing
}

// Move places who's tile at pos. A rejected move changes nothing.
func (that *Game[T]) Move(who entity.Participant, pos entity.Coordinate) error {
	p, err := that.actor(who)
	if err != nil {
		return err
	}

	if err = that.store.CanSet(pos); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	if err = p.ledger.CanRecord(pos); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	if err = that.store.SetTile(pos, who.Tile()); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	if err = p.ledger.Record(pos); err != nil {
		_ = that.store.UnsetTile(pos)
		return fmt.Errorf("invalid move: %w", err)
	}

	p.latest = &pos
	that.evaluate(&pos)

	return nil
}

// Undo takes back who's latest move.
func (that *Game[T]) Undo(who entity.Participant) error {
	p, err := that.actor(who)
	if err != nil {
		return err
	}

	pos, err := p.ledger.Undo()
	if err != nil {
		return fmt.Errorf("invalid undo: %w", err)
	}

	if err = that.store.UnsetTile(pos); err != nil {
		_, _ = p.ledger.Redo()
		return fmt.Errorf("invalid undo: %w", err)
	}

	p.latest = nil
	if latest, ok := p.ledger.Latest(); ok {
		p.latest = &latest
	}

	// an emptied tile may unblock any run around it, so no single anchor covers it
	that.evaluate(nil)

	return nil
}

// Redo replays who's most recently undone move.
func (that *Game[T]) Redo(who entity.Participant) error {
	p, err := that.actor(who)
	if err != nil {
		return err
	}

	pos, err := p.ledger.NextRedo()
	if err != nil {
		return fmt.Errorf("invalid redo: %w", err)
	}

	if err = that.store.CanSet(pos); err != nil {
		return fmt.Errorf("invalid redo: %w", err)
	}

	if err = that.store.SetTile(pos, who.Tile()); err != nil {
		return fmt.Errorf("invalid redo: %w", err)
	}

	if _, err = p.ledger.Redo(); err != nil {
		_ = that.store.UnsetTile(pos)
		return fmt.Errorf("invalid redo: %w", err)
	}

	p.latest = &pos
	that.evaluate(&pos)

	return nil
}

// SwitchTurn passes the turn to the other player. It does nothing outside a turn.
func (that *Game[T]) SwitchTurn() {
	switch that.state {
	case entity.StatePlayer1Turn:
		that.state = entity.StatePlayer2Turn
	case entity.StatePlayer2Turn:
		that.state = entity.StatePlayer1Turn
	default:
	}
}

func (that *Game[T]) State() entity.GameState {
	return that.state
}

func (that *Game[T]) IsOver() bool {
	return that.state.IsOver()
}

// Verdict returns the result of the latest end-of-game evaluation.
func (that *Game[T]) Verdict() entity.Verdict {
	return that.verdict
}

// Board returns a read-only view of the tiles. It is empty before a board exists.
func (that *Game[T]) Board() board.Board {
	if that.store == nil {
		return board.Board{}
	}
	return that.store.Board()
}

func (that *Game[T]) Height() int {
	return that.Board().Height()
}

func (that *Game[T]) Width() int {
	return that.Board().Width()
}

func (that *Game[T]) Tile(row, column int64) (entity.TileState, error) {
	return that.Board().Tile(row, column)
}

func (that *Game[T]) Row(i int64) ([]entity.TileState, error) {
	return that.Board().Row(i)
}

func (that *Game[T]) Column(j int64) ([]entity.TileState, error) {
	return that.Board().Column(j)
}

func (that *Game[T]) OccupiedCount() int64 {
	if that.store == nil {
		return 0
	}
	return that.store.OccupiedCount()
}

// MoveHistory returns who's moves in play order.
func (that *Game[T]) MoveHistory(who entity.Participant) []entity.Coordinate {
	if !validParticipant(who) || that.players[who] == nil {
		return nil
	}
	return that.players[who].ledger.History()
}

// UndoneMoves returns who's redo stack in undo order.
func (that *Game[T]) UndoneMoves(who entity.Participant) []entity.Coordinate {
	if !validParticipant(who) || that.players[who] == nil {
		return nil
	}
	return that.players[who].ledger.Undone()
}

// LatestMove returns the last coordinate in who's history.
func (that *Game[T]) LatestMove(who entity.Participant) (entity.Coordinate, bool) {
	if !validParticipant(who) || that.players[who] == nil || that.players[who].latest == nil {
		return entity.Coordinate{}, false
	}
	return *that.players[who].latest, true
}

func (that *Game[T]) actor(who entity.Participant) (*player[T], error) {
	if !validParticipant(who) {
		return nil, fmt.Errorf("%w: unknown participant %d", apperror.ErrWrongTurn, who)
	}

	if that.state != who.Turn() {
		return nil, fmt.Errorf("%w: %s in state %s", apperror.ErrWrongTurn, who, that.state)
	}

	return that.players[who], nil
}

func (that *Game[T]) playerFor(who entity.Participant) (*player[T], error) {
	if !validParticipant(who) {
		return nil, fmt.Errorf("%w: unknown participant %d", apperror.ErrWrongTurn, who)
	}

	if that.players[who] == nil {
		that.players[who] = newPlayer[T]()
	}

	return that.players[who], nil
}

func (that *Game[T]) resetPlayers() {
	for _, p := range that.players {
		if p == nil {
			continue
		}
		p.ledger.Reset()
		p.latest = nil
	}
}

// evaluate asks the judge for a verdict and applies terminal ones. A missing rule leaves
// the state alone.
func (that *Game[T]) evaluate(anchor *entity.Coordinate) {
	if that.judge == nil {
		that.verdict = entity.VerdictRuleNotFound
		return
	}

	that.verdict = that.judge.Evaluate(that.store.Board(), anchor)
	if state, ok := that.verdict.State(); ok {
		that.state = state
	}
}

func validParticipant(who entity.Participant) bool {
	return who == entity.Player1 || who == entity.Player2
}
