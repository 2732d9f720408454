package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/caro/internal/apperror"
	"github.com/rocketscienceinc/caro/internal/caro"
	"github.com/rocketscienceinc/caro/internal/entity"
	"github.com/rocketscienceinc/caro/internal/pool"
)

var ErrInvalidCommand = errors.New("invalid command")

type outcomeRepo interface {
	Save(ctx context.Context, outcome *entity.Outcome) error
}

// BoardSizes are the board dimensions used when a match does not ask for its own.
type BoardSizes struct {
	Height          int
	Width           int
	TicTacToeHeight int
	TicTacToeWidth  int
}

func (that BoardSizes) forRule(rule entity.RuleType) (int, int) {
	if rule == entity.RuleTicTacToe {
		return that.TicTacToeHeight, that.TicTacToeWidth
	}
	return that.Height, that.Width
}

// MatchOptions describes a new match. A nil Height or Width falls back to BoardSizes.
type MatchOptions struct {
	Rule    entity.RuleType
	Height  *int
	Width   *int
	Players [2]entity.PlayerInfo
}

type match struct {
	id       string
	rule     entity.RuleType
	game     *caro.Game[entity.PlayerInfo]
	recorded bool
}

// MatchManager runs matches held in a handle pool. Player1 always opens, and the turn
// passes to the opponent after every successful move.
type MatchManager struct {
	logger      *slog.Logger
	outcomeRepo outcomeRepo
	sizes       BoardSizes
	matches     *pool.Pool[*match]
	now         func() time.Time
}

// NewMatchManager creates a manager. A nil outcomeRepo disables outcome recording.
func NewMatchManager(logger *slog.Logger, outcomeRepo outcomeRepo, sizes BoardSizes) *MatchManager {
	return &MatchManager{
		logger: logger.With("component", "match-manager"),

		outcomeRepo: outcomeRepo,
		sizes:       sizes,
		matches:     pool.New[*match](),
		now:         time.Now,
	}
}

// Open starts a new match and returns its handle.
func (that *MatchManager) Open(options MatchOptions) (int, error) {
	log := that.logger.With("method", "Open")

	height, width := that.sizes.forRule(options.Rule)
	if options.Height != nil {
		height = *options.Height
	}
	if options.Width != nil {
		width = *options.Width
	}

	game := caro.New[entity.PlayerInfo]()
	if err := game.SetBoardSize(height, width); err != nil {
		return 0, fmt.Errorf("failed to open match: %w", err)
	}

	if err := game.SetRule(options.Rule); err != nil {
		return 0, fmt.Errorf("failed to open match: %w", err)
	}

	for i, info := range options.Players {
		if err := game.RegisterPlayerInfo(entity.Participant(i), info); err != nil {
			return 0, fmt.Errorf("failed to register player: %w", err)
		}
	}

	if err := game.Start(entity.StatePlayer1Turn); err != nil {
		return 0, fmt.Errorf("failed to start match: %w", err)
	}

	m := &match{
		id:   uuid.NewString(),
		rule: options.Rule,
		game: game,
	}
	handle := that.matches.Init(m)

	log.Info("match opened", "handle", handle, "match", m.id, "rule", m.rule.String(),
		"height", height, "width", width)

	return handle, nil
}

// Play executes a command and returns the resulting state. A rejected command leaves the
// match unchanged.
func (that *MatchManager) Play(ctx context.Context, handle int, command entity.Command) (entity.GameState, error) {
	log := that.logger.With("method", "Play", "handle", handle)

	var state entity.GameState
	err := that.matches.With(handle, func(m *match) error {
		if err := that.execute(m.game, command); err != nil {
			state = m.game.State()
			return err
		}

		state = m.game.State()
		log.Debug("command played", "match", m.id, "command", command.String(), "state", state.String())

		if m.game.IsOver() && !m.recorded {
			m.recorded = true
			that.recordOutcome(ctx, m)
		}

		return nil
	})
	if err != nil {
		return state, fmt.Errorf("failed to play %s: %w", command, err)
	}

	return state, nil
}

func (that *MatchManager) execute(game *caro.Game[entity.PlayerInfo], command entity.Command) error {
	switch command.Kind {
	case entity.CommandMove:
		if err := game.Move(command.Player, command.Position); err != nil {
			return err
		}
		game.SwitchTurn()
	case entity.CommandUndo:
		return game.Undo(command.Player)
	case entity.CommandRedo:
		return game.Redo(command.Player)
	case entity.CommandSwitch:
		if game.State() != command.Player.Turn() {
			return fmt.Errorf("%w: %s cannot pass in state %s", apperror.ErrWrongTurn, command.Player, game.State())
		}
		game.SwitchTurn()
	default:
		return fmt.Errorf("%w: %s", ErrInvalidCommand, command.Kind)
	}

	return nil
}

// Snapshot copies the whole match.
func (that *MatchManager) Snapshot(handle int) (*entity.Snapshot, error) {
	var snapshot *entity.Snapshot
	err := that.matches.With(handle, func(m *match) error {
		snapshot = &entity.Snapshot{
			ID:     m.id,
			Handle: handle,
			Rule:   m.rule.String(),
			State:  m.game.State().String(),
			Board:  m.game.Board().Rows(),
		}

		for i := range snapshot.Players {
			who := entity.Participant(i)
			info, _ := m.game.PlayerInfo(who)
			snapshot.Players[i] = entity.PlayerHistory{
				Info:   info,
				Moves:  m.game.MoveHistory(who),
				Undone: m.game.UndoneMoves(who),
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot match: %w", err)
	}

	return snapshot, nil
}

// Restart clears a match that is not being played and hands the first turn to Player1.
// The match gets a new ID.
func (that *MatchManager) Restart(handle int) error {
	log := that.logger.With("method", "Restart", "handle", handle)

	err := that.matches.With(handle, func(m *match) error {
		if m.game.State().IsTurn() {
			return fmt.Errorf("%w: %s", apperror.ErrGameInProgress, m.game.State())
		}

		m.game.Stop()
		if err := m.game.Start(entity.StatePlayer1Turn); err != nil {
			return err
		}

		m.id = uuid.NewString()
		m.recorded = false
		log.Info("match restarted", "match", m.id)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to restart match: %w", err)
	}

	return nil
}

// Close frees the handle of a match.
func (that *MatchManager) Close(handle int) error {
	err := that.matches.DeinitWith(handle, func(m *match) error {
		that.logger.Info("match closed", "handle", handle, "match", m.id, "state", m.game.State().String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to close match: %w", err)
	}

	return nil
}

// Handles lists the open matches.
func (that *MatchManager) Handles() []int {
	return that.matches.Handles()
}

func (that *MatchManager) recordOutcome(ctx context.Context, m *match) {
	log := that.logger.With("method", "recordOutcome", "match", m.id)

	outcome := &entity.Outcome{
		ID:         m.id,
		Rule:       m.rule.String(),
		State:      m.game.State().String(),
		Height:     m.game.Height(),
		Width:      m.game.Width(),
		FinishedAt: that.now().UTC(),
	}

	for i := range outcome.Players {
		who := entity.Participant(i)
		if info, ok := m.game.PlayerInfo(who); ok {
			outcome.Players[i] = info.Name
		}
		outcome.MoveCounts[i] = len(m.game.MoveHistory(who))
	}

	log.Info("match finished", "state", outcome.State, "moves", outcome.MoveCounts)

	if that.outcomeRepo == nil {
		return
	}

	if err := that.outcomeRepo.Save(ctx, outcome); err != nil {
		log.Error("failed to save outcome", "error", err)
	}
}
