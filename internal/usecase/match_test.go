package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/caro/internal/apperror"
	"github.com/rocketscienceinc/caro/internal/entity"
	"github.com/rocketscienceinc/caro/internal/pool"
	mockedUseCase "github.com/rocketscienceinc/caro/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

var testSizes = BoardSizes{Height: 15, Width: 15, TicTacToeHeight: 3, TicTacToeWidth: 3}

var finishedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newManager(t *testing.T, repo outcomeRepo) *MatchManager {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	manager := NewMatchManager(logger, repo, testSizes)
	manager.now = func() time.Time { return finishedAt }

	return manager
}

func size(n int) *int {
	return &n
}

func ticTacToeOptions() MatchOptions {
	return MatchOptions{
		Rule: entity.RuleTicTacToe,
		Players: [2]entity.PlayerInfo{
			{ID: "p1", Name: "alice"},
			{ID: "p2", Name: "bob"},
		},
	}
}

func move(who entity.Participant, row, column int64) entity.Command {
	return entity.Command{Kind: entity.CommandMove, Player: who, Position: entity.Coordinate{Row: row, Column: column}}
}

// winningRow lets player1 complete the top row of a tic-tac-toe board.
var winningRow = []entity.Command{
	move(entity.Player1, 0, 0),
	move(entity.Player2, 1, 0),
	move(entity.Player1, 0, 1),
	move(entity.Player2, 1, 1),
	move(entity.Player1, 0, 2),
}

func playAll(t *testing.T, manager *MatchManager, handle int, commands []entity.Command) entity.GameState {
	t.Helper()

	var state entity.GameState
	for _, command := range commands {
		var err error
		state, err = manager.Play(context.Background(), handle, command)
		require.NoError(t, err, command.String())
	}

	return state
}

func TestMatchManager_Open(t *testing.T) {
	t.Run("Tic-tac-toe uses its own board size", func(t *testing.T) {
		// Given: a manager
		manager := newManager(t, nil)

		// When: a tic-tac-toe match is opened
		handle, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)

		// Then: the match is waiting for player1 on a 3x3 board
		snapshot, err := manager.Snapshot(handle)
		require.NoError(t, err)
		assert.Equal(t, 0, snapshot.Handle)
		assert.NotEmpty(t, snapshot.ID)
		assert.Equal(t, "tic-tac-toe", snapshot.Rule)
		assert.Equal(t, "player1-turn", snapshot.State)
		assert.Len(t, snapshot.Board, 3)
		assert.Len(t, snapshot.Board[0], 3)
		assert.Equal(t, "alice", snapshot.Players[0].Info.Name)
		assert.Equal(t, "bob", snapshot.Players[1].Info.Name)
	})

	t.Run("Other rules use the configured size", func(t *testing.T) {
		manager := newManager(t, nil)

		handle, err := manager.Open(MatchOptions{Rule: entity.RuleFiveBlockTwo})
		require.NoError(t, err)

		snapshot, err := manager.Snapshot(handle)
		require.NoError(t, err)
		assert.Len(t, snapshot.Board, 15)
		assert.Equal(t, "five-block-two", snapshot.Rule)
	})

	t.Run("Explicit size wins", func(t *testing.T) {
		manager := newManager(t, nil)

		handle, err := manager.Open(MatchOptions{Rule: entity.RuleFourBlockOne, Height: size(6), Width: size(7)})
		require.NoError(t, err)

		snapshot, err := manager.Snapshot(handle)
		require.NoError(t, err)
		assert.Len(t, snapshot.Board, 6)
		assert.Len(t, snapshot.Board[0], 7)
	})

	t.Run("Empty board can be requested", func(t *testing.T) {
		// Given: a manager whose default board is 15x15
		manager := newManager(t, nil)

		// When: a match asks for a 0x0 board
		handle, err := manager.Open(MatchOptions{Rule: entity.RuleFourBlockOne, Height: size(0), Width: size(0)})
		require.NoError(t, err)

		// Then: the board is empty and every move is out of bounds
		snapshot, err := manager.Snapshot(handle)
		require.NoError(t, err)
		assert.Empty(t, snapshot.Board)

		_, err = manager.Play(context.Background(), handle, move(entity.Player1, 0, 0))
		require.ErrorIs(t, err, apperror.ErrOutOfBounds)
	})

	t.Run("One dimension falls back to the default", func(t *testing.T) {
		manager := newManager(t, nil)

		handle, err := manager.Open(MatchOptions{Rule: entity.RuleFourBlockOne, Width: size(5)})
		require.NoError(t, err)

		snapshot, err := manager.Snapshot(handle)
		require.NoError(t, err)
		assert.Len(t, snapshot.Board, 15)
		assert.Len(t, snapshot.Board[0], 5)
	})

	t.Run("Invalid options", func(t *testing.T) {
		manager := newManager(t, nil)

		_, err := manager.Open(MatchOptions{Rule: entity.RuleFourBlockOne, Height: size(-1), Width: size(4)})
		require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)

		_, err = manager.Open(MatchOptions{Rule: entity.RuleType(9)})
		require.ErrorIs(t, err, apperror.ErrUnknownRule)

		assert.Empty(t, manager.Handles())
	})

	t.Run("Handles are reused", func(t *testing.T) {
		manager := newManager(t, nil)

		first, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)
		second, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)

		require.NoError(t, manager.Close(first))

		third, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)

		assert.Equal(t, first, third)
		assert.Equal(t, []int{first, second}, manager.Handles())
	})
}

func TestMatchManager_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("Turn passes after a move", func(t *testing.T) {
		manager := newManager(t, nil)
		handle, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)

		state, err := manager.Play(ctx, handle, move(entity.Player1, 1, 1))

		require.NoError(t, err)
		assert.Equal(t, entity.StatePlayer2Turn, state)
	})

	t.Run("Rejected move keeps the turn", func(t *testing.T) {
		// Given: player1 holds the center
		manager := newManager(t, nil)
		handle, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)
		playAll(t, manager, handle, []entity.Command{move(entity.Player1, 1, 1)})

		// When: player2 plays the same tile
		state, err := manager.Play(ctx, handle, move(entity.Player2, 1, 1))

		// Then: the move is refused and player2 is still to play
		require.ErrorIs(t, err, apperror.ErrAlreadyOccupied)
		assert.Equal(t, entity.StatePlayer2Turn, state)

		_, err = manager.Play(ctx, handle, move(entity.Player1, 2, 2))
		require.ErrorIs(t, err, apperror.ErrWrongTurn)
	})

	t.Run("Undo and redo keep the turn", func(t *testing.T) {
		manager := newManager(t, nil)
		handle, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)
		playAll(t, manager, handle, []entity.Command{move(entity.Player1, 0, 0), move(entity.Player2, 2, 2)})

		state, err := manager.Play(ctx, handle, entity.Command{Kind: entity.CommandUndo, Player: entity.Player1})
		require.NoError(t, err)
		assert.Equal(t, entity.StatePlayer1Turn, state)

		snapshot, err := manager.Snapshot(handle)
		require.NoError(t, err)
		assert.Empty(t, snapshot.Players[0].Moves)
		assert.Equal(t, []entity.Coordinate{{Row: 0, Column: 0}}, snapshot.Players[0].Undone)
		assert.Equal(t, entity.TileEmpty, snapshot.Board[0][0])

		state, err = manager.Play(ctx, handle, entity.Command{Kind: entity.CommandRedo, Player: entity.Player1})
		require.NoError(t, err)
		assert.Equal(t, entity.StatePlayer1Turn, state)

		snapshot, err = manager.Snapshot(handle)
		require.NoError(t, err)
		assert.Equal(t, entity.TilePlayer1, snapshot.Board[0][0])
	})

	t.Run("Switch passes the turn", func(t *testing.T) {
		manager := newManager(t, nil)
		handle, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)

		_, err = manager.Play(ctx, handle, entity.Command{Kind: entity.CommandSwitch, Player: entity.Player2})
		require.ErrorIs(t, err, apperror.ErrWrongTurn)

		state, err := manager.Play(ctx, handle, entity.Command{Kind: entity.CommandSwitch, Player: entity.Player1})
		require.NoError(t, err)
		assert.Equal(t, entity.StatePlayer2Turn, state)
	})

	t.Run("Unknown command", func(t *testing.T) {
		manager := newManager(t, nil)
		handle, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)

		_, err = manager.Play(ctx, handle, entity.Command{Kind: entity.CommandKind(42), Player: entity.Player1})

		require.ErrorIs(t, err, ErrInvalidCommand)
	})

	t.Run("Unknown handle", func(t *testing.T) {
		manager := newManager(t, nil)

		_, err := manager.Play(ctx, 7, move(entity.Player1, 0, 0))

		require.ErrorIs(t, err, pool.ErrHandleNotFound)
	})

	t.Run("Outcome is recorded once when the match ends", func(t *testing.T) {
		// Given: a repository expecting exactly one outcome
		mockOutcomeRepo := mockedUseCase.NewMockoutcomeRepo(t)
		manager := newManager(t, mockOutcomeRepo)
		handle, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)

		snapshot, err := manager.Snapshot(handle)
		require.NoError(t, err)

		var saved *entity.Outcome
		mockOutcomeRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Outcome")).
			Run(func(_ context.Context, outcome *entity.Outcome) { saved = outcome }).
			Return(nil).
			Once()

		// When: player1 completes a row
		state := playAll(t, manager, handle, winningRow)

		// Then: the match is won and the outcome describes it
		assert.Equal(t, entity.StatePlayer1Won, state)
		require.NotNil(t, saved)
		assert.Equal(t, &entity.Outcome{
			ID:         snapshot.ID,
			Rule:       "tic-tac-toe",
			State:      "player1-won",
			Height:     3,
			Width:      3,
			Players:    [2]string{"alice", "bob"},
			MoveCounts: [2]int{3, 2},
			FinishedAt: finishedAt,
		}, saved)

		// Then: further commands are refused and nothing more is saved
		_, err = manager.Play(ctx, handle, move(entity.Player2, 2, 2))
		require.ErrorIs(t, err, apperror.ErrWrongTurn)
	})

	t.Run("Failing repository does not fail the move", func(t *testing.T) {
		mockOutcomeRepo := mockedUseCase.NewMockoutcomeRepo(t)
		manager := newManager(t, mockOutcomeRepo)
		handle, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)

		mockOutcomeRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Outcome")).
			Return(errRedisDown).
			Once()

		state := playAll(t, manager, handle, winningRow)

		assert.Equal(t, entity.StatePlayer1Won, state)
	})

	t.Run("Matches are played concurrently", func(t *testing.T) {
		manager := newManager(t, nil)

		handles := make([]int, 8)
		for i := range handles {
			handle, err := manager.Open(ticTacToeOptions())
			require.NoError(t, err)
			handles[i] = handle
		}

		var group errgroup.Group
		for _, handle := range handles {
			handle := handle
			group.Go(func() error {
				for _, command := range winningRow {
					if _, err := manager.Play(ctx, handle, command); err != nil {
						return err
					}
				}
				return nil
			})
		}
		require.NoError(t, group.Wait())

		for _, handle := range handles {
			snapshot, err := manager.Snapshot(handle)
			require.NoError(t, err)
			assert.Equal(t, "player1-won", snapshot.State)
		}
	})
}

func TestMatchManager_Restart(t *testing.T) {
	t.Run("Refused while playing", func(t *testing.T) {
		manager := newManager(t, nil)
		handle, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)

		err = manager.Restart(handle)

		require.ErrorIs(t, err, apperror.ErrGameInProgress)
	})

	t.Run("Finished match starts over", func(t *testing.T) {
		// Given: a finished match
		mockOutcomeRepo := mockedUseCase.NewMockoutcomeRepo(t)
		manager := newManager(t, mockOutcomeRepo)
		handle, err := manager.Open(ticTacToeOptions())
		require.NoError(t, err)

		mockOutcomeRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Outcome")).
			Return(nil).
			Twice()

		playAll(t, manager, handle, winningRow)
		before, err := manager.Snapshot(handle)
		require.NoError(t, err)

		// When: it is restarted
		require.NoError(t, manager.Restart(handle))

		// Then: the board is empty, player1 opens and the match has a new ID
		after, err := manager.Snapshot(handle)
		require.NoError(t, err)
		assert.Equal(t, "player1-turn", after.State)
		assert.NotEqual(t, before.ID, after.ID)
		assert.Empty(t, after.Players[0].Moves)
		assert.Equal(t, "alice", after.Players[0].Info.Name)
		for _, row := range after.Board {
			for _, tile := range row {
				assert.Equal(t, entity.TileEmpty, tile)
			}
		}

		// Then: the next finish is recorded again
		state := playAll(t, manager, handle, winningRow)
		assert.Equal(t, entity.StatePlayer1Won, state)
	})

	t.Run("Unknown handle", func(t *testing.T) {
		manager := newManager(t, nil)

		require.ErrorIs(t, manager.Restart(3), pool.ErrHandleNotFound)
		require.ErrorIs(t, manager.Close(3), pool.ErrHandleNotFound)
		_, err := manager.Snapshot(3)
		require.ErrorIs(t, err, pool.ErrHandleNotFound)
	})
}

func TestMatchManager_Close(t *testing.T) {
	manager := newManager(t, nil)
	handle, err := manager.Open(ticTacToeOptions())
	require.NoError(t, err)

	require.NoError(t, manager.Close(handle))

	_, err = manager.Play(context.Background(), handle, move(entity.Player1, 0, 0))
	require.ErrorIs(t, err, pool.ErrHandleNotFound)
	assert.Empty(t, manager.Handles())
}
