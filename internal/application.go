package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rocketscienceinc/caro/internal/board"
	"github.com/rocketscienceinc/caro/internal/config"
	"github.com/rocketscienceinc/caro/internal/entity"
	"github.com/rocketscienceinc/caro/internal/repository"
	"github.com/rocketscienceinc/caro/internal/repository/storage"
	"github.com/rocketscienceinc/caro/internal/script"
	"github.com/rocketscienceinc/caro/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// boards larger than this are not drawn in the log
const maxLoggedTiles = 400

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	defaultRule, err := entity.ParseRuleType(conf.Rule)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var outcomeRepo repository.OutcomeRepository
	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		outcomeRepo = repository.NewOutcomeRepository(redisStorage.Connection, conf.Redis.OutcomeTTL)
	}

	matchManager := usecase.NewMatchManager(logger, outcomeRepo, usecase.BoardSizes{
		Height:          conf.Board.Height,
		Width:           conf.Board.Width,
		TicTacToeHeight: conf.Board.TicTacToeHeight,
		TicTacToeWidth:  conf.Board.TicTacToeWidth,
	})

	if conf.MatchFile == "" {
		log.Info("No match file configured, nothing to replay")
		return nil
	}

	return replay(ctx, log, matchManager, conf.MatchFile, defaultRule)
}

// replay plays a match script to its end. Rejected commands are logged and skipped.
func replay(ctx context.Context, log *slog.Logger, matchManager *usecase.MatchManager, path string, defaultRule entity.RuleType) error {
	s, err := script.Load(path)
	if err != nil {
		return fmt.Errorf("could not load match file: %w", err)
	}

	rule := defaultRule
	if s.Rule != "" {
		if rule, err = s.RuleType(); err != nil {
			return err
		}
	}

	commands, err := s.Commands()
	if err != nil {
		return fmt.Errorf("could not read match file: %w", err)
	}

	handle, err := matchManager.Open(usecase.MatchOptions{
		Rule:    rule,
		Height:  s.Height,
		Width:   s.Width,
		Players: s.PlayerInfos(),
	})
	if err != nil {
		return fmt.Errorf("could not open match: %w", err)
	}

	defer func() {
		if err := matchManager.Close(handle); err != nil {
			log.Error("could not close match", "error", err)
		}
	}()

	for _, command := range commands {
		if err = ctx.Err(); err != nil {
			log.Info("Replay interrupted")
			return nil
		}

		state, err := matchManager.Play(ctx, handle, command)
		if err != nil {
			log.Warn("command rejected", "command", command.String(), "error", err)
			continue
		}

		if state.IsOver() {
			break
		}
	}

	snapshot, err := matchManager.Snapshot(handle)
	if err != nil {
		return fmt.Errorf("could not read match: %w", err)
	}

	attrs := []any{"match", snapshot.ID, "rule", snapshot.Rule, "state", snapshot.State,
		"player1_moves", len(snapshot.Players[0].Moves), "player2_moves", len(snapshot.Players[1].Moves)}
	if final, err := board.New(snapshot.Board); err == nil && final.Height()*final.Width() <= maxLoggedTiles {
		attrs = append(attrs, "board", strings.Split(final.String(), "\n"))
	}
	log.Info("Replay finished", attrs...)

	return nil
}
