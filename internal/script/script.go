// Package script reads match scripts: a rule, the players and the commands to replay.
package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/caro/internal/entity"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrInvalidPlayers = errors.New("a match needs exactly two players")
)

// Script is the document form of a match.
//
//	rule: tic-tac-toe
//	height: 3
//	width: 3
//	players:
//	  - {id: p1, name: alice}
//	  - {id: p2, name: bob}
//	steps:
//	  - {player: player1, action: move, row: 0, column: 0}
//	  - {player: player2, action: undo}
type Script struct {
	Rule    string              `yaml:"rule"`
	Height  *int                `yaml:"height"`
	Width   *int                `yaml:"width"`
	Players []entity.PlayerInfo `yaml:"players"`
	Steps   []Step              `yaml:"steps"`
}

type Step struct {
	Player string `yaml:"player"`
	Action string `yaml:"action"`
	Row    int64  `yaml:"row"`
	Column int64  `yaml:"column"`
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read match script: %w", err)
	}

	return Parse(data)
}

// Parse decodes a script and checks that its rule, players and steps are usable.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode match script: %w", err)
	}

	if _, err := s.RuleType(); err != nil {
		return nil, err
	}

	if len(s.Players) != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayers, len(s.Players))
	}

	if _, err := s.Commands(); err != nil {
		return nil, err
	}

	return &s, nil
}

// RuleType defaults to four-block-one when the script names no rule.
func (that *Script) RuleType() (entity.RuleType, error) {
	if that.Rule == "" {
		return entity.RuleFourBlockOne, nil
	}

	rule, err := entity.ParseRuleType(that.Rule)
	if err != nil {
		return 0, fmt.Errorf("invalid match script: %w", err)
	}

	return rule, nil
}

func (that *Script) PlayerInfos() [2]entity.PlayerInfo {
	var infos [2]entity.PlayerInfo
	copy(infos[:], that.Players)
	return infos
}

func (that *Script) Commands() ([]entity.Command, error) {
	commands := make([]entity.Command, 0, len(that.Steps))

	for i, step := range that.Steps {
		who, ok := entity.ParseParticipant(step.Player)
		if !ok {
			return nil, fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownPlayer, step.Player)
		}

		kind, ok := entity.ParseCommandKind(step.Action)
		if !ok {
			return nil, fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownCommand, step.Action)
		}

		command := entity.Command{Kind: kind, Player: who}
		if kind == entity.CommandMove {
			command.Position = entity.Coordinate{Row: step.Row, Column: step.Column}
		}

		commands = append(commands, command)
	}

	return commands, nil
}
