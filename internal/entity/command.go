package entity

import (
	"fmt"
	"strings"
)

type CommandKind uint8

const (
	CommandMove CommandKind = iota
	CommandUndo
	CommandRedo
	CommandSwitch
)

var commandNames = map[CommandKind]string{
	CommandMove:   "move",
	CommandUndo:   "undo",
	CommandRedo:   "redo",
	CommandSwitch: "switch",
}

func (that CommandKind) String() string {
	if name, ok := commandNames[that]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", uint8(that))
}

// ParseCommandKind accepts the names produced by CommandKind.String.
func ParseCommandKind(name string) (CommandKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range commandNames {
		if kindName == name {
			return kind, true
		}
	}
	return 0, false
}

// ParseParticipant accepts "player1" and "player2", or "1" and "2".
func ParseParticipant(name string) (Participant, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "player1", "1":
		return Player1, true
	case "player2", "2":
		return Player2, true
	default:
		return 0, false
	}
}

// Command is one action a participant takes in a match. Position is used by moves only.
type Command struct {
	Kind     CommandKind
	Player   Participant
	Position Coordinate
}

func (that Command) String() string {
	if that.Kind == CommandMove {
		return fmt.Sprintf("%s %s %s", that.Player, that.Kind, that.Position)
	}
	return fmt.Sprintf("%s %s", that.Player, that.Kind)
}
