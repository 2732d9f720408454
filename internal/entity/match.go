package entity

import "time"

// Snapshot is a full copy of a match, safe to hand to callers outside the session lock.
type Snapshot struct {
	ID      string           `json:"id"`
	Handle  int              `json:"handle"`
	Rule    string           `json:"rule"`
	State   string           `json:"state"`
	Board   [][]TileState    `json:"board"`
	Players [2]PlayerHistory `json:"players"`
}

// PlayerHistory holds one participant's moves in play order and the redo stack.
type PlayerHistory struct {
	Info   PlayerInfo   `json:"info"`
	Moves  []Coordinate `json:"moves"`
	Undone []Coordinate `json:"undone"`
}

// Outcome describes a finished match.
type Outcome struct {
	ID         string    `json:"id"`
	Rule       string    `json:"rule"`
	State      string    `json:"state"`
	Height     int       `json:"height"`
	Width      int       `json:"width"`
	Players    [2]string `json:"players"`
	MoveCounts [2]int    `json:"move_counts"`
	FinishedAt time.Time `json:"finished_at"`
}

// IsDraw reports whether the match ended without a winner.
func (that *Outcome) IsDraw() bool {
	return that.State == StateDrawn.String()
}
