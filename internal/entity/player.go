package entity

// PlayerInfo is the payload a match attaches to each participant.
type PlayerInfo struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name"`
}
