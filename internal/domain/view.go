package domain

// PlayerView is the redacted per-participant record inside a View.
// Role and Action are populated only for impostor viewers; Action is the
// participant's current-round slot, resolved slots are never echoed back.
type PlayerView struct {
	ID     string    `json:"id"`
	Alive  bool      `json:"alive"`
	Room   int       `json:"room"`
	Role   Faction   `json:"role,omitempty"`
	Action *Decision `json:"action,omitempty"`
}

// View is the filtered snapshot of global state handed to one participant.
type View struct {
	Phase     Phase        `json:"phase"`
	Round     int          `json:"round"`
	TurnOrder []string     `json:"turn_order"`
	Accused   string       `json:"accused,omitempty"`
	YourRole  Faction      `json:"your_role"`
	YourRoom  int          `json:"your_room"`
	Players   []PlayerView `json:"players"`
	Winner    Faction      `json:"winner,omitempty"`
}
