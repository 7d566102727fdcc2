package domain

// Participant is one seat in a game session. Created once at role
// assignment; Alive flips only inside resolvers, pending slots are filled
// by decision collection and cleared by the resolvers that consume them.
type Participant struct {
	ID        string  `json:"id"`
	Role      Faction `json:"role"`
	Room      int     `json:"room"`
	Alive     bool    `json:"alive"`
	Synthetic bool    `json:"synthetic"`

	PendingAction *Decision `json:"-"`
	PendingMove   *Decision `json:"-"`
	PendingVote   *Decision `json:"-"`
}
