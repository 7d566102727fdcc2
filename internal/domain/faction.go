package domain

// Faction is a hidden role group assigned at game start.
type Faction string

const (
	FactionImpostor Faction = "impostor"
	FactionCrew     Faction = "crew"
)

// ImpostorCount is how many impostors every game gets, regardless of seat count.
const ImpostorCount = 2

func (f Faction) String() string {
	return string(f)
}

// Opponent returns the other faction.
func (f Faction) Opponent() Faction {
	if f == FactionImpostor {
		return FactionCrew
	}
	return FactionImpostor
}
