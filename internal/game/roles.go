package game

import (
	"fmt"
	"math/rand"

	"imposter_arena/internal/domain"
)

// AssignRoles builds the initial participant set. Candidate ids are
// deduplicated (the directory may repeat ids on reconnect), the list is
// padded with synthetic seats up to minSeats, then uniformly shuffled:
// the first two seats in shuffled order become impostors, the rest crew.
// Padding before assignment is what keeps the two-impostor guarantee even
// for short candidate lists. Each seat also gets a uniform random room.
//
// The returned order is the shuffled order and doubles as round-1 turn order.
func AssignRoles(candidates []string, cfg Config, rng *rand.Rand) (map[string]*domain.Participant, []string) {
	cfg = cfg.withDefaults()

	seen := make(map[string]bool, len(candidates))
	ids := make([]string, 0, cfg.MinSeats)
	for _, id := range candidates {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	synthetic := make(map[string]bool)
	for i := 1; len(ids) < cfg.MinSeats; i++ {
		id := fmt.Sprintf("bot-%d", i)
		if seen[id] {
			continue
		}
		seen[id] = true
		synthetic[id] = true
		ids = append(ids, id)
	}

	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	participants := make(map[string]*domain.Participant, len(ids))
	for i, id := range ids {
		role := domain.FactionCrew
		if i < domain.ImpostorCount {
			role = domain.FactionImpostor
		}
		participants[id] = &domain.Participant{
			ID:        id,
			Role:      role,
			Room:      rng.Intn(cfg.RoomCount),
			Alive:     true,
			Synthetic: synthetic[id],
		}
	}

	return participants, ids
}

// ShuffleTurnOrder re-shuffles the advisory turn order at round start.
// Dead seats stay listed; the order is metadata for participants, not a
// serialization of resolution.
func ShuffleTurnOrder(order []string, rng *rand.Rand) {
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
}
