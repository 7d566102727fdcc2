package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"imposter_arena/internal/domain"
	"imposter_arena/internal/logger"
)

// Scheduler drives the phase state machine for one session. All state
// mutation happens on the Run goroutine under mu; the only concurrency is
// the per-phase fan-out to DecisionSource, which works on projected copies
// and reports back through a channel. Phase expiry is a context deadline,
// not a callback into shared state.
type Scheduler struct {
	cfg    Config
	source *DecisionSource
	rng    *rand.Rand

	mu      sync.Mutex
	state   *domain.GameState
	stopped bool
	err     error

	// OnRoundEvents, if set, receives kill/ejection events after each
	// resolution step. Called on the Run goroutine, so it should hand off
	// quickly (the session manager persists asynchronously).
	OnRoundEvents func([]domain.RoundEvent)
}

func NewScheduler(cfg Config, state *domain.GameState, source *DecisionSource, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		cfg:    cfg.withDefaults(),
		state:  state,
		source: source,
		rng:    rng,
	}
}

// Run processes phases until the game completes or ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	for s.Step(ctx) {
	}
}

// Step processes exactly one phase: collect decisions from every alive
// participant concurrently under the phase window, then resolve per the
// transition table. Returns false once the session is no longer active.
// Calling Step again on a completed session is a no-op.
func (s *Scheduler) Step(ctx context.Context) bool {
	s.mu.Lock()
	if !s.state.Active || s.state.Phase == domain.PhaseComplete {
		s.mu.Unlock()
		return false
	}
	if s.stopped {
		s.state.Active = false
		GamesFinished.WithLabelValues("stopped").Inc()
		s.mu.Unlock()
		return false
	}
	phase := s.state.Phase
	window := s.window(phase)
	alive := s.state.Alive()
	views := make(map[string]domain.View, len(alive))
	seats := make(map[string]*domain.Participant, len(alive))
	for _, id := range alive {
		v, err := Project(s.state, id)
		if err != nil {
			continue
		}
		views[id] = v
		seats[id] = s.state.Participants[id]
	}
	s.mu.Unlock()

	decisions := s.collect(ctx, phase, window, alive, seats, views)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Active {
		return false
	}
	if s.stopped || ctx.Err() != nil {
		// stop: decisions already collected are final, but no further
		// phase transition happens and no winner is declared
		s.state.Active = false
		GamesFinished.WithLabelValues("stopped").Inc()
		return false
	}

	s.store(phase, decisions)

	if err := s.resolve(phase); err != nil {
		s.err = err
		s.state.Active = false
		logger.Error("session failed", "round", s.state.Round, "phase", phase.String(), "error", err)
		return false
	}

	PhasesProcessed.WithLabelValues(phase.String()).Inc()
	return s.state.Active
}

// collect fans out to the DecisionSource for every alive participant with
// a shared deadline and gathers all results. A participant that fails or
// answers late contributes the phase no-op; one bad seat never blocks the
// others, and the wait never outlives the phase window.
func (s *Scheduler) collect(ctx context.Context, phase domain.Phase, window time.Duration, ids []string, seats map[string]*domain.Participant, views map[string]domain.View) map[string]domain.Decision {
	deadline := time.Now().Add(window)
	cctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	type result struct {
		id string
		d  domain.Decision
	}
	results := make(chan result, len(ids))

	var wg sync.WaitGroup
	for _, id := range ids {
		seat, view := seats[id], views[id]
		if seat == nil {
			continue
		}
		wg.Add(1)
		go func(id string, seat *domain.Participant, view domain.View) {
			defer wg.Done()
			results <- result{id: id, d: s.source.Collect(cctx, seat, view, phase, deadline)}
		}(id, seat, view)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make(map[string]domain.Decision, len(ids))
	for r := range results {
		out[r.id] = r.d
	}
	return out
}

// store validates each collected decision against current state (illegal
// ones downgrade to the no-op) and files it into the phase's slot.
func (s *Scheduler) store(phase domain.Phase, decisions map[string]domain.Decision) {
	for id, d := range decisions {
		p, ok := s.state.Participants[id]
		if !ok || !p.Alive {
			continue
		}
		d = Validate(s.state, id, d, phase)
		stored := d

		switch phase {
		case domain.PhaseAction:
			p.PendingAction = &stored
		case domain.PhaseMovement:
			p.PendingMove = &stored
		case domain.PhaseVoting:
			p.PendingVote = &stored
			if d.Type == domain.DecisionVote {
				s.state.Votes[id] = d.Target
			} else {
				s.state.Votes[id] = domain.AbstainTarget
			}
		}
	}
}

// resolve applies the transition table:
//
//	Action   -> Movement, or Voting when a valid accusation was collected
//	Movement -> actions+movement resolve, win check, Action (new round) or Complete
//	Voting   -> votes resolve, interrupted round's actions discarded,
//	            win check, Action (new round) or Complete
func (s *Scheduler) resolve(phase domain.Phase) error {
	if len(s.state.Alive()) == 0 {
		return fmt.Errorf("resolving %s round %d: %w", phase, s.state.Round, domain.ErrNoAliveSeat)
	}

	switch phase {
	case domain.PhaseAction:
		if accuser, accused := s.firstAccusation(); accused != "" {
			s.state.Accused = accused
			s.state.Votes = make(map[string]string)
			logger.Info("accusation raised", "round", s.state.Round, "accuser", accuser, "accused", accused)
			return s.advance(domain.PhaseVoting)
		}
		return s.advance(domain.PhaseMovement)

	case domain.PhaseMovement:
		events := ResolveActions(s.state)
		ResolveMovement(s.state, s.cfg.RoomCount)
		s.emit(events)
		return s.finishRound()

	case domain.PhaseVoting:
		events := ResolveVotes(s.state)
		ClearActions(s.state)
		s.emit(events)
		return s.finishRound()
	}

	return fmt.Errorf("resolving unknown phase %q", phase)
}

// finishRound runs the win check and either opens the next round or
// completes the session.
func (s *Scheduler) finishRound() error {
	if winner, done := EvaluateWin(s.state); done {
		s.state.Winner = winner
		s.state.Active = false
		GamesFinished.WithLabelValues(winner.String()).Inc()
		logger.Info("game over", "round", s.state.Round, "winner", winner.String())
		return s.advance(domain.PhaseComplete)
	}

	s.state.Round++
	ShuffleTurnOrder(s.state.TurnOrder, s.rng)
	return s.advance(domain.PhaseAction)
}

func (s *Scheduler) advance(next domain.Phase) error {
	if !s.state.Phase.CanTransitionTo(next) {
		return fmt.Errorf("illegal phase transition %s -> %s", s.state.Phase, next)
	}
	logger.Debug("phase transition", "from", s.state.Phase.String(), "to", next.String(), "round", s.state.Round)
	s.state.Phase = next
	return nil
}

// firstAccusation returns the first valid accusation in turn order, if any.
// Accusations have already been validated in store; the turn-order scan
// just makes the pick deterministic when several arrive at once.
func (s *Scheduler) firstAccusation() (accuser, accused string) {
	for _, id := range s.state.TurnOrder {
		p, ok := s.state.Participants[id]
		if !ok || !p.Alive || p.PendingAction == nil {
			continue
		}
		if p.PendingAction.Type == domain.DecisionAccuse {
			return id, p.PendingAction.Target
		}
	}
	return "", ""
}

func (s *Scheduler) emit(events []domain.RoundEvent) {
	if len(events) == 0 || s.OnRoundEvents == nil {
		return
	}
	s.OnRoundEvents(events)
}

func (s *Scheduler) window(phase domain.Phase) time.Duration {
	switch phase {
	case domain.PhaseMovement:
		return s.cfg.MovementWindow
	case domain.PhaseVoting:
		return s.cfg.VotingWindow
	default:
		return s.cfg.ActionWindow
	}
}

// Stop marks the scheduler stopped; the session cancels the Run context
// alongside, which makes any in-flight collect return immediately.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || !s.state.Active {
		return
	}
	s.stopped = true
}

// View projects the current state for one participant. Safe to call from
// any goroutine, including after completion.
func (s *Scheduler) View(participantID string) (domain.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Project(s.state, participantID)
}

// Snapshot returns terminal facts about the session for persistence.
func (s *Scheduler) Snapshot() (winner domain.Faction, round int, participants []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.state.TurnOrder {
		participants = append(participants, id)
	}
	return s.state.Winner, s.state.Round, participants, s.err
}
