package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"imposter_arena/internal/domain"
	"imposter_arena/internal/logger"
)

// Session wires role assignment, the scheduler and the external
// collaborators into one playable game, and owns its lifecycle.
type Session struct {
	ID string

	cfg         Config
	sched       *Scheduler
	broadcaster Broadcaster
	cancel      context.CancelFunc
	done        chan struct{}
	startedAt   time.Time

	// OnComplete, if set, is called once after the run loop exits (natural
	// win, stop or internal error).
	OnComplete func(*Session)
}

// NewSession assigns roles to the candidates and prepares the scheduler.
// rng may be nil, in which case a time-seeded source is used.
func NewSession(cfg Config, candidates []string, messenger Messenger, broadcaster Broadcaster, rng *rand.Rand) *Session {
	cfg = cfg.withDefaults()
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	participants, order := AssignRoles(candidates, cfg, rng)
	state := &domain.GameState{
		Participants: participants,
		Phase:        domain.PhaseAction,
		Round:        1,
		TurnOrder:    order,
		Votes:        make(map[string]string),
		Active:       true,
	}

	return &Session{
		ID:          uuid.NewString(),
		cfg:         cfg,
		sched:       NewScheduler(cfg, state, NewDecisionSource(messenger, rng), rng),
		broadcaster: broadcaster,
		done:        make(chan struct{}),
	}
}

// Start launches the run loop. The session begins in the Action phase of
// round 1 immediately.
func (s *Session) Start(ctx context.Context) error {
	if s.cancel != nil {
		return domain.ErrAlreadyStarted
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.startedAt = time.Now()

	logger.Info("session started", "session", s.ID, "seats", len(s.TurnOrder()))

	go func() {
		defer close(s.done)
		s.sched.Run(ctx)
		s.finalBroadcast()
		if s.OnComplete != nil {
			s.OnComplete(s)
		}
	}()
	return nil
}

// CurrentView returns the participant's filtered view of the session.
// Callable at any time; after completion it carries the winner.
func (s *Session) CurrentView(participantID string) (domain.View, error) {
	return s.sched.View(participantID)
}

// Stop cancels the phase timer and the in-flight collection wait, marks
// the session inactive and leaves the winner unset. Distinguishable from
// a natural win by Winner being empty.
func (s *Session) Stop() {
	s.sched.Stop()
	if s.cancel != nil {
		s.cancel()
	}
}

// Done is closed once the run loop has exited and the final broadcast
// went out.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err reports an internal invariant violation, if one killed the session.
func (s *Session) Err() error {
	_, _, _, err := s.sched.Snapshot()
	return err
}

// Result returns the winner (empty for stopped sessions), the last round
// number, the seat list and the session duration.
func (s *Session) Result() (domain.Faction, int, []string, time.Duration) {
	winner, round, seats, _ := s.sched.Snapshot()
	return winner, round, seats, time.Since(s.startedAt)
}

// TurnOrder returns the current advisory turn order.
func (s *Session) TurnOrder() []string {
	_, _, seats, _ := s.sched.Snapshot()
	return seats
}

// Scheduler exposes the scheduler for the session owner (round-event
// persistence hooks).
func (s *Session) Scheduler() *Scheduler {
	return s.sched
}

// finalBroadcast pushes the terminal view to every real participant.
// Synthetic seats have nobody listening.
func (s *Session) finalBroadcast() {
	if s.broadcaster == nil {
		return
	}
	for _, id := range s.TurnOrder() {
		view, err := s.sched.View(id)
		if err != nil {
			continue
		}
		s.broadcaster.Push(id, view)
	}
}
