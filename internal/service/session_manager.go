package service

import (
	"context"
	"sync"
	"time"

	"imposter_arena/internal/domain"
	"imposter_arena/internal/game"
	"imposter_arena/internal/logger"
	"imposter_arena/internal/repository"
)

// SessionManager hosts every running game in the process. Each session
// owns its state on its own goroutine; the manager only keeps the
// registry and persists results when sessions end.
type SessionManager struct {
	cfg         game.Config
	directory   game.ParticipantDirectory
	messenger   game.Messenger
	broadcaster game.Broadcaster

	matches *repository.MatchHistoryRepository
	events  *repository.RoundEventRepository

	mu       sync.RWMutex
	sessions map[string]*game.Session
}

func NewSessionManager(cfg game.Config, directory game.ParticipantDirectory, messenger game.Messenger, broadcaster game.Broadcaster, matches *repository.MatchHistoryRepository, events *repository.RoundEventRepository) *SessionManager {
	return &SessionManager{
		cfg:         cfg,
		directory:   directory,
		messenger:   messenger,
		broadcaster: broadcaster,
		matches:     matches,
		events:      events,
		sessions:    make(map[string]*game.Session),
	}
}

// StartSession pulls the active participant list from the directory,
// assigns roles and launches a new game. A directory failure is not
// fatal: the game starts as an all-bot session.
func (m *SessionManager) StartSession(ctx context.Context) (*game.Session, error) {
	candidates, err := m.directory.ListActive(ctx)
	if err != nil {
		logger.Warn("participant directory unavailable, starting with synthetic seats", "error", err)
		candidates = nil
	}

	sess := game.NewSession(m.cfg, candidates, m.messenger, m.broadcaster, nil)
	sess.OnComplete = m.onComplete

	if m.events != nil {
		sessionID := sess.ID
		sess.Scheduler().OnRoundEvents = func(events []domain.RoundEvent) {
			batch := append([]domain.RoundEvent(nil), events...)
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := m.events.Append(ctx, sessionID, batch); err != nil {
					logger.Error("failed to persist round events", "session", sessionID, "error", err)
				}
			}()
		}
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	// sessions outlive the request that started them; StopAll owns shutdown
	if err := sess.Start(context.Background()); err != nil {
		m.mu.Lock()
		delete(m.sessions, sess.ID)
		m.mu.Unlock()
		return nil, err
	}
	return sess, nil
}

// Get returns a running or finished session by id.
func (m *SessionManager) Get(sessionID string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Stop stops one session. Finished sessions stay in the registry so their
// terminal views remain pollable.
func (m *SessionManager) Stop(sessionID string) error {
	sess, err := m.Get(sessionID)
	if err != nil {
		return err
	}
	sess.Stop()
	return nil
}

// StopAll stops every session; used on shutdown.
func (m *SessionManager) StopAll() {
	m.mu.RLock()
	all := make([]*game.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()

	for _, s := range all {
		s.Stop()
		<-s.Done()
	}
}

func (m *SessionManager) onComplete(sess *game.Session) {
	winner, rounds, seats, duration := sess.Result()

	if err := sess.Err(); err != nil {
		logger.Error("session ended with internal error", "session", sess.ID, "error", err)
	}

	if m.matches == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	record := &domain.MatchRecord{
		SessionID:    sess.ID,
		Winner:       winner.String(),
		Rounds:       rounds,
		DurationMS:   duration.Milliseconds(),
		Participants: seats,
	}
	if err := m.matches.Create(ctx, record); err != nil {
		logger.Error("failed to persist match record", "session", sess.ID, "error", err)
	}
}
