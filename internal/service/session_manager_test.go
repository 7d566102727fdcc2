package service

import (
	"context"
	"testing"
	"time"

	"imposter_arena/internal/domain"
	"imposter_arena/internal/game"
)

type staticDirectory struct {
	ids []string
}

func (d staticDirectory) ListActive(ctx context.Context) ([]string, error) {
	return d.ids, nil
}

type noReplyMessenger struct{}

func (noReplyMessenger) Send(ctx context.Context, id string, view domain.View, deadline time.Time) (domain.Decision, error) {
	<-ctx.Done()
	return domain.Decision{}, ctx.Err()
}

func fastConfig() game.Config {
	return game.Config{
		ActionWindow:   30 * time.Millisecond,
		MovementWindow: 30 * time.Millisecond,
		VotingWindow:   30 * time.Millisecond,
	}
}

func TestSessionManagerLifecycle(t *testing.T) {
	m := NewSessionManager(fastConfig(), staticDirectory{ids: []string{"alice", "bob"}}, noReplyMessenger{}, nil, nil, nil)

	sess, err := m.StartSession(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	got, err := m.Get(sess.ID)
	if err != nil || got != sess {
		t.Fatalf("get: (%v, %v)", got, err)
	}

	if _, err := sess.CurrentView("alice"); err != nil {
		t.Fatalf("view: %v", err)
	}

	if err := m.Stop(sess.ID); err != nil {
		t.Fatalf("stop: %v", err)
	}
	select {
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop")
	}

	// finished sessions stay pollable
	if _, err := m.Get(sess.ID); err != nil {
		t.Fatalf("get after stop: %v", err)
	}
	winner, _, _, _ := sess.Result()
	if winner != "" {
		t.Fatalf("stopped session has winner %q", winner)
	}
}

func TestSessionManagerUnknownSession(t *testing.T) {
	m := NewSessionManager(fastConfig(), staticDirectory{}, noReplyMessenger{}, nil, nil, nil)
	if _, err := m.Get("nope"); err != domain.ErrSessionNotFound {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
	if err := m.Stop("nope"); err != domain.ErrSessionNotFound {
		t.Fatalf("stop: got %v, want ErrSessionNotFound", err)
	}
}

func TestSessionManagerStopAll(t *testing.T) {
	m := NewSessionManager(fastConfig(), staticDirectory{ids: []string{"p1"}}, noReplyMessenger{}, nil, nil, nil)

	s1, err := m.StartSession(context.Background())
	if err != nil {
		t.Fatalf("start 1: %v", err)
	}
	s2, err := m.StartSession(context.Background())
	if err != nil {
		t.Fatalf("start 2: %v", err)
	}

	done := make(chan struct{})
	go func() {
		m.StopAll()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("StopAll hung")
	}
	select {
	case <-s1.Done():
	default:
		t.Fatal("s1 not done")
	}
	select {
	case <-s2.Done():
	default:
		t.Fatal("s2 not done")
	}
}
