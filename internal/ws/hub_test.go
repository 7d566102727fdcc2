package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"imposter_arena/internal/domain"
)

func TestHubSendResolvesCorrelatedReply(t *testing.T) {
	hub := NewHub()
	c := NewClient("alice", nil, hub)
	hub.Register(c)

	type outcome struct {
		d   domain.Decision
		err error
	}
	got := make(chan outcome, 1)
	go func() {
		d, err := hub.Send(context.Background(), "alice", domain.View{Phase: domain.PhaseAction}, time.Now().Add(time.Second))
		got <- outcome{d, err}
	}()

	var req DecisionRequest
	select {
	case msg := <-c.Send:
		if err := json.Unmarshal(msg, &req); err != nil {
			t.Fatalf("unmarshal request: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("no decision request queued")
	}
	if req.Type != MsgDecisionRequest || req.RequestID == "" {
		t.Fatalf("bad request: %+v", req)
	}

	want := domain.Decision{Type: domain.DecisionKill, Target: "bob"}
	if !hub.Resolve("alice", req.RequestID, want) {
		t.Fatal("resolve did not match the pending request")
	}

	out := <-got
	if out.err != nil || out.d != want {
		t.Fatalf("got (%+v, %v), want (%+v, nil)", out.d, out.err, want)
	}
}

func TestHubSendEmptyRequestIDMatchesNewest(t *testing.T) {
	hub := NewHub()
	c := NewClient("bob", nil, hub)
	hub.Register(c)

	got := make(chan domain.Decision, 1)
	go func() {
		d, _ := hub.Send(context.Background(), "bob", domain.View{}, time.Now().Add(time.Second))
		got <- d
	}()

	select {
	case <-c.Send:
	case <-time.After(time.Second):
		t.Fatal("no decision request queued")
	}

	// the HTTP decision endpoint replies without a request id
	if !hub.Resolve("bob", "", domain.Decision{Type: domain.DecisionPass}) {
		t.Fatal("empty request id should match the outstanding request")
	}
	if d := <-got; d.Type != domain.DecisionPass {
		t.Fatalf("got %+v", d)
	}
}

func TestHubSendTimesOut(t *testing.T) {
	hub := NewHub()
	hub.Register(NewClient("carol", nil, hub))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := hub.Send(ctx, "carol", domain.View{}, time.Now().Add(20*time.Millisecond))
	if err == nil {
		t.Fatal("expected deadline error")
	}

	// a late reply after the timeout is dropped, not delivered
	if hub.Resolve("carol", "", domain.Decision{Type: domain.DecisionPass}) {
		t.Fatal("late reply matched a request that already expired")
	}
}

func TestHubSendUnknownParticipant(t *testing.T) {
	hub := NewHub()
	if _, err := hub.Send(context.Background(), "nobody", domain.View{}, time.Now().Add(time.Second)); err != ErrNotConnected {
		t.Fatalf("got %v, want ErrNotConnected", err)
	}
}

func TestHubResolveWrongParticipant(t *testing.T) {
	hub := NewHub()
	c := NewClient("dave", nil, hub)
	hub.Register(c)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		hub.Send(ctx, "dave", domain.View{}, time.Now().Add(200*time.Millisecond))
	}()

	var req DecisionRequest
	select {
	case msg := <-c.Send:
		_ = json.Unmarshal(msg, &req)
	case <-time.After(time.Second):
		t.Fatal("no decision request queued")
	}

	if hub.Resolve("mallory", req.RequestID, domain.Decision{Type: domain.DecisionPass}) {
		t.Fatal("reply from the wrong participant was accepted")
	}
	<-done
}

func TestHubListActive(t *testing.T) {
	hub := NewHub()
	a := NewClient("a", nil, hub)
	b := NewClient("b", nil, hub)
	hub.Register(a)
	hub.Register(b)

	ids, err := hub.ListActive(context.Background())
	if err != nil || len(ids) != 2 {
		t.Fatalf("got (%v, %v)", ids, err)
	}

	hub.OnDisconnect(a)
	ids, _ = hub.ListActive(context.Background())
	if len(ids) != 1 || ids[0] != "b" {
		t.Fatalf("after disconnect: %v", ids)
	}
}
