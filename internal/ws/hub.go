package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"imposter_arena/internal/domain"
	"imposter_arena/internal/logger"
)

var (
	ErrNotConnected = errors.New("participant not connected")
	ErrSendBuffer   = errors.New("participant send buffer full")
)

// Hub tracks connected participants and correlates decision requests with
// their replies. It implements the engine's Messenger, the
// ParticipantDirectory and the Broadcaster, so connected sockets are both
// the seat registry and the decision channel. A reply may arrive over the
// socket or through the HTTP decision endpoint; both paths land in Resolve.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	pending  map[string]*pendingRequest // request id -> waiter
	outgoing map[string]string          // participant id -> newest request id
}

type pendingRequest struct {
	participantID string
	ch            chan domain.Decision
}

func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		pending:  make(map[string]*pendingRequest),
		outgoing: make(map[string]string),
	}
}

// Register attaches a connected client, replacing any previous connection
// for the same participant (reconnect wins).
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	old := h.clients[c.ID]
	h.clients[c.ID] = c
	h.mu.Unlock()

	if old != nil && old != c {
		old.Close()
	}
	logger.Info("participant connected", "participant", c.ID)
}

// OnDisconnect detaches a client. Outstanding requests stay registered:
// the engine's deadline resolves them to no-ops, exactly as for silence.
func (h *Hub) OnDisconnect(c *Client) {
	h.mu.Lock()
	if h.clients[c.ID] == c {
		delete(h.clients, c.ID)
	}
	h.mu.Unlock()
	logger.Info("participant disconnected", "participant", c.ID)
}

// ListActive returns the ids of currently connected participants.
func (h *Hub) ListActive(ctx context.Context) ([]string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids, nil
}

// Send delivers a view to one participant and waits for the correlated
// reply or the deadline, whichever comes first. Implements game.Messenger;
// every failure mode is an error, the engine downgrades them uniformly.
func (h *Hub) Send(ctx context.Context, participantID string, view domain.View, deadline time.Time) (domain.Decision, error) {
	h.mu.RLock()
	c := h.clients[participantID]
	h.mu.RUnlock()
	if c == nil {
		return domain.Decision{}, ErrNotConnected
	}

	reqID := uuid.NewString()
	waiter := &pendingRequest{participantID: participantID, ch: make(chan domain.Decision, 1)}

	h.mu.Lock()
	h.pending[reqID] = waiter
	h.outgoing[participantID] = reqID
	h.mu.Unlock()
	defer h.drop(reqID)

	msg, err := json.Marshal(DecisionRequest{
		Type:      MsgDecisionRequest,
		RequestID: reqID,
		Deadline:  deadline.UnixMilli(),
		View:      view,
	})
	if err != nil {
		return domain.Decision{}, err
	}

	if !c.enqueue(msg) {
		return domain.Decision{}, ErrSendBuffer
	}

	select {
	case d := <-waiter.ch:
		return d, nil
	case <-ctx.Done():
		return domain.Decision{}, ctx.Err()
	}
}

// Resolve fulfils an outstanding request for a participant. An empty
// requestID matches the participant's newest request, which is what the
// HTTP decision endpoint uses. Returns false when nothing was waiting
// (late or duplicate replies).
func (h *Hub) Resolve(participantID, requestID string, d domain.Decision) bool {
	h.mu.Lock()
	if requestID == "" {
		requestID = h.outgoing[participantID]
	}
	waiter := h.pending[requestID]
	if waiter != nil && waiter.participantID != participantID {
		waiter = nil
	}
	if waiter != nil {
		delete(h.pending, requestID)
	}
	h.mu.Unlock()

	if waiter == nil {
		logger.Debug("dropping uncorrelated decision", "participant", participantID, "request", requestID)
		return false
	}

	waiter.ch <- d
	return true
}

// Push sends an unsolicited view to a participant, dropping it silently
// when the participant is gone or slow. Implements game.Broadcaster.
func (h *Hub) Push(participantID string, view domain.View) {
	h.mu.RLock()
	c := h.clients[participantID]
	h.mu.RUnlock()
	if c == nil {
		return
	}

	msg, err := json.Marshal(ViewPush{Type: MsgView, View: view})
	if err != nil {
		return
	}
	c.enqueue(msg)
}

// drop forgets a pending request after its Send call returns.
func (h *Hub) drop(requestID string) {
	h.mu.Lock()
	if w, ok := h.pending[requestID]; ok {
		delete(h.pending, requestID)
		if h.outgoing[w.participantID] == requestID {
			delete(h.outgoing, w.participantID)
		}
	}
	h.mu.Unlock()
}
