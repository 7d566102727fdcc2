package game

import (
	"context"
	"time"

	"imposter_arena/internal/domain"
)

// Messenger delivers a view to a remote participant and waits for its
// decision. Any non-success outcome (timeout, disconnect, malformed reply)
// must come back as an error; the engine treats all of them as "no decision".
type Messenger interface {
	Send(ctx context.Context, participantID string, view domain.View, deadline time.Time) (domain.Decision, error)
}

// ParticipantDirectory lists the ids currently registered to play. The
// engine deduplicates, so repeated ids (reconnect races) are harmless.
type ParticipantDirectory interface {
	ListActive(ctx context.Context) ([]string, error)
}

// Broadcaster pushes a view to a participant without expecting a reply.
// Used for the final broadcast when a session ends.
type Broadcaster interface {
	Push(participantID string, view domain.View)
}
