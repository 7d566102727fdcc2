package ws

import "imposter_arena/internal/domain"

// server → participant: asks for a decision against the attached view.
// Deadline is a unix-milli timestamp; replies after it are dropped.
type DecisionRequest struct {
	Type      string      `json:"type"`
	RequestID string      `json:"request_id"`
	Deadline  int64       `json:"deadline"`
	View      domain.View `json:"view"`
}

// participant → server: answers one DecisionRequest. RequestID may be
// empty, in which case the reply is matched to the participant's newest
// outstanding request.
type DecisionReply struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Decision  domain.Decision `json:"decision"`
}

// server → participant: unsolicited state push (final broadcast).
type ViewPush struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	View      domain.View `json:"view"`
}

type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
