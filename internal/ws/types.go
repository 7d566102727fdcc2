package ws

const (
	// server -> participant
	MsgReady           = "ready"
	MsgDecisionRequest = "decision_request"
	MsgView            = "view"
	MsgError           = "error"

	// participant -> server
	MsgDecision = "decision"
)
