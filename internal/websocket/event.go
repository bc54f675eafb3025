package websocket

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	// Server to Client
	EventTypeMessageNew EventType = "MESSAGE_NEW"
	EventTypeMatchNew   EventType = "MATCH_NEW"
	EventTypeError      EventType = "ERROR"
)

type Event struct {
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewEvent(eventType EventType, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// MessageNewPayload notifies the receiver that a message landed in one of
// their matches. The REST list endpoint stays the source of truth; this is a
// hint to refresh.
type MessageNewPayload struct {
	MessageID uint64 `json:"messageId"`
	MatchID   string `json:"matchId"`
	SenderID  string `json:"senderId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// MatchNewPayload notifies a user that a mutual like created a new match.
type MatchNewPayload struct {
	MatchID       string `json:"matchId"`
	CounterpartID string `json:"counterpartId"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
