package queue

import (
	"encoding/json"

	"audit-backend/internal/notify"
)

// MessageVersion is the current message schema version.
const MessageVersion = 1

// Message is the payload sent to downstream queue consumers.
type Message struct {
	Version    int          `json:"version"`
	Kind       notify.Kind  `json:"kind"`
	RequestID  string       `json:"requestId,omitempty"`
	EnqueuedAt string       `json:"enqueuedAt"`
	Event      notify.Event `json:"event"`
	// Sinks limits delivery to the named sinks; empty means all of them.
	Sinks   []string `json:"sinks,omitempty"`
	Attempt int      `json:"attempt,omitempty"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	if msg.Kind == "" {
		msg.Kind = msg.Event.Kind
	}
	return msg, nil
}
