package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged with observers
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeUndo      MessageType = "undo"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message is the envelope of every websocket frame
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries a move request as two square names, e.g. "e2" and "e4".
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func NewErrorMessage(text string) Message {
	payload, _ := json.Marshal(ErrorPayload{Error: text})
	return Message{
		Type:    MessageTypeError,
		Payload: json.RawMessage(payload),
	}
}
