package net

import (
	"encoding/json"
	"fmt"

	"TouchBoard/internal/gesture"
)

// Message types understood by the relay.
const (
	TypePointer = "pointer"
	TypeMode    = "mode"
	TypeColor   = "color"
	TypeClear   = "clear"
	TypePan     = "pan"
	TypeError   = "error"
)

// Message is one JSON frame on the relay socket.
type Message struct {
	Type  string         `json:"type"`
	Event *gesture.Event `json:"event,omitempty"`
	Mode  string         `json:"mode,omitempty"`
	Color string         `json:"color,omitempty"`
	Pan   *bool          `json:"pan,omitempty"`
	Error string         `json:"error,omitempty"`
}

// DecodeMessage parses and checks a frame.
func DecodeMessage(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	switch m.Type {
	case TypePointer:
		if m.Event == nil {
			return Message{}, fmt.Errorf("pointer message without event")
		}
		if err := m.Event.Validate(); err != nil {
			return Message{}, err
		}
	case TypeMode:
		if m.Mode == "" {
			return Message{}, fmt.Errorf("mode message without mode")
		}
	case TypeColor:
		if m.Color == "" {
			return Message{}, fmt.Errorf("color message without color")
		}
	case TypePan:
		if m.Pan == nil {
			return Message{}, fmt.Errorf("pan message without pan flag")
		}
	case TypeClear:
	default:
		return Message{}, fmt.Errorf("unknown message type %q", m.Type)
	}
	return m, nil
}
