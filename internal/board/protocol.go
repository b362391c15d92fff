package board

import (
	"encoding/json"

	"github.com/pillboard/pillboard/internal/engine"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Pointer events (client → board), delivered to the engine in
	// arrival order.
	TypePointerDown  = "pointer.down"
	TypePointerMove  = "pointer.move"
	TypePointerUp    = "pointer.up"
	TypePointerClick = "pointer.click"
	TypePointerLeave = "pointer.leave"

	// Board state (board → clients)
	TypeBoardSnapshot = "board.snapshot"

	// Crosshair presence: every participant sees the others' crosshairs.
	TypeCrosshairUpdate = "crosshair.update"
	TypePresenceJoin    = "presence.join"
	TypePresenceLeave   = "presence.leave"
	TypePresenceState   = "presence.state"
)

// PointerDownPayload carries a pointer-down. Target optionally names the
// shape the event originated on; empty means the background (the board hit-
// tests as a fallback).
type PointerDownPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
	Target string  `json:"target,omitempty"`
}

// PointerPayload carries move/up/click coordinates.
type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WelcomePayload is the first message a client receives.
type WelcomePayload struct {
	ClientID string          `json:"clientId"`
	BoardID  string          `json:"boardId"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

// SnapshotPayload is broadcast after every event that changes what a
// renderer would draw.
type SnapshotPayload struct {
	Snapshot engine.Snapshot `json:"snapshot"`
}

// CrosshairPayload is one participant's crosshair as seen by the others.
type CrosshairPayload struct {
	ClientID    string  `json:"clientId"`
	DisplayName string  `json:"displayName,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Visible     bool    `json:"visible"`
}

type PresenceJoinPayload struct {
	ClientID    string `json:"clientId"`
	DisplayName string `json:"displayName,omitempty"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
}

type PresenceStatePayload struct {
	Crosshairs map[string]*CrosshairPayload `json:"crosshairs"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func mustMessage(msgType, boardID, clientID string, payload interface{}) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		// Payloads are our own structs; this cannot fail at runtime.
		panic(err)
	}
	return &Message{Type: msgType, BoardID: boardID, ClientID: clientID, Payload: data}
}
