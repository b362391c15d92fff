package board

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/pillboard/pillboard/internal/engine"
)

// Session is one live board: a single engine, its connected clients, and
// their crosshair presence. All of it is owned by one goroutine draining the
// events channel, which gives the engine the strict arrival-order,
// no-reentrancy delivery it requires. The session outlives its clients —
// board state has no other home, so an empty session keeps its shapes until
// the board is deleted.
type Session struct {
	boardID string
	eng     *engine.Engine
	events  chan event
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once

	// Owned by the run goroutine; never touched from outside.
	clients      map[string]*Client
	crosshairs   map[string]*CrosshairPayload
	gestureOwner string
}

type event interface{}

type joinEvent struct{ client *Client }
type leaveEvent struct{ client *Client }
type pointerEvent struct {
	client *Client
	msg    *Message
}
type snapshotRequest struct{ reply chan engine.Snapshot }

func newSession(boardID string, rules engine.Rules) *Session {
	s := &Session{
		boardID:    boardID,
		eng:        engine.New(rules),
		events:     make(chan event, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		clients:    make(map[string]*Client),
		crosshairs: make(map[string]*CrosshairPayload),
	}
	go s.run()
	return s
}

func (s *Session) BoardID() string { return s.boardID }

func (s *Session) Join(c *Client)  { s.post(joinEvent{client: c}) }
func (s *Session) Leave(c *Client) { s.post(leaveEvent{client: c}) }

// Dispatch hands an inbound client message to the session loop.
func (s *Session) Dispatch(c *Client, msg *Message) {
	s.post(pointerEvent{client: c, msg: msg})
}

// Snapshot asks the session loop for the current engine state. Safe from any
// goroutine.
func (s *Session) Snapshot() engine.Snapshot {
	req := snapshotRequest{reply: make(chan engine.Snapshot, 1)}
	s.post(req)
	select {
	case snap := <-req.reply:
		return snap
	case <-s.stop:
		return engine.Snapshot{}
	}
}

// Stop shuts the session down and disconnects its clients. Idempotent.
func (s *Session) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Session) post(ev event) {
	select {
	case s.events <- ev:
	case <-s.stop:
	}
}

func (s *Session) run() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			for _, c := range s.clients {
				close(c.send)
			}
			return
		case ev := <-s.events:
			switch ev := ev.(type) {
			case joinEvent:
				s.addClient(ev.client)
			case leaveEvent:
				s.removeClient(ev.client)
			case pointerEvent:
				s.apply(ev.client, ev.msg)
			case snapshotRequest:
				ev.reply <- s.eng.Snapshot()
			}
		}
	}
}

func (s *Session) addClient(c *Client) {
	s.clients[c.ClientID] = c

	c.Send(mustMessage(TypeWelcome, s.boardID, c.ClientID, WelcomePayload{
		ClientID: c.ClientID,
		BoardID:  s.boardID,
		Snapshot: s.eng.Snapshot(),
	}))
	if len(s.crosshairs) > 0 {
		c.Send(mustMessage(TypePresenceState, s.boardID, "", PresenceStatePayload{
			Crosshairs: s.crosshairs,
		}))
	}

	s.broadcast(mustMessage(TypePresenceJoin, s.boardID, c.ClientID, PresenceJoinPayload{
		ClientID:    c.ClientID,
		DisplayName: c.DisplayName,
	}), c.ClientID)

	slog.Info("client joined", "client", c.ClientID, "board", s.boardID)
}

func (s *Session) removeClient(c *Client) {
	if _, ok := s.clients[c.ClientID]; !ok {
		return
	}
	delete(s.clients, c.ClientID)
	close(c.send)
	delete(s.crosshairs, c.ClientID)

	// A client that vanishes mid-gesture would otherwise hold the board
	// in drawing/dragging forever.
	if s.gestureOwner == c.ClientID {
		s.eng.CancelGesture()
		s.gestureOwner = ""
		s.broadcastSnapshot()
	}

	s.broadcast(mustMessage(TypePresenceLeave, s.boardID, c.ClientID, PresenceLeavePayload{
		ClientID: c.ClientID,
	}), "")

	slog.Info("client left", "client", c.ClientID, "board", s.boardID)
}

// apply drives the engine with one pointer event. While a gesture is open,
// only its owner's events reach the engine; other participants' moves still
// update their presence crosshairs.
func (s *Session) apply(c *Client, msg *Message) {
	if s.gestureOwner != "" && s.gestureOwner != c.ClientID {
		switch msg.Type {
		case TypePointerMove:
			var p PointerPayload
			if err := json.Unmarshal(msg.Payload, &p); err == nil {
				s.updateCrosshair(c, p.X, p.Y, true)
			}
		case TypePointerLeave:
			s.hideCrosshair(c)
		}
		return
	}

	switch msg.Type {
	case TypePointerDown:
		var p PointerDownPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.badPayload(c, msg.Type, err)
			return
		}
		s.eng.PointerDown(p.X, p.Y, p.Button, p.Target)
		if s.eng.State() != "idle" {
			s.gestureOwner = c.ClientID
		}
		s.broadcastSnapshot()

	case TypePointerMove:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.badPayload(c, msg.Type, err)
			return
		}
		s.eng.PointerMove(p.X, p.Y)
		s.updateCrosshair(c, p.X, p.Y, true)
		// Idle moves change nothing a renderer draws from the store;
		// the crosshair update above covers them.
		if s.eng.State() != "idle" {
			s.broadcastSnapshot()
		}

	case TypePointerUp:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.badPayload(c, msg.Type, err)
			return
		}
		s.eng.PointerUp(p.X, p.Y)
		s.gestureOwner = ""
		s.broadcastSnapshot()

	case TypePointerClick:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			s.badPayload(c, msg.Type, err)
			return
		}
		if s.eng.Click(p.X, p.Y) {
			s.broadcastSnapshot()
		}

	case TypePointerLeave:
		s.eng.PointerLeave()
		s.hideCrosshair(c)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", c.ClientID)
	}
}

func (s *Session) updateCrosshair(c *Client, x, y float64, visible bool) {
	ch := &CrosshairPayload{
		ClientID:    c.ClientID,
		DisplayName: c.DisplayName,
		X:           x,
		Y:           y,
		Visible:     visible,
	}
	s.crosshairs[c.ClientID] = ch
	s.broadcast(mustMessage(TypeCrosshairUpdate, s.boardID, c.ClientID, ch), c.ClientID)
}

func (s *Session) hideCrosshair(c *Client) {
	ch, ok := s.crosshairs[c.ClientID]
	if !ok {
		ch = &CrosshairPayload{ClientID: c.ClientID, DisplayName: c.DisplayName}
		s.crosshairs[c.ClientID] = ch
	}
	ch.Visible = false
	s.broadcast(mustMessage(TypeCrosshairUpdate, s.boardID, c.ClientID, ch), c.ClientID)
}

func (s *Session) broadcastSnapshot() {
	s.broadcast(mustMessage(TypeBoardSnapshot, s.boardID, "", SnapshotPayload{
		Snapshot: s.eng.Snapshot(),
	}), "")
}

func (s *Session) broadcast(msg *Message, excludeClientID string) {
	for id, c := range s.clients {
		if id != excludeClientID {
			c.Send(msg)
		}
	}
}

func (s *Session) badPayload(c *Client, msgType string, err error) {
	slog.Warn("invalid payload", "type", msgType, "error", err, "client", c.ClientID)
	c.Send(mustMessage(TypeError, s.boardID, c.ClientID, ErrorPayload{
		Message: "invalid payload for " + msgType,
	}))
}
