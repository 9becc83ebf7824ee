package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"snowglobe/internal/logging"
	"snowglobe/internal/silhouette"
	"snowglobe/internal/state"
)

// Drawing socket message types.
const (
	MsgStart   = "start"
	MsgPoint   = "point"
	MsgEnd     = "end"
	MsgReset   = "reset"
	MsgProfile = "profile"
	MsgError   = "error"
)

const maxDrawMessage = 4096

// DrawMessage is sent by a drawing pad: one pointer event in UI units.
type DrawMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// ProfileMessage is the reply to every DrawMessage.
type ProfileMessage struct {
	Type   string            `json:"type"`
	Points [][2]float64      `json:"points,omitempty"`
	Facing silhouette.Facing `json:"facing"`
	Ready  bool              `json:"ready"`
	Error  string            `json:"error,omitempty"`
}

// errUnknownMessage is reported back to the client; the socket stays open.
var errUnknownMessage = errors.New("unknown message type")

// apply feeds one event into d.
func apply(d *state.Design, msg DrawMessage) error {
	switch msg.Type {
	case MsgStart:
		d.Restart(msg.X, msg.Y)
	case MsgPoint:
		d.Append(msg.X, msg.Y)
	case MsgEnd:
	case MsgReset:
		d.Clear()
	default:
		return fmt.Errorf("%w %q", errUnknownMessage, msg.Type)
	}
	return nil
}

// profileMessage renders the current profile of d.
func profileMessage(d *state.Design) ProfileMessage {
	p := silhouette.Build(d.Points())
	out := ProfileMessage{
		Type:   MsgProfile,
		Points: make([][2]float64, len(p.Points)),
		Facing: p.Facing,
		Ready:  p.Ready(),
	}
	for i, pt := range p.Points {
		out.Points[i] = [2]float64{pt.X, pt.Y}
	}
	return out
}

// handleDraw runs a live preview session: each message edits a private
// design and is answered with the resulting profile.
func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("server: websocket upgrade", "error", err)
		return
	}
	conn.SetReadLimit(maxDrawMessage)
	s.conns.Add(conn)
	defer func() {
		s.conns.Remove(conn)
		conn.Close()
	}()

	d := state.NewDesign()
	for {
		var msg DrawMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Logger().Debug("server: draw socket closed", "remote", conn.RemoteAddr().String(), "error", err)
			}
			return
		}

		reply := ProfileMessage{Type: MsgError}
		if err := apply(d, msg); err != nil {
			reply.Error = err.Error()
		} else {
			reply = profileMessage(d)
		}
		if err := conn.WriteJSON(reply); err != nil {
			logging.Logger().Debug("server: draw socket write", "error", err)
			return
		}
	}
}
