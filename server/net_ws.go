package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// wsTransport wraps a *websocket.Conn behind Transport: a buffered send
// channel drained by a single writePump goroutine (gorilla/websocket
// conns are not safe for concurrent writers), and a blocking Receive
// used by the session's own read loop.
type wsTransport struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

func newWSTransport(conn *websocket.Conn) *wsTransport {
	t := &wsTransport{
		conn: conn,
		send: make(chan []byte, 64),
		done: make(chan struct{}),
	}
	go t.writePump()
	return t
}

func (t *wsTransport) Send(b []byte) bool {
	select {
	case t.send <- b:
		return true
	default:
		return false
	}
}

func (t *wsTransport) Receive() ([]byte, error) {
	_, payload, err := t.conn.ReadMessage()
	return payload, err
}

func (t *wsTransport) CloseWithCode(code int, reason string) {
	deadline := time.Now().Add(2 * time.Second)
	_ = t.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	t.Close()
}

func (t *wsTransport) Close() {
	select {
	case <-t.done:
		return
	default:
		close(t.done)
	}
	_ = t.conn.Close()
}

func (t *wsTransport) writePump() {
	defer t.conn.Close()
	for {
		select {
		case <-t.done:
			return
		case msg, ok := <-t.send:
			if !ok {
				return
			}
			t.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := t.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS upgrades an incoming request to a worm-arena session socket.
// Room assignment happens later, on the first hello frame.
func HandleWS(registry *SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			registry.logger.Warn("websocket upgrade failed", errField(err))
			return
		}
		conn.SetReadLimit(1 << 16)

		session := registry.Register(newWSTransport(conn))
		session.Send(WelcomeFrame{Type: "welcome", SessionID: string(session.ID)})
		go registry.Serve(session)
	}
}
