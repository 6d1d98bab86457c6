// Package ws exposes the lobby protocol over websocket text messages. The
// JSON bodies are identical to the TCP transport's; only the framing
// differs.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	server "arena-lobby/server"
)

const (
	writeWait     = 10 * time.Second
	sendQueueSize = 256
	readLimit     = 1 << 20 // 1MB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// session adapts one websocket connection to the hub's Session contract,
// mirroring the TCP session: buffered write pump, synchronous dispatch on
// the read side, single-shot disconnect.
type session struct {
	connID string
	conn   *websocket.Conn
	hub    *server.Hub
	logger *zap.SugaredLogger

	playerID string
	send     chan []byte
	done     chan struct{}
	once     sync.Once
}

// Serve upgrades the request and runs the connection to completion.
func Serve(hub *server.Hub, logger *zap.SugaredLogger, w http.ResponseWriter, r *http.Request) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("websocket upgrade failed: %v", err)
		return
	}

	s := &session{
		connID: uuid.NewString(),
		conn:   conn,
		hub:    hub,
		logger: logger,
		send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}
	s.run()
}

func (s *session) ID() string { return s.connID }

func (s *session) Send(data []byte) {
	select {
	case s.send <- data:
	case <-s.done:
	default:
		s.logger.Warnf("session %s send queue full, dropping connection", s.connID)
		s.teardown()
	}
}

func (s *session) Close() {
	s.teardown()
}

func (s *session) run() {
	s.playerID = s.hub.Connect(s)
	go s.writePump()

	defer s.teardown()

	s.conn.SetReadLimit(readLimit)
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		s.hub.Dispatch(s.playerID, payload)
	}
}

func (s *session) writePump() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.teardown()
				return
			}
		}
	}
}

func (s *session) teardown() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
		go s.hub.Disconnect(s.playerID)
	})
}
