package tcp

import (
	"bufio"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	server "arena-lobby/server"
)

const (
	writeWait     = 10 * time.Second
	sendQueueSize = 256
	maxLineBytes  = 1 << 20 // 1MB
)

// session adapts one TCP connection to the hub's Session contract:
// newline-framed JSON in arrival order on the read side, a buffered write
// pump on the send side, and a disconnect report that fires exactly once no
// matter which side fails first.
type session struct {
	connID string
	conn   net.Conn
	hub    *server.Hub
	logger *zap.SugaredLogger

	playerID string
	send     chan []byte
	done     chan struct{}
	once     sync.Once
}

func newSession(conn net.Conn, hub *server.Hub, logger *zap.SugaredLogger) *session {
	return &session{
		connID: uuid.NewString(),
		conn:   conn,
		hub:    hub,
		logger: logger,
		send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}
}

func (s *session) ID() string { return s.connID }

// Send queues a message without blocking. A full queue means the peer is
// not draining writes; the session is torn down as a failed connection.
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

// run registers the session with the hub, then reads newline-framed
// messages until the connection dies. Messages are dispatched synchronously
// so per-connection ordering is preserved.
func (s *session) run() {
	s.playerID = s.hub.Connect(s)
	go s.writePump()

	defer s.teardown()

	scanner := bufio.NewScanner(s.conn)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		// Scanner reuses its buffer; hand the hub its own copy.
		msg := make([]byte, len(line))
		copy(msg, line)
		s.hub.Dispatch(s.playerID, msg)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Debugf("session %s read ended: %v", s.connID, err)
	}
}

// writePump drains the send queue onto the socket, one frame per message.
func (s *session) writePump() {
	w := bufio.NewWriter(s.conn)
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if _, err := w.Write(data); err != nil {
				s.teardown()
				return
			}
			if err := w.WriteByte('\n'); err != nil {
				s.teardown()
				return
			}
			if err := w.Flush(); err != nil {
				s.teardown()
				return
			}
		}
	}
}

// teardown closes the connection and reports the disconnect to the hub
// exactly once. The hub notification runs on its own goroutine because
// Send, a caller of teardown, may be invoked while the hub mutex is held.
func (s *session) teardown() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
		go s.hub.Disconnect(s.playerID)
	})
}
