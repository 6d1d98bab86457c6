// Package tcp serves the newline-framed JSON protocol the Unity client
// dials directly. Framing stops here; decoded envelopes are the hub's
// concern.
package tcp

import (
	"errors"
	"net"

	"go.uber.org/zap"

	server "arena-lobby/server"
)

// Listener accepts raw TCP connections and runs a session per connection.
type Listener struct {
	hub    *server.Hub
	logger *zap.SugaredLogger
	ln     net.Listener
}

// Listen binds addr. A bind failure is the one startup-fatal condition; the
// caller is expected to abort on error.
func Listen(addr string, hub *server.Hub, logger *zap.SugaredLogger) (*Listener, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	logger.Infof("tcp listening on %s", ln.Addr())
	return &Listener{hub: hub, logger: logger, ln: ln}, nil
}

// Addr reports the bound address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Serve accepts connections until the listener is closed.
func (l *Listener) Serve() error {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			l.logger.Warnf("accept failed: %v", err)
			continue
		}
		go newSession(conn, l.hub, l.logger).run()
	}
}

// Close stops the accept loop. Established sessions keep running until
// their connections fail or the process exits.
func (l *Listener) Close() error {
	return l.ln.Close()
}
