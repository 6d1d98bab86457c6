package server

// Session is the I/O capability a transport hands to the hub. It carries an
// opaque connection identity plus the ability to queue outbound messages;
// the hub never touches the underlying connection.
//
// Send must be safe to call from any goroutine and must not block: both
// shipped transports enqueue onto a buffered channel drained by a write
// pump. A session that cannot keep up is torn down by its transport, which
// reports the disconnect to the hub exactly once.
type Session interface {
	// ID returns the transport-assigned connection handle. It is distinct
	// from the player id the hub mints at connect time.
	ID() string
	Send(data []byte)
	Close()
}
