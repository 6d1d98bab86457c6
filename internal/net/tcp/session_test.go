package tcp

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	server "arena-lobby/server"
)

func startListener(t *testing.T) (*Listener, *server.Hub) {
	t.Helper()
	hub := server.NewHub(nil)
	l, err := Listen("127.0.0.1:0", hub, nil)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	go l.Serve()
	return l, hub
}

type client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func dialClient(t *testing.T, l *Listener) *client {
	t.Helper()
	conn, err := net.Dial("tcp", l.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &client{conn: conn, reader: bufio.NewReader(conn)}
}

func (c *client) read(t *testing.T) map[string]any {
	t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	line, err := c.reader.ReadBytes('\n')
	require.NoError(t, err)
	var msg map[string]any
	require.NoError(t, json.Unmarshal(line, &msg))
	return msg
}

// readType skips interleaved broadcasts (e.g. tick snapshots) until the
// wanted type arrives.
func (c *client) readType(t *testing.T, msgType string) map[string]any {
	t.Helper()
	for i := 0; i < 32; i++ {
		if msg := c.read(t); msg["type"] == msgType {
			return msg
		}
	}
	t.Fatalf("never received %q", msgType)
	return nil
}

func (c *client) write(t *testing.T, raw string) {
	t.Helper()
	_, err := c.conn.Write([]byte(raw + "\n"))
	require.NoError(t, err)
}

func TestSessionAssignsIDThenHandlesRequests(t *testing.T) {
	l, _ := startListener(t)
	c := dialClient(t, l)

	assign := c.readType(t, "assign_id")
	require.Equal(t, "UID0", assign["player_id"])

	c.write(t, `{"type":"create_room","room_name":"alpha"}`)
	update := c.readType(t, "update_room_info")
	require.Equal(t, "alpha", update["room_name"])
	require.Equal(t, "UID0", update["host_id"])
}

func TestChatReachesEveryRoomMember(t *testing.T) {
	l, _ := startListener(t)

	host := dialClient(t, l)
	host.readType(t, "assign_id")
	host.write(t, `{"type":"set_nickname","nickname":"alice"}`)
	host.write(t, `{"type":"create_room","room_name":"alpha"}`)
	host.readType(t, "update_room_info")

	guest := dialClient(t, l)
	guest.readType(t, "assign_id")
	guest.write(t, `{"type":"join_room","room_id":1}`)
	guest.readType(t, "update_room_info")
	host.readType(t, "update_room_info")

	host.write(t, `{"type":"chat_message","message":"hello"}`)

	for _, c := range []*client{host, guest} {
		chat := c.readType(t, "chat_broadcast")
		require.Equal(t, "alice", chat["sender_id"])
		require.Equal(t, "hello", chat["message"])
	}
}

func TestMalformedLineKeepsConnectionOpen(t *testing.T) {
	l, _ := startListener(t)
	c := dialClient(t, l)
	c.readType(t, "assign_id")

	c.write(t, `{broken`)
	c.write(t, `{"type":"find_rooms"}`)

	resp := c.readType(t, "find_rooms_response")
	require.NotNil(t, resp["rooms"])
}

func TestDisconnectCleansRegistry(t *testing.T) {
	l, hub := startListener(t)
	c := dialClient(t, l)
	c.readType(t, "assign_id")
	c.write(t, `{"type":"create_room","room_name":"alpha"}`)
	c.readType(t, "update_room_info")

	require.NoError(t, c.conn.Close())

	require.Eventually(t, func() bool {
		snap := hub.DiagnosticsSnapshot()
		return snap.PlayerCount == 0 && len(snap.Rooms) == 0
	}, 2*time.Second, 10*time.Millisecond, "registry should empty after the peer closes")
}
