package server

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub owns the authoritative registry: every connected player, the session
// handle used to reach it, and every live room. All mutation — command
// handlers and the simulation tick alike — happens under one mutex, so each
// handler is atomic with respect to every other handler and the tick.
// Session.Send never blocks, which keeps fan-out safe while locked.
type Hub struct {
	mu            sync.Mutex
	players       map[string]*playerState
	sessions      map[string]Session
	rooms         map[int32]*roomState
	nextRoomID    int32
	nextPlayerSeq uint64

	handlers map[string]handlerFunc
	rng      *rand.Rand
	logger   *zap.SugaredLogger
}

type handlerFunc func(h *Hub, state *playerState, req *ClientRequest)

// NewHub creates an empty registry with the request handler table wired up.
func NewHub(logger *zap.SugaredLogger) *Hub {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	h := &Hub{
		players:  make(map[string]*playerState),
		sessions: make(map[string]Session),
		rooms:    make(map[int32]*roomState),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   logger,
	}
	h.handlers = map[string]handlerFunc{
		"set_nickname": (*Hub).handleSetNickname,
		"create_room":  (*Hub).handleCreateRoom,
		"find_rooms":   (*Hub).handleFindRooms,
		"join_room":    (*Hub).handleJoinRoom,
		"chat_message": (*Hub).handleChatMessage,
		"leave_room":   (*Hub).handleLeaveRoom,
		"toggle_ready": (*Hub).handleToggleReady,
		"start_game":   (*Hub).handleStartGame,
		"player_input": (*Hub).handlePlayerInput,
	}
	return h
}

// Connect registers a freshly accepted session, mints its player id and
// sends the assign_id message. Transports must call this before delivering
// any inbound message for the connection.
func (h *Hub) Connect(sess Session) string {
	h.mu.Lock()
	playerID := fmt.Sprintf("%s%d", playerIDPrefix, h.nextPlayerSeq)
	h.nextPlayerSeq++
	h.players[playerID] = &playerState{Player: Player{ID: playerID}}
	h.sessions[playerID] = sess
	h.mu.Unlock()

	h.logger.Infof("%s connected (session %s)", playerID, sess.ID())
	h.send(sess, AssignIDMessage{Type: "assign_id", PlayerID: playerID})
	return playerID
}

// Disconnect erases a player and repairs its room. Transports guarantee at
// most one call per connection; a second call is a harmless no-op.
func (h *Hub) Disconnect(playerID string) {
	h.mu.Lock()
	state, ok := h.players[playerID]
	if !ok {
		h.mu.Unlock()
		return
	}
	sess := h.sessions[playerID]
	delete(h.sessions, playerID)
	delete(h.players, playerID)

	if state.roomID != 0 {
		if room, survived := h.removeFromRoomLocked(state); survived {
			h.broadcastRoomUpdateLocked(room)
		}
	}
	h.mu.Unlock()

	if sess != nil {
		sess.Close()
	}
	h.logger.Infof("%s disconnected", playerID)
}

// Dispatch decodes an inbound envelope and routes it to the registered
// handler. Malformed envelopes and unknown types are dropped without
// touching the connection.
func (h *Hub) Dispatch(playerID string, raw []byte) {
	var req ClientRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		h.logger.Warnf("discarding malformed message from %s: %v", playerID, err)
		return
	}

	handler, ok := h.handlers[req.Type]
	if !ok {
		h.logger.Warnf("unknown request type %q from %s", req.Type, playerID)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.players[playerID]
	if !ok {
		// Raced with disconnect; the player is already gone.
		return
	}
	handler(h, state, &req)
}

// removeFromRoomLocked detaches a player from its room, destroying the room
// when it empties and migrating the host to the earliest remaining joiner
// otherwise. Reports whether the room survived.
func (h *Hub) removeFromRoomLocked(state *playerState) (*roomState, bool) {
	room, ok := h.rooms[state.roomID]
	state.roomID = 0
	state.IsReady = false
	if !ok {
		return nil, false
	}

	room.removeMember(state.ID)
	if len(room.members) == 0 {
		delete(h.rooms, room.ID)
		h.logger.Infof("room %d (%s) destroyed", room.ID, room.Name)
		return room, false
	}
	if room.hostID == state.ID {
		room.migrateHost()
		h.logger.Infof("room %d host migrated to %s", room.ID, room.hostID)
	}
	return room, true
}

// broadcastRoomUpdateLocked sends the current member roster to every member
// of the room. Position is deliberately absent; it travels only in game
// state snapshots.
func (h *Hub) broadcastRoomUpdateLocked(room *roomState) {
	msg := RoomUpdateMessage{
		Type:     "update_room_info",
		RoomName: room.Name,
		HostID:   room.hostID,
		Players:  make([]Player, 0, len(room.members)),
	}
	for _, id := range room.members {
		state, ok := h.players[id]
		if !ok {
			continue
		}
		msg.Players = append(msg.Players, state.snapshot())
	}
	h.sendToRoomLocked(room, msg)
}

// sendToRoomLocked encodes payload once and queues it to every member.
func (h *Hub) sendToRoomLocked(room *roomState, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Errorf("failed to marshal room broadcast: %v", err)
		return
	}
	for _, id := range room.members {
		if sess, ok := h.sessions[id]; ok {
			sess.Send(data)
		}
	}
}

func (h *Hub) send(sess Session, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Errorf("failed to marshal message: %v", err)
		return
	}
	sess.Send(data)
}

// Diagnostics is the payload served by the HTTP diagnostics endpoint.
type Diagnostics struct {
	ServerTime  int64      `json:"serverTime"`
	TickRate    int        `json:"tickRate"`
	PlayerCount int        `json:"playerCount"`
	Rooms       []RoomInfo `json:"rooms"`
}

// DiagnosticsSnapshot reports lobby occupancy for the HTTP surface.
func (h *Hub) DiagnosticsSnapshot() Diagnostics {
	h.mu.Lock()
	defer h.mu.Unlock()

	rooms := make([]RoomInfo, 0, len(h.rooms))
	for _, room := range h.rooms {
		rooms = append(rooms, RoomInfo{ID: room.ID, Name: room.Name, PlayerCount: len(room.members)})
	}
	return Diagnostics{
		ServerTime:  time.Now().UnixMilli(),
		TickRate:    tickRate,
		PlayerCount: len(h.players),
		Rooms:       rooms,
	}
}
