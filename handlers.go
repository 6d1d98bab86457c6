package server

import "github.com/go-gl/mathgl/mgl32"

// Request handlers. Every handler runs with the hub mutex held and a state
// that was registered at entry. Precondition failures are uniformly silent
// no-ops; the client's only recovery is to re-request.

func (h *Hub) handleSetNickname(state *playerState, req *ClientRequest) {
	state.Nickname = req.Nickname
	h.logger.Infof("%s set nickname %q", state.ID, req.Nickname)
}

func (h *Hub) handleCreateRoom(state *playerState, req *ClientRequest) {
	if state.roomID != 0 {
		return
	}

	h.nextRoomID++
	room := &roomState{
		ID:      h.nextRoomID,
		Name:    req.RoomName,
		members: []string{state.ID},
		hostID:  state.ID,
	}
	h.rooms[room.ID] = room
	state.roomID = room.ID

	h.broadcastRoomUpdateLocked(room)
	h.logger.Infof("room %d (%s) created by %s", room.ID, room.Name, state.ID)
}

func (h *Hub) handleFindRooms(state *playerState, _ *ClientRequest) {
	resp := FindRoomsResponse{
		Type:  "find_rooms_response",
		Rooms: make([]RoomInfo, 0, len(h.rooms)),
	}
	for _, room := range h.rooms {
		resp.Rooms = append(resp.Rooms, RoomInfo{
			ID:          room.ID,
			Name:        room.Name,
			PlayerCount: len(room.members),
		})
	}
	if sess, ok := h.sessions[state.ID]; ok {
		h.send(sess, resp)
	}
}

func (h *Hub) handleJoinRoom(state *playerState, req *ClientRequest) {
	if state.roomID != 0 {
		return
	}
	room, ok := h.rooms[req.RoomID]
	if !ok {
		return
	}

	room.members = append(room.members, state.ID)
	state.roomID = room.ID
	state.position = mgl32.Vec3{h.randomSpawnCoord(), 0, h.randomSpawnCoord()}

	h.broadcastRoomUpdateLocked(room)
	h.logger.Infof("%s joined room %d (%s)", state.ID, room.ID, room.Name)
}

func (h *Hub) handleChatMessage(state *playerState, req *ClientRequest) {
	if state.roomID == 0 {
		return
	}
	room, ok := h.rooms[state.roomID]
	if !ok {
		return
	}
	h.sendToRoomLocked(room, ChatBroadcastMessage{
		Type:     "chat_broadcast",
		SenderID: state.Nickname,
		Message:  req.Message,
	})
}

func (h *Hub) handleLeaveRoom(state *playerState, _ *ClientRequest) {
	if state.roomID == 0 {
		return
	}

	leftID := state.roomID
	if room, survived := h.removeFromRoomLocked(state); survived {
		h.broadcastRoomUpdateLocked(room)
	}
	if sess, ok := h.sessions[state.ID]; ok {
		h.send(sess, LeaveRoomAckMessage{Type: "leave_room_success"})
	}
	h.logger.Infof("%s left room %d", state.ID, leftID)
}

func (h *Hub) handleToggleReady(state *playerState, _ *ClientRequest) {
	if state.roomID == 0 {
		return
	}
	room, ok := h.rooms[state.roomID]
	if !ok {
		return
	}
	// Hosts are implicitly always ready and cannot toggle.
	if room.hostID == state.ID {
		return
	}

	state.IsReady = !state.IsReady
	h.broadcastRoomUpdateLocked(room)
}

func (h *Hub) handleStartGame(state *playerState, _ *ClientRequest) {
	if state.roomID == 0 {
		return
	}
	room, ok := h.rooms[state.roomID]
	if !ok {
		return
	}
	if room.hostID != state.ID || len(room.members) < 2 {
		return
	}
	for _, id := range room.members {
		member, ok := h.players[id]
		if !ok {
			continue
		}
		if id != room.hostID && !member.IsReady {
			return
		}
	}

	h.sendToRoomLocked(room, GameStartMessage{Type: "game_start"})
	h.logger.Infof("room %d (%s) started", room.ID, room.Name)
}

func (h *Hub) handlePlayerInput(state *playerState, req *ClientRequest) {
	if state.roomID == 0 {
		return
	}
	if req.Input == nil {
		h.logger.Warnf("player_input from %s missing input payload", state.ID)
		return
	}

	state.input = mgl32.Vec2{req.Input.H, req.Input.V}
	state.animForward = req.Input.AnimForward
	state.animStrafe = req.Input.AnimStrafe
}

// randomSpawnCoord draws one horizontal spawn coordinate from
// [-spawnRange, spawnRange).
func (h *Hub) randomSpawnCoord() float32 {
	return h.rng.Float32()*2*spawnRange - spawnRange
}
