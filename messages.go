package server

// Wire protocol shared by the TCP and websocket transports. Every message
// is one JSON object with a mandatory "type" field; the TCP transport
// frames messages with a trailing newline. cmd/schema reflects these types
// into a JSON Schema document for client tooling.

// ClientRequest is the inbound envelope. Fields beyond Type are
// handler-specific; unused ones stay at their zero value.
type ClientRequest struct {
	Type     string        `json:"type"`
	Nickname string        `json:"nickname,omitempty"`
	RoomName string        `json:"room_name,omitempty"`
	RoomID   int32         `json:"room_id,omitempty"`
	Message  string        `json:"message,omitempty"`
	Input    *InputPayload `json:"input,omitempty"`
}

// InputPayload carries per-frame movement axes and mirrored animation
// state. Axes are conceptually in [-1,1] but the server does not clamp
// them; oversized vectors are normalized during integration.
type InputPayload struct {
	H           float32 `json:"h"`
	V           float32 `json:"v"`
	AnimForward float32 `json:"anim_forward"`
	AnimStrafe  float32 `json:"anim_strafe"`
}

type AssignIDMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
}

type RoomUpdateMessage struct {
	Type     string   `json:"type"`
	RoomName string   `json:"room_name"`
	HostID   string   `json:"host_id"`
	Players  []Player `json:"players"`
}

// RoomInfo is one entry of a find_rooms_response.
type RoomInfo struct {
	ID          int32  `json:"room_id"`
	Name        string `json:"room_name"`
	PlayerCount int    `json:"player_count"`
}

type FindRoomsResponse struct {
	Type  string     `json:"type"`
	Rooms []RoomInfo `json:"rooms"`
}

type ChatBroadcastMessage struct {
	Type     string `json:"type"`
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
}

type Vec3Payload struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type AnimationPayload struct {
	Forward float32 `json:"forward"`
	Strafe  float32 `json:"strafe"`
}

// PlayerSnapshot is one player's entry in a game_state_update. Position
// travels only here, never in room updates.
type PlayerSnapshot struct {
	ID        string           `json:"player_id"`
	Position  Vec3Payload      `json:"position"`
	Animation AnimationPayload `json:"animation"`
}

type GameStateMessage struct {
	Type    string           `json:"type"`
	Players []PlayerSnapshot `json:"players"`
}

type GameStartMessage struct {
	Type string `json:"type"`
}

type LeaveRoomAckMessage struct {
	Type string `json:"type"`
}
