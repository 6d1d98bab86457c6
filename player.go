package server

import "github.com/go-gl/mathgl/mgl32"

// Player is the lobby-visible view of a connected client, as it appears in
// room update broadcasts.
type Player struct {
	ID       string `json:"player_id"`
	Nickname string `json:"nickname"`
	IsReady  bool   `json:"is_ready"`
}

// playerState is the authoritative registry entry for one connection. Wire
// fields are embedded; everything else is only ever touched under the hub
// mutex.
type playerState struct {
	Player
	roomID      int32 // 0 = not in a room
	position    mgl32.Vec3
	input       mgl32.Vec2 // h, v as last received; not validated
	animForward float32
	animStrafe  float32
}

func (s *playerState) snapshot() Player {
	return s.Player
}

// stateSnapshot builds the per-tick game state entry for this player.
func (s *playerState) stateSnapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID: s.ID,
		Position: Vec3Payload{
			X: s.position.X(),
			Y: s.position.Y(),
			Z: s.position.Z(),
		},
		Animation: AnimationPayload{
			Forward: s.animForward,
			Strafe:  s.animStrafe,
		},
	}
}
