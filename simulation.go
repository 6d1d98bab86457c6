package server

import (
	"encoding/json"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// broadcastBatch is one encoded room snapshot plus the sessions it goes to,
// captured while the hub mutex was held.
type broadcastBatch struct {
	data     []byte
	sessions []Session
}

// advance runs a single simulation step: for every room member, the stored
// input axes form a horizontal direction (h, 0, v) that is normalized and
// integrated into the position when its magnitude clears the idle epsilon.
// Returns one game_state_update batch per room, ready for fan-out.
func (h *Hub) advance(dt float32) []broadcastBatch {
	h.mu.Lock()
	defer h.mu.Unlock()

	batches := make([]broadcastBatch, 0, len(h.rooms))
	for _, room := range h.rooms {
		msg := GameStateMessage{
			Type:    "game_state_update",
			Players: make([]PlayerSnapshot, 0, len(room.members)),
		}
		sessions := make([]Session, 0, len(room.members))
		for _, id := range room.members {
			state, ok := h.players[id]
			if !ok {
				continue
			}

			dir := mgl32.Vec3{state.input.X(), 0, state.input.Y()}
			if length := dir.Len(); length > inputEpsilon {
				dir = dir.Mul(1 / length)
				state.position = state.position.Add(dir.Mul(moveSpeed * dt))
			}

			msg.Players = append(msg.Players, state.stateSnapshot())
			if sess, ok := h.sessions[id]; ok {
				sessions = append(sessions, sess)
			}
		}

		data, err := json.Marshal(msg)
		if err != nil {
			h.logger.Errorf("failed to marshal game state for room %d: %v", room.ID, err)
			continue
		}
		batches = append(batches, broadcastBatch{data: data, sessions: sessions})
	}
	return batches
}

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes. Each firing integrates movement and fans out one snapshot per
// room; sends happen outside the registry lock.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			if dt <= 0 {
				dt = 1.0 / float32(tickRate)
			}
			last = now

			for _, batch := range h.advance(dt) {
				for _, sess := range batch.sessions {
					sess.Send(batch.data)
				}
			}
		}
	}
}
