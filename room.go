package server

// roomState tracks a named group of sessions. Members are stored as player
// ids in join order; the hub destroys a room the moment its member list
// empties, so an existing room always has a host.
type roomState struct {
	ID      int32
	Name    string
	members []string // player ids, join order
	hostID  string
}

// removeMember drops a player from the member list, preserving order.
// Returns false when the player was not a member.
func (r *roomState) removeMember(playerID string) bool {
	for i, id := range r.members {
		if id == playerID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

// migrateHost hands the room to the earliest remaining joiner. Callers must
// only invoke this while members is non-empty.
func (r *roomState) migrateHost() {
	r.hostID = r.members[0]
}
