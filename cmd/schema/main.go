// Command schema emits a JSON Schema document describing the lobby wire
// protocol, for client-side validation and editor tooling.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	server "arena-lobby/server"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	if err := writeSchema(outPath, buildSchema()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

type protocolSchema struct {
	Title       string                        `json:"title"`
	Description string                        `json:"description"`
	Client      map[string]*jsonschema.Schema `json:"client"`
	Server      map[string]*jsonschema.Schema `json:"server"`
}

func buildSchema() *protocolSchema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	return &protocolSchema{
		Title:       "Arena Lobby Protocol",
		Description: "Newline-delimited JSON envelopes exchanged with the lobby server; identical bodies travel over the websocket transport.",
		Client: map[string]*jsonschema.Schema{
			"request": reflector.Reflect(new(server.ClientRequest)),
		},
		Server: map[string]*jsonschema.Schema{
			"assign_id":           reflector.Reflect(new(server.AssignIDMessage)),
			"update_room_info":    reflector.Reflect(new(server.RoomUpdateMessage)),
			"find_rooms_response": reflector.Reflect(new(server.FindRoomsResponse)),
			"chat_broadcast":      reflector.Reflect(new(server.ChatBroadcastMessage)),
			"game_state_update":   reflector.Reflect(new(server.GameStateMessage)),
			"game_start":          reflector.Reflect(new(server.GameStartMessage)),
			"leave_room_success":  reflector.Reflect(new(server.LeaveRoomAckMessage)),
		},
	}
}

func writeSchema(outPath string, schema *protocolSchema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
