package protocol

import "encoding/json"

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	PlayerName      string `json:"player_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	PlayerID        string      `json:"player_id"`
	WorldID         string      `json:"world_id"`
	Catalogs        CatalogInfo `json:"catalogs"`
}

type CatalogInfo struct {
	BuildingsDigest string `json:"buildings_digest"`
	BuildingCount   int    `json:"building_count"`
}

// ACT (client -> server): one instant blueprint request per message.
type ActMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	Instant         InstantReq `json:"instant"`
}

// Instant request kinds.
const (
	InstantBlueprintCapture = "BLUEPRINT_CAPTURE"
	InstantBlueprintRotate  = "BLUEPRINT_ROTATE"
	InstantBlueprintPlace   = "BLUEPRINT_PLACE"
	InstantBlueprintExport  = "BLUEPRINT_EXPORT"
	InstantBlueprintImport  = "BLUEPRINT_IMPORT"
	InstantBlueprintSave    = "BLUEPRINT_SAVE"
	InstantBlueprintLoad    = "BLUEPRINT_LOAD"
)

type InstantReq struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`

	// BLUEPRINT_CAPTURE
	EntityIDs []string `json:"entity_ids,omitempty"`

	// BLUEPRINT_ROTATE: "CW" or "CCW".
	Direction string `json:"direction,omitempty"`

	// BLUEPRINT_PLACE
	Anchor *TilePos `json:"anchor,omitempty"`

	// BLUEPRINT_IMPORT: the ordered-sequence-of-records value.
	Payload json.RawMessage `json:"payload,omitempty"`

	// BLUEPRINT_SAVE / BLUEPRINT_LOAD
	Name string `json:"name,omitempty"`
}

type TilePos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EVENT (server -> client)
type EventMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	Events          []Event `json:"events"`
}
