// Package catalogs loads the static building definitions shared by the sim,
// the blueprint codec and the clients. Digests let clients verify they run
// against the same catalog the server loaded.
package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultLayer is the template classification used when a blueprint is empty.
const DefaultLayer = "structures"

type Catalogs struct {
	Buildings BuildingCatalog
}

type BuildingCatalog struct {
	Palette []string
	Defs    map[string]BuildingDef
	// ByCode resolves the wire type code carried in entity snapshots.
	ByCode map[int]BuildingDef

	DefsDigest    string
	PaletteDigest string
}

type BuildingDef struct {
	ID    string `json:"id"`
	Code  int    `json:"code"`
	Layer string `json:"layer"`

	// Footprint in tiles. Zero values default to 1x1.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Removable marks environmental obstructions (trees, rocks) that a
	// placement transaction may clear from a target footprint.
	Removable bool `json:"removable,omitempty"`

	// Extras names the optional per-type payload kind ("signal" for a
	// constant-value emitter). Empty means the type carries no extras.
	Extras string `json:"extras,omitempty"`
}

func (d BuildingDef) Footprint() (w, h int) {
	w, h = d.Width, d.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w, h
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs
	if err := loadBuildings(filepath.Join(configDir, "buildings.json"), &c.Buildings); err != nil {
		return nil, err
	}
	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadBuildings(path string, out *BuildingCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []BuildingDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("buildings.json: %w", err)
	}
	out.Defs = map[string]BuildingDef{}
	out.ByCode = map[int]BuildingDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("buildings.json: empty id")
		}
		if d.Code <= 0 {
			return fmt.Errorf("buildings.json: %s: code must be positive", d.ID)
		}
		if _, dup := out.ByCode[d.Code]; dup {
			return fmt.Errorf("buildings.json: duplicate code %d", d.Code)
		}
		out.Defs[d.ID] = d
		out.ByCode[d.Code] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.Palette = ids

	palJSON, _ := json.Marshal(ids)
	out.PaletteDigest = sha256Hex(palJSON)
	return nil
}
