package world

import (
	"github.com/google/uuid"

	"tilecraft.ai/internal/sim/grid"
	"tilecraft.ai/internal/sim/world/model"
)

// footprint returns the tiles an entity covers at the given world position.
// Quarter turns at 90 and 270 swap width and height.
func (w *World) footprint(e *model.Entity, at grid.Point) []grid.Point {
	def, ok := w.catalogs.Buildings.ByCode[e.Code]
	if !ok {
		return []grid.Point{at}
	}
	fw, fh := def.Footprint()
	if rot := grid.NormalizeDegrees(e.Rotation); rot == 90 || rot == 270 {
		fw, fh = fh, fw
	}
	tiles := make([]grid.Point, 0, fw*fh)
	for dy := 0; dy < fh; dy++ {
		for dx := 0; dx < fw; dx++ {
			tiles = append(tiles, grid.Point{X: at.X + dx, Y: at.Y + dy})
		}
	}
	return tiles
}

func (w *World) inBounds(p grid.Point) bool {
	r := w.cfg.BoundaryR
	return p.X >= -r && p.X <= r && p.Y >= -r && p.Y <= r
}

// FindEntity resolves a runtime id to its live entity, or nil.
func (w *World) FindEntity(id string) *model.Entity {
	return w.entities[id]
}

// BoundingBoxCenter is the tile-space center of the entity's footprint.
func (w *World) BoundingBoxCenter(e *model.Entity) grid.PointF {
	def := w.catalogs.Buildings.ByCode[e.Code]
	fw, fh := def.Footprint()
	if rot := grid.NormalizeDegrees(e.Rotation); rot == 90 || rot == 270 {
		fw, fh = fh, fw
	}
	return grid.PointF{
		X: float64(e.Pos.X) + float64(fw-1)/2,
		Y: float64(e.Pos.Y) + float64(fh-1)/2,
	}
}

// CheckPlacementValid reports whether e, still at its template-local
// position, could go into the world translated by anchor: every footprint
// tile must be in bounds, on buildable terrain, and free of anything that is
// not a removable obstruction.
func (w *World) CheckPlacementValid(e *model.Entity, anchor grid.Point) bool {
	if _, ok := w.catalogs.Buildings.ByCode[e.Code]; !ok {
		return false
	}
	at := e.Pos.Add(anchor)
	for _, tile := range w.footprint(e, at) {
		if !w.inBounds(tile) || w.water[tile] {
			return false
		}
		occ := w.static[tile]
		if occ == nil {
			continue
		}
		if !w.catalogs.Buildings.ByCode[occ.Code].Removable {
			return false
		}
	}
	return true
}

// ClearObstructions removes every removable obstruction overlapping the
// entity's footprint at its (already translated) position.
func (w *World) ClearObstructions(e *model.Entity) {
	for _, tile := range w.footprint(e, e.Pos) {
		occ := w.static[tile]
		if occ == nil {
			continue
		}
		if w.catalogs.Buildings.ByCode[occ.Code].Removable {
			w.RemoveEntity(occ)
		}
	}
}

// InsertStatic indexes the entity's footprint in the static spatial storage.
func (w *World) InsertStatic(e *model.Entity) {
	for _, tile := range w.footprint(e, e.Pos) {
		w.static[tile] = e
	}
	w.markDirty(w.footprint(e, e.Pos)...)
}

// RegisterEntity assigns a runtime id and adds the entity to the registry.
func (w *World) RegisterEntity(e *model.Entity) {
	if e.RuntimeID == "" {
		e.RuntimeID = uuid.NewString()
	}
	w.entities[e.RuntimeID] = e
}

// RemoveEntity drops the entity from the registry and the spatial index.
func (w *World) RemoveEntity(e *model.Entity) {
	delete(w.entities, e.RuntimeID)
	tiles := w.footprint(e, e.Pos)
	for _, tile := range tiles {
		if w.static[tile] == e {
			delete(w.static, tile)
		}
	}
	w.markDirty(tiles...)
}

// Spawn registers and indexes an already positioned entity. Worldgen and
// tests use it; blueprint placement goes through the transaction instead.
func (w *World) Spawn(e *model.Entity) *model.Entity {
	w.RegisterEntity(e)
	w.InsertStatic(e)
	return e
}

// SetWater marks a tile as unbuildable terrain.
func (w *World) SetWater(p grid.Point, wet bool) {
	if wet {
		w.water[p] = true
	} else {
		delete(w.water, p)
	}
	w.markDirty(p)
}

// EntityAt returns the static occupant of a tile, or nil.
func (w *World) EntityAt(p grid.Point) *model.Entity {
	return w.static[p]
}

// EntityCount is the number of registered entities.
func (w *World) EntityCount() int { return len(w.entities) }
