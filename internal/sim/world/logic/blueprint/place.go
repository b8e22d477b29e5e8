package blueprint

import (
	"tilecraft.ai/internal/sim/grid"
	"tilecraft.ai/internal/sim/world/model"
)

// PlacementProbe answers whether one entity, still at its template-local
// position, would be valid if translated by anchor.
type PlacementProbe interface {
	CheckPlacementValid(e *model.Entity, anchor grid.Point) bool
}

// PlaceEnv is everything a placement transaction needs from the world.
// *world.World implements it; tests use fakes.
type PlaceEnv interface {
	PlacementProbe

	ClearObstructions(e *model.Entity)
	InsertStatic(e *model.Entity)
	RegisterEntity(e *model.Entity)

	// BeginBatch/EndBatch bracket a deferred-notification scope: observers
	// see one coalesced change for the whole transaction.
	BeginBatch()
	EndBatch()

	// RecordBlueprintPlaced is the single aggregated stats emission per
	// transaction, fire-and-forget.
	RecordBlueprintPlaced(pieces int)
}

// CanPlaceAnywhere reports whether at least one entity would individually be
// valid at anchor. Advisory only: Place re-checks every entity itself.
func (t *Template) CanPlaceAnywhere(probe PlacementProbe, anchor grid.Point) bool {
	for _, s := range t.Entities {
		if probe.CheckPlacementValid(s.Materialize(), anchor) {
			return true
		}
	}
	return false
}

// Place instantiates the template into the world at anchor and returns how
// many entities went in.
//
// Per-entity infeasibility is routine: the entity is skipped, the loop moves
// on, nothing placed earlier is rolled back. The whole transaction runs
// inside one batch scope, and the stats emission fires exactly once per
// invocation, piece count zero included.
func (t *Template) Place(env PlaceEnv, anchor grid.Point) int {
	env.BeginBatch()
	defer env.EndBatch()

	placed := 0
	for _, s := range t.Entities {
		e := s.Materialize()
		if !env.CheckPlacementValid(e, anchor) {
			continue
		}
		e.Pos = e.Pos.Add(anchor)
		env.ClearObstructions(e)
		env.InsertStatic(e)
		env.RegisterEntity(e)
		placed++
	}

	env.RecordBlueprintPlaced(placed)
	return placed
}
