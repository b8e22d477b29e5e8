// Package blueprint implements the blueprint core: the entity snapshot codec,
// the relocatable template and the placement transaction.
//
// A snapshot is a plain record positioned relative to the template's local
// origin; absolute world placement happens only when a transaction translates
// it by a caller-supplied anchor.
package blueprint

import (
	"tilecraft.ai/internal/sim/grid"
	"tilecraft.ai/internal/sim/world/model"
)

// EntitySnapshot is the persisted form of one factory piece.
//
// It deliberately has no field for the runtime id or wire links of the live
// entity it came from; those are connection state of the originating world.
type EntitySnapshot struct {
	Placement PlacementSnapshot `json:"placement"`
	Extras    *model.Extras     `json:"extras,omitempty"`
}

type PlacementSnapshot struct {
	Origin           grid.Point `json:"origin"`
	Rotation         int        `json:"rotation"`
	OriginalRotation int        `json:"original_rotation"`
	Code             int        `json:"code"`
}

// Encode captures the sim fields of a live entity into a snapshot.
func Encode(e *model.Entity) EntitySnapshot {
	s := EntitySnapshot{
		Placement: PlacementSnapshot{
			Origin:           e.Pos,
			Rotation:         grid.NormalizeDegrees(e.Rotation),
			OriginalRotation: grid.NormalizeDegrees(e.OriginalRotation),
			Code:             e.Code,
		},
	}
	if e.Extras != nil {
		x := *e.Extras
		s.Extras = &x
	}
	return s
}

// Materialize builds an unregistered live entity from the snapshot, still at
// its template-local position.
func (s EntitySnapshot) Materialize() *model.Entity {
	e := &model.Entity{
		Code:             s.Placement.Code,
		Pos:              s.Placement.Origin,
		Rotation:         s.Placement.Rotation,
		OriginalRotation: s.Placement.OriginalRotation,
	}
	if s.Extras != nil {
		x := *s.Extras
		e.Extras = &x
	}
	return e
}
