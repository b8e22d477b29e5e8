// Package model holds the live sim object types shared between the world
// runtime and the blueprint logic.
package model

import "tilecraft.ai/internal/sim/grid"

// Entity is a live, world-registered factory piece.
//
// RuntimeID and Links exist only while the entity lives inside one world:
// they are assigned at registration and are meaningless in any other world,
// so the snapshot codec never serializes them.
type Entity struct {
	RuntimeID string
	Links     []string // wire connections to other runtime ids

	Code             int
	Pos              grid.Point
	Rotation         int // degrees, multiple of 90, in [0,360)
	OriginalRotation int // rotation the piece was authored at

	Extras *Extras
}

// Extras is the optional per-type payload. Only types whose catalog def
// declares an extras kind carry one.
type Extras struct {
	SignalValue int `json:"signal_value"`
}

// Clone copies the sim fields of e. The copy has no runtime id and no links;
// those belong to exactly one registered instance.
func (e *Entity) Clone() *Entity {
	c := &Entity{
		Code:             e.Code,
		Pos:              e.Pos,
		Rotation:         e.Rotation,
		OriginalRotation: e.OriginalRotation,
	}
	if e.Extras != nil {
		x := *e.Extras
		c.Extras = &x
	}
	return c
}
