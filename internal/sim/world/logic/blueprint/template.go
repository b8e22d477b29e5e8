package blueprint

import (
	"fmt"

	"tilecraft.ai/internal/sim/catalogs"
	"tilecraft.ai/internal/sim/grid"
	"tilecraft.ai/internal/sim/world/model"
)

// SelectionEnv is what FromSelection needs from the world.
type SelectionEnv interface {
	FindEntity(id string) *model.Entity
	BoundingBoxCenter(e *model.Entity) grid.PointF
}

// EconomyEnv is the stored-resource ledger a paid placement draws from.
type EconomyEnv interface {
	HasUnlimitedBudget() bool
	GetBalance(key string) int
}

// Template is an ordered collection of entity snapshots, positioned relative
// to the template's own local origin. Order is preserved from capture or
// import; it drives deterministic stats counting and draw order, not
// placement correctness.
type Template struct {
	Entities []EntitySnapshot
}

// FromSelection snapshots the given live entities and recenters them.
//
// The anchor is floor(centroid - (0.5, 0.5)) over the entities' bounding-box
// centers: the half-tile shift biases the anchor to the lower-left even when
// the centroid lands exactly on a tile boundary. Every snapshot position is
// then translated by -anchor.
//
// An id that does not resolve is a caller bug and panics.
func FromSelection(env SelectionEnv, ids []string) *Template {
	t := &Template{Entities: make([]EntitySnapshot, 0, len(ids))}
	if len(ids) == 0 {
		return t
	}

	var sum grid.PointF
	for _, id := range ids {
		e := env.FindEntity(id)
		if e == nil {
			panic(fmt.Sprintf("blueprint: selection id %q does not resolve to a live entity", id))
		}
		sum = sum.Add(env.BoundingBoxCenter(e))
		t.Entities = append(t.Entities, Encode(e))
	}

	centroid := sum.Div(float64(len(ids)))
	anchor := centroid.Add(grid.PointF{X: -0.5, Y: -0.5}).Floor()
	for i := range t.Entities {
		t.Entities[i].Placement.Origin = t.Entities[i].Placement.Origin.Sub(anchor)
	}
	return t
}

// Layer is the type classification of the first entity, or the default
// classification for an empty template. Derived, never stored.
func (t *Template) Layer(cats *catalogs.Catalogs) string {
	if len(t.Entities) == 0 {
		return catalogs.DefaultLayer
	}
	def, ok := cats.Buildings.ByCode[t.Entities[0].Placement.Code]
	if !ok {
		return catalogs.DefaultLayer
	}
	return def.Layer
}

// Cost prices the template under the given model.
func (t *Template) Cost(m CostModel) int {
	return m.Cost(len(t.Entities))
}

// CanAfford reports whether the player may pay for a placement: always in
// unlimited-budget mode, otherwise when the stored balance of the placement
// currency covers Cost.
func (t *Template) CanAfford(env EconomyEnv, m CostModel, currencyKey string) bool {
	if env.HasUnlimitedBudget() {
		return true
	}
	return env.GetBalance(currencyKey) >= t.Cost(m)
}

// RotateCW turns the whole template a quarter turn clockwise about its local
// origin: every position rotates and both rotation fields advance by 90.
func (t *Template) RotateCW() {
	for i := range t.Entities {
		p := &t.Entities[i].Placement
		p.Origin = grid.RotateCW(p.Origin)
		p.Rotation = grid.NormalizeDegrees(p.Rotation + 90)
		p.OriginalRotation = grid.NormalizeDegrees(p.OriginalRotation + 90)
	}
}

// RotateCCW is three clockwise turns. Rotation keeps a single code path; the
// 3x cost is invisible next to the placement checks that follow it.
func (t *Template) RotateCCW() {
	t.RotateCW()
	t.RotateCW()
	t.RotateCW()
}
