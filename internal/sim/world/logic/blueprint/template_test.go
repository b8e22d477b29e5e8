package blueprint

import (
	"reflect"
	"testing"

	"tilecraft.ai/internal/sim/catalogs"
	"tilecraft.ai/internal/sim/grid"
	"tilecraft.ai/internal/sim/world/model"
)

type fakeSelection struct {
	cats     *catalogs.Catalogs
	entities map[string]*model.Entity
}

func (f *fakeSelection) FindEntity(id string) *model.Entity { return f.entities[id] }

func (f *fakeSelection) BoundingBoxCenter(e *model.Entity) grid.PointF {
	w, h := f.cats.Buildings.ByCode[e.Code].Footprint()
	return grid.PointF{
		X: float64(e.Pos.X) + float64(w-1)/2,
		Y: float64(e.Pos.Y) + float64(h-1)/2,
	}
}

func selectionOf(positions ...grid.Point) (*fakeSelection, []string) {
	env := &fakeSelection{cats: testCatalogs(), entities: map[string]*model.Entity{}}
	ids := make([]string, 0, len(positions))
	for i, p := range positions {
		id := string(rune('A' + i))
		env.entities[id] = &model.Entity{RuntimeID: id, Code: 1, Pos: p}
		ids = append(ids, id)
	}
	return env, ids
}

func TestFromSelection_RecentersSymmetricCase(t *testing.T) {
	// Three 1x1 pieces at (2,2), (3,2), (2,3): centroid (2.33, 2.33),
	// anchor floor(centroid - (0.5, 0.5)) = (1,1).
	env, ids := selectionOf(grid.Point{X: 2, Y: 2}, grid.Point{X: 3, Y: 2}, grid.Point{X: 2, Y: 3})
	tpl := FromSelection(env, ids)

	want := []grid.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}}
	if len(tpl.Entities) != len(want) {
		t.Fatalf("got %d entities, want %d", len(tpl.Entities), len(want))
	}
	for i, w := range want {
		got := tpl.Entities[i].Placement.Origin
		if got != w {
			t.Fatalf("entity %d local origin=%v want %v", i, got, w)
		}
		if got.X < 0 || got.Y < 0 {
			t.Fatalf("entity %d local origin %v below (0,0)", i, got)
		}
	}
}

func TestFromSelection_CentroidShiftsByNegatedAnchor(t *testing.T) {
	positions := []grid.Point{{X: -4, Y: 7}, {X: 0, Y: 0}, {X: 13, Y: -2}, {X: 5, Y: 5}}
	env, ids := selectionOf(positions...)

	var before grid.PointF
	for _, id := range ids {
		before = before.Add(env.BoundingBoxCenter(env.entities[id]))
	}
	before = before.Div(float64(len(ids)))
	anchor := before.Add(grid.PointF{X: -0.5, Y: -0.5}).Floor()

	tpl := FromSelection(env, ids)
	var after grid.PointF
	for i := range tpl.Entities {
		o := tpl.Entities[i].Placement.Origin
		after = after.Add(grid.PointF{X: float64(o.X), Y: float64(o.Y)})
	}
	after = after.Div(float64(len(tpl.Entities)))

	if after.X != before.X-float64(anchor.X) || after.Y != before.Y-float64(anchor.Y) {
		t.Fatalf("local centroid %v, want original %v translated by -%v", after, before, anchor)
	}
}

func TestFromSelection_UnresolvedIDPanics(t *testing.T) {
	env, _ := selectionOf(grid.Point{X: 0, Y: 0})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unresolved id")
		}
	}()
	FromSelection(env, []string{"missing"})
}

func TestFromSelection_EmptySelection(t *testing.T) {
	env, _ := selectionOf()
	tpl := FromSelection(env, nil)
	if len(tpl.Entities) != 0 {
		t.Fatalf("empty selection must give empty template")
	}
	if got := tpl.Layer(env.cats); got != catalogs.DefaultLayer {
		t.Fatalf("empty template layer=%q want %q", got, catalogs.DefaultLayer)
	}
}

func TestRotateCW_FourTimesIsIdentity(t *testing.T) {
	tpl := &Template{Entities: []EntitySnapshot{
		{Placement: PlacementSnapshot{Origin: grid.Point{X: 2, Y: -1}, Rotation: 90, OriginalRotation: 180, Code: 1}},
		{Placement: PlacementSnapshot{Origin: grid.Point{X: 0, Y: 0}, Rotation: 0, OriginalRotation: 270, Code: 3}},
		{Placement: PlacementSnapshot{Origin: grid.Point{X: -5, Y: 4}, Rotation: 270, OriginalRotation: 0, Code: 6}, Extras: &model.Extras{SignalValue: 3}},
	}}
	orig := EncodeAll(tpl)

	for i := 0; i < 4; i++ {
		tpl.RotateCW()
	}
	if !reflect.DeepEqual(EncodeAll(tpl), orig) {
		t.Fatalf("four clockwise turns drifted: got %+v want %+v", tpl.Entities, orig)
	}
}

func TestRotateCCW_IsThreeClockwiseTurns(t *testing.T) {
	mk := func() *Template {
		return &Template{Entities: []EntitySnapshot{
			{Placement: PlacementSnapshot{Origin: grid.Point{X: 3, Y: 1}, Rotation: 0, OriginalRotation: 90, Code: 1}},
			{Placement: PlacementSnapshot{Origin: grid.Point{X: -2, Y: 2}, Rotation: 180, OriginalRotation: 0, Code: 3}},
		}}
	}

	ccw := mk()
	ccw.RotateCCW()

	cw3 := mk()
	cw3.RotateCW()
	cw3.RotateCW()
	cw3.RotateCW()

	if !reflect.DeepEqual(ccw.Entities, cw3.Entities) {
		t.Fatalf("RotateCCW != three RotateCW:\n got %+v\nwant %+v", ccw.Entities, cw3.Entities)
	}
}

func TestLayer_FirstEntityClassification(t *testing.T) {
	cats := testCatalogs()
	tpl := &Template{Entities: []EntitySnapshot{
		{Placement: PlacementSnapshot{Code: 3}},
		{Placement: PlacementSnapshot{Code: 1}},
	}}
	if got := tpl.Layer(cats); got != "structures" {
		t.Fatalf("layer=%q want structures", got)
	}
}

type fakeEconomy struct {
	unlimited bool
	balances  map[string]int
}

func (f *fakeEconomy) HasUnlimitedBudget() bool  { return f.unlimited }
func (f *fakeEconomy) GetBalance(key string) int { return f.balances[key] }

func TestCanAfford(t *testing.T) {
	tpl := &Template{Entities: make([]EntitySnapshot, 10)} // cost 50
	m := CostModel{}
	cost := tpl.Cost(m)

	cases := []struct {
		name string
		env  *fakeEconomy
		m    CostModel
		want bool
	}{
		{name: "unlimited budget", env: &fakeEconomy{unlimited: true}, m: m, want: true},
		{name: "exact balance", env: &fakeEconomy{balances: map[string]int{"ALLOY": cost}}, m: m, want: true},
		{name: "short one", env: &fakeEconomy{balances: map[string]int{"ALLOY": cost - 1}}, m: m, want: false},
		{name: "wrong currency", env: &fakeEconomy{balances: map[string]int{"GEMS": cost}}, m: m, want: false},
		{name: "debug free cost", env: &fakeEconomy{}, m: CostModel{DebugFree: true}, want: true},
	}
	for _, c := range cases {
		if got := tpl.CanAfford(c.env, c.m, "ALLOY"); got != c.want {
			t.Fatalf("%s: CanAfford=%v want %v", c.name, got, c.want)
		}
	}
}
