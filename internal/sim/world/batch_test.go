package world

import (
	"testing"

	"tilecraft.ai/internal/sim/grid"
	"tilecraft.ai/internal/sim/world/model"
)

type recordingObserver struct {
	calls [][]grid.Point
}

func (r *recordingObserver) WorldChanged(tiles []grid.Point) {
	cp := make([]grid.Point, len(tiles))
	copy(cp, tiles)
	r.calls = append(r.calls, cp)
}

func TestBatch_CoalescesNotifications(t *testing.T) {
	w := newTestWorld(t)
	obs := &recordingObserver{}
	w.AddObserver(obs)

	w.UpdateBatch(func() {
		w.markDirty(grid.Point{X: 1, Y: 1})
		w.markDirty(grid.Point{X: 2, Y: 1})
		w.markDirty(grid.Point{X: 1, Y: 1}) // duplicate
	})

	if len(obs.calls) != 1 {
		t.Fatalf("got %d notifications, want 1", len(obs.calls))
	}
	if len(obs.calls[0]) != 2 {
		t.Fatalf("coalesced tiles=%v, want 2 unique tiles", obs.calls[0])
	}
}

func TestBatch_NestedScopesNotifyOnce(t *testing.T) {
	w := newTestWorld(t)
	obs := &recordingObserver{}
	w.AddObserver(obs)

	w.UpdateBatch(func() {
		w.markDirty(grid.Point{X: 0, Y: 0})
		w.UpdateBatch(func() {
			w.markDirty(grid.Point{X: 5, Y: 5})
		})
		if len(obs.calls) != 0 {
			t.Fatalf("inner scope must not flush while outer is open")
		}
	})
	if len(obs.calls) != 1 {
		t.Fatalf("got %d notifications, want 1 at outermost close", len(obs.calls))
	}
}

func TestBatch_ImmediateNotifyOutsideScope(t *testing.T) {
	w := newTestWorld(t)
	obs := &recordingObserver{}
	w.AddObserver(obs)

	w.markDirty(grid.Point{X: 3, Y: 3})
	w.markDirty(grid.Point{X: 4, Y: 4})
	if len(obs.calls) != 2 {
		t.Fatalf("got %d notifications, want one per mutation outside a scope", len(obs.calls))
	}
}

func TestBatch_ClosesOnPanic(t *testing.T) {
	w := newTestWorld(t)
	func() {
		defer func() { recover() }()
		w.UpdateBatch(func() {
			panic("boom")
		})
	}()
	if w.batchDepth != 0 {
		t.Fatalf("batch depth=%d after panic, want 0", w.batchDepth)
	}
}

func TestBatch_DeterministicTileOrder(t *testing.T) {
	w := newTestWorld(t)
	obs := &recordingObserver{}
	w.AddObserver(obs)

	w.UpdateBatch(func() {
		w.markDirty(grid.Point{X: 9, Y: 2}, grid.Point{X: 1, Y: 2}, grid.Point{X: 4, Y: 1})
	})
	want := []grid.Point{{X: 4, Y: 1}, {X: 1, Y: 2}, {X: 9, Y: 2}}
	got := obs.calls[0]
	if len(got) != len(want) {
		t.Fatalf("tiles=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tiles=%v want row-major order %v", got, want)
		}
	}
}

func TestInsertStatic_NotifiesThroughBatch(t *testing.T) {
	w := newTestWorld(t)
	obs := &recordingObserver{}
	w.AddObserver(obs)

	w.BeginBatch()
	w.Spawn(&model.Entity{Code: code(t, w, "FURNACE"), Pos: grid.Point{X: 0, Y: 0}})
	w.Spawn(&model.Entity{Code: code(t, w, "BELT"), Pos: grid.Point{X: 10, Y: 0}})
	if len(obs.calls) != 0 {
		t.Fatalf("mutations inside a scope must not notify")
	}
	w.EndBatch()

	if len(obs.calls) != 1 {
		t.Fatalf("got %d notifications, want 1", len(obs.calls))
	}
	if len(obs.calls[0]) != 5 { // 2x2 furnace + 1 belt tile
		t.Fatalf("tiles=%v, want 5 tiles", obs.calls[0])
	}
}
