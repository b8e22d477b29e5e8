package world

import (
	"sort"

	"tilecraft.ai/internal/sim/grid"
)

// BeginBatch opens a deferred-notification scope. Scopes nest; observers are
// notified once, with every tile touched, when the outermost scope closes.
//
// This is not a concurrency primitive: the world is single-threaded and the
// scope only coalesces observer notifications.
func (w *World) BeginBatch() {
	w.batchDepth++
}

// EndBatch closes the current scope. Callers pair it with BeginBatch via
// defer so the scope closes exactly once even if the body panics.
func (w *World) EndBatch() {
	if w.batchDepth == 0 {
		panic("world: EndBatch without BeginBatch")
	}
	w.batchDepth--
	if w.batchDepth == 0 {
		w.flushDirty()
	}
}

// UpdateBatch runs fn inside its own batch scope.
func (w *World) UpdateBatch(fn func()) {
	w.BeginBatch()
	defer w.EndBatch()
	fn()
}

// markDirty records changed tiles. Outside any scope the notification goes
// out immediately; inside one it is held until the outermost EndBatch.
func (w *World) markDirty(tiles ...grid.Point) {
	for _, t := range tiles {
		w.dirty[t] = struct{}{}
	}
	if w.batchDepth == 0 {
		w.flushDirty()
	}
}

func (w *World) flushDirty() {
	if len(w.dirty) == 0 {
		return
	}
	tiles := make([]grid.Point, 0, len(w.dirty))
	for t := range w.dirty {
		tiles = append(tiles, t)
	}
	w.dirty = map[grid.Point]struct{}{}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Y != tiles[j].Y {
			return tiles[i].Y < tiles[j].Y
		}
		return tiles[i].X < tiles[j].X
	})
	for _, o := range w.observers {
		o.WorldChanged(tiles)
	}
}
