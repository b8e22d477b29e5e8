package world

// WorldStats keeps a rolling window of placement activity plus cumulative
// totals for the achievement signals.
type WorldStats struct {
	bucketTicks uint64
	windowTicks uint64

	buckets []StatsBucket
	curIdx  int
	curBase uint64 // start tick (inclusive) of current bucket

	totalBlueprints int
	totalPieces     int
}

type StatsBucket struct {
	Blueprints int
	Pieces     int
}

func NewWorldStats(bucketTicks, windowTicks uint64) *WorldStats {
	if bucketTicks == 0 {
		bucketTicks = 300
	}
	if windowTicks < bucketTicks {
		windowTicks = bucketTicks
	}
	n := int(windowTicks / bucketTicks)
	if n < 1 {
		n = 1
	}
	return &WorldStats{
		bucketTicks: bucketTicks,
		windowTicks: uint64(n) * bucketTicks,
		buckets:     make([]StatsBucket, n),
	}
}

func (s *WorldStats) rotate(nowTick uint64) {
	for nowTick >= s.curBase+s.bucketTicks {
		s.curIdx = (s.curIdx + 1) % len(s.buckets)
		s.buckets[s.curIdx] = StatsBucket{}
		s.curBase += s.bucketTicks
	}
}

// RecordBlueprintPlaced is the aggregated per-transaction emission: one
// "blueprint placed" signal plus the piece count, zero included.
func (s *WorldStats) RecordBlueprintPlaced(nowTick uint64, pieces int) {
	if s == nil {
		return
	}
	s.rotate(nowTick)
	s.buckets[s.curIdx].Blueprints++
	s.buckets[s.curIdx].Pieces += pieces
	s.totalBlueprints++
	s.totalPieces += pieces
}

// Totals returns the cumulative blueprint and piece counters.
func (s *WorldStats) Totals() (blueprints, pieces int) {
	if s == nil {
		return 0, 0
	}
	return s.totalBlueprints, s.totalPieces
}

// Window sums the rolling buckets.
func (s *WorldStats) Window() StatsBucket {
	var out StatsBucket
	if s == nil {
		return out
	}
	for _, b := range s.buckets {
		out.Blueprints += b.Blueprints
		out.Pieces += b.Pieces
	}
	return out
}

// RecordBlueprintPlaced satisfies the transaction's stats sink on *World.
func (w *World) RecordBlueprintPlaced(pieces int) {
	w.stats.RecordBlueprintPlaced(w.tick.Load(), pieces)
}

// Stats exposes the world's rolling stats for digests and tests.
func (w *World) Stats() *WorldStats { return w.stats }
