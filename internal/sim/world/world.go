// Package world is the single-threaded authoritative tile-grid simulation.
// All state must be accessed only from the world loop goroutine.
package world

import (
	"context"
	"sync/atomic"
	"time"

	"tilecraft.ai/internal/protocol"
	"tilecraft.ai/internal/sim/catalogs"
	"tilecraft.ai/internal/sim/grid"
	"tilecraft.ai/internal/sim/world/logic/blueprint"
	"tilecraft.ai/internal/sim/world/model"
)

type JoinRequest struct {
	Name string
	Out  chan []byte
	Resp chan JoinResponse
}

type JoinResponse struct {
	Welcome protocol.WelcomeMsg
}

type ActionEnvelope struct {
	PlayerID string
	Act      protocol.ActMsg
}

// Player is per-connection sim state: a resource ledger and the blueprint
// clipboard the instant handlers operate on.
type Player struct {
	ID   string
	Name string

	Balances  map[string]int
	Clipboard *blueprint.Template

	Out    chan []byte
	Events []protocol.Event
}

func (p *Player) AddEvent(ev protocol.Event) {
	p.Events = append(p.Events, ev)
}

// Observer receives one coalesced notification per batched update scope.
type Observer interface {
	WorldChanged(tiles []grid.Point)
}

// BlueprintStore persists named blueprints. Implemented in
// internal/persistence/library; may be nil.
type BlueprintStore interface {
	Save(name string, data []byte) error
	Load(name string) ([]byte, bool, error)
	List() ([]string, error)
}

// PlacementAuditor records one entry per placement transaction.
// Implemented in internal/persistence/log; may be nil.
type PlacementAuditor interface {
	WritePlacement(entry PlacementAudit) error
}

type PlacementAudit struct {
	Tick    uint64     `json:"tick"`
	Player  string     `json:"player"`
	Anchor  grid.Point `json:"anchor"`
	Pieces  int        `json:"pieces"`
	Skipped int        `json:"skipped"`
	Cost    int        `json:"cost"`
}

type World struct {
	cfg      WorldConfig
	catalogs *catalogs.Catalogs

	tick atomic.Uint64

	entities map[string]*model.Entity
	static   map[grid.Point]*model.Entity
	water    map[grid.Point]bool

	players map[string]*Player

	inbox chan ActionEnvelope
	join  chan JoinRequest
	leave chan string

	nextPlayerNum atomic.Uint64

	// Batched update scope state.
	batchDepth int
	dirty      map[grid.Point]struct{}
	observers  []Observer

	stats *WorldStats

	// Optional sinks (may be nil).
	library BlueprintStore
	auditor PlacementAuditor
}

func New(cfg WorldConfig, cats *catalogs.Catalogs) (*World, error) {
	cfg.applyDefaults()
	w := &World{
		cfg:      cfg,
		catalogs: cats,
		entities: map[string]*model.Entity{},
		static:   map[grid.Point]*model.Entity{},
		water:    map[grid.Point]bool{},
		players:  map[string]*Player{},
		inbox:    make(chan ActionEnvelope, 256),
		join:     make(chan JoinRequest, 16),
		leave:    make(chan string, 16),
		dirty:    map[grid.Point]struct{}{},
		stats:    NewWorldStats(cfg.StatsBucketTicks, cfg.StatsWindowTicks),
	}
	return w, nil
}

func (w *World) Inbox() chan<- ActionEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest     { return w.join }
func (w *World) Leave() chan<- string         { return w.leave }

func (w *World) SetLibrary(s BlueprintStore)    { w.library = s }
func (w *World) SetAuditor(a PlacementAuditor)  { w.auditor = a }
func (w *World) AddObserver(o Observer)         { w.observers = append(w.observers, o) }
func (w *World) Catalogs() *catalogs.Catalogs   { return w.catalogs }

// Run drives the world loop until ctx is cancelled. Joins, leaves and
// actions are all applied here; nothing else touches sim state.
func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-w.join:
			w.handleJoin(req)
		case id := <-w.leave:
			delete(w.players, id)
		case env := <-w.inbox:
			w.applyAction(env)
		case <-ticker.C:
			w.tick.Add(1)
			w.flushEvents()
		}
	}
}

func (w *World) Tick() uint64 { return w.tick.Load() }
