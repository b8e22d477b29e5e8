package world

import (
	"encoding/json"
	"fmt"

	"tilecraft.ai/internal/protocol"
)

func (w *World) handleJoin(req JoinRequest) {
	num := w.nextPlayerNum.Add(1)
	p := &Player{
		ID:       fmt.Sprintf("P%d", num),
		Name:     req.Name,
		Balances: map[string]int{w.cfg.CurrencyKey: w.cfg.StarterBalance},
		Out:      req.Out,
	}
	w.players[p.ID] = p
	req.Resp <- JoinResponse{Welcome: protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		PlayerID:        p.ID,
		WorldID:         w.cfg.ID,
		Catalogs: protocol.CatalogInfo{
			BuildingsDigest: w.catalogs.Buildings.DefsDigest,
			BuildingCount:   len(w.catalogs.Buildings.Defs),
		},
	}}
}

func (w *World) applyAction(env ActionEnvelope) {
	p := w.players[env.PlayerID]
	if p == nil {
		return
	}
	nowTick := w.tick.Load()
	inst := env.Act.Instant
	h, ok := instantDispatch[inst.Kind]
	if !ok {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "unknown instant kind"))
		return
	}
	h(w, p, inst, nowTick)
}

type instantHandler func(*World, *Player, protocol.InstantReq, uint64)

var instantDispatch = map[string]instantHandler{
	protocol.InstantBlueprintCapture: handleInstantBlueprintCapture,
	protocol.InstantBlueprintRotate:  handleInstantBlueprintRotate,
	protocol.InstantBlueprintPlace:   handleInstantBlueprintPlace,
	protocol.InstantBlueprintExport:  handleInstantBlueprintExport,
	protocol.InstantBlueprintImport:  handleInstantBlueprintImport,
	protocol.InstantBlueprintSave:    handleInstantBlueprintSave,
	protocol.InstantBlueprintLoad:    handleInstantBlueprintLoad,
}

func actionResult(tick uint64, ref string, ok bool, code string, message string) protocol.Event {
	if !protocol.IsKnownCode(code) {
		code = protocol.ErrInternal
		if message == "" {
			message = "unknown error code"
		}
	}
	e := protocol.Event{
		"t":    tick,
		"type": "ACTION_RESULT",
		"ref":  ref,
		"ok":   ok,
	}
	if code != "" {
		e["code"] = code
	}
	if message != "" {
		e["message"] = message
	}
	return e
}

// flushEvents drains per-player event queues to their connections.
func (w *World) flushEvents() {
	for _, p := range w.players {
		if len(p.Events) == 0 || p.Out == nil {
			continue
		}
		msg := protocol.EventMsg{
			Type:            protocol.TypeEvent,
			ProtocolVersion: protocol.Version,
			Events:          p.Events,
		}
		p.Events = nil
		b, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		select {
		case p.Out <- b:
		default:
			// Slow consumer: drop rather than stall the world loop.
		}
	}
}
