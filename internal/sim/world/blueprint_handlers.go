package world

import (
	"encoding/json"
	"fmt"
	"log"

	"tilecraft.ai/internal/protocol"
	"tilecraft.ai/internal/sim/grid"
	"tilecraft.ai/internal/sim/world/logic/blueprint"
)

func handleInstantBlueprintCapture(w *World, p *Player, inst protocol.InstantReq, nowTick uint64) {
	if len(inst.EntityIDs) == 0 {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "missing entity_ids"))
		return
	}
	// Client input is untrusted: resolve ids here so FromSelection only ever
	// sees a valid selection (an unresolved id there is a caller bug).
	for _, id := range inst.EntityIDs {
		if w.FindEntity(id) == nil {
			p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrInvalidTarget, fmt.Sprintf("unknown entity %s", id)))
			return
		}
	}

	tpl := blueprint.FromSelection(w, inst.EntityIDs)
	p.Clipboard = tpl

	ev := actionResult(nowTick, inst.ID, true, "", "ok")
	ev["pieces"] = len(tpl.Entities)
	ev["layer"] = tpl.Layer(w.catalogs)
	ev["cost"] = tpl.Cost(w.costModel())
	p.AddEvent(ev)
}

func handleInstantBlueprintRotate(w *World, p *Player, inst protocol.InstantReq, nowTick uint64) {
	if p.Clipboard == nil {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "empty clipboard"))
		return
	}
	switch inst.Direction {
	case "CW":
		p.Clipboard.RotateCW()
	case "CCW":
		p.Clipboard.RotateCCW()
	default:
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "direction must be CW or CCW"))
		return
	}
	p.AddEvent(actionResult(nowTick, inst.ID, true, "", "ok"))
}

func handleInstantBlueprintPlace(w *World, p *Player, inst protocol.InstantReq, nowTick uint64) {
	if p.Clipboard == nil {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "empty clipboard"))
		return
	}
	if inst.Anchor == nil {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "missing anchor"))
		return
	}
	anchor := grid.Point{X: inst.Anchor.X, Y: inst.Anchor.Y}
	tpl := p.Clipboard

	// Advisory pre-check; the transaction re-validates every entity itself.
	if !tpl.CanPlaceAnywhere(w, anchor) {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBlocked, "nothing fits at anchor"))
		return
	}

	cost := tpl.Cost(w.costModel())
	if !tpl.CanAfford(w.EconomyFor(p.ID), w.costModel(), w.cfg.CurrencyKey) {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrNoResource, fmt.Sprintf("need %d %s", cost, w.cfg.CurrencyKey)))
		return
	}

	placed := tpl.Place(w, anchor)
	if placed > 0 {
		w.SpendBalance(p.ID, w.cfg.CurrencyKey, cost)
	}

	if w.auditor != nil {
		err := w.auditor.WritePlacement(PlacementAudit{
			Tick:    nowTick,
			Player:  p.ID,
			Anchor:  anchor,
			Pieces:  placed,
			Skipped: len(tpl.Entities) - placed,
			Cost:    cost,
		})
		if err != nil {
			log.Printf("world %s: placement audit: %v", w.cfg.ID, err)
		}
	}

	ev := actionResult(nowTick, inst.ID, placed != 0, "", "")
	if placed == 0 {
		ev["code"] = protocol.ErrBlocked
		ev["message"] = "no piece could be placed"
	}
	ev["pieces"] = placed
	ev["skipped"] = len(tpl.Entities) - placed
	p.AddEvent(ev)
}

func handleInstantBlueprintExport(w *World, p *Player, inst protocol.InstantReq, nowTick uint64) {
	if p.Clipboard == nil {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "empty clipboard"))
		return
	}
	raw, err := json.Marshal(blueprint.EncodeAll(p.Clipboard))
	if err != nil {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrInternal, "encode failed"))
		return
	}
	ev := actionResult(nowTick, inst.ID, true, "", "ok")
	ev["payload"] = json.RawMessage(raw)
	p.AddEvent(ev)
}

func handleInstantBlueprintImport(w *World, p *Player, inst protocol.InstantReq, nowTick uint64) {
	tpl, ok := decodeTemplatePayload(w, inst.Payload)
	if !ok {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "not a valid blueprint"))
		return
	}
	p.Clipboard = tpl
	ev := actionResult(nowTick, inst.ID, true, "", "ok")
	ev["pieces"] = len(tpl.Entities)
	p.AddEvent(ev)
}

func handleInstantBlueprintSave(w *World, p *Player, inst protocol.InstantReq, nowTick uint64) {
	if w.library == nil {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrInternal, "no blueprint library"))
		return
	}
	if inst.Name == "" {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "missing name"))
		return
	}
	if p.Clipboard == nil {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "empty clipboard"))
		return
	}
	raw, err := json.Marshal(blueprint.EncodeAll(p.Clipboard))
	if err != nil {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrInternal, "encode failed"))
		return
	}
	if err := w.library.Save(inst.Name, raw); err != nil {
		log.Printf("world %s: blueprint save %q: %v", w.cfg.ID, inst.Name, err)
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrInternal, "library write failed"))
		return
	}
	p.AddEvent(actionResult(nowTick, inst.ID, true, "", "ok"))
}

func handleInstantBlueprintLoad(w *World, p *Player, inst protocol.InstantReq, nowTick uint64) {
	if w.library == nil {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrInternal, "no blueprint library"))
		return
	}
	if inst.Name == "" {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "missing name"))
		return
	}
	raw, found, err := w.library.Load(inst.Name)
	if err != nil {
		log.Printf("world %s: blueprint load %q: %v", w.cfg.ID, inst.Name, err)
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrInternal, "library read failed"))
		return
	}
	if !found {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrNotFound, "no such blueprint"))
		return
	}
	tpl, ok := decodeTemplatePayload(w, raw)
	if !ok {
		p.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "stored value is not a valid blueprint"))
		return
	}
	p.Clipboard = tpl
	ev := actionResult(nowTick, inst.ID, true, "", "ok")
	ev["pieces"] = len(tpl.Entities)
	p.AddEvent(ev)
}

func decodeTemplatePayload(w *World, raw []byte) (*blueprint.Template, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("world %s: blueprint payload is not JSON: %v", w.cfg.ID, err)
		return nil, false
	}
	return blueprint.DecodeAll(w.catalogs, v)
}
