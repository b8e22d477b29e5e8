package world

import "tilecraft.ai/internal/sim/world/logic/blueprint"

// economyView binds the world ledger to one player so the blueprint logic
// sees a plain balance lookup.
type economyView struct {
	w        *World
	playerID string
}

func (v economyView) HasUnlimitedBudget() bool { return v.w.cfg.FreePlacement }

func (v economyView) GetBalance(key string) int {
	p := v.w.players[v.playerID]
	if p == nil {
		return 0
	}
	return p.Balances[key]
}

// EconomyFor is the ledger view a placement authorizes against.
func (w *World) EconomyFor(playerID string) blueprint.EconomyEnv {
	return economyView{w: w, playerID: playerID}
}

// SpendBalance withdraws n of a currency from a player. It is a no-op in
// unlimited-budget mode and reports whether the withdrawal happened.
func (w *World) SpendBalance(playerID, key string, n int) bool {
	if w.cfg.FreePlacement || n <= 0 {
		return true
	}
	p := w.players[playerID]
	if p == nil || p.Balances[key] < n {
		return false
	}
	p.Balances[key] -= n
	return true
}

// GrantBalance deposits n of a currency to a player.
func (w *World) GrantBalance(playerID, key string, n int) {
	p := w.players[playerID]
	if p == nil || n <= 0 {
		return
	}
	if p.Balances == nil {
		p.Balances = map[string]int{}
	}
	p.Balances[key] += n
}

func (w *World) costModel() blueprint.CostModel {
	return blueprint.CostModel{DebugFree: w.cfg.DebugFreeCost}
}
