// Package tuning loads operator-editable parameters from tuning.yaml.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	TickRateHz     int `yaml:"tick_rate_hz"`
	WorldBoundaryR int `yaml:"world_boundary_r"`

	Blueprint BlueprintTuning `yaml:"blueprint"`
}

type BlueprintTuning struct {
	// CurrencyKey is the stored resource a paid placement draws from.
	CurrencyKey string `yaml:"currency_key"`
	// StarterBalance seeds a new player's ledger for that currency.
	StarterBalance int `yaml:"starter_balance"`
	// FreePlacement grants unlimited budget (creative/sandbox worlds).
	FreePlacement bool `yaml:"free_placement"`
	// DebugFreeCost forces every template cost to zero. Dev override only.
	DebugFreeCost bool `yaml:"debug_free_cost"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}
