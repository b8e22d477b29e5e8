package world

type WorldConfig struct {
	ID         string
	TickRateHz int
	// BoundaryR bounds buildable tiles to |x|,|y| <= BoundaryR.
	BoundaryR int

	// CurrencyKey is the stored resource blueprint placements draw from.
	CurrencyKey string
	// StarterBalance seeds each joining player's ledger.
	StarterBalance int
	// FreePlacement grants unlimited budget (creative worlds).
	FreePlacement bool
	// DebugFreeCost forces template cost to zero. Dev override only.
	DebugFreeCost bool

	// StatsBucketTicks/StatsWindowTicks shape the rolling stats window.
	StatsBucketTicks uint64
	StatsWindowTicks uint64
}

func (c *WorldConfig) applyDefaults() {
	if c.ID == "" {
		c.ID = "W1"
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 20
	}
	if c.BoundaryR <= 0 {
		c.BoundaryR = 2000
	}
	if c.CurrencyKey == "" {
		c.CurrencyKey = "ALLOY"
	}
	if c.StarterBalance <= 0 {
		c.StarterBalance = 400
	}
	if c.StatsBucketTicks == 0 {
		c.StatsBucketTicks = 300
	}
	if c.StatsWindowTicks < c.StatsBucketTicks {
		c.StatsWindowTicks = c.StatsBucketTicks * 24
	}
}
