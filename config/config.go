// Package config holds the typed, validated parameter sets for the TCL and
// SMOG strategies plus the engine's own startup configuration. Nothing in
// strategy or engine reads an environment variable or flag directly; only
// the example binary under cmd/papertrader does, through EngineConfig.
package config

import "fmt"

// TCLConfig holds every tunable parameter for the TCL (Trend Continuation
// Line) strategy. Field names mirror the option list in the design spec
// exactly, so a caller mapping from an external config source never has to
// guess a name.
type TCLConfig struct {
	MinTrendPct     float64
	MinADX          float64
	ADXPeriod       int
	RiskPerTradePct float64
	MaxRiskPct      float64

	// Stacking multipliers. Limit2Mult was reduced from 5 to 2 after
	// losing trades where the full 1+3+5=9x stack got swept; 6x is now a
	// hard calibration, not a tunable a caller should raise back up.
	EntryMult  float64
	Limit1Mult float64
	Limit2Mult float64

	// Fibonacci retracement ratios for the three stacked legs.
	EntryFib  float64
	Limit1Fib float64
	Limit2Fib float64

	// TP offset divisors for the limit1/limit2 legs.
	Manage1 float64
	Manage2 float64
}

// DefaultTCLConfig returns the source's calibrated defaults.
func DefaultTCLConfig() TCLConfig {
	return TCLConfig{
		MinTrendPct:     2.0,
		MinADX:          20.0,
		ADXPeriod:       14,
		RiskPerTradePct: 2.0,
		MaxRiskPct:      50.0,
		EntryMult:       1,
		Limit1Mult:      3,
		Limit2Mult:      2,
		EntryFib:        0.236,
		Limit1Fib:       0.382,
		Limit2Fib:       0.618,
		Manage1:         4.0,
		Manage2:         7.3,
	}
}

// Validate rejects configurations that can't produce a sane order plan.
func (c TCLConfig) Validate() error {
	if c.MinTrendPct <= 0 {
		return fmt.Errorf("config: MinTrendPct must be positive, got %v", c.MinTrendPct)
	}
	if c.MinADX < 0 || c.MinADX > 100 {
		return fmt.Errorf("config: MinADX must be in [0,100], got %v", c.MinADX)
	}
	if c.ADXPeriod <= 0 {
		return fmt.Errorf("config: ADXPeriod must be positive, got %v", c.ADXPeriod)
	}
	if c.RiskPerTradePct <= 0 || c.RiskPerTradePct > c.MaxRiskPct {
		return fmt.Errorf("config: RiskPerTradePct (%v) must be >0 and <= MaxRiskPct (%v)", c.RiskPerTradePct, c.MaxRiskPct)
	}
	if c.EntryMult <= 0 || c.Limit1Mult <= 0 || c.Limit2Mult <= 0 {
		return fmt.Errorf("config: stacking multipliers must all be positive")
	}
	if !(0 < c.EntryFib && c.EntryFib < c.Limit1Fib && c.Limit1Fib < c.Limit2Fib && c.Limit2Fib < 1) {
		return fmt.Errorf("config: fib ratios must satisfy 0 < entry < limit1 < limit2 < 1")
	}
	if c.Manage1 == 0 || c.Manage2 == 0 {
		return fmt.Errorf("config: manage numbers must be non-zero")
	}
	return nil
}

// SMOGConfig holds every tunable parameter for the SMOG (Smart Money OG)
// reversal strategy.
type SMOGConfig struct {
	ADXThreshold    float64
	ADXPeriod       int
	RSIPeriod       int
	MinRR           float64
	RiskPerTradePct float64
	FibMinLevel     float64
}

// DefaultSMOGConfig returns the source's calibrated defaults.
func DefaultSMOGConfig() SMOGConfig {
	return SMOGConfig{
		ADXThreshold:    25.0,
		ADXPeriod:       14,
		RSIPeriod:       14,
		MinRR:           4.0,
		RiskPerTradePct: 1.5,
		FibMinLevel:     0.5,
	}
}

// Validate rejects configurations that can't produce a sane order plan.
func (c SMOGConfig) Validate() error {
	if c.ADXThreshold <= 0 || c.ADXThreshold > 100 {
		return fmt.Errorf("config: ADXThreshold must be in (0,100], got %v", c.ADXThreshold)
	}
	if c.ADXPeriod <= 0 || c.RSIPeriod <= 0 {
		return fmt.Errorf("config: ADXPeriod and RSIPeriod must be positive")
	}
	if c.MinRR <= 0 {
		return fmt.Errorf("config: MinRR must be positive, got %v", c.MinRR)
	}
	if c.RiskPerTradePct <= 0 {
		return fmt.Errorf("config: RiskPerTradePct must be positive, got %v", c.RiskPerTradePct)
	}
	if c.FibMinLevel < 0 || c.FibMinLevel > 1 {
		return fmt.Errorf("config: FibMinLevel must be in [0,1], got %v", c.FibMinLevel)
	}
	return nil
}

// EngineConfig is the example binary's own startup configuration: the
// symbol to trade and the paper balance to start with. This is the only
// place the module reads the environment; the engine core never does.
type EngineConfig struct {
	Symbol       string
	StartBalance float64
}

// DefaultEngineConfig returns sensible defaults for a dry-run paper session.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Symbol:       "BTC-PERP",
		StartBalance: 10_000,
	}
}
