package core

// Reference window defaults: a full 16-bit PIT countdown is 65535/1193182 s,
// about 54.925 ms, and is treated as 55 ms. The rounding is a fixed bias of
// roughly 0.14% in every calibrated rate.
const (
	ReferenceWindowTicks = 0xFFFF
	ReferenceWindowMs    = 55

	// defaultMinCounterKHz rejects counters slower than 1 MHz.
	defaultMinCounterKHz = 1000
)

// ClockConfig holds the calibration parameters.
type ClockConfig struct {
	ReferenceTicks uint16 // PIT countdown for the reference window
	ReferenceMs    uint32 // duration the countdown is taken to represent
	MinDelta       uint64 // smallest plausible counter advance over the window
}

// DefaultClockConfig returns the standard 55 ms reference window.
func DefaultClockConfig() ClockConfig {
	cfg := ClockConfig{}
	applyDefaults(&cfg)
	return cfg
}

// applyDefaults fills in missing configuration values
func applyDefaults(cfg *ClockConfig) {
	if cfg.ReferenceTicks == 0 {
		cfg.ReferenceTicks = ReferenceWindowTicks
	}
	if cfg.ReferenceMs == 0 {
		cfg.ReferenceMs = ReferenceWindowMs
	}
	// The rate only fits in 32 bits when delta exceeds the window in ms
	if cfg.MinDelta <= uint64(cfg.ReferenceMs) {
		if cfg.MinDelta == 0 {
			cfg.MinDelta = uint64(cfg.ReferenceMs) * defaultMinCounterKHz
		} else {
			cfg.MinDelta = uint64(cfg.ReferenceMs) + 1
		}
	}
}
