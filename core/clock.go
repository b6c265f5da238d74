package core

import (
	"errors"
	"sync/atomic"
)

var (
	ErrNoTimeSource     = errors.New("no usable time source")
	ErrNoReferenceTimer = errors.New("no reference timer for calibration")
	ErrClockInstalled   = errors.New("clock already installed")
)

// SourceKind identifies which time source a Clock reads.
type SourceKind uint8

const (
	SourceNone SourceKind = iota
	SourceCalibrated
	SourceFallback
)

func (k SourceKind) String() string {
	switch k {
	case SourceCalibrated:
		return "calibrated"
	case SourceFallback:
		return "fallback"
	default:
		return "none"
	}
}

// FallbackFunc returns milliseconds from a lower-resolution platform clock.
type FallbackFunc func() uint64

// Clock is the selected time source. It is either a calibrated cycle counter
// or a platform fallback; NowMs dispatches on which.
type Clock struct {
	kind     SourceKind
	cal      Calibration
	cpu      CPUDriver
	fallback FallbackFunc

	// Kept for reporting
	delta uint64
	refMs uint32
}

// NewCalibratedClock returns a clock that converts counter readings using cal.
func NewCalibratedClock(cpu CPUDriver, cal Calibration) *Clock {
	return &Clock{kind: SourceCalibrated, cpu: cpu, cal: cal}
}

// NewFallbackClock returns a clock that calls f for every reading.
func NewFallbackClock(f FallbackFunc) *Clock {
	return &Clock{kind: SourceFallback, fallback: f}
}

// Kind reports which source the clock reads
func (c *Clock) Kind() SourceKind {
	return c.kind
}

// Calibration returns the calibration of a calibrated clock
func (c *Clock) Calibration() Calibration {
	return c.cal
}

// Fallback returns the fallback function of a fallback clock
func (c *Clock) Fallback() FallbackFunc {
	return c.fallback
}

// NowMs returns milliseconds elapsed since the clock's origin.
func (c *Clock) NowMs() uint64 {
	switch c.kind {
	case SourceCalibrated:
		return c.cal.Millis(c.cpu.ReadCounter())
	case SourceFallback:
		return c.fallback()
	}
	Fatal("read from a clock with no source")
	return 0
}

// SelectClock probes the CPU and calibrates its cycle counter against ref.
// When the counter is missing or calibration fails, the fallback is used
// as-is. With neither, it returns ErrNoTimeSource, joined with the
// calibration error if there was one.
func SelectClock(cpu CPUDriver, ref ReferenceTimer, fallback FallbackFunc, cfg ClockConfig) (*Clock, error) {
	applyDefaults(&cfg)

	var calErr error
	supported := CycleCounterSupported(cpu)
	if supported {
		RecordEvent(EvtProbe, 1, 0)
	} else {
		RecordEvent(EvtProbe, 0, 0)
	}

	if supported {
		if ref == nil {
			calErr = ErrNoReferenceTimer
		} else {
			cal, delta, err := Calibrate(cpu, ref, cfg)
			if err == nil {
				c := NewCalibratedClock(cpu, cal)
				c.delta = delta
				c.refMs = cfg.ReferenceMs
				return c, nil
			}
			calErr = err
		}
		DebugPrintln("clock: calibration failed: " + calErr.Error())
	}

	if fallback != nil {
		RecordEvent(EvtFallback, 0, 0)
		c := NewFallbackClock(fallback)
		c.refMs = cfg.ReferenceMs
		return c, nil
	}

	if calErr != nil {
		return nil, errors.Join(ErrNoTimeSource, calErr)
	}
	return nil, ErrNoTimeSource
}

// activeClock is the process-wide time source, set once.
var activeClock atomic.Pointer[Clock]

// InstallClock makes c the process-wide time source. Only the first call
// succeeds; later calls return ErrClockInstalled and change nothing.
func InstallClock(c *Clock) error {
	if c == nil || c.kind == SourceNone {
		return ErrNoTimeSource
	}
	if !activeClock.CompareAndSwap(nil, c) {
		return ErrClockInstalled
	}
	RecordEvent(EvtInstall, uint64(c.kind), uint64(c.cal.Rate))
	DebugPrintln("clock: installed " + c.kind.String() + " source")
	return nil
}

// ActiveClock returns the installed clock, or nil before InitClock.
func ActiveClock() *Clock {
	return activeClock.Load()
}

// NowMs reads the installed clock. Reading before a clock is installed is fatal.
func NowMs() uint64 {
	c := activeClock.Load()
	if c == nil {
		Fatal("time read before clock installed")
		return 0
	}
	return c.NowMs()
}

// Fallback clock registered by target code, nil if the platform has none.
var fallbackClock FallbackFunc

// SetFallbackClock is called by target-specific code to register its
// lower-resolution clock.
func SetFallbackClock(f FallbackFunc) {
	fallbackClock = f
}

// InitClock selects and installs the time source using the registered
// drivers. Failing to establish any source is fatal.
func InitClock(cfg ClockConfig) *Clock {
	var ref ReferenceTimer
	if portDriver != nil {
		ref = NewPIT(portDriver)
	}

	c, err := SelectClock(cpuDriver, ref, fallbackClock, cfg)
	if err != nil {
		Fatal("no TSC found and no fallback clock: " + err.Error())
		return nil
	}
	if err := InstallClock(c); err != nil {
		Fatal("clock install: " + err.Error())
		return nil
	}
	return c
}
