package core

import "errors"

var (
	ErrCounterStalled   = errors.New("cycle counter did not advance during calibration")
	ErrImplausibleDelta = errors.New("cycle counter advanced implausibly little during calibration")
	ErrZeroRate         = errors.New("calibrated tick rate is zero")
)

// Calibration is the result of measuring the cycle counter against the
// reference window. It is immutable once produced.
type Calibration struct {
	Origin uint64 // counter value at calibration time, elapsed time zero
	Rate   uint32 // milliseconds per 2^32 counter ticks
}

// Calibrate measures how far the cycle counter advances over one reference
// window and derives the fixed-point tick rate. It also returns the measured
// delta for reporting. Interrupts are masked for the duration.
func Calibrate(cpu CPUDriver, ref ReferenceTimer, cfg ClockConfig) (Calibration, uint64, error) {
	applyDefaults(&cfg)

	RecordEvent(EvtCalibrateStart, uint64(cfg.ReferenceTicks), uint64(cfg.ReferenceMs))

	origin, end := sampleWindow(cpu, ref, cfg.ReferenceTicks)

	delta := end - origin
	cal, err := rateFromDelta(origin, delta, cfg)
	if err != nil {
		RecordEvent(EvtCalibrateFail, delta, 0)
		return Calibration{}, delta, err
	}

	RecordEvent(EvtCalibrateDone, delta, uint64(cal.Rate))
	return cal, delta, nil
}

// sampleWindow takes serialized counter reads on either side of one
// reference window. The interrupt mask is restored on every exit.
func sampleWindow(cpu CPUDriver, ref ReferenceTimer, ticks uint16) (origin, end uint64) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	origin = serializedRead(cpu)
	ref.Wait(ticks)
	end = serializedRead(cpu)
	return origin, end
}

// rateFromDelta computes (ReferenceMs << 32) / delta, truncated.
func rateFromDelta(origin, delta uint64, cfg ClockConfig) (Calibration, error) {
	if delta == 0 {
		return Calibration{}, ErrCounterStalled
	}
	if delta < cfg.MinDelta {
		return Calibration{}, ErrImplausibleDelta
	}

	rate := (uint64(cfg.ReferenceMs) << 32) / delta
	if rate == 0 {
		return Calibration{}, ErrZeroRate
	}

	return Calibration{Origin: origin, Rate: uint32(rate)}, nil
}

// Millis converts a counter reading to milliseconds elapsed since Origin.
// The 64-bit elapsed count is split into 32-bit halves so that neither
// product can overflow 64 bits; the low half's contribution is truncated.
func (c Calibration) Millis(counter uint64) uint64 {
	elapsed := counter - c.Origin
	hi := elapsed >> 32
	lo := elapsed & 0xFFFFFFFF
	rate := uint64(c.Rate)

	return ((lo * rate) >> 32) + hi*rate
}

// FrequencyKHz estimates the counter frequency the calibration implies.
func (c Calibration) FrequencyKHz() uint64 {
	if c.Rate == 0 {
		return 0
	}
	return (uint64(1) << 32) / uint64(c.Rate)
}
