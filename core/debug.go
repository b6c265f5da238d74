package core

import "unsafe"

// DebugWriter is a function type for writing debug messages. Lines from
// the fatal path share one buffer, so a writer must not keep the string
// after it returns.
type DebugWriter func(string)

// ClockEvent captures a step of clock bring-up for post-mortem analysis
type ClockEvent struct {
	EventType uint8
	Value1    uint64 // Context-dependent value
	Value2    uint64 // Context-dependent value
}

// Event type codes
const (
	EvtProbe          = 1 // Capability probe (v1 = supported)
	EvtCalibrateStart = 2 // Calibration started (v1 = ticks, v2 = ms)
	EvtCalibrateDone  = 3 // Calibration done (v1 = delta, v2 = rate)
	EvtCalibrateFail  = 4 // Calibration rejected (v1 = delta)
	EvtFallback       = 5 // Fallback clock selected
	EvtInstall        = 6 // Clock installed (v1 = kind, v2 = rate)
	EvtFatal          = 7 // Fatal abort
)

const (
	EventRingSize = 32
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether DebugPrintln output is active
	debugEnabled bool = false

	eventRing     [EventRingSize]ClockEvent
	eventRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to a UART
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures a clock event in the ring buffer
func RecordEvent(eventType uint8, value1, value2 uint64) {
	idx := eventRingHead
	eventRing[idx] = ClockEvent{
		EventType: eventType,
		Value1:    value1,
		Value2:    value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events, oldest first
func Events() []ClockEvent {
	events := make([]ClockEvent, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

func eventName(t uint8) string {
	switch t {
	case EvtProbe:
		return "PROBE"
	case EvtCalibrateStart:
		return "CAL_START"
	case EvtCalibrateDone:
		return "CAL_DONE"
	case EvtCalibrateFail:
		return "CAL_FAIL!"
	case EvtFallback:
		return "FALLBACK"
	case EvtInstall:
		return "INSTALL"
	case EvtFatal:
		return "FATAL!"
	default:
		return "UNKNOWN"
	}
}

// DumpEventRing outputs the event ring buffer regardless of debugEnabled.
// It runs on the fatal path, so it reads the ring in place and formats
// into dumpLine without allocating.
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[CLOCK] === Event Ring Dump ===")
	for i := uint8(0); i < EventRingSize; i++ {
		evt := &eventRing[(eventRingHead+i)%EventRingSize]
		if evt.EventType == 0 {
			continue
		}
		n := lineAppend(0, "[CLOCK] ")
		n = lineAppend(n, eventName(evt.EventType))
		n = lineAppend(n, " v1=")
		n = lineAppendUint(n, evt.Value1)
		n = lineAppend(n, " v2=")
		n = lineAppendUint(n, evt.Value2)
		debugPrintln(lineString(n))
	}
	debugPrintln("[CLOCK] === End Dump ===")
}

// dumpLine holds one formatted line on the fatal path
var dumpLine [96]byte

// lineAppend copies s into dumpLine at n, truncating at the end
func lineAppend(n int, s string) int {
	return n + copy(dumpLine[n:], s)
}

func lineAppendUint(n int, v uint64) int {
	var digits [20]byte
	pos := len(digits)
	for {
		pos--
		digits[pos] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	return n + copy(dumpLine[n:], digits[pos:])
}

// lineString views the first n bytes of dumpLine without copying
func lineString(n int) string {
	if n == 0 {
		return ""
	}
	return unsafe.String(&dumpLine[0], n)
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = ClockEvent{}
	}
	eventRingHead = 0
}
