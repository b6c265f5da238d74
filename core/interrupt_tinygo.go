//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts so nothing preempts the calibration
// window or the timer list, returning the state to restore
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
