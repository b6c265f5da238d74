//go:build !tinygo

package core

// State stands in for the saved interrupt mask outside TinyGo
type State uintptr

// maskDepth counts unmatched disableInterrupts calls
var maskDepth int

// disableInterrupts only tracks nesting on host builds and on the
// bare-metal PC target, which never enables interrupts before the clock is
// installed
func disableInterrupts() State {
	maskDepth++
	return 0
}

func restoreInterrupts(State) {
	maskDepth--
}
