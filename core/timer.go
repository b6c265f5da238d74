package core

// GetTime returns the current time in milliseconds since the clock origin
func GetTime() uint64 {
	return NowMs()
}

// Millisleep busy-waits until ms milliseconds have passed on the installed
// clock. With the second-resolution fallback the wait may run up to a
// second long.
func Millisleep(ms uint64) {
	start := NowMs()
	for NowMs()-start < ms {
	}
}

// ProcessTimers fires all deadline timers that are due
func ProcessTimers() {
	TimerDispatch(NowMs())
}
