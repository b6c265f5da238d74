package core

// FatalHandler aborts the boot environment. It must not return on real
// hardware; the default panics so host tests can observe it.
type FatalHandler func(msg string)

var fatalHandler FatalHandler = func(msg string) {
	panic("fatal: " + msg)
}

// SetFatalHandler sets the platform-specific abort routine
func SetFatalHandler(h FatalHandler) {
	if h != nil {
		fatalHandler = h
	}
}

// Fatal reports msg and stops the system. The event ring is dumped first
// so the sequence leading up to the failure is visible on the console.
// Nothing here allocates; a long msg is cut short on the console only.
func Fatal(msg string) {
	RecordEvent(EvtFatal, 0, 0)
	if debugPrintln != nil {
		n := lineAppend(0, "FATAL: ")
		n = lineAppend(n, msg)
		debugPrintln(lineString(n))
	}
	DumpEventRing()
	fatalHandler(msg)
}
