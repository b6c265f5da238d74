package core

// CPUDriver is the abstract processor interface that core code uses.
// Platform-specific implementations execute the actual instructions.
type CPUDriver interface {
	// HasCPUID reports whether the identification instruction is available
	HasCPUID() bool

	// CPUID executes the identification instruction for the given leaf.
	// Executing it also serializes the instruction stream.
	CPUID(leaf uint32) (eax, ebx, ecx, edx uint32)

	// ReadCounter reads the free-running cycle counter without serializing
	ReadCounter() uint64
}

// Global singleton used by core code.
var cpuDriver CPUDriver

// SetCPUDriver is called by target-specific code to register its driver.
func SetCPUDriver(d CPUDriver) {
	cpuDriver = d
}

// MustCPU returns the configured driver or panics if missing.
func MustCPU() CPUDriver {
	if cpuDriver == nil {
		panic("CPU driver not configured")
	}
	return cpuDriver
}

// serializedRead reads the cycle counter after a serializing CPUID so the
// read cannot be hoisted above preceding instructions.
func serializedRead(cpu CPUDriver) uint64 {
	cpu.CPUID(0)
	return cpu.ReadCounter()
}
