package core

// CPUID leaf 1 EDX feature bit for the time stamp counter.
const cpuidFeatureTSC = 1 << 4

// CycleCounterSupported reports whether the CPU has a readable cycle counter
// along with the serializing instruction used to order reads of it.
// It returns false when the identification instruction itself is missing.
func CycleCounterSupported(cpu CPUDriver) bool {
	if cpu == nil || !cpu.HasCPUID() {
		return false
	}
	_, _, _, edx := cpu.CPUID(1)
	return edx&cpuidFeatureTSC != 0
}
