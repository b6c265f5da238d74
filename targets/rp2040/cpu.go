//go:build rp2040

package main

// rpCPUDriver implements core.CPUDriver for the Cortex-M0+. The core has no
// identification instruction and no cycle counter, so the probe always
// selects the fallback clock.
type rpCPUDriver struct{}

func (rpCPUDriver) HasCPUID() bool { return false }

func (rpCPUDriver) CPUID(leaf uint32) (eax, ebx, ecx, edx uint32) { return 0, 0, 0, 0 }

// ReadCounter returns the microsecond timer so the driver stays usable if a
// caller skips the probe.
func (rpCPUDriver) ReadCounter() uint64 { return GetHardwareUptime() }
