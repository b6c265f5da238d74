package core

// IOPort is an x86 I/O port address.
type IOPort uint16

// PortDriver is the abstract port I/O interface that core code uses.
// Reads and writes never fail; a missing device reads back as 0xFF on real hardware.
type PortDriver interface {
	// Inb reads a byte from the port
	Inb(port IOPort) uint8

	// Outb writes a byte to the port
	Outb(port IOPort, value uint8)
}

// Global singleton used by core code.
var portDriver PortDriver

// SetPortDriver is called by target-specific code to register its driver.
func SetPortDriver(d PortDriver) {
	portDriver = d
}

// MustPort returns the configured driver or panics if missing.
func MustPort() PortDriver {
	if portDriver == nil {
		panic("port driver not configured")
	}
	return portDriver
}
