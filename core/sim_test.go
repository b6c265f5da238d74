package core

import "testing"

// simCPU is a scripted CPUDriver
type simCPU struct {
	hasCPUID bool
	edx      uint32 // leaf 1 feature bits

	counter uint64
	step    uint64 // added to counter after every read

	cpuidLeaves []uint32
	reads       int
}

func newTSCCPU(start uint64) *simCPU {
	return &simCPU{hasCPUID: true, edx: cpuidFeatureTSC, counter: start}
}

func (c *simCPU) HasCPUID() bool { return c.hasCPUID }

func (c *simCPU) CPUID(leaf uint32) (eax, ebx, ecx, edx uint32) {
	c.cpuidLeaves = append(c.cpuidLeaves, leaf)
	if leaf == 1 {
		return 0, 0, 0, c.edx
	}
	return 1, 0, 0, 0
}

func (c *simCPU) ReadCounter() uint64 {
	v := c.counter
	c.counter += c.step
	c.reads++
	return v
}

// simRef advances the CPU counter by a fixed amount per reference window
type simRef struct {
	cpu     *simCPU
	advance uint64
	ticks   []uint16
}

func (r *simRef) Wait(ticks uint16) {
	r.ticks = append(r.ticks, ticks)
	r.cpu.counter += r.advance
}

type portWrite struct {
	port  IOPort
	value uint8
}

// simPorts models the speaker port gating PIT channel 2 and the CMOS
// register file. Anything else reads back as 0xFF.
type simPorts struct {
	speaker     uint8
	writes      []portWrite
	polls       int
	latchAfter  int // gated polls before OUT2 goes high
	panicOnPoll bool

	onGate func() // called when the channel 2 gate opens

	cmosIndex    uint8
	cmos         map[uint8]uint8
	updatingLeft int // status A reads that still report an update
	onCMOSRead   func(reg uint8)
}

func newSimPorts() *simPorts {
	return &simPorts{cmos: make(map[uint8]uint8)}
}

func (p *simPorts) Inb(port IOPort) uint8 {
	switch port {
	case PITSpeakerPort:
		if p.speaker&pitSpeakerTimer2Gate == 0 {
			return p.speaker
		}
		p.polls++
		if p.panicOnPoll && p.polls == 1 {
			panic("port read failed")
		}
		if p.polls >= p.latchAfter {
			return p.speaker | pitSpeakerTimer2Latch
		}
		return p.speaker
	case CMOSData:
		reg := p.cmosIndex
		if p.onCMOSRead != nil {
			p.onCMOSRead(reg)
		}
		if reg == cmosRegStatusA && p.updatingLeft > 0 {
			p.updatingLeft--
			return cmosStatusAUpdating
		}
		return p.cmos[reg]
	}
	return 0xFF
}

func (p *simPorts) Outb(port IOPort, value uint8) {
	p.writes = append(p.writes, portWrite{port, value})
	switch port {
	case PITSpeakerPort:
		opening := p.speaker&pitSpeakerTimer2Gate == 0 && value&pitSpeakerTimer2Gate != 0
		p.speaker = value &^ pitSpeakerTimer2Latch
		if opening && p.onGate != nil {
			p.onGate()
		}
	case CMOSAddress:
		p.cmosIndex = value
	}
}

// resetClockState clears process-wide clock state for a test
func resetClockState(t *testing.T) {
	t.Helper()

	clear := func() {
		activeClock.Store(nil)
		cpuDriver = nil
		portDriver = nil
		fallbackClock = nil
		timerList = nil
		reportSeq = 0
		maskDepth = 0
		ClearEventRing()
	}
	clear()

	savedFatal := fatalHandler
	savedWriter := debugPrintln
	savedEnabled := debugEnabled
	t.Cleanup(func() {
		clear()
		fatalHandler = savedFatal
		debugPrintln = savedWriter
		debugEnabled = savedEnabled
	})
}

// fakeClock installs a fallback clock whose time is set by the test
func fakeClock(t *testing.T) *uint64 {
	t.Helper()
	now := new(uint64)
	if err := InstallClock(NewFallbackClock(func() uint64 { return *now })); err != nil {
		t.Fatalf("InstallClock failed: %v", err)
	}
	return now
}

// panicRef is a reference timer whose wait fails
type panicRef struct{}

func (panicRef) Wait(uint16) { panic("reference timer fault") }
