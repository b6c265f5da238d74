package core

// 8254 programmable interval timer, channel 2, gated through the
// keyboard controller's speaker port.
const (
	PITCounter2    IOPort = 0x42
	PITControl     IOPort = 0x43
	PITSpeakerPort IOPort = 0x61

	pitSpeakerTimer2Gate  = 0x01 // gate input of channel 2
	pitSpeakerData        = 0x02 // speaker output enable
	pitSpeakerTimer2Latch = 0x20 // OUT2 level, set when the countdown ends

	pitCtrlSelect2      = 0x80
	pitCtrlReadLoadWord = 0x30 // low byte then high byte
)

// PITFrequency is the PIT input clock in Hz.
const PITFrequency = 1193182

// ReferenceTimer blocks for a known number of reference ticks.
type ReferenceTimer interface {
	Wait(ticks uint16)
}

// PIT drives channel 2 of the interval timer as a one-shot reference window.
type PIT struct {
	port PortDriver
}

// NewPIT creates a reference timer using the given port driver
func NewPIT(port PortDriver) *PIT {
	return &PIT{port: port}
}

// Wait counts channel 2 down from ticks and busy-polls until it expires.
// There is no timeout: nothing exists yet to measure one with.
// The gate and speaker are always left disabled on return.
func (p *PIT) Wait(ticks uint16) {
	p.disable()
	defer p.disable()

	p.port.Outb(PITControl, pitCtrlSelect2|pitCtrlReadLoadWord)
	p.port.Outb(PITCounter2, uint8(ticks&0xFF))
	p.port.Outb(PITCounter2, uint8(ticks>>8))

	// Open the gate, keep the speaker off
	v := p.port.Inb(PITSpeakerPort) &^ pitSpeakerData
	p.port.Outb(PITSpeakerPort, v|pitSpeakerTimer2Gate)

	for p.port.Inb(PITSpeakerPort)&pitSpeakerTimer2Latch == 0 {
	}
}

// disable closes the channel 2 gate and turns the speaker off
func (p *PIT) disable() {
	v := p.port.Inb(PITSpeakerPort)
	p.port.Outb(PITSpeakerPort, v&^(pitSpeakerData|pitSpeakerTimer2Gate))
}
