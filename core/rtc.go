package core

// MC146818-compatible CMOS real-time clock
const (
	CMOSAddress IOPort = 0x70
	CMOSData    IOPort = 0x71

	cmosRegSeconds = 0x00
	cmosRegMinutes = 0x02
	cmosRegHours   = 0x04
	cmosRegStatusA = 0x0A
	cmosRegStatusB = 0x0B

	cmosStatusAUpdating = 0x80 // update in progress
	cmosStatusB24Hour   = 0x02
	cmosStatusBBinary   = 0x04 // values are binary rather than BCD
	cmosHourPM          = 0x80

	msPerDay = 24 * 60 * 60 * 1000
)

// CMOSClock is a one-second-resolution clock read from the CMOS RTC.
// It only uses the time of day and counts midnight crossings itself, so
// readings never go backwards while it is polled at least once a day.
type CMOSClock struct {
	port PortDriver

	started bool
	base    uint64 // first time of day seen, in ms
	last    uint64
	days    uint64
}

// NewCMOSClock creates an RTC reader on the given port driver
func NewCMOSClock(port PortDriver) *CMOSClock {
	return &CMOSClock{port: port}
}

// NowMs returns milliseconds since the first call
func (c *CMOSClock) NowMs() uint64 {
	tod := c.readTimeOfDay() * 1000
	if !c.started {
		c.started = true
		c.base = tod
		c.last = tod
	}
	if tod < c.last {
		c.days++
	}
	c.last = tod
	return c.days*msPerDay + tod - c.base
}

// readTimeOfDay returns seconds since midnight, re-reading until two
// consecutive reads agree so an update mid-read is not observed.
func (c *CMOSClock) readTimeOfDay() uint64 {
	c.waitReady()
	t := c.readOnce()
	for {
		c.waitReady()
		t2 := c.readOnce()
		if t2 == t {
			return t
		}
		t = t2
	}
}

func (c *CMOSClock) readOnce() uint64 {
	sec := c.readReg(cmosRegSeconds)
	min := c.readReg(cmosRegMinutes)
	hour := c.readReg(cmosRegHours)
	statusB := c.readReg(cmosRegStatusB)

	pm := false
	if statusB&cmosStatusB24Hour == 0 {
		pm = hour&cmosHourPM != 0
		hour &^= cmosHourPM
	}
	if statusB&cmosStatusBBinary == 0 {
		sec, min, hour = bcdToBin(sec), bcdToBin(min), bcdToBin(hour)
	}
	if statusB&cmosStatusB24Hour == 0 {
		// 12 AM is hour 0, 12 PM is hour 12
		hour %= 12
		if pm {
			hour += 12
		}
	}

	return uint64(hour)*3600 + uint64(min)*60 + uint64(sec)
}

// waitReady waits for the update-in-progress flag to clear
func (c *CMOSClock) waitReady() {
	for c.readReg(cmosRegStatusA)&cmosStatusAUpdating != 0 {
	}
}

func (c *CMOSClock) readReg(reg uint8) uint8 {
	c.port.Outb(CMOSAddress, reg)
	return c.port.Inb(CMOSData)
}

// bcdToBin converts a packed BCD byte to binary
func bcdToBin(v uint8) uint8 {
	return (v & 0x0F) + (v>>4)*10
}
