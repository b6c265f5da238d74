//go:build rp2040

package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/ds3231"
)

// DS3231Clock is a fallback clock backed by a DS3231 RTC. The chip only
// resolves whole seconds, so readings advance in 1000 ms steps.
type DS3231Clock struct {
	rtc  ds3231.Device
	base time.Time
	last uint64
}

// NewDS3231Clock probes for a running DS3231 on bus. It returns nil when the
// chip is absent, stopped, or holds an invalid time.
func NewDS3231Clock(bus *machine.I2C) *DS3231Clock {
	rtc := ds3231.New(bus)
	if !rtc.Configure() || !rtc.IsRunning() || !rtc.IsTimeValid() {
		return nil
	}
	base, err := rtc.ReadTime()
	if err != nil {
		return nil
	}
	return &DS3231Clock{rtc: rtc, base: base}
}

// NowMs returns milliseconds since the clock was created. A failed bus read
// or a backwards step returns the previous reading.
func (c *DS3231Clock) NowMs() uint64 {
	t, err := c.rtc.ReadTime()
	if err != nil {
		return c.last
	}
	d := t.Sub(c.base)
	if d < 0 {
		return c.last
	}
	ms := uint64(d / time.Millisecond)
	if ms > c.last {
		c.last = ms
	}
	return c.last
}
