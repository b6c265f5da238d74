//go:build rp2040

package main

import (
	"machine"
	"time"

	"bootclock/core"
	"bootclock/protocol"
)

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})

	core.SetDebugWriter(func(s string) {
		machine.Serial.Write([]byte(s))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.SetDebugEnabled(true)

	core.SetFatalHandler(func(msg string) {
		for {
			time.Sleep(time.Second)
		}
	})

	core.SetCPUDriver(rpCPUDriver{})

	// I2C0 default pins: SDA=GP4, SCL=GP5
	if err := machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz}); err != nil {
		core.DebugPrintln("[CLOCK] I2C0 configure failed: " + err.Error())
	}
	if rtc := NewDS3231Clock(machine.I2C0); rtc != nil {
		core.DebugPrintln("[CLOCK] DS3231 found on I2C0")
		core.SetFallbackClock(rtc.NowMs)
	} else {
		core.DebugPrintln("[CLOCK] no DS3231, using timer uptime")
		core.SetFallbackClock(uptimeMs)
	}

	core.InitClock(core.DefaultClockConfig())
	core.DescribeClock()

	out := protocol.NewScratchOutput()
	for {
		out.Reset()
		core.SendClockReport(out)
		machine.Serial.Write(out.Result())
		core.Millisleep(1000)
	}
}
