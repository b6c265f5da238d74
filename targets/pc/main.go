//go:build baremetal && amd64

package main

import (
	"bootclock/core"
	"bootclock/protocol"
)

func main() {
	port := pcPortDriver{}
	core.SetPortDriver(port)
	core.SetCPUDriver(pcCPUDriver{})

	com1 := NewUART(port, com1Base, 115200)
	core.SetDebugWriter(com1.Println)
	core.SetDebugEnabled(true)

	core.SetFatalHandler(func(msg string) {
		halt()
	})

	core.SetFallbackClock(core.NewCMOSClock(port).NowMs)

	core.InitClock(core.DefaultClockConfig())
	core.DescribeClock()

	out := protocol.NewScratchOutput()
	core.SendClockReport(out)
	com1.Write(out.Result())

	core.DumpEventRing()

	for {
		core.Millisleep(1000)
		out.Reset()
		core.SendClockReport(out)
		com1.Write(out.Result())
	}
}
