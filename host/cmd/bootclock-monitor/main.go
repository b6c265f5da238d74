package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"bootclock/host/monitor"
	"bootclock/host/serial"
	"bootclock/protocol"
)

var (
	device  = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud    = flag.Int("baud", serial.DefaultBaud, "Baud rate of the target console")
	timeout = flag.Duration("timeout", 0, "Stop after this long (0 = run until interrupted)")
	verbose = flag.Bool("verbose", false, "Echo console text from the target")
)

func main() {
	flag.Parse()

	fmt.Println("Bootclock Monitor - boot clock report decoder")
	fmt.Println("=============================================")

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Opening %s at %d baud...\n", cfg.Device, cfg.Baud)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	mon := monitor.New(port)
	if *verbose {
		mon.Console = os.Stdout
	}

	reports := 0
	err = mon.Run(ctx, func(r protocol.ClockReport) {
		reports++
		fmt.Printf("%s report #%d: %s\n", time.Now().Format("15:04:05.000"), reports, monitor.FormatReport(r))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%d report(s), %d undecodable frame(s)\n", reports, mon.BadFrames)
}
