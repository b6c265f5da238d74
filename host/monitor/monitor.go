// Package monitor reads a boot target's serial console and decodes the
// clock reports interleaved with its text output.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"bootclock/protocol"
)

// ReportHandler receives each decoded clock report
type ReportHandler func(protocol.ClockReport)

// Monitor decodes clock reports from a serial stream
type Monitor struct {
	port    io.Reader
	input   *protocol.StreamBuffer
	decoder *protocol.FrameDecoder

	// Console, if set, receives console text that is not part of a frame
	Console io.Writer

	// BadFrames counts frames that passed the CRC but did not decode
	BadFrames int
}

// New creates a monitor reading from port
func New(port io.Reader) *Monitor {
	return &Monitor{
		port:    port,
		input:   protocol.NewStreamBuffer(1024),
		decoder: protocol.NewFrameDecoder(),
	}
}

// Run reads until ctx is cancelled or the port reaches EOF, calling handle
// for every clock report. It returns nil on EOF or cancellation.
func (m *Monitor) Run(ctx context.Context, handle ReportHandler) error {
	m.decoder.OnDiscard = func(b []byte) {
		if m.Console != nil {
			m.Console.Write(b)
		}
	}

	buf := make([]byte, 256)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := m.port.Read(buf)
		if n > 0 {
			m.feed(buf[:n], handle)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("serial read: %w", err)
		}
		if n == 0 {
			// Read timeout with no data
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// feed queues data and decodes what is complete. Data that does not fit is
// queued after decoding has freed space.
func (m *Monitor) feed(data []byte, handle ReportHandler) {
	for len(data) > 0 {
		written := m.input.Write(data)
		data = data[written:]
		m.decoder.Decode(m.input, func(f protocol.Frame) {
			r, err := protocol.DecodeClockReport(f.Payload)
			if err != nil {
				m.BadFrames++
				return
			}
			handle(r)
		})
		if written == 0 && m.input.Free() == 0 {
			// A stuck partial frame cannot complete; drop it
			m.input.Reset()
		}
	}
}

// FormatReport renders a report as a single human-readable line
func FormatReport(r protocol.ClockReport) string {
	switch r.Source {
	case protocol.ReportSourceCalibrated:
		return fmt.Sprintf("source=calibrated rate=%d (0x%08x) origin=%d delta=%d window=%dms freq=%.3fMHz now=%dms",
			r.Rate, r.Rate, r.Origin, r.Delta, r.ReferenceMs, float64(r.FrequencyKHz())/1000, r.NowMs)
	case protocol.ReportSourceFallback:
		return fmt.Sprintf("source=fallback now=%dms", r.NowMs)
	default:
		return fmt.Sprintf("source=unknown(%d) now=%dms", r.Source, r.NowMs)
	}
}
