package core

import "bootclock/protocol"

var reportSeq uint8

// Report describes the installed clock for the host monitor.
// ok is false before a clock is installed.
func Report() (r protocol.ClockReport, ok bool) {
	c := activeClock.Load()
	if c == nil {
		return r, false
	}

	r.ReferenceMs = c.refMs
	switch c.kind {
	case SourceCalibrated:
		r.Source = protocol.ReportSourceCalibrated
		r.Rate = c.cal.Rate
		r.Origin = c.cal.Origin
		r.Delta = c.delta
	case SourceFallback:
		r.Source = protocol.ReportSourceFallback
	}
	r.NowMs = c.NowMs()
	return r, true
}

// SendClockReport writes a framed report of the installed clock to output.
// A sync byte goes first so a host reading interleaved console text can
// find the frame start.
func SendClockReport(output protocol.OutputBuffer) bool {
	r, ok := Report()
	if !ok {
		return false
	}

	output.Output([]byte{protocol.MessageValueSync})
	protocol.EncodeFrame(output, reportSeq, r.Encode)
	reportSeq = (reportSeq + 1) & protocol.MessageSeqMask
	return true
}

// DescribeClock writes a one-line summary of the installed clock to the
// debug writer, regardless of debugEnabled.
func DescribeClock() {
	c := activeClock.Load()
	if c == nil || debugPrintln == nil {
		return
	}
	line := "[CLOCK] source=" + c.kind.String()
	if c.kind == SourceCalibrated {
		line += " rate=0x" + hex32(c.cal.Rate) +
			" origin=" + utoa64(c.cal.Origin) +
			" khz=" + utoa64(c.cal.FrequencyKHz())
	}
	debugPrintln(line)
}
