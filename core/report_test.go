package core

import (
	"strings"
	"testing"

	"bootclock/protocol"
)

func decodeReports(t *testing.T, data []byte) []protocol.ClockReport {
	t.Helper()

	var reports []protocol.ClockReport
	dec := protocol.NewFrameDecoder()
	dec.Decode(protocol.NewSliceInputBuffer(data), func(f protocol.Frame) {
		r, err := protocol.DecodeClockReport(f.Payload)
		if err != nil {
			t.Fatalf("DecodeClockReport failed: %v", err)
		}
		reports = append(reports, r)
	})
	return reports
}

func TestSendClockReportCalibrated(t *testing.T) {
	resetClockState(t)

	cpu := newTSCCPU(1 << 40)
	ref := &simRef{cpu: cpu, advance: 165000000}
	c, err := SelectClock(cpu, ref, nil, DefaultClockConfig())
	if err != nil {
		t.Fatalf("SelectClock failed: %v", err)
	}
	if err := InstallClock(c); err != nil {
		t.Fatalf("InstallClock failed: %v", err)
	}
	cpu.counter = 1<<40 + 3000000000

	out := protocol.NewScratchOutput()
	out.Output([]byte("booting\r\n"))
	if !SendClockReport(out) {
		t.Fatal("SendClockReport returned false")
	}

	reports := decodeReports(t, out.Result())
	if len(reports) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(reports))
	}
	r := reports[0]
	if r.Source != protocol.ReportSourceCalibrated {
		t.Errorf("Expected calibrated source, got %d", r.Source)
	}
	if r.Rate != 1431 || r.Origin != 1<<40 || r.Delta != 165000000 || r.ReferenceMs != 55 {
		t.Errorf("Unexpected report %+v", r)
	}
	if r.NowMs != 999 {
		t.Errorf("Expected now 999, got %d", r.NowMs)
	}
	if r.FrequencyKHz() != 3000000 {
		t.Errorf("Expected 3000000 kHz, got %d", r.FrequencyKHz())
	}
}

func TestSendClockReportFallback(t *testing.T) {
	resetClockState(t)
	now := fakeClock(t)
	*now = 4000

	out := protocol.NewScratchOutput()
	SendClockReport(out)
	SendClockReport(out)

	reports := decodeReports(t, out.Result())
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}
	if reports[0].Source != protocol.ReportSourceFallback || reports[0].Rate != 0 {
		t.Errorf("Unexpected fallback report %+v", reports[0])
	}
	if reports[1].NowMs != 4000 {
		t.Errorf("Expected now 4000, got %d", reports[1].NowMs)
	}
}

func TestSendClockReportWithoutClock(t *testing.T) {
	resetClockState(t)

	out := protocol.NewScratchOutput()
	if SendClockReport(out) {
		t.Error("Expected false with no clock installed")
	}
	if out.Len() != 0 {
		t.Errorf("Wrote %d bytes with no clock installed", out.Len())
	}
}

func TestDescribeClock(t *testing.T) {
	resetClockState(t)

	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })

	InstallClock(NewCalibratedClock(newTSCCPU(0), Calibration{Origin: 12, Rate: 55}))
	DescribeClock()

	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %v", lines)
	}
	for _, want := range []string{"source=calibrated", "rate=0x00000037", "origin=12", "khz=78090314"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("Line %q missing %q", lines[0], want)
		}
	}
}
