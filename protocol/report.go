package protocol

import "errors"

// Message ids
const (
	MsgClockReport = 1
)

// Clock source kinds as carried on the wire
const (
	ReportSourceNone       = 0
	ReportSourceCalibrated = 1
	ReportSourceFallback   = 2
)

var (
	ErrUnknownMessage = errors.New("unknown message id")
	ErrTrailingData   = errors.New("trailing data after message")
)

// ClockReport describes the time source a target installed at boot.
type ClockReport struct {
	Source      uint8  // ReportSource*
	Rate        uint32 // ms per 2^32 counter ticks, 0 for fallback
	Origin      uint64 // counter value at calibration
	ReferenceMs uint32 // reference window length
	Delta       uint64 // counter advance over the reference window
	NowMs       uint64 // clock reading when the report was sent
}

// Encode writes the report as a message body (id then fields)
func (r *ClockReport) Encode(output OutputBuffer) {
	EncodeVLQUint(output, MsgClockReport)
	EncodeVLQUint(output, uint32(r.Source))
	EncodeVLQUint(output, r.Rate)
	EncodeVLQUint64(output, r.Origin)
	EncodeVLQUint(output, r.ReferenceMs)
	EncodeVLQUint64(output, r.Delta)
	EncodeVLQUint64(output, r.NowMs)
}

// DecodeClockReport parses a frame payload produced by Encode
func DecodeClockReport(payload []byte) (ClockReport, error) {
	var r ClockReport
	data := payload

	id, err := DecodeVLQUint(&data)
	if err != nil {
		return r, err
	}
	if id != MsgClockReport {
		return r, ErrUnknownMessage
	}

	source, err := DecodeVLQUint(&data)
	if err != nil {
		return r, err
	}
	r.Source = uint8(source)

	if r.Rate, err = DecodeVLQUint(&data); err != nil {
		return r, err
	}
	if r.Origin, err = DecodeVLQUint64(&data); err != nil {
		return r, err
	}
	if r.ReferenceMs, err = DecodeVLQUint(&data); err != nil {
		return r, err
	}
	if r.Delta, err = DecodeVLQUint64(&data); err != nil {
		return r, err
	}
	if r.NowMs, err = DecodeVLQUint64(&data); err != nil {
		return r, err
	}

	if len(data) != 0 {
		return r, ErrTrailingData
	}
	return r, nil
}

// FrequencyKHz is the counter frequency implied by the calibration
func (r *ClockReport) FrequencyKHz() uint64 {
	if r.ReferenceMs == 0 {
		return 0
	}
	return r.Delta / uint64(r.ReferenceMs)
}
