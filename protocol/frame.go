package protocol

// Frame is one decoded message block
type Frame struct {
	Length   uint8
	Sequence uint8
	Payload  []byte // frame data without header/trailer
	CRC      uint16
}

// EncodeFrame writes a complete frame to output. The payload callback
// writes the message body; seq is reduced to its low four bits. A body
// longer than the frame limit is cut short.
func EncodeFrame(output OutputBuffer, seq uint8, payload func(output OutputBuffer)) {
	var f frameBuilder
	f.buf[MessagePositionSeq] = (seq & MessageSeqMask) | MessageDest
	f.n = MessageHeaderSize

	payload(&f)

	f.buf[MessagePositionLen] = uint8(f.n + MessageTrailerSize)
	crc := CRC16(f.buf[:f.n])
	f.buf[f.n] = uint8(crc >> 8)
	f.buf[f.n+1] = uint8(crc)
	f.buf[f.n+2] = MessageValueSync

	output.Output(f.buf[:f.n+MessageTrailerSize])
}

// frameBuilder holds one frame while its body is written
type frameBuilder struct {
	buf [MessageLengthMax]byte
	n   int
}

func (f *frameBuilder) Output(data []byte) {
	f.n += copy(f.buf[f.n:MessageLengthMax-MessageTrailerSize], data)
}

// FrameDecoder extracts frames from a byte stream that may also carry
// plain console text. On any malformed frame it drops bytes up to the next
// sync byte and starts over.
type FrameDecoder struct {
	desynchronized bool
	dropped        int

	// OnDiscard, if set, receives bytes skipped while resynchronizing
	OnDiscard func([]byte)
}

// NewFrameDecoder creates a decoder that expects a frame immediately
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{}
}

// Dropped returns how many bytes were discarded while resynchronizing
func (d *FrameDecoder) Dropped() int {
	return d.dropped
}

// Decode consumes complete frames from input, calling handle for each.
// An incomplete trailing frame is left in input for the next call.
func (d *FrameDecoder) Decode(input InputBuffer, handle func(Frame)) {
	data := input.Data()

	for len(data) > 0 {
		if d.desynchronized {
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				d.discard(data)
				data = nil
				break
			}
			d.discard(data[:syncPos])
			d.dropped++ // the sync byte itself
			data = data[syncPos+1:]
			d.desynchronized = false
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desynchronized = true
			continue
		}
		if len(data) < MessageHeaderSize {
			break
		}
		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desynchronized = true
			continue
		}

		// Wait for full message
		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desynchronized = true
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desynchronized = true
			continue
		}

		payload := make([]byte, msgLen-MessageHeaderSize-MessageTrailerSize)
		copy(payload, data[MessageHeaderSize:msgLen-MessageTrailerSize])

		frame := Frame{
			Length:   uint8(msgLen),
			Sequence: seq & MessageSeqMask,
			Payload:  payload,
			CRC:      frameCRC,
		}
		data = data[msgLen:]
		handle(frame)
	}

	consumed := input.Available() - len(data)
	if consumed > 0 {
		input.Pop(consumed)
	}
}

func (d *FrameDecoder) discard(b []byte) {
	d.dropped += len(b)
	if d.OnDiscard != nil && len(b) > 0 {
		d.OnDiscard(b)
	}
}
