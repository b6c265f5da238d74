// Package protocol implements the framed report stream a boot target sends
// over its debug UART: CRC16-checked frames carrying VLQ-encoded messages.
package protocol

// Version of the report stream format
const Version = "0.1.0"

// Frame layout: [len][seq][payload...][crc_hi][crc_lo][sync]
const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	MessageSeqMask = 0x0F

	// ScratchSize bounds the firmware output collected between UART writes
	ScratchSize = 256
)
