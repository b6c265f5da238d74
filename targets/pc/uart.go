//go:build baremetal && amd64

package main

import "bootclock/core"

// 16550 UART registers, relative to the base port
const (
	com1Base = 0x3F8

	uartData       = 0 // RBR/THR, divisor low with DLAB
	uartIntEnable  = 1 // IER, divisor high with DLAB
	uartFIFOCtrl   = 2
	uartLineCtrl   = 3
	uartModemCtrl  = 4
	uartLineStatus = 5

	lineCtrlDLAB  = 0x80
	lineCtrl8N1   = 0x03
	lineStatusTHR = 0x20 // transmit holding register empty

	uartClock = 115200
)

// UART is a polled 16550 serial port
type UART struct {
	port core.PortDriver
	base core.IOPort
}

// NewUART programs the UART at base for baud 8N1 with FIFOs enabled
func NewUART(port core.PortDriver, base core.IOPort, baud uint32) *UART {
	u := &UART{port: port, base: base}
	divisor := uartClock / baud

	u.reg(uartIntEnable, 0x00)
	u.reg(uartLineCtrl, lineCtrlDLAB)
	u.reg(uartData, uint8(divisor))
	u.reg(uartIntEnable, uint8(divisor>>8))
	u.reg(uartLineCtrl, lineCtrl8N1)
	u.reg(uartFIFOCtrl, 0xC7)
	u.reg(uartModemCtrl, 0x03) // DTR | RTS
	return u
}

func (u *UART) reg(offset core.IOPort, v uint8) {
	u.port.Outb(u.base+offset, v)
}

// WriteByte blocks until the transmitter has room
func (u *UART) WriteByte(b byte) error {
	for u.port.Inb(u.base+uartLineStatus)&lineStatusTHR == 0 {
	}
	u.port.Outb(u.base+uartData, b)
	return nil
}

// Write implements io.Writer
func (u *UART) Write(p []byte) (int, error) {
	for _, b := range p {
		u.WriteByte(b)
	}
	return len(p), nil
}

// Println writes s followed by CRLF, for use as a debug writer
func (u *UART) Println(s string) {
	u.Write([]byte(s))
	u.Write([]byte("\r\n"))
}
