package types

import (
	"math/bits"

	"uartecho-go/errcode"
	"uartecho-go/x/mathx"
)

// ReferenceClockHz is the SMCLK frequency every register set is computed for.
const ReferenceClockHz uint32 = 3_000_000

// UARTConfig mirrors the peripheral's configuration registers.
//
// Divisor is UCBRx, FirstMod is UCBRFx (0..15, only meaningful with
// oversampling) and SecondMod is the UCBRSx bit pattern whose population
// count sets the fractional part in eighths.
type UARTConfig struct {
	ClockSource  ClockSource
	ClockHz      uint32
	Divisor      uint16
	FirstMod     uint8
	SecondMod    uint8
	Parity       Parity
	BitOrder     BitOrder
	StopBits     StopBits
	Mode         UARTMode
	Oversampling Oversampling
	DataBits     uint8
}

// BaudRate returns the line rate the registers produce, rounded to the
// nearest integer. Zero if the configuration cannot produce one.
func (c UARTConfig) BaudRate() uint32 {
	if c.ClockHz == 0 || c.Divisor == 0 {
		return 0
	}
	frac := uint64(bits.OnesCount8(c.SecondMod))
	var eighths uint64
	if c.Oversampling == OversamplingBaudGeneration {
		eighths = 8*(16*uint64(c.Divisor)+uint64(c.FirstMod)) + frac
	} else {
		eighths = 8*uint64(c.Divisor) + frac
	}
	return uint32(mathx.RoundDiv(8*uint64(c.ClockHz), eighths))
}

// Validate checks the fields are jointly usable by the peripheral.
func (c UARTConfig) Validate() error {
	const op = "uart_config"
	switch {
	case c.ClockHz == 0:
		return errcode.New(errcode.InvalidParams, op, "clock is zero")
	case c.Divisor == 0:
		return errcode.New(errcode.InvalidParams, op, "divisor is zero")
	case c.FirstMod > 15:
		return errcode.New(errcode.InvalidParams, op, "first modulation out of range")
	case !mathx.Between(c.DataBits, 7, 8):
		return errcode.New(errcode.InvalidParams, op, "data bits must be 7 or 8")
	}
	return nil
}
