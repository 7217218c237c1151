// services/hal/platform/polled_uart.go
package platform

import (
	"tinygo.org/x/drivers"

	"uartecho-go/errcode"
	"uartecho-go/types"
)

// UARTLine is a driver-level UART: the tinygo drivers.UART contract
// (Buffered is the receive flag) plus line setup and a raw transmit
// register.
type UARTLine interface {
	drivers.UART

	// ReadByte returns an error when nothing is buffered.
	ReadByte() (byte, error)
	// SetLine binds the pins on first use, then only retimes the line.
	SetLine(baud uint32, dataBits, stopBits uint8, parity types.Parity) error
	// TxFull is the transmit FIFO-full flag.
	TxFull() bool
	// PutByte stores b in the transmit data register without waiting.
	PutByte(b byte)
}

// PolledUART turns a UARTLine into the flag-polled halcore.UART.
type PolledUART struct {
	line       UARTLine
	configured bool
	enabled    bool
}

func NewPolledUART(line UARTLine) *PolledUART { return &PolledUART{line: line} }

func (u *PolledUART) Configure(cfg types.UARTConfig) error {
	const op = "uart_configure"
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.BitOrder != types.LSBFirst {
		return errcode.New(errcode.Unsupported, op, "msb-first framing")
	}
	u.enabled = false
	// The line's own divider takes the rate the registers produce.
	if err := u.line.SetLine(cfg.BaudRate(), cfg.DataBits, cfg.StopBits.Count(), cfg.Parity); err != nil {
		return errcode.Wrap(errcode.Error, op, err)
	}
	u.configured = true
	return nil
}

func (u *PolledUART) Enable() { u.enabled = u.configured }

func (u *PolledUART) RxReady() bool { return u.enabled && u.line.Buffered() > 0 }

func (u *PolledUART) ReadByte() (byte, error) {
	if !u.enabled {
		return 0, errcode.PortClosed
	}
	return u.line.ReadByte()
}

func (u *PolledUART) TxReady() bool { return u.enabled && !u.line.TxFull() }

func (u *PolledUART) WriteByte(b byte) error {
	if !u.enabled {
		return errcode.PortClosed
	}
	u.line.PutByte(b)
	return nil
}
