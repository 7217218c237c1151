// services/hal/platform/serialport_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"time"

	"go.bug.st/serial"

	"uartecho-go/errcode"
	"uartecho-go/services/hal/halcore"
	"uartecho-go/services/hal/platform/boards"
	"uartecho-go/types"
)

// OpenFunc opens a named port. serial.Open in production, a fake in tests.
type OpenFunc func(name string, mode *serial.Mode) (serial.Port, error)

// SerialPort lets a PC serial port stand in for the board's UART.
//
// There is no receive flag on a PC port, so RxReady performs a one-byte
// look-ahead read bounded by the poll timeout and parks the byte until
// ReadByte collects it.
type SerialPort struct {
	name        string
	pollTimeout time.Duration
	open        OpenFunc

	port    serial.Port
	enabled bool
	pending bool
	buf     [1]byte
	dtr     bool
}

func NewSerialPort(name string, pollTimeout time.Duration) *SerialPort {
	return NewSerialPortWith(name, pollTimeout, serial.Open)
}

func NewSerialPortWith(name string, pollTimeout time.Duration, open OpenFunc) *SerialPort {
	if pollTimeout < 0 {
		pollTimeout = 0
	}
	return &SerialPort{name: name, pollTimeout: pollTimeout, open: open}
}

// ModeFor converts a register set to the equivalent host line settings.
func ModeFor(cfg types.UARTConfig) *serial.Mode {
	m := &serial.Mode{
		BaudRate: int(cfg.BaudRate()),
		DataBits: int(cfg.DataBits),
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}
	if cfg.StopBits == types.TwoStopBits {
		m.StopBits = serial.TwoStopBits
	}
	switch cfg.Parity {
	case types.ParityEven:
		m.Parity = serial.EvenParity
	case types.ParityOdd:
		m.Parity = serial.OddParity
	}
	return m
}

func (p *SerialPort) Name() string { return p.name }

func (p *SerialPort) Configure(cfg types.UARTConfig) error {
	const op = "serial_configure"
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.BitOrder != types.LSBFirst {
		return errcode.New(errcode.Unsupported, op, "msb-first framing")
	}
	mode := ModeFor(cfg)
	p.enabled = false
	p.pending = false
	if p.port == nil {
		port, err := p.open(p.name, mode)
		if err != nil {
			return errcode.Wrap(errcode.UnknownPort, op, err)
		}
		if err := port.SetReadTimeout(p.pollTimeout); err != nil {
			_ = port.Close()
			return errcode.Wrap(errcode.Error, op, err)
		}
		p.port = port
		return nil
	}
	// Let the last echo leave at the old rate before retiming.
	if err := p.port.Drain(); err != nil {
		return errcode.Wrap(errcode.Error, op, err)
	}
	return errcode.Wrap(errcode.Error, op, p.port.SetMode(mode))
}

func (p *SerialPort) Enable() { p.enabled = p.port != nil }

func (p *SerialPort) RxReady() bool {
	if !p.enabled {
		return false
	}
	if p.pending {
		return true
	}
	n, err := p.port.Read(p.buf[:])
	if err != nil || n == 0 {
		return false
	}
	p.pending = true
	return true
}

func (p *SerialPort) ReadByte() (byte, error) {
	if !p.pending {
		return 0, errcode.Timeout
	}
	p.pending = false
	return p.buf[0], nil
}

func (p *SerialPort) TxReady() bool { return p.enabled }

func (p *SerialPort) WriteByte(b byte) error {
	if p.port == nil {
		return errcode.PortClosed
	}
	_, err := p.port.Write([]byte{b})
	return err
}

// Close releases the port. The SerialPort can be configured again afterwards.
func (p *SerialPort) Close() error {
	if p.port == nil {
		return nil
	}
	err := p.port.Close()
	p.port = nil
	p.enabled = false
	p.pending = false
	return err
}

// ---- modem lines as GPIO ----

// Button returns the CTS input. An asserted CTS reads as a low level,
// matching a button pulling its line to ground.
func (p *SerialPort) Button() halcore.GPIOPin { return ctsPin{p} }

// LED returns the DTR output.
func (p *SerialPort) LED() halcore.GPIOPin { return dtrPin{p} }

type ctsPin struct{ p *SerialPort }

func (c ctsPin) ConfigureInput(halcore.Pull) error {
	if c.p.port == nil {
		return errcode.PortClosed
	}
	return nil
}

func (c ctsPin) ConfigureOutput(bool) error {
	return errcode.New(errcode.Unsupported, "cts", "input only")
}

func (ctsPin) Set(bool) {}

func (c ctsPin) Get() bool {
	if c.p.port == nil {
		return true
	}
	bits, err := c.p.port.GetModemStatusBits()
	if err != nil || bits == nil {
		return true
	}
	return !bits.CTS
}

func (ctsPin) Number() int { return boards.LineCTS }

type dtrPin struct{ p *SerialPort }

func (d dtrPin) ConfigureInput(halcore.Pull) error {
	return errcode.New(errcode.Unsupported, "dtr", "output only")
}

func (d dtrPin) ConfigureOutput(initial bool) error {
	if d.p.port == nil {
		return errcode.PortClosed
	}
	d.p.dtr = initial
	return d.p.port.SetDTR(initial)
}

func (d dtrPin) Set(level bool) {
	if d.p.port == nil || d.p.dtr == level {
		return
	}
	if d.p.port.SetDTR(level) == nil {
		d.p.dtr = level
	}
}

func (d dtrPin) Get() bool { return d.p.dtr }

func (dtrPin) Number() int { return boards.LineDTR }
