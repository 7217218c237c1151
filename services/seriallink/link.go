// Package seriallink owns the UART: its register configuration, the
// classify-and-echo exchange and the baud-rate change command.
package seriallink

import (
	"uartecho-go/services/hal/halcore"
	"uartecho-go/types"
)

// Default9600 is the startup register set: 9600 8N1, LSB first, from a
// 3 MHz SMCLK with oversampling.
func Default9600() types.UARTConfig {
	return types.UARTConfig{
		ClockSource:  types.ClockSMCLK,
		ClockHz:      types.ReferenceClockHz,
		Divisor:      19,
		FirstMod:     8,
		SecondMod:    0x55,
		Parity:       types.ParityNone,
		BitOrder:     types.LSBFirst,
		StopBits:     types.OneStopBit,
		Mode:         types.ModeUART,
		Oversampling: types.OversamplingBaudGeneration,
		DataBits:     8,
	}
}

// Link is the serial link handler. It is the only owner of the UART and
// of the current baud state. Not safe for concurrent use.
type Link struct {
	port halcore.UART
	cfg  types.UARTConfig
	baud types.BaudRate
}

func New(port halcore.UART) *Link {
	return &Link{port: port, cfg: Default9600(), baud: types.Baud9600}
}

// Init programs the 9600 configuration and enables the peripheral.
func (l *Link) Init() error {
	l.cfg = Default9600()
	l.baud = types.Baud9600
	if err := l.port.Configure(l.cfg); err != nil {
		return err
	}
	l.port.Enable()
	return nil
}

// PollReceive returns the pending byte, if any. Never blocks.
func (l *Link) PollReceive() (byte, bool) {
	if !l.port.RxReady() {
		return 0, false
	}
	b, err := l.port.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, true
}

// TryTransmit hands b to the peripheral only if the transmit flag is set.
// Otherwise b is dropped; there is no retry.
func (l *Link) TryTransmit(b byte) bool {
	if !l.port.TxReady() {
		return false
	}
	return l.port.WriteByte(b) == nil
}

// MaybeReconfigure acts on the change command and reports whether the
// baud state moved. Any other byte, and unimplemented rows, leave
// everything untouched.
func (l *Link) MaybeReconfigure(b byte) bool {
	if b != CommandChangeBaud {
		return false
	}
	t, ok := Next(l.baud)
	if !ok || !t.Implemented() {
		return false
	}
	t.Apply(&l.cfg)
	// Register writes are treated as infallible; a driver complaint
	// does not hold the state back.
	_ = l.port.Configure(l.cfg)
	l.port.Enable()
	l.baud = t.To
	return true
}

func (l *Link) Baud() types.BaudRate     { return l.baud }
func (l *Link) Config() types.UARTConfig { return l.cfg }
