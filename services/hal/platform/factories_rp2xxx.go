// services/hal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"device/rp"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"

	"uartecho-go/services/hal/halcore"
	"uartecho-go/services/hal/platform/boards"
	"uartecho-go/types"
)

// -----------------------------------------------------------------------------
// Defaults used by the firmware on Raspberry Pi Pico / Pico 2 (RP2 family)
// -----------------------------------------------------------------------------

// DefaultPinFactory maps logical numbers directly to machine.Pin(n).
// This matches Pico/Pico 2 GP numbering.
func DefaultPinFactory() halcore.PinFactory { return rp2PinFactory{} }

// DefaultUARTFactory exposes the selected board's UART with its TX/RX pins.
func DefaultUARTFactory() halcore.UARTFactory {
	return rp2UARTFactory{board: boards.Selected}
}

// ---- GPIO implementation ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// Constrain to RP2’s user GPIOs (GP0..GP29).
	if n < 0 || n > 29 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// ---- UART implementation ----

type rp2UARTFactory struct{ board boards.Board }

func (f rp2UARTFactory) ByID(id string) (halcore.UART, bool) {
	if id != f.board.UART {
		return nil, false
	}
	var hw *uartx.UART
	switch id {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, false
	}
	return NewPolledUART(&rp2Line{
		UART: hw,
		tx:   machine.Pin(f.board.UARTTX),
		rx:   machine.Pin(f.board.UARTRX),
	}), true
}

var _ drivers.UART = (*uartx.UART)(nil)

// rp2Line exposes uartx plus the PL011 flag and data registers. uartx
// buffers RX from its interrupt handler; TX goes straight to the FIFO,
// bypassing Write, which waits for the FIFO and then for the line to idle.
type rp2Line struct {
	*uartx.UART
	tx, rx     machine.Pin
	configured bool
}

func (l *rp2Line) SetLine(baud uint32, dataBits, stopBits uint8, parity types.Parity) error {
	if !l.configured {
		// Binds TX/RX to the UART function (pin muxing).
		if err := l.UART.Configure(uartx.UARTConfig{BaudRate: baud, TX: l.tx, RX: l.rx}); err != nil {
			return err
		}
		l.configured = true
	} else {
		l.UART.SetBaudRate(baud)
	}
	var par uartx.UARTParity
	switch parity {
	case types.ParityEven:
		par = uartx.ParityEven
	case types.ParityOdd:
		par = uartx.ParityOdd
	default:
		par = uartx.ParityNone
	}
	return l.UART.SetFormat(dataBits, stopBits, par)
}

func (l *rp2Line) TxFull() bool { return l.Bus.UARTFR.HasBits(rp.UART0_UARTFR_TXFF) }

func (l *rp2Line) PutByte(b byte) { l.Bus.UARTDR.Set(uint32(b)) }
