// services/hal/halcore/types.go
package halcore

import "uartecho-go/types"

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	default:
		return "none"
	}
}

// GPIOPin is a single digital pin owned by exactly one component.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// PinFactory supplies GPIO pins by the board's numbering scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---------------- UART abstractions ----------------

// UART is a polled serial peripheral. None of its methods may block.
//
// RxReady and TxReady are the receive/transmit flags; ReadByte and
// WriteByte are only meaningful after the matching flag was seen set.
type UART interface {
	// Configure programs the peripheral from register values and binds
	// its TX/RX pins to the peripheral function. The peripheral is left
	// disabled until Enable.
	Configure(cfg types.UARTConfig) error
	Enable()

	// RX
	RxReady() bool
	ReadByte() (byte, error)

	// TX
	TxReady() bool
	WriteByte(b byte) error
}

// UARTFactory supplies UART peripherals by controller id ("uart0", ...).
type UARTFactory interface {
	ByID(id string) (UART, bool)
}
