package types

// ------------------------
// Serial line format
// ------------------------

type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "none"
	}
}

type BitOrder uint8

const (
	LSBFirst BitOrder = iota
	MSBFirst
)

func (o BitOrder) String() string {
	if o == MSBFirst {
		return "msb_first"
	}
	return "lsb_first"
}

type StopBits uint8

const (
	OneStopBit StopBits = iota
	TwoStopBits
)

// Count returns the number of stop bits on the wire.
func (s StopBits) Count() uint8 {
	if s == TwoStopBits {
		return 2
	}
	return 1
}

// ClockSource selects the clock feeding the baud-rate generator.
type ClockSource uint8

const (
	ClockSMCLK ClockSource = iota
	ClockACLK
)

// UARTMode selects the peripheral's framing mode. Only plain UART is used.
type UARTMode uint8

const (
	ModeUART UARTMode = iota
	ModeIdleLine
	ModeAddressBit
	ModeAutoBaud
)

type Oversampling uint8

const (
	LowFrequencyBaudGeneration Oversampling = iota
	OversamplingBaudGeneration
)

// ------------------------
// Baud rate state
// ------------------------

// BaudRate enumerates the rates the demo knows about. Only the first two
// have register values.
type BaudRate uint8

const (
	Baud9600 BaudRate = iota
	Baud19200
	Baud38400
	Baud57600
)

// Bps returns the nominal line rate.
func (b BaudRate) Bps() uint32 {
	switch b {
	case Baud19200:
		return 19200
	case Baud38400:
		return 38400
	case Baud57600:
		return 57600
	default:
		return 9600
	}
}

func (b BaudRate) String() string {
	switch b {
	case Baud19200:
		return "19200"
	case Baud38400:
		return "38400"
	case Baud57600:
		return "57600"
	default:
		return "9600"
	}
}
