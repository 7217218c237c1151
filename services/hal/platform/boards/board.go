package boards

// Board describes the fixed wiring the demo relies on: one LED, one
// active-low button and one UART with its TX/RX pins.
// Pin numbers are plain board numbers; mapping to hardware happens in the platform.
type Board struct {
	Name   string
	LED    int
	Button int

	UART   string
	UARTTX int
	UARTRX int
}

// Modem-line numbers used when a PC serial port stands in for the board.
const (
	LineCTS = 0
	LineDTR = 1
)
