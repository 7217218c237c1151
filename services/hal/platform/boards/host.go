//go:build !rp2040 && !rp2350

package boards

// Host profile: a PC serial port plays the UART and its modem lines play
// the pins (CTS in for the button, DTR out for the LED).
var Selected = Board{
	Name:   "host",
	LED:    LineDTR,
	Button: LineCTS,
	UART:   "host",
}
