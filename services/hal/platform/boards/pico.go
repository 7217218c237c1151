//go:build rp2040 || rp2350

package boards

// Pico wiring: onboard LED on GP25, push-button to ground on GP15,
// uart0 on its default GP0/GP1 pins.
var Selected = Board{
	Name:   "pico",
	LED:    25,
	Button: 15,
	UART:   "uart0",
	UARTTX: 0,
	UARTRX: 1,
}
