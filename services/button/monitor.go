// Package button mirrors an active-low push-button onto an LED.
package button

import "uartecho-go/services/hal/halcore"

// PressedLevel is the input level of a pressed button: it grounds a
// pulled-up line.
const PressedLevel = false

// Monitor owns one input pin (button) and one output pin (LED). It keeps
// no state of its own.
type Monitor struct {
	led    halcore.GPIOPin
	button halcore.GPIOPin
}

func New(led, button halcore.GPIOPin) *Monitor {
	return &Monitor{led: led, button: button}
}

// Init sets the LED as an output (initially off) and the button as an
// input with pull-up.
func (m *Monitor) Init() error {
	if err := m.led.ConfigureOutput(false); err != nil {
		return err
	}
	return m.button.ConfigureInput(halcore.PullUp)
}

func (m *Monitor) IsPressed() bool { return m.button.Get() == PressedLevel }

// Refresh drives the LED high while the button is pressed and low otherwise.
func (m *Monitor) Refresh() { m.led.Set(m.IsPressed()) }
