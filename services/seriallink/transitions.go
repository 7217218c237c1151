package seriallink

import "uartecho-go/types"

// CommandChangeBaud asks the device to step to its next baud rate.
const CommandChangeBaud byte = 'c'

// Transition is one row of the baud-rate table. A row with Apply == nil
// is a placeholder: the command is accepted and nothing changes.
type Transition struct {
	To    types.BaudRate
	Apply func(cfg *types.UARTConfig)
}

// Implemented reports whether the row reprograms the peripheral.
func (t Transition) Implemented() bool { return t.Apply != nil }

var transitions = map[types.BaudRate]Transition{
	types.Baud9600: {
		To: types.Baud19200,
		Apply: func(cfg *types.UARTConfig) {
			cfg.Divisor = 9
			cfg.FirstMod = 12
			cfg.SecondMod = 0x22
		},
	},
	// Register values for these rates were never worked out.
	types.Baud19200: {To: types.Baud19200},
	types.Baud38400: {To: types.Baud38400},
}

// Next looks up the row for state. 57600 has no row.
func Next(state types.BaudRate) (Transition, bool) {
	t, ok := transitions[state]
	return t, ok
}

// After returns the state the device is in after one change command
// issued in state.
func After(state types.BaudRate) types.BaudRate {
	t, ok := Next(state)
	if !ok || !t.Implemented() {
		return state
	}
	return t.To
}
