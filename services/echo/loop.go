// Package echo composes the serial link and the button monitor into the
// single cooperative control loop.
package echo

import (
	"context"

	"uartecho-go/services/button"
	"uartecho-go/services/seriallink"
	"uartecho-go/types"
)

// Observer receives loop events. Calls happen on the loop itself, so
// implementations must return promptly.
type Observer interface {
	// Received reports a byte, the reply chosen for it and whether the
	// reply reached the peripheral.
	Received(rx, reply byte, echoed bool)
	BaudChanged(from, to types.BaudRate)
}

// Loop drives both components from one goroutine. Neither component sees
// the other.
type Loop struct {
	link *seriallink.Link
	mon  *button.Monitor
	obs  Observer
}

// New builds a loop. obs may be nil.
func New(link *seriallink.Link, mon *button.Monitor, obs Observer) *Loop {
	return &Loop{link: link, mon: mon, obs: obs}
}

// Step runs one iteration: receive, classify, echo, maybe change rate,
// then mirror the button onto the LED. Nothing in it blocks.
func (l *Loop) Step() {
	if rx, ok := l.link.PollReceive(); ok {
		reply := seriallink.Reply(rx)
		echoed := l.link.TryTransmit(reply)
		if l.obs != nil {
			l.obs.Received(rx, reply, echoed)
		}
		from := l.link.Baud()
		if l.link.MaybeReconfigure(rx) && l.obs != nil {
			l.obs.BaudChanged(from, l.link.Baud())
		}
	}
	l.mon.Refresh()
}

// Run repeats Step until ctx is done. Firmware passes a context that is
// never cancelled.
func (l *Loop) Run(ctx context.Context) {
	done := ctx.Done()
	for {
		select {
		case <-done:
			return
		default:
		}
		l.Step()
	}
}
