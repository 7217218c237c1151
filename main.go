//go:build rp2040 || rp2350

package main

import (
	"context"
	"time"

	"uartecho-go/services/button"
	"uartecho-go/services/echo"
	"uartecho-go/services/hal/platform"
	"uartecho-go/services/hal/platform/boards"
	"uartecho-go/services/seriallink"
	"uartecho-go/types"
)

// printObserver logs over the USB console. Only rate changes are
// reported; per-byte prints would stall the loop.
type printObserver struct{}

func (printObserver) Received(rx, reply byte, echoed bool) {
	if !echoed {
		println("[echo] tx busy, reply dropped for", rx)
	}
}

func (printObserver) BaudChanged(from, to types.BaudRate) {
	println("[echo] baud", from.Bps(), "->", to.Bps())
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(1500 * time.Millisecond)
	b := boards.Selected
	println("[echo] boot", b.Name)

	pins := platform.DefaultPinFactory()
	led, ok := pins.ByNumber(b.LED)
	if !ok {
		halt("no LED pin")
	}
	btn, ok := pins.ByNumber(b.Button)
	if !ok {
		halt("no button pin")
	}
	mon := button.New(led, btn)
	if err := mon.Init(); err != nil {
		halt(err.Error())
	}

	port, ok := platform.DefaultUARTFactory().ByID(b.UART)
	if !ok {
		halt("no uart " + b.UART)
	}
	link := seriallink.New(port)
	if err := link.Init(); err != nil {
		halt(err.Error())
	}
	println("[echo] uart", b.UART, "at", link.Config().BaudRate())

	echo.New(link, mon, printObserver{}).Run(context.Background())
}

func halt(msg string) {
	println("[echo] FAIL:", msg)
	for {
		time.Sleep(time.Hour)
	}
}
