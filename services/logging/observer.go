package logging

import (
	"go.uber.org/zap"

	"uartecho-go/services/seriallink"
	"uartecho-go/types"
)

// Observer reports control-loop events through zap. It satisfies
// echo.Observer.
type Observer struct {
	log *zap.Logger
}

func NewObserver(log *zap.Logger) *Observer {
	return &Observer{log: log.With(zap.String("component", "loop"))}
}

func (o *Observer) Received(rx, reply byte, echoed bool) {
	fields := []zap.Field{
		zap.String("rx", string(rune(rx))),
		zap.Uint8("rx_byte", rx),
		zap.Stringer("class", seriallink.Classify(rx)),
		zap.String("reply", string(rune(reply))),
	}
	if !echoed {
		o.log.Warn("echo dropped, transmitter busy", fields...)
		return
	}
	o.log.Debug("byte classified", fields...)
}

func (o *Observer) BaudChanged(from, to types.BaudRate) {
	o.log.Info("baud rate changed",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
}
