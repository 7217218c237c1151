// Package probe is the host side of the serial protocol: it sends bytes
// to a running device, decodes the one-byte replies and follows the
// device through its baud-rate change.
package probe

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
	"go.bug.st/serial"
	"go.uber.org/zap"

	"uartecho-go/errcode"
	"uartecho-go/services/hal/platform"
	"uartecho-go/services/seriallink"
	"uartecho-go/types"
)

// ErrQuit is returned by Exec for the "quit" command.
var ErrQuit = errors.New("quit")

// Result is the outcome of sending one byte.
type Result struct {
	Sent    byte
	Reply   byte
	Class   types.Class
	Timeout bool
	// Mismatch is set when the reply differs from what the device should
	// have answered for Sent.
	Mismatch bool
}

func (r Result) String() string {
	if r.Timeout {
		return fmt.Sprintf("%q -> (no reply)", r.Sent)
	}
	s := fmt.Sprintf("%q -> %c (%s)", r.Sent, r.Reply, r.Class)
	if r.Mismatch {
		s += fmt.Sprintf(" MISMATCH, expected %c", seriallink.Reply(r.Sent))
	}
	return s
}

// Session tracks the device's register state so the host port can follow
// it across a rate change.
type Session struct {
	port       serial.Port
	log        *zap.Logger
	followBaud bool

	dev  types.UARTConfig
	baud types.BaudRate
	buf  [1]byte
}

// NewSession assumes the device has just reset, i.e. runs at 9600. The
// port's read timeout bounds the wait for each reply.
func NewSession(port serial.Port, followBaud bool, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		port:       port,
		log:        log,
		followBaud: followBaud,
		dev:        seriallink.Default9600(),
		baud:       types.Baud9600,
	}
}

// Baud is the rate the device is believed to be running at.
func (s *Session) Baud() types.BaudRate { return s.baud }

// SendByte transmits b and waits for its reply.
func (s *Session) SendByte(b byte) (Result, error) {
	res := Result{Sent: b}
	if _, err := s.port.Write([]byte{b}); err != nil {
		return res, errcode.Wrap(errcode.Error, "probe_write", err)
	}
	n, err := s.port.Read(s.buf[:])
	if err != nil {
		return res, errcode.Wrap(errcode.Error, "probe_read", err)
	}
	if n == 0 {
		res.Timeout = true
	} else {
		res.Reply = s.buf[0]
		cls, ok := types.ClassFromCode(res.Reply)
		res.Class = cls
		res.Mismatch = !ok || res.Reply != seriallink.Reply(b)
	}
	if b == seriallink.CommandChangeBaud && s.followBaud {
		// The device replies at the old rate and switches afterwards.
		if err := s.follow(); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *Session) follow() error {
	t, ok := seriallink.Next(s.baud)
	if !ok || !t.Implemented() {
		s.log.Info("device ignores rate change in this state", zap.Stringer("baud", s.baud))
		return nil
	}
	t.Apply(&s.dev)
	if err := s.port.SetMode(platform.ModeFor(s.dev)); err != nil {
		return errcode.Wrap(errcode.Error, "probe_set_mode", err)
	}
	s.log.Info("following device rate change",
		zap.Stringer("from", s.baud),
		zap.Stringer("to", t.To),
		zap.Uint32("bps", s.dev.BaudRate()),
	)
	s.baud = t.To
	return nil
}

// Send transmits text byte by byte, writing one line per reply to w.
func (s *Session) Send(w io.Writer, text string) error {
	for i := 0; i < len(text); i++ {
		res, err := s.SendByte(text[i])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, res)
	}
	return nil
}

// Press asserts RTS, which a null-modem cable presents to the device as
// its button (CTS) line.
func (s *Session) Press() error { return s.port.SetRTS(true) }

func (s *Session) Release() error { return s.port.SetRTS(false) }

// Exec runs one shell command.
func (s *Session) Exec(w io.Writer, args []string) error {
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "send":
		if len(args) < 2 {
			return errcode.New(errcode.InvalidParams, "send", "nothing to send")
		}
		return s.Send(w, strings.Join(args[1:], " "))
	case "press":
		return s.Press()
	case "release":
		return s.Release()
	case "baud":
		fmt.Fprintln(w, s.baud.Bps())
		return nil
	case "quit", "exit":
		return ErrQuit
	default:
		return errcode.New(errcode.Unsupported, args[0], "unknown command")
	}
}

// ExecLine splits line shell-style and runs it.
func (s *Session) ExecLine(w io.Writer, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return errcode.Wrap(errcode.InvalidParams, "parse", err)
	}
	return s.Exec(w, args)
}
