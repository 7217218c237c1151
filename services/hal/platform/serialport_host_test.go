//go:build !rp2040 && !rp2350

package platform

import (
	"errors"
	"testing"
	"time"

	"go.bug.st/serial"

	"uartecho-go/errcode"
	"uartecho-go/types"
)

// --- minimal fake implementing serial.Port ---

type fakeSerial struct {
	rx      []byte
	tx      []byte
	modes   []serial.Mode
	timeout time.Duration
	cts     bool
	dtr     []bool
	closed  bool
	calls   []string
}

func (f *fakeSerial) SetMode(m *serial.Mode) error {
	f.modes = append(f.modes, *m)
	f.calls = append(f.calls, "set_mode")
	return nil
}
func (f *fakeSerial) Read(p []byte) (int, error) {
	if len(f.rx) == 0 {
		return 0, nil
	}
	n := copy(p, f.rx)
	f.rx = f.rx[n:]
	return n, nil
}
func (f *fakeSerial) Write(p []byte) (int, error) {
	f.tx = append(f.tx, p...)
	f.calls = append(f.calls, "write")
	return len(p), nil
}
func (f *fakeSerial) Drain() error             { f.calls = append(f.calls, "drain"); return nil }
func (f *fakeSerial) ResetInputBuffer() error  { f.rx = nil; return nil }
func (f *fakeSerial) ResetOutputBuffer() error { return nil }
func (f *fakeSerial) SetDTR(v bool) error      { f.dtr = append(f.dtr, v); return nil }
func (f *fakeSerial) SetRTS(bool) error        { return nil }
func (f *fakeSerial) GetModemStatusBits() (*serial.ModemStatusBits, error) {
	return &serial.ModemStatusBits{CTS: f.cts}, nil
}
func (f *fakeSerial) SetReadTimeout(t time.Duration) error { f.timeout = t; return nil }
func (f *fakeSerial) Close() error                         { f.closed = true; return nil }
func (f *fakeSerial) Break(time.Duration) error            { return nil }

func cfg9600() types.UARTConfig {
	return types.UARTConfig{
		ClockHz:      types.ReferenceClockHz,
		Divisor:      19,
		FirstMod:     8,
		SecondMod:    0x55,
		Oversampling: types.OversamplingBaudGeneration,
		DataBits:     8,
	}
}

func openFake(fs *fakeSerial, opened *serial.Mode) OpenFunc {
	return func(name string, mode *serial.Mode) (serial.Port, error) {
		*opened = *mode
		return fs, nil
	}
}

func TestSerialPort_ConfigureOpensThenReconfigures(t *testing.T) {
	fs := &fakeSerial{}
	var opened serial.Mode
	p := NewSerialPortWith("/dev/ttyTEST", time.Millisecond, openFake(fs, &opened))

	if err := p.Configure(cfg9600()); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if opened.BaudRate != 9600 || opened.DataBits != 8 || opened.Parity != serial.NoParity || opened.StopBits != serial.OneStopBit {
		t.Fatalf("unexpected open mode: %+v", opened)
	}
	if fs.timeout != time.Millisecond {
		t.Fatalf("read timeout not applied: %v", fs.timeout)
	}

	c := cfg9600()
	c.Divisor, c.FirstMod, c.SecondMod = 9, 12, 0x22
	if err := p.Configure(c); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}
	if len(fs.modes) != 1 || fs.modes[0].BaudRate != 19200 {
		t.Fatalf("expected SetMode(19200), got %+v", fs.modes)
	}
}

func TestSerialPort_ReconfigureDrainsPendingEcho(t *testing.T) {
	fs := &fakeSerial{}
	var opened serial.Mode
	p := NewSerialPortWith("x", 0, openFake(fs, &opened))
	if err := p.Configure(cfg9600()); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	p.Enable()
	if err := p.WriteByte('O'); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}

	c := cfg9600()
	c.Divisor, c.FirstMod, c.SecondMod = 9, 12, 0x22
	if err := p.Configure(c); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}
	want := []string{"write", "drain", "set_mode"}
	if len(fs.calls) != len(want) {
		t.Fatalf("calls=%v, want %v", fs.calls, want)
	}
	for i := range want {
		if fs.calls[i] != want[i] {
			t.Fatalf("calls=%v, want %v", fs.calls, want)
		}
	}
}

func TestSerialPort_OpenFailureIsUnknownPort(t *testing.T) {
	p := NewSerialPortWith("nope", 0, func(string, *serial.Mode) (serial.Port, error) {
		return nil, errors.New("no such device")
	})
	err := p.Configure(cfg9600())
	if !errors.Is(err, errcode.UnknownPort) {
		t.Fatalf("want unknown_port, got %v", err)
	}
	p.Enable()
	if p.RxReady() || p.TxReady() {
		t.Fatalf("flags must stay low without a port")
	}
}

func TestSerialPort_RejectsMSBFirst(t *testing.T) {
	fs := &fakeSerial{}
	var opened serial.Mode
	p := NewSerialPortWith("x", 0, openFake(fs, &opened))
	c := cfg9600()
	c.BitOrder = types.MSBFirst
	if err := p.Configure(c); !errors.Is(err, errcode.Unsupported) {
		t.Fatalf("want unsupported, got %v", err)
	}
}

func TestSerialPort_LookAheadReceive(t *testing.T) {
	fs := &fakeSerial{rx: []byte("7Q")}
	var opened serial.Mode
	p := NewSerialPortWith("x", 0, openFake(fs, &opened))
	_ = p.Configure(cfg9600())

	if p.RxReady() {
		t.Fatalf("RxReady before Enable")
	}
	p.Enable()
	if !p.RxReady() || !p.RxReady() {
		t.Fatalf("RxReady should stay set until read")
	}
	if b, err := p.ReadByte(); err != nil || b != '7' {
		t.Fatalf("ReadByte=%q,%v", b, err)
	}
	if !p.RxReady() {
		t.Fatalf("second byte not seen")
	}
	if b, _ := p.ReadByte(); b != 'Q' {
		t.Fatalf("ReadByte=%q", b)
	}
	if p.RxReady() {
		t.Fatalf("RxReady with empty port")
	}
	if _, err := p.ReadByte(); !errors.Is(err, errcode.Timeout) {
		t.Fatalf("want timeout, got %v", err)
	}

	if !p.TxReady() {
		t.Fatalf("TxReady after Enable")
	}
	_ = p.WriteByte('N')
	if string(fs.tx) != "N" {
		t.Fatalf("tx=%q", fs.tx)
	}

	if err := p.Close(); err != nil || !fs.closed {
		t.Fatalf("Close: %v closed=%v", err, fs.closed)
	}
}

func TestSerialPort_ModemLinesAsPins(t *testing.T) {
	fs := &fakeSerial{}
	var opened serial.Mode
	p := NewSerialPortWith("x", 0, openFake(fs, &opened))
	_ = p.Configure(cfg9600())

	btn, led := p.Button(), p.LED()
	if err := btn.ConfigureOutput(false); !errors.Is(err, errcode.Unsupported) {
		t.Fatalf("CTS as output: %v", err)
	}
	if err := led.ConfigureOutput(false); err != nil {
		t.Fatalf("DTR output: %v", err)
	}

	if !btn.Get() {
		t.Fatalf("deasserted CTS should read high")
	}
	fs.cts = true
	if btn.Get() {
		t.Fatalf("asserted CTS should read low")
	}

	led.Set(true)
	led.Set(true)
	led.Set(false)
	if len(fs.dtr) != 3 || fs.dtr[1] != true || fs.dtr[2] != false {
		t.Fatalf("unexpected DTR writes: %v", fs.dtr)
	}
}
