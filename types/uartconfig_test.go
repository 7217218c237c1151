package types

import (
	"errors"
	"testing"

	"uartecho-go/errcode"
)

func regs(div uint16, first, second uint8) UARTConfig {
	return UARTConfig{
		ClockHz:      ReferenceClockHz,
		Divisor:      div,
		FirstMod:     first,
		SecondMod:    second,
		Oversampling: OversamplingBaudGeneration,
		DataBits:     8,
	}
}

func TestUARTConfig_BaudRate(t *testing.T) {
	cases := []struct {
		name string
		cfg  UARTConfig
		want uint32
	}{
		{"9600", regs(19, 8, 0x55), 9600},
		{"19200", regs(9, 12, 0x22), 19200},
		{"zero divisor", regs(0, 0, 0), 0},
	}
	for _, tc := range cases {
		if got := tc.cfg.BaudRate(); got != tc.want {
			t.Errorf("%s: BaudRate()=%d want %d", tc.name, got, tc.want)
		}
	}

	low := regs(312, 0, 0x55)
	low.Oversampling = LowFrequencyBaudGeneration
	if got := low.BaudRate(); got != 9600 {
		t.Errorf("low-frequency BaudRate()=%d want 9600", got)
	}
}

func TestUARTConfig_Validate(t *testing.T) {
	if err := regs(19, 8, 0x55).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	bad := []UARTConfig{
		regs(0, 8, 0x55),
		regs(19, 16, 0x55),
		{Divisor: 19, DataBits: 8},
	}
	b := regs(19, 8, 0x55)
	b.DataBits = 5
	bad = append(bad, b)

	for i, c := range bad {
		err := c.Validate()
		if !errors.Is(err, errcode.InvalidParams) {
			t.Errorf("case %d: want invalid_params, got %v", i, err)
		}
	}
}

func TestBaudRate_Bps(t *testing.T) {
	want := map[BaudRate]uint32{Baud9600: 9600, Baud19200: 19200, Baud38400: 38400, Baud57600: 57600}
	for b, bps := range want {
		if b.Bps() != bps || b.String() == "" {
			t.Errorf("%v: Bps()=%d want %d", b, b.Bps(), bps)
		}
	}
}

func TestClass_CodeRoundTrip(t *testing.T) {
	for _, c := range []Class{ClassNumber, ClassLetter, ClassOther} {
		got, ok := ClassFromCode(c.Code())
		if !ok || got != c {
			t.Errorf("ClassFromCode(%q)=%v,%v want %v", c.Code(), got, ok, c)
		}
	}
	if _, ok := ClassFromCode('x'); ok {
		t.Errorf("ClassFromCode('x') should fail")
	}
}
