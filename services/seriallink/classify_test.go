package seriallink

import (
	"testing"

	"uartecho-go/types"
)

func TestClassify_AllBytes(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := byte(i)
		var want types.Class
		switch {
		case b >= '0' && b <= '9':
			want = types.ClassNumber
		case (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z'):
			want = types.ClassLetter
		default:
			want = types.ClassOther
		}
		if got := Classify(b); got != want {
			t.Errorf("Classify(%#02x)=%v want %v", b, got, want)
		}
		if again := Classify(b); again != want {
			t.Errorf("Classify(%#02x) not deterministic", b)
		}
	}
}

func TestReply_Codes(t *testing.T) {
	cases := []struct {
		in   byte
		want byte
	}{
		{'7', 'N'},
		{'0', 'N'},
		{'9', 'N'},
		{'Q', 'L'},
		{'a', 'L'},
		{'z', 'L'},
		{'#', 'O'},
		{' ', 'O'},
		{'!', 'O'},
		{'_', 'O'},
		{'\n', 'O'},
		{'@', 'O'}, // just below 'A'
		{'[', 'O'}, // just above 'Z'
		{'`', 'O'}, // just below 'a'
		{'{', 'O'}, // just above 'z'
		{0xC9, 'O'},
	}
	for _, tc := range cases {
		if got := Reply(tc.in); got != tc.want {
			t.Errorf("Reply(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}
