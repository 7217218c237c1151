package seriallink

import (
	"uartecho-go/types"
	"uartecho-go/x/mathx"
)

// Classify sorts a byte into Number ('0'..'9'), Letter (ASCII a-z, A-Z)
// or Other. It is total over all 256 values.
func Classify(b byte) types.Class {
	switch {
	case mathx.Between(b, '0', '9'):
		return types.ClassNumber
	case mathx.Between(b, 'a', 'z'), mathx.Between(b, 'A', 'Z'):
		return types.ClassLetter
	default:
		return types.ClassOther
	}
}

// Reply returns the byte echoed for b.
func Reply(b byte) byte { return Classify(b).Code() }
