package types

// Class is the category a received byte falls into.
type Class uint8

const (
	ClassOther Class = iota
	ClassNumber
	ClassLetter
)

// Code is the single byte echoed back to the host for this class.
func (c Class) Code() byte {
	switch c {
	case ClassNumber:
		return 'N'
	case ClassLetter:
		return 'L'
	default:
		return 'O'
	}
}

func (c Class) String() string {
	switch c {
	case ClassNumber:
		return "number"
	case ClassLetter:
		return "letter"
	default:
		return "other"
	}
}

// ClassFromCode maps an echoed byte back to its class.
func ClassFromCode(b byte) (Class, bool) {
	switch b {
	case 'N':
		return ClassNumber, true
	case 'L':
		return ClassLetter, true
	case 'O':
		return ClassOther, true
	}
	return ClassOther, false
}
