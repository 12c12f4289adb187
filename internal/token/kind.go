package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero Kind; the lexer never returns it on success.
	Invalid Kind = iota
	// EOF is the end-of-input sentinel. It always has empty Text.
	EOF
	// Value is a run of ASCII letters, digits and underscores.
	Value
	// Punct is one structural character: { } ( ) ;
	Punct
	// Operator is one of + - * / = ; produced only when the lexer
	// runs with Options.Operators enabled.
	Operator
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Value:
		return "Value"
	case Punct:
		return "Punct"
	case Operator:
		return "Operator"
	default:
		return "Kind(?)"
	}
}

// IsPunctChar reports whether b is one of the structural characters.
func IsPunctChar(b byte) bool {
	switch b {
	case '{', '}', '(', ')', ';':
		return true
	}
	return false
}

// IsOperatorChar reports whether b lexes as an Operator in operator mode.
func IsOperatorChar(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '=':
		return true
	}
	return false
}

// CanBeOperatorChar reports whether b may be configured as an extra
// single-byte operator: printable ASCII that is neither punctuation nor
// part of a value run.
func CanBeOperatorChar(b byte) bool {
	if b <= ' ' || b > '~' || IsPunctChar(b) {
		return false
	}
	return !(b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9'))
}
