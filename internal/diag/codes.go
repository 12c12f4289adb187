package diag

import (
	"fmt"
)

// Code is a compact diagnostic identifier; the thousands digit selects the phase.
type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo         Code = 1000
	LexUnknownChar  Code = 1001
	LexTokenTooLong Code = 1002

	// Группировка скобок и выражений
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynMismatchedBracket Code = 2003
	SynNestingTooDeep    Code = 2004
	SynEmptyStatement    Code = 2005

	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexUnknownChar:       "Unexpected character",
	LexTokenTooLong:      "Token is too long",
	SynInfo:              "Grouping information",
	SynUnexpectedToken:   "Unexpected token",
	SynUnclosedDelimiter: "Unclosed group at end of input",
	SynMismatchedBracket: "Closing bracket does not match its opener",
	SynNestingTooDeep:    "Brackets nested too deeply",
	SynEmptyStatement:    "Empty statement",
	IOLoadFileError:      "I/O load file error",
	IOCacheError:         "Parse cache error",
	ObsInfo:              "Observability information",
	ObsTimings:           "Pipeline timings",
}

// ID returns the stable identifier, e.g. "LEX1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Title returns the short human description of the code.
func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
