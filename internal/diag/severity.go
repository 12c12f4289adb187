package diag

// Severity orders diagnostics; higher is worse.
type Severity uint8

const (
	SevInfo    Severity = iota // informational remarks
	SevWarning                 // strict-mode style issues and cache trouble
	SevError                   // the lex or parse call failed
)

var severityNames = [...]string{"INFO", "WARNING", "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Fails reports whether a diagnostic of this severity means the call failed.
func (s Severity) Fails() bool { return s >= SevError }

// Replayable reports whether a cached successful parse must reproduce
// diagnostics of this severity on a hit.
func (s Severity) Replayable() bool { return s >= SevWarning && !s.Fails() }
