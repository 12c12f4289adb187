// Package diag defines the diagnostic model shared by the lexer, parser and driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string form (LEX/SYN/IO/OBS ranges), a short Message, the Primary span and
// optional Notes.
//
// Producers emit through a Reporter so the core packages stay unaware of
// storage. BagReporter collects into a bounded Bag, which the driver hands to
// internal/diagfmt for rendering. Package diag performs no formatting and no IO.
package diag
