package model

// Markers used by the TUI list.
// Single-width characters keep terminal columns aligned.
const (
	IconClean    = "✓" // File without unrecognized words
	IconRejected = "✗" // File with unrecognized words
	IconLine     = "›" // Source line entry
	IconTarget   = "▶" // Offending line inside a context window
)
