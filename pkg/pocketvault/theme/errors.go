package theme

import "fmt"

// Persistence operations reported in PersistenceFailure.Op.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// PersistenceFailure records a failed read or write of the saved mode.
//
// It is never returned from Manager methods. It reaches the diagnostics
// logger and Options.OnFailure only.
type PersistenceFailure struct {
	Op   string // OpRead or OpWrite
	Key  string // Store key involved
	Mode Mode   // Mode being written; empty for reads
	Err  error  // Underlying store error
}

func (e *PersistenceFailure) Error() string {
	if e.Op == OpWrite {
		return fmt.Sprintf("theme: write %s=%s: %v", e.Key, e.Mode, e.Err)
	}
	return fmt.Sprintf("theme: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceFailure) Unwrap() error {
	return e.Err
}
