// Package domain contains the core types of the toolchain wrapper.
package domain

// CommandResult is the captured outcome of a single arduino-cli invocation.
// It is immutable once produced: the runner creates it, the cache persists
// it, and everything above only reads it.
type CommandResult struct {
	// Command is the logical command string, e.g. "compile -b arduino:avr:uno blink".
	// It doubles as the cache key and is distinct from the argv actually executed.
	Command string `json:"command"`
	Success bool   `json:"success"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

// ErrorText returns the authoritative error text for a failed result:
// stderr when non-empty, otherwise stdout.
func (r CommandResult) ErrorText() string {
	if r.Stderr != "" {
		return r.Stderr
	}
	return r.Stdout
}

// UnexecutedResult returns the sentinel result for a logical command that has
// never been executed and stored. It is a defined state, not an error: the
// caller is expected to run the command out-of-band and store the result.
func UnexecutedResult(logical string) CommandResult {
	return CommandResult{
		Command: "arduino-cli " + logical,
		Success: false,
		Stderr: "command not yet executed: run it in a terminal first, " +
			"then store the result with the store operation",
	}
}
