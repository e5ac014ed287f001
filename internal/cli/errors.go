package cli

// UsageError means the command line was incomplete or malformed.
// The operation is not attempted and the store is never touched.
type UsageError struct {
	Hint string // printed as-is; empty means help was already shown
	Tip  string // optional muted follow-up line
}

func (e *UsageError) Error() string {
	if e.Hint == "" {
		return "usage"
	}
	return e.Hint
}

func usage(hint string) error { return &UsageError{Hint: hint} }
