package domain

import "fmt"

// ValidationError reports user input that cannot start a simulation:
// a bad customer count, a custom sequence of the wrong length, or a
// random number outside its stream's legal range. Index is 1-based
// and 0 when the error concerns the whole sequence.
type ValidationError struct {
	Stream string
	Index  int
	Value  int
	Min    int
	Max    int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		if e.Stream != "" {
			return fmt.Sprintf("validate %s: %s", e.Stream, e.Reason)
		}
		return fmt.Sprintf("validate input: %s", e.Reason)
	}

	return fmt.Sprintf(
		"validate %s: value %d at position %d is outside [%d, %d]",
		e.Stream, e.Value, e.Index, e.Min, e.Max,
	)
}

// ParseError reports a token in delimited random-number text that is
// not an integer. Pos is the 1-based position of the token among the
// non-empty tokens of its stream.
type ParseError struct {
	Stream string
	Token  string
	Pos    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: token %q at position %d is not an integer", e.Stream, e.Token, e.Pos)
}

// ConfigurationError reports a defective table or problem definition:
// a distribution table with gaps in its random-number coverage, or a
// probability set that does not sum to one. These are configuration
// defects, not user input errors, and abort the run before any
// simulation work.
type ConfigurationError struct {
	Table  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("configuration: %s", e.Reason)
	}

	return fmt.Sprintf("configuration: table %q: %s", e.Table, e.Reason)
}
