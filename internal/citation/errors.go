package citation

import "fmt"

// ValidationError reports malformed input: missing title or authors,
// confidence out of range, unknown style or sort key. It is always raised
// at the offending call and never coerced away.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a lookup of an unknown citation key.
type NotFoundError struct {
	Key string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("citation not found: %s", e.Key)
}

// ConsistencyError reports a broken internal invariant, such as a key
// collision the disambiguator could not resolve or a snapshot with
// dangling usage records. It is surfaced, never swallowed.
type ConsistencyError struct {
	Reason string
}

func (e ConsistencyError) Error() string {
	return "consistency: " + e.Reason
}
