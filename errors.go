package placeholder

import "fmt"

// PlaceholderError reports that a strict fill aborted because a
// placeholder had no resolvable value.
type PlaceholderError struct {
	Name string
}

func (pe *PlaceholderError) Error() string {
	return fmt.Sprintf(
		"missing value for placeholder named '%s'.", pe.Name,
	)
}

// SerializationError reports that a struct fill could not serialize
// its replacement value to a string-keyed structure.
type SerializationError struct {
	Err error
}

func (se *SerializationError) Error() string {
	return fmt.Sprintf("serializing replacements: %v", se.Err)
}

func (se *SerializationError) Unwrap() error {
	return se.Err
}
