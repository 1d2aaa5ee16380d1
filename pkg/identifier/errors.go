package identifier

import "fmt"

// UnknownEntityTypeError indicates the entity type was never registered.
type UnknownEntityTypeError struct {
	EntityType string
}

func (e *UnknownEntityTypeError) Error() string {
	return fmt.Sprintf("identifier: unknown entity type %q", e.EntityType)
}

// UnknownPrefixError indicates the identifier's prefix does not match any
// registered entity type.
type UnknownPrefixError struct {
	Prefix string
}

func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("identifier: unknown prefix %q", e.Prefix)
}

// InvalidFormatError indicates the identifier does not have the expected
// {prefix}{separator}{random} shape.
type InvalidFormatError struct {
	ID     string
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("identifier: invalid id %q: %s", e.ID, e.Reason)
}
