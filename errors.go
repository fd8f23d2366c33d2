package merkdown

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument is returned when the input does not start with a
	// title heading.
	ErrMalformedDocument = errors.New("markdown file should start with a title headline")
	// ErrBulletOutsideSlide is returned for bullets that appear before the
	// first slide heading.
	ErrBulletOutsideSlide = errors.New("bullet before the first slide heading")
)

// ParseError locates a structural error in the input.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
