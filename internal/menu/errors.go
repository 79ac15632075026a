package menu

import (
	"errors"
	"fmt"
)

var (
	// ErrMarkupShape is returned in strict mode when a section or item lacks
	// the node its label or name is read from.
	ErrMarkupShape = errors.New("unexpected menu markup")

	// ErrUnknownCategory matches any *UnknownCategoryError.
	ErrUnknownCategory = errors.New("unknown menu category")
)

// UnknownCategoryError reports a section heading that Classify rejected.
type UnknownCategoryError struct {
	Label string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown menu category %q", e.Label)
}

func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}
