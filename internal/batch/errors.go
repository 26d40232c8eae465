package batch

import (
	"errors"
	"fmt"
)

// ErrValidation marks whole-batch rejections detected before any conversion
// work begins: unsupported target format, unusable destination directory, or
// an empty request. No Report is produced when a validation error is returned.
var ErrValidation = errors.New("validation error")

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is a whole-batch validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
