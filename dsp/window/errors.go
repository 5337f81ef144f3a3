package window

import (
	"errors"
	"fmt"
)

var (
	errInvalidLength    = errors.New("window length must be > 0")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", errInvalidLength, size)
	}

	return nil
}

func validateTukey(size int, alpha float64) error {
	if err := validateLength(size); err != nil {
		return err
	}

	return fmt.Errorf("tukey alpha must be in [0,1]: %v", alpha)
}
