package textsplitter

import "fmt"

// validateOptions checks the configured chunk bounds for correctness.
func validateOptions(o options) error {
	if err := validateChunkLen("min", o.minChunkLen); err != nil {
		return err
	}
	if err := validateChunkLen("max", o.maxChunkLen); err != nil {
		return err
	}

	if o.minChunkLen > o.maxChunkLen {
		return fmt.Errorf("%w: min chunk length (%d) must not exceed max chunk length (%d)",
			ErrInvalidChunkLen, o.minChunkLen, o.maxChunkLen)
	}

	return nil
}

func validateChunkLen(which string, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %s chunk length must be positive: %d", ErrInvalidChunkLen, which, n)
	}

	if n > maxAllowedChunkLen {
		return fmt.Errorf("%w: %s chunk length too large: %d (max: %d)", ErrInvalidChunkLen, which, n, maxAllowedChunkLen)
	}

	return nil
}
