package runtime

import (
	"errors"
	"fmt"
)

// ErrTargetNotAllowed is returned when a fixed-point setter names a target
// outside the closed allow-list.
var ErrTargetNotAllowed = errors.New("patch target not in allow-list")

func errNotAllowedTarget(target string) error {
	return fmt.Errorf("%q: %w", target, ErrTargetNotAllowed)
}
