package domain

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrSessionNotFound   = errors.New("session not found")
)

func illegal(action string, phase Phase) error {
	return fmt.Errorf("%w: cannot %s during %s", ErrIllegalTransition, action, phase)
}
