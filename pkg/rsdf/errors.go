package rsdf

import (
	"errors"
	"fmt"
)

var (
	ErrTrainNotFound = errors.New("train not found")
	ErrStopNotFound  = errors.New("stop not found on route")
)

// ValidationError rejects a malformed request before any state mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
