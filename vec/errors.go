package vec

import (
	"errors"
	"fmt"
)

// ErrDegenerateVector is matched by every DegenerateVectorError
var ErrDegenerateVector = errors.New("degenerate vector")

// DegenerateVectorError reports an operation that needs a direction but got a
// zero-length vector
type DegenerateVectorError struct {
	Op string
}

func (e *DegenerateVectorError) Error() string {
	return fmt.Sprintf("%s: zero-length vector", e.Op)
}

// Is lets errors.Is match ErrDegenerateVector
func (e *DegenerateVectorError) Is(target error) bool {
	return target == ErrDegenerateVector
}
