package orchestrator

import "errors"

// ErrFatalConfig matches every FatalConfigError via errors.Is.
var ErrFatalConfig = errors.New("fatal configuration error")

// FatalConfigError aborts a check: the configuration cannot produce any
// meaningful result. It is the only error Check returns.
type FatalConfigError struct {
	Err error
}

func (e *FatalConfigError) Error() string {
	return ErrFatalConfig.Error() + ": " + e.Err.Error()
}

func (e *FatalConfigError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFatalConfig.
func (e *FatalConfigError) Is(target error) bool {
	return target == ErrFatalConfig
}
