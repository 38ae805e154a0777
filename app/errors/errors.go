package errors

import "fmt"

// WithHint is implemented by errors that suggest a fix to the user.
type WithHint interface{ Hint() string }

// Runtime is an error reported to the user, with an optional underlying
// cause and a hint on how to fix it.
type Runtime struct {
	msg   string
	cause error
	hint  string
}

func NewRuntimeError(msg string, cause error, hint string) Runtime {
	return Runtime{msg: msg, cause: cause, hint: hint}
}

func (e Runtime) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %s", e.msg, e.cause)
}

func (e Runtime) Unwrap() error {
	return e.cause
}

func (e Runtime) Hint() string {
	return e.hint
}
