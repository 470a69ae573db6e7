package lua

import "fmt"

// ScriptError is a malformed argument to the grid API.
type ScriptError struct {
	Msg string
}

func (e *ScriptError) Error() string {
	return e.Msg
}

func errorf(format string, args ...any) error {
	return &ScriptError{Msg: fmt.Sprintf(format, args...)}
}
