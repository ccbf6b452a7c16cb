package session

import "fmt"

// ExecutionError wraps a failure raised while executing a session
// operation, carrying the statement that failed. Callers unwrap with
// errors.As to reach it and errors.Is to reach the cause.
type ExecutionError struct {
	Statement string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing %s: %v", e.Statement, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// translate wraps backend errors once; already-translated errors pass
// through.
func translate(statement string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*ExecutionError); ok {
		return err
	}
	return &ExecutionError{Statement: statement, Err: err}
}
