package cmd

import "errors"

// exitError requests a specific process exit code after a command has
// finished cleanly. Returning it instead of calling os.Exit lets deferred
// cleanup (source and cache handles) run first.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}
