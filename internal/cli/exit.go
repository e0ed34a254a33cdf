package cli

import (
	"errors"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
)

// Exit codes of the rgehandler tool.
const (
	exitOK         = 0
	exitUsage      = 1 // bad command line
	exitInvalid    = 2 // startup handler invalid
	exitBadSetNo   = 3 // -s value is not an int
	exitSetOutside = 4 // -s value outside 1..#sets
	exitFailure    = 5 // any other failure of a subcommand
)

type exitError struct {
	code     int
	msg      string
	err      error
	reported bool // already printed
}

func (e *exitError) Error() string {
	switch {
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		return "exit status"
	}
}

func (e *exitError) Unwrap() error { return e.err }

// reported marks err as already printed.
func reported(code int, err error) error {
	return &exitError{code: code, err: err, reported: true}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if domain.IsKind(err, domain.KindOutOfRange) {
		return exitSetOutside
	}
	return exitFailure
}

func isReported(err error) bool {
	var ee *exitError
	return errors.As(err, &ee) && ee.reported
}
