package circuit

import (
	"errors"

	"github.com/google/uuid"

	"github.com/ib-77/intcode/pkg/intcode"
)

// Exit describes how a machine finished.
type Exit struct {
	Engine uuid.UUID
	State  intcode.State
	PC     int64
}

// Classify turns the error returned by Run into a Result. When hangup is
// set, an input or output that failed because the peer closed its link is an
// expected stop rather than a fault.
func Classify(m *intcode.Machine, err error, hangup bool) Result[Exit] {
	exit := Exit{Engine: m.ID(), State: m.State(), PC: m.PC()}

	switch {
	case err == nil:
		return Success(exit)
	case IsCancellationError(err):
		return Cancel[Exit](err)
	case hangup && IsHangup(err):
		return Stop(exit, err)
	}
	return Fail[Exit](err)
}

// IsHangup reports whether err is an I/O instruction that found its link
// closed.
func IsHangup(err error) bool {
	var (
		ie *intcode.InputError
		oe *intcode.OutputError
	)
	if errors.As(err, &ie) {
		return ie.Closed()
	}
	if errors.As(err, &oe) {
		return oe.Closed()
	}
	return false
}

func IsCancellationError(err error) bool {
	return intcode.IsCanceled(err)
}

// GetErrors flattens a joined error.
func GetErrors(err error) []error {
	if err == nil {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}
