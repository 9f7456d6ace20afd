package circuit

import (
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of one unit of circuit work.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
	isStop    bool
	isCancel  bool
	hasResult bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		hasResult: true,
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Stop is an expected shutdown: the work ended because its peer hung up.
// It keeps the value observed at the time of the stop.
func Stop[T any](r T, err error) Result[T] {
	return Result[T]{
		result:    r,
		err:       err,
		isStop:    true,
		createdAt: time.Now().UTC(),
		hasResult: true,
		id:        uuid.New(),
	}
}

func Cancel[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		isCancel:  true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// FailFrom carries a non-successful result over to another value type. A
// stop stays a stop, without its value.
func FailFrom[In, Out any](from Result[In]) Result[Out] {
	return Result[Out]{
		err:       from.err,
		isStop:    from.isStop,
		isCancel:  from.isCancel,
		createdAt: from.createdAt,
		id:        from.id,
	}
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

// IsFailure reports a genuine fault, neither stop nor cancel.
func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && !r.isStop && !r.isCancel
}

func (r Result[T]) IsStop() bool {
	return r.isStop
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

// IsFinished reports success or an expected stop.
func (r Result[T]) IsFinished() bool {
	return r.isSuccess || r.isStop
}

func (r Result[T]) HasResult() bool {
	return r.hasResult
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}

// Finally reduces a result to a concrete value.
func Finally[In, Out any](r Result[In],
	onSuccess func(r In) Out,
	onError func(err error) Out,
	onCancel func(err error) Out) Out {

	switch {
	case r.IsFinished():
		return onSuccess(r.Result())
	case r.IsCancel():
		return onCancel(r.Err())
	default:
		return onError(r.Err())
	}
}
