package intcode

import (
	"context"
	"sync"
)

// link is an unbounded FIFO shared by any number of senders and one receiver.
type link struct {
	mu       sync.Mutex
	queue    []int64
	senders  int
	received bool // receiver closed
	ready    chan struct{}
}

// NewLink returns both ends of a fresh link. Sends never block; a receive
// blocks until a value arrives, every sender is closed, or ctx ends.
func NewLink() (*Sender, *Receiver) {
	l := &link{senders: 1, ready: make(chan struct{}, 1)}
	return &Sender{l: l}, &Receiver{l: l}
}

func (l *link) notify() {
	select {
	case l.ready <- struct{}{}:
	default:
	}
}

// Sender is the writing end of a link.
type Sender struct {
	l      *link
	once   sync.Once
	mu     sync.Mutex
	closed bool
}

// Send queues v. It fails with ErrClosed once the receiver is gone or this
// sender was closed.
func (s *Sender) Send(v int64) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	l := s.l
	l.mu.Lock()
	if l.received {
		l.mu.Unlock()
		return ErrClosed
	}
	l.queue = append(l.queue, v)
	l.mu.Unlock()
	l.notify()
	return nil
}

func (s *Sender) Output(_ context.Context, value int64) error {
	return s.Send(value)
}

// Clone adds another writer to the same link. The link reads as closed only
// after every clone is closed.
func (s *Sender) Clone() *Sender {
	l := s.l
	l.mu.Lock()
	l.senders++
	l.mu.Unlock()
	return &Sender{l: l}
}

// Close drops this writer. It is safe to call more than once.
func (s *Sender) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		l := s.l
		l.mu.Lock()
		l.senders--
		l.mu.Unlock()
		l.notify()
	})
}

// Receiver is the reading end of a link.
type Receiver struct {
	l    *link
	once sync.Once
}

// Recv returns the next value in send order.
func (r *Receiver) Recv(ctx context.Context) (int64, error) {
	l := r.l
	for {
		l.mu.Lock()
		if l.received {
			l.mu.Unlock()
			return 0, ErrClosed
		}
		if len(l.queue) > 0 {
			v := l.queue[0]
			l.queue = l.queue[1:]
			l.mu.Unlock()
			return v, nil
		}
		if l.senders == 0 {
			l.mu.Unlock()
			return 0, ErrClosed
		}
		l.mu.Unlock()

		select {
		case <-l.ready:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

func (r *Receiver) Input(ctx context.Context) (int64, error) {
	return r.Recv(ctx)
}

// Drain returns every queued value without blocking.
func (r *Receiver) Drain() []int64 {
	l := r.l
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.queue
	l.queue = nil
	return out
}

// Close drops the receiver: pending values are discarded and later sends
// fail with ErrClosed.
func (r *Receiver) Close() {
	r.once.Do(func() {
		l := r.l
		l.mu.Lock()
		l.received = true
		l.queue = nil
		l.mu.Unlock()
		l.notify()
	})
}

// Pending is the number of queued values.
func (r *Receiver) Pending() int {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	return len(r.l.queue)
}
