package circuit

import (
	"context"
	"sync"

	"github.com/ib-77/intcode/pkg/intcode"
)

// Session gives request/response access to a machine running on its own
// goroutine.
type Session struct {
	cmd     *intcode.Sender
	replies *intcode.Receiver
	exit    <-chan Result[Exit]

	once   sync.Once
	result Result[Exit]
}

// Open binds fresh links to m and starts it.
func Open(ctx context.Context, m *intcode.Machine) (*Session, error) {
	cmdTx, cmdRx := intcode.NewLink()
	replyTx, replyRx := intcode.NewLink()
	if err := m.BindInput(cmdRx); err != nil {
		return nil, err
	}
	if err := m.BindOutput(replyTx); err != nil {
		return nil, err
	}

	return &Session{
		cmd:     cmdTx,
		replies: replyRx,
		exit:    Spawn(ctx, m, ExpectHangup()),
	}, nil
}

func (s *Session) Send(v int64) error {
	return s.cmd.Send(v)
}

func (s *Session) Recv(ctx context.Context) (int64, error) {
	return s.replies.Recv(ctx)
}

// Ask sends one command and waits for one reply.
func (s *Session) Ask(ctx context.Context, v int64) (int64, error) {
	if err := s.cmd.Send(v); err != nil {
		return 0, err
	}
	return s.replies.Recv(ctx)
}

// Close hangs up and waits for the machine to exit. An engine left waiting
// for a command stops with an expected hangup.
func (s *Session) Close() Result[Exit] {
	s.once.Do(func() {
		s.cmd.Close()
		s.replies.Close()
		s.result = <-s.exit
	})
	return s.result
}
