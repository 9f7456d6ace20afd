package intcode

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes program with the given inputs and returns the outputs and
// the final machine.
func run(t *testing.T, program string, inputs ...int64) ([]int64, *Machine, error) {
	t.Helper()

	m, err := Load(program)
	require.NoError(t, err)

	out := &Collector{}
	require.NoError(t, m.BindInput(NewValues(inputs...)))
	require.NoError(t, m.BindOutput(out))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = m.Run(ctx)
	return out.Values(), m, err
}

func TestRun_Arithmetic(t *testing.T) {
	t.Parallel()

	_, m, err := run(t, "1,0,0,0,99")
	require.NoError(t, err)

	v, err := m.Get(0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	assert.Equal(t, Halted, m.State())
}

func TestRun_SmallPrograms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		program string
		want    []int64
	}{
		{"1,9,10,3,2,3,11,0,99,30,40,50", []int64{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}},
		{"2,3,0,3,99", []int64{2, 3, 0, 6, 99}},
		{"2,4,4,5,99,0", []int64{2, 4, 4, 5, 99, 9801}},
		{"1,1,1,4,99,5,6,0,99", []int64{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{"1002,4,3,4,33", []int64{1002, 4, 3, 4, 99}},
		{"1101,100,-1,4,0", []int64{1101, 100, -1, 4, 99}},
	}
	for _, c := range cases {
		_, m, err := run(t, c.program)
		require.NoError(t, err, c.program)
		assert.Equal(t, c.want, m.Snapshot(), c.program)
	}
}

func TestRun_Echo(t *testing.T) {
	t.Parallel()

	m, err := Load("3,0,4,0,99")
	require.NoError(t, err)

	inTx, inRx := NewLink()
	outTx, outRx := NewLink()
	require.NoError(t, m.BindInput(inRx))
	require.NoError(t, m.BindOutput(outTx))

	require.NoError(t, inTx.Send(42))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Run(ctx))

	v, err := outRx.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestRun_ModesAgree(t *testing.T) {
	t.Parallel()

	programs := map[string]string{
		"immediate": "1101,2,3,7,4,7,99,0",
		"position":  "1,8,9,10,4,10,99,0,2,3,0",
		"relative":  "109,10,22201,0,1,2,204,2,99,0,2,3",
	}
	for name, program := range programs {
		out, _, err := run(t, program)
		require.NoError(t, err, name)
		assert.Equal(t, []int64{5}, out, name)
	}
}

func TestRun_Quine(t *testing.T) {
	t.Parallel()

	program := "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	want, err := Parse(program)
	require.NoError(t, err)

	out, _, err := run(t, program)
	require.NoError(t, err)
	assert.Equal(t, want, out)
}

func TestRun_WideIntegers(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "1102,34915192,34915192,7,4,7,99,0")
	require.NoError(t, err)
	assert.Equal(t, []int64{1219070632396864}, out)

	out, _, err = run(t, "104,1125899906842624,99")
	require.NoError(t, err)
	assert.Equal(t, []int64{1125899906842624}, out)
}

func TestRun_Comparisons(t *testing.T) {
	t.Parallel()

	cases := []struct {
		program string
		input   int64
		want    int64
	}{
		{"3,9,8,9,10,9,4,9,99,-1,8", 8, 1},
		{"3,9,8,9,10,9,4,9,99,-1,8", 7, 0},
		{"3,9,7,9,10,9,4,9,99,-1,8", 5, 1},
		{"3,3,1108,-1,8,3,4,3,99", 8, 1},
		{"3,3,1107,-1,8,3,4,3,99", 9, 0},
		{"3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", 0, 0},
		{"3,3,1105,-1,9,1101,0,0,12,4,12,99,1", 3, 1},
	}
	for _, c := range cases {
		out, _, err := run(t, c.program, c.input)
		require.NoError(t, err, c.program)
		assert.Equal(t, []int64{c.want}, out, "%s with %d", c.program, c.input)
	}
}

func TestRun_JumpsAroundEight(t *testing.T) {
	t.Parallel()

	program := "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

	for input, want := range map[int64]int64{7: 999, 8: 1000, 9: 1001} {
		out, _, err := run(t, program, input)
		require.NoError(t, err)
		assert.Equal(t, []int64{want}, out, "input %d", input)
	}
}

func TestRun_SetBeforeRun(t *testing.T) {
	t.Parallel()

	m, err := Load("1,0,0,3,99")
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 4))
	require.NoError(t, m.Set(2, 4))
	require.NoError(t, m.Run(context.Background()))

	v, err := m.Get(3)
	require.NoError(t, err)
	assert.Equal(t, int64(198), v)
}

func TestRun_Faults(t *testing.T) {
	t.Parallel()

	t.Run("opcode zero after tape", func(t *testing.T) {
		_, m, err := run(t, "1,0,0,0")
		var uo *UnrecognizedOpcodeError
		require.ErrorAs(t, err, &uo)
		assert.Equal(t, Opcode(0), uo.Instruction.Op)
		assert.Equal(t, Faulted, m.State())

		var f *Fault
		require.ErrorAs(t, err, &f)
		assert.Equal(t, int64(4), f.PC)
	})

	t.Run("negative write target", func(t *testing.T) {
		_, _, err := run(t, "1101,1,1,-1,99")
		var ob *OutOfBoundsError
		require.ErrorAs(t, err, &ob)
		assert.Equal(t, int64(-1), ob.Address)
	})

	t.Run("negative read", func(t *testing.T) {
		_, _, err := run(t, "4,-5,99")
		var ob *OutOfBoundsError
		require.ErrorAs(t, err, &ob)
		assert.Equal(t, int64(-5), ob.Address)
	})

	t.Run("immediate write target", func(t *testing.T) {
		_, _, err := run(t, "11101,1,1,5,99")
		var um *UnrecognizedParameterModeError
		require.ErrorAs(t, err, &um)
		assert.Equal(t, Immediate, um.Mode)
	})

	t.Run("unknown read mode", func(t *testing.T) {
		_, _, err := run(t, "301,1,1,5,99")
		var um *UnrecognizedParameterModeError
		require.ErrorAs(t, err, &um)
		assert.Equal(t, Mode(3), um.Mode)
	})

	t.Run("jump to negative address", func(t *testing.T) {
		_, _, err := run(t, "1105,1,-1")
		var ob *OutOfBoundsError
		require.ErrorAs(t, err, &ob)
		assert.Equal(t, int64(-1), ob.Address)
	})

	t.Run("negative relative base", func(t *testing.T) {
		_, _, err := run(t, "109,-1,99")
		var ob *OutOfBoundsError
		require.ErrorAs(t, err, &ob)
	})

	t.Run("halt with parameter modes", func(t *testing.T) {
		_, _, err := run(t, "199")
		var uo *UnrecognizedOpcodeError
		require.ErrorAs(t, err, &uo)
		assert.Equal(t, "UnrecognizedOpcode", ErrorKind(err))
	})

	t.Run("input exhausted", func(t *testing.T) {
		_, _, err := run(t, "3,0,99")
		assert.True(t, IsInputClosed(err))
		assert.Equal(t, "InputError", ErrorKind(err))
	})
}

func TestRun_FaultIsTerminal(t *testing.T) {
	t.Parallel()

	_, m, err := run(t, "1,0,0,0")
	require.Error(t, err)

	again := m.Run(context.Background())
	assert.Equal(t, err, again)
	assert.Equal(t, err, m.Err())
}

func TestRun_HaltedRunsAgainAsNoop(t *testing.T) {
	t.Parallel()

	out, m, err := run(t, "104,1,99")
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, []int64{1}, out)
}

func TestRun_PartialWritesKept(t *testing.T) {
	t.Parallel()

	// the add lands before the faulting instruction
	_, m, err := run(t, "1101,2,2,0,11101,1,1,9,99")
	require.Error(t, err)

	v, _ := m.Get(0)
	assert.Equal(t, int64(4), v)
}

func TestBind_OneShot(t *testing.T) {
	t.Parallel()

	m, err := Load("99")
	require.NoError(t, err)

	require.NoError(t, m.BindInput(NewValues()))
	assert.ErrorIs(t, m.BindInput(NewValues()), ErrBound)

	require.NoError(t, m.Run(context.Background()))
	assert.ErrorIs(t, m.BindOutput(&Collector{}), ErrBound)
}

func TestRun_Disconnect(t *testing.T) {
	t.Parallel()

	m, err := Load("3,0,99")
	require.NoError(t, err)

	tx, rx := NewLink()
	require.NoError(t, m.BindInput(rx))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	tx.Close()

	select {
	case err := <-done:
		var ie *InputError
		require.ErrorAs(t, err, &ie)
		assert.True(t, ie.Closed())
		assert.True(t, IsInputClosed(err))
	case <-ctx.Done():
		t.Fatal("engine did not stop after its input was closed")
	}

	v, _ := m.Get(0)
	assert.Equal(t, int64(3), v, "no instruction may run after the failed input")

	var f *Fault
	require.ErrorAs(t, m.Err(), &f)
	assert.Equal(t, int64(0), f.PC)
	assert.Equal(t, OpInput, f.Op)
}

func TestRun_OutputToClosedReceiver(t *testing.T) {
	t.Parallel()

	m, err := Load("104,7,99")
	require.NoError(t, err)

	tx, rx := NewLink()
	rx.Close()
	require.NoError(t, m.BindOutput(tx))

	err = m.Run(context.Background())
	var oe *OutputError
	require.ErrorAs(t, err, &oe)
	assert.True(t, oe.Closed())
}

func TestRun_CancelWhileBlocked(t *testing.T) {
	t.Parallel()

	m, err := Load("3,0,99")
	require.NoError(t, err)

	_, rx := NewLink()
	require.NoError(t, m.BindInput(rx))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = m.Run(ctx)
	assert.True(t, IsCanceled(err))
	assert.False(t, IsInputClosed(err))
}

func TestRun_Console(t *testing.T) {
	t.Parallel()

	var out, prompt bytes.Buffer
	console := NewConsole(strings.NewReader(" 21 \n"), &out, &prompt)

	m, err := Load("3,0,102,2,0,0,4,0,99", WithInput(console), WithOutput(console))
	require.NoError(t, err)
	require.NoError(t, m.Run(context.Background()))

	assert.Equal(t, "42\n", out.String())
	assert.Equal(t, "> ", prompt.String())
}

func TestRun_ConsoleBadInput(t *testing.T) {
	t.Parallel()

	console := NewConsole(strings.NewReader("twelve\n"), &bytes.Buffer{}, nil)
	m, err := Load("3,0,99", WithInput(console))
	require.NoError(t, err)

	err = m.Run(context.Background())
	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.False(t, ie.Closed())
}

func TestRun_ConsoleEOF(t *testing.T) {
	t.Parallel()

	console := NewConsole(strings.NewReader(""), &bytes.Buffer{}, nil)
	m, err := Load("3,0,99", WithInput(console))
	require.NoError(t, err)

	err = m.Run(context.Background())
	assert.Equal(t, "InputError", ErrorKind(err))
}

func TestRun_MemoryLimit(t *testing.T) {
	t.Parallel()

	m, err := Load("1101,1,1,100,99", WithMemoryLimit(64))
	require.NoError(t, err)

	err = m.Run(context.Background())
	var ob *OutOfBoundsError
	require.ErrorAs(t, err, &ob)
	assert.Equal(t, int64(100), ob.Address)
}

func TestRun_ConcurrentRunRejected(t *testing.T) {
	t.Parallel()

	m, err := Load("3,0,99")
	require.NoError(t, err)
	tx, rx := NewLink()
	require.NoError(t, m.BindInput(rx))

	done := make(chan error, 1)
	go func() { done <- m.Run(context.Background()) }()

	require.Eventually(t, func() bool { return m.State() == Running }, time.Second, time.Millisecond)
	assert.True(t, errors.Is(m.Run(context.Background()), ErrRunning))

	require.NoError(t, tx.Send(1))
	require.NoError(t, <-done)
}
