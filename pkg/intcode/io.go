package intcode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// InputSource supplies the value consumed by an input instruction. Input
// blocks until a value is available.
type InputSource interface {
	Input(ctx context.Context) (int64, error)
}

// OutputSink receives the value emitted by an output instruction.
type OutputSink interface {
	Output(ctx context.Context, value int64) error
}

// Console is the interactive fallback: it prompts, reads one line per input
// and writes one line per output.
type Console struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	prompt io.Writer
}

// NewConsole builds a console over arbitrary streams. A nil prompt writer
// disables the "> " prompt.
func NewConsole(in io.Reader, out io.Writer, prompt io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, prompt: prompt}
}

var (
	stdConsole     *Console
	stdConsoleOnce sync.Once
)

// DefaultConsole is the console over the process's stdin, stdout and stderr.
// It is shared so buffered input is not lost between machines.
func DefaultConsole() *Console {
	stdConsoleOnce.Do(func() {
		stdConsole = NewConsole(os.Stdin, os.Stdout, os.Stderr)
	})
	return stdConsole
}

func (c *Console) Input(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.prompt != nil {
		if _, err := io.WriteString(c.prompt, "> "); err != nil {
			return 0, err
		}
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, err
	}

	v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid input %q: %w", strings.TrimSpace(line), err)
	}
	return v, nil
}

func (c *Console) Output(_ context.Context, value int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// output to the console has no failure path
	_, _ = fmt.Fprintln(c.out, value)
	return nil
}

type chanInput struct {
	ch <-chan int64
}

// ChanInput adapts a plain channel. A closed channel reads as ErrClosed.
func ChanInput(ch <-chan int64) InputSource {
	return chanInput{ch: ch}
}

func (c chanInput) Input(ctx context.Context) (int64, error) {
	select {
	case v, ok := <-c.ch:
		if !ok {
			return 0, ErrClosed
		}
		return v, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

type chanOutput struct {
	ch chan<- int64
}

// ChanOutput adapts a plain channel. A send blocks until the value is taken
// or ctx ends; plain channels cannot report a vanished reader.
func ChanOutput(ch chan<- int64) OutputSink {
	return chanOutput{ch: ch}
}

func (c chanOutput) Output(ctx context.Context, value int64) error {
	select {
	case c.ch <- value:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Values is an InputSource that replays a fixed list and then reports
// ErrClosed.
type Values struct {
	mu     sync.Mutex
	values []int64
}

func NewValues(values ...int64) *Values {
	return &Values{values: append([]int64(nil), values...)}
}

func (v *Values) Input(_ context.Context) (int64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.values) == 0 {
		return 0, ErrClosed
	}
	x := v.values[0]
	v.values = v.values[1:]
	return x, nil
}

// Collector is an OutputSink that records every value.
type Collector struct {
	mu     sync.Mutex
	values []int64
}

func (c *Collector) Output(_ context.Context, value int64) error {
	c.mu.Lock()
	c.values = append(c.values, value)
	c.mu.Unlock()
	return nil
}

// Values returns a copy of everything collected so far.
func (c *Collector) Values() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.values...)
}
