package intcode

import (
	"fmt"
	"os"
	"strconv"
)

// Parse reads program text of the form `-?[0-9]+(,-?[0-9]+)*` followed by at
// most one line terminator ("\n" or "\r\n"). Anything else rejects the whole
// program.
func Parse(text string) ([]int64, error) {
	body, ok := trimTerminator(text)
	if !ok {
		return nil, &ParseError{Offset: len(text), Reason: "more than one line terminator"}
	}
	if body == "" {
		return nil, &ParseError{Offset: 0, Reason: "empty program"}
	}

	program := make([]int64, 0, len(body)/2+1)
	start := 0
	for start <= len(body) {
		end := scanInt(body, start)
		if end == start {
			return nil, &ParseError{Offset: start, Reason: describe(body, start, "integer")}
		}
		v, err := strconv.ParseInt(body[start:end], 10, 64)
		if err != nil {
			return nil, &ParseError{Offset: start, Reason: fmt.Sprintf("integer %q out of range", body[start:end])}
		}
		program = append(program, v)

		if end == len(body) {
			return program, nil
		}
		if body[end] != ',' {
			return nil, &ParseError{Offset: end, Reason: describe(body, end, "','")}
		}
		start = end + 1
	}

	return nil, &ParseError{Offset: len(body), Reason: "trailing ','"}
}

// trimTerminator strips a single trailing line terminator. It reports false
// when the remaining text still ends in one.
func trimTerminator(text string) (string, bool) {
	switch {
	case len(text) >= 2 && text[len(text)-2:] == "\r\n":
		text = text[:len(text)-2]
	case len(text) >= 1 && text[len(text)-1] == '\n':
		text = text[:len(text)-1]
	default:
		return text, true
	}
	if n := len(text); n > 0 && (text[n-1] == '\n' || text[n-1] == '\r') {
		return text, false
	}
	return text, true
}

// scanInt returns the end of the integer token starting at i, or i when
// there is none.
func scanInt(s string, i int) int {
	j := i
	if j < len(s) && s[j] == '-' {
		j++
	}
	digits := j
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == digits {
		return i
	}
	return j
}

func describe(s string, i int, want string) string {
	if i >= len(s) {
		return "expected " + want + ", found end of input"
	}
	return fmt.Sprintf("expected %s, found %q", want, s[i])
}

// Load parses text and returns a machine ready to run it.
func Load(text string, opts ...Option) (*Machine, error) {
	program, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return New(program, opts...), nil
}

// ReadFile reads and parses a program file.
func ReadFile(path string) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	program, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return program, nil
}
