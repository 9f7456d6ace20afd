package circuit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/intcode/pkg/intcode"
)

const (
	chainSample1 = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	chainSample2 = "3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0"
	chainSample3 = "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31,99,0,0,0"

	ringSample1 = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
	ringSample2 = "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54," +
		"-5,54,1105,1,12,1,53,54,53,1008,54,0,55,1001,55,1,55,2,53,55,53,4," +
		"53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10"
)

func parse(t *testing.T, text string) []int64 {
	t.Helper()
	program, err := intcode.Parse(text)
	require.NoError(t, err)
	return program
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestChain(t *testing.T) {
	t.Parallel()

	v, err := Chain(testContext(t), parse(t, chainSample1), []int64{4, 3, 2, 1, 0}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(43210), v)
}

func TestMaxSignal_Chain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		program string
		signal  int64
		phases  []int64
	}{
		{chainSample1, 43210, []int64{4, 3, 2, 1, 0}},
		{chainSample2, 54321, []int64{0, 1, 2, 3, 4}},
		{chainSample3, 65210, []int64{1, 0, 4, 3, 2}},
	}
	for _, c := range cases {
		best, err := MaxSignal(testContext(t), parse(t, c.program), []int64{0, 1, 2, 3, 4}, false)
		require.NoError(t, err)
		assert.Equal(t, c.signal, best.Value)
		assert.Equal(t, c.phases, best.Phases)
	}
}

func TestRing(t *testing.T) {
	t.Parallel()

	v, err := Ring(testContext(t), parse(t, ringSample1), []int64{9, 8, 7, 6, 5}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(139629729), v)

	v, err = Ring(testContext(t), parse(t, ringSample2), []int64{9, 7, 8, 5, 6}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(18216), v)
}

func TestMaxSignal_Ring(t *testing.T) {
	t.Parallel()

	cases := []struct {
		program string
		signal  int64
		phases  []int64
	}{
		{ringSample1, 139629729, []int64{9, 8, 7, 6, 5}},
		{ringSample2, 18216, []int64{9, 7, 8, 5, 6}},
	}
	for _, c := range cases {
		best, err := MaxSignal(testContext(t), parse(t, c.program), []int64{5, 6, 7, 8, 9}, true)
		require.NoError(t, err)
		assert.Equal(t, c.signal, best.Value)
		assert.Equal(t, c.phases, best.Phases)
	}
}

func TestMaxSignal_SingleWorker(t *testing.T) {
	t.Parallel()

	ctx := WithWorkers(testContext(t), 1)
	best, err := MaxSignal(ctx, parse(t, ringSample1), []int64{5, 6, 7, 8, 9}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(139629729), best.Value)
}

func TestRing_SurfacesFault(t *testing.T) {
	t.Parallel()

	_, err := Ring(testContext(t), parse(t, "3,0,1,0,0,0"), []int64{0, 1, 2}, 0)
	var uo *intcode.UnrecognizedOpcodeError
	require.ErrorAs(t, err, &uo)
}

func TestRing_NoOutput(t *testing.T) {
	t.Parallel()

	_, err := Ring(testContext(t), parse(t, "99"), []int64{0, 1}, 0)
	assert.ErrorIs(t, err, ErrNoSignal)
}

func TestRing_NoPhases(t *testing.T) {
	t.Parallel()

	_, err := Ring(testContext(t), parse(t, "99"), nil, 0)
	assert.ErrorIs(t, err, ErrNoPhases)

	_, err = MaxSignal(testContext(t), parse(t, "99"), nil, true)
	assert.ErrorIs(t, err, ErrNoPhases)
}

func TestMaxSignal_Fails(t *testing.T) {
	t.Parallel()

	_, err := MaxSignal(testContext(t), parse(t, "1,0,0,0"), []int64{0, 1}, false)
	require.Error(t, err)
	assert.Len(t, GetErrors(err), 2)
}

func TestPermutations(t *testing.T) {
	t.Parallel()

	perms := Permutations([]int64{1, 2, 3})
	assert.Len(t, perms, 6)

	seen := map[[3]int64]bool{}
	for _, p := range perms {
		seen[[3]int64{p[0], p[1], p[2]}] = true
	}
	assert.Len(t, seen, 6)
	assert.Len(t, Permutations([]int64{0, 1, 2, 3, 4}), 120)
	assert.Len(t, Permutations(nil), 1)
}
