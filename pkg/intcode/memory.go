package intcode

import "math"

// DefaultMemoryLimit bounds how far memory may grow. Addresses at or beyond
// the limit are treated as non-representable.
const DefaultMemoryLimit int64 = 1 << 24

// Memory is the zero-initialised, auto-extending store of one engine. Any
// address from 0 up to its limit is readable and writable; the limit stands
// in for an address that cannot be represented, so addresses at or past it
// report OutOfBoundsError instead of allocating.
type Memory struct {
	cells []int64
	limit int64
}

// NewMemory copies image into a fresh memory. A limit <= 0 leaves only the
// platform's int range as bound.
func NewMemory(image []int64, limit int64) *Memory {
	if limit <= 0 || limit > math.MaxInt {
		limit = math.MaxInt
	}
	cells := make([]int64, len(image))
	copy(cells, image)
	return &Memory{cells: cells, limit: limit}
}

func (m *Memory) index(address int64) (int, error) {
	if address < 0 || address >= m.limit {
		return 0, &OutOfBoundsError{Address: address}
	}
	i := int(address)
	if i >= len(m.cells) {
		m.grow(i + 1)
	}
	return i, nil
}

func (m *Memory) grow(n int) {
	if n <= cap(m.cells) {
		m.cells = m.cells[:n]
		return
	}
	c := 2 * cap(m.cells)
	if c < n {
		c = n
	}
	if int64(c) > m.limit {
		c = int(m.limit)
	}
	cells := make([]int64, n, c)
	copy(cells, m.cells)
	m.cells = cells
}

func (m *Memory) Get(address int64) (int64, error) {
	i, err := m.index(address)
	if err != nil {
		return 0, err
	}
	return m.cells[i], nil
}

func (m *Memory) Set(address, value int64) error {
	i, err := m.index(address)
	if err != nil {
		return err
	}
	m.cells[i] = value
	return nil
}

// Len is the current length, including auto-extended cells.
func (m *Memory) Len() int {
	return len(m.cells)
}

// Snapshot returns a copy of the cells.
func (m *Memory) Snapshot() []int64 {
	out := make([]int64, len(m.cells))
	copy(out, m.cells)
	return out
}
