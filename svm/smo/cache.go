package smo

import "github.com/kernelmethods/svmbench/kernel"

import "gonum.org/v1/gonum/mat"

// rowCache memoizes exact kernel rows with FIFO eviction. SMO revisits the
// same working rows many times, so even a small cache removes most of the
// O(n*d) row recomputations.
type rowCache struct {
	x     *mat.Dense
	gamma float64
	max   int

	rows map[int][]float64
	fifo []int
}

func newRowCache(x *mat.Dense, gamma float64, max int) *rowCache {
	if max < 2 {
		max = 2
	}
	return &rowCache{
		x:     x,
		gamma: gamma,
		max:   max,
		rows:  make(map[int][]float64, max),
	}
}

func (c *rowCache) row(i int) []float64 {
	if r, ok := c.rows[i]; ok {
		return r
	}
	r := kernel.Vector(c.x, c.x.RawRowView(i), c.gamma)
	if len(c.fifo) >= c.max {
		oldest := c.fifo[0]
		c.fifo = c.fifo[1:]
		delete(c.rows, oldest)
	}
	c.rows[i] = r
	c.fifo = append(c.fifo, i)
	return r
}
