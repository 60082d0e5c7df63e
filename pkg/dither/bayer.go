package dither

import (
	"errors"
	"fmt"
)

// MaxBayerOrder is the largest accepted Bayer matrix order (1024x1024).
const MaxBayerOrder = 10

// ErrBayerOrder is returned for a Bayer order above MaxBayerOrder.
var ErrBayerOrder = errors.New("invalid bayer order")

// BayerMatrix is an ordered dither threshold matrix of size 2^order.
// Its values are a permutation of 0..size²-1.
type BayerMatrix struct {
	size int
	m    [][]uint32
}

// NewBayerMatrix builds the Bayer matrix of the given order.
func NewBayerMatrix(order uint) (*BayerMatrix, error) {
	if order > MaxBayerOrder {
		return nil, fmt.Errorf("%w: %d (maximum is %d)", ErrBayerOrder, order, MaxBayerOrder)
	}
	m := bayer(order)
	return &BayerMatrix{size: len(m), m: m}, nil
}

func bayer(order uint) [][]uint32 {
	if order == 0 {
		return [][]uint32{{0}}
	}

	prev := bayer(order - 1)
	size := len(prev)
	res := make([][]uint32, size*2)
	for i := range res {
		res[i] = make([]uint32, size*2)
	}

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			base := prev[i][j] * 4
			res[i][j] = base
			res[i][j+size] = base + 3
			res[i+size][j] = base + 2
			res[i+size][j+size] = base + 1
		}
	}
	return res
}

// Size returns the matrix width (and height).
func (b *BayerMatrix) Size() int {
	return b.size
}

// At returns the rank at (x, y), the matrix being tiled over the plane.
func (b *BayerMatrix) At(x, y int) uint32 {
	return b.m[y%b.size][x%b.size]
}

// Threshold returns the rank at (x, y) scaled to the [0, 255] luminance range.
func (b *BayerMatrix) Threshold(x, y int) float64 {
	return float64(b.At(x, y)) * (255 / float64(b.size*b.size))
}

// Rows returns a copy of the matrix rows.
func (b *BayerMatrix) Rows() [][]uint32 {
	res := make([][]uint32, b.size)
	for i, row := range b.m {
		res[i] = append([]uint32(nil), row...)
	}
	return res
}
