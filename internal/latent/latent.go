package latent

import (
	"errors"
	"fmt"
	"math"

	"github.com/eleven-am/latentfmt/internal/domain"
)

const (
	// Channels is the channel count of the video latent space.
	Channels = 4

	// MaxElements caps a single buffer at 4 GiB of float32.
	MaxElements = 1 << 30
)

var ErrTooLarge = errors.New("latent buffer too large")

type Allocator interface {
	NewTensor(shape ...int) *domain.Tensor
}

type ZeroAllocator struct{}

func (ZeroAllocator) NewTensor(shape ...int) *domain.Tensor {
	n := 1
	for _, s := range shape {
		n *= s
	}
	dims := make([]int, len(shape))
	copy(dims, shape)
	return &domain.Tensor{
		Shape: dims,
		Data:  make([]float32, n),
	}
}

// Shape returns [batch, Channels, height/8, width/8] for aligned dimensions.
func Shape(batch, width, height, factor int) []int {
	return []int{batch, Channels, height / factor, width / factor}
}

func Empty(alloc Allocator, batch, width, height, factor int) *domain.Tensor {
	if alloc == nil {
		alloc = ZeroAllocator{}
	}
	return alloc.NewTensor(Shape(batch, width, height, factor)...)
}

// Elements returns the element count of a buffer with the given shape. It
// fails with ErrTooLarge when the product exceeds MaxElements, which also
// covers int overflow.
func Elements(shape ...int) (int, error) {
	n := 1
	for _, s := range shape {
		if s < 0 {
			return 0, fmt.Errorf("shape %v: negative dimension", shape)
		}
		if s != 0 && n > math.MaxInt/s {
			return 0, fmt.Errorf("shape %v: %w", shape, ErrTooLarge)
		}
		n *= s
	}
	if n > MaxElements {
		return 0, fmt.Errorf("shape %v: %d elements: %w", shape, n, ErrTooLarge)
	}
	return n, nil
}

func AllZero(t *domain.Tensor) bool {
	for _, v := range t.Data {
		if v != 0 {
			return false
		}
	}
	return true
}
