package batch

import (
	"context"
	"errors"
	"fmt"
)

// Chunk size limits.
const (
	// DefaultSize is the number of rows per request when none is configured.
	DefaultSize = 100

	// MinSize is the smallest allowed chunk.
	MinSize = 1

	// MaxSize is the largest chunk the bulk endpoints accept.
	MaxSize = 1000
)

// Processor errors.
var (
	ErrInvalidSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback = errors.New("batch callback cannot be nil")
)

// Callback sends one chunk. index is 0-based.
type Callback[T any] func(ctx context.Context, chunk []T, index int) error

// ProgressCallback is invoked after each chunk succeeds.
type ProgressCallback func(p Progress)

// Processor chunks a slice and processes chunks sequentially.
type Processor[T any] struct {
	size       int
	onProgress ProgressCallback
}

// NewProcessor returns a processor with the given chunk size.
func NewProcessor[T any](size int) (*Processor[T], error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	return &Processor[T]{size: size}, nil
}

// WithProgressCallback sets the progress callback.
func (p *Processor[T]) WithProgressCallback(cb ProgressCallback) *Processor[T] {
	p.onProgress = cb
	return p
}

// Size returns the chunk size.
func (p *Processor[T]) Size() int {
	return p.size
}

// Process sends items chunk by chunk, stopping at the first error or when
// ctx is cancelled. An empty slice is a no-op.
func (p *Processor[T]) Process(ctx context.Context, items []T, cb Callback[T]) error {
	if cb == nil {
		return ErrNilCallback
	}

	bounds := p.Bounds(len(items))
	progress := Progress{TotalItems: len(items), TotalChunks: len(bounds)}
	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cb(ctx, items[b[0]:b[1]], i); err != nil {
			return fmt.Errorf("chunk %d of %d failed: %w", i+1, len(bounds), err)
		}
		progress.ProcessedItems += b[1] - b[0]
		progress.ProcessedChunks++
		if p.onProgress != nil {
			p.onProgress(progress)
		}
	}
	return nil
}

// Bounds returns the [start, end) index pairs for n items.
func (p *Processor[T]) Bounds(n int) [][2]int {
	count := n / p.size
	if n%p.size > 0 {
		count++
	}
	out := make([][2]int, count)
	for i := 0; i < count; i++ {
		start := i * p.size
		out[i] = [2]int{start, min(start+p.size, n)}
	}
	return out
}
