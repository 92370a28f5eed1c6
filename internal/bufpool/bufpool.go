// Package bufpool provides a bounded, thread-safe free list of scratch
// byte buffers reused across resize jobs to amortize allocation.
package bufpool

import "sync"

// MaxRetained is the maximum number of buffers the free list holds. Buffers
// released beyond this bound are discarded (left for the garbage
// collector), capping resident pool memory at roughly
// MaxRetained * max_image_bytes.
const MaxRetained = 32

// Buffer is owned bytes with a capacity independent of its current length.
type Buffer struct {
	Bytes []byte
}

// Pool is a bounded free list of Buffers. The zero value is not usable;
// construct with New.
type Pool struct {
	mu    sync.Mutex
	free  []*Buffer
	limit int
}

// New creates an empty pool retaining at most MaxRetained buffers.
func New() *Pool {
	return &Pool{limit: MaxRetained}
}

// NewWithLimit creates an empty pool retaining at most limit buffers. A
// non-positive limit falls back to MaxRetained.
func NewWithLimit(limit int) *Pool {
	if limit <= 0 {
		limit = MaxRetained
	}
	return &Pool{limit: limit}
}

// Acquire returns a buffer with capacity >= n, reusing the smallest
// compatible free buffer if one exists, or allocating a fresh one of
// exactly n bytes otherwise. Buffer contents are not cleared; callers must
// not assume zeroed memory.
func (p *Pool) Acquire(n int) *Buffer {
	p.mu.Lock()
	bestIdx := -1
	for i, b := range p.free {
		if cap(b.Bytes) < n {
			continue
		}
		if bestIdx == -1 || cap(b.Bytes) < cap(p.free[bestIdx].Bytes) {
			bestIdx = i
		}
	}
	var buf *Buffer
	if bestIdx != -1 {
		buf = p.free[bestIdx]
		p.free = append(p.free[:bestIdx], p.free[bestIdx+1:]...)
	}
	p.mu.Unlock()

	if buf == nil {
		return &Buffer{Bytes: make([]byte, n)}
	}
	buf.Bytes = buf.Bytes[:n]
	return buf
}

// Release returns buf to the free list, provided the free list has fewer
// entries than the pool's retention limit (MaxRetained for New);
// otherwise buf is dropped.
func (p *Pool) Release(buf *Buffer) {
	if buf == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) >= p.limit {
		return
	}
	p.free = append(p.free, buf)
}

// Retained returns the current number of buffers held in the free list.
// Exposed for tests asserting the pool invariant (<= the retention limit).
func (p *Pool) Retained() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
