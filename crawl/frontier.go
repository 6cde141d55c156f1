package crawl

import (
	"container/heap"
	"sync"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/bloom"
)

// Compile-time interface verification.
var _ taxdoc.TargetFrontier = (*Frontier)(nil)

// Frontier is an in-memory target queue with Bloom filter deduplication.
// Targets pop by descending priority, then in push order.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue *targetHeap
	seq   int
}

// NewFrontier creates a new Frontier sized for n expected targets
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &targetHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: h,
	}
}

// Push adds a target to the frontier.
// Returns false if a target with the same key has already been seen.
// URL fragments are stripped, so URLs differing only by fragment are duplicates.
func (f *Frontier) Push(target taxdoc.Target) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestAndAdd(target.Key()) {
		return false
	}

	target.URL = taxdoc.StripFragment(target.URL)
	heap.Push(f.queue, queued{target: target, seq: f.seq})
	f.seq++
	return true
}

// Pop returns the next target.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (taxdoc.Target, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return taxdoc.Target{}, false
	}
	q, _ := heap.Pop(f.queue).(queued)
	return q.target, true
}

// Len returns the number of queued targets.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if a target with the key has been queued.
func (f *Frontier) Seen(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(key)
}

// Estimated returns the approximate number of distinct keys pushed so far.
func (f *Frontier) Estimated() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.EstimatedCount()
}

type queued struct {
	target taxdoc.Target
	seq    int
}

// targetHeap implements heap.Interface ordered by priority, then sequence.
type targetHeap []queued

func (h targetHeap) Len() int { return len(h) }

func (h targetHeap) Less(i, j int) bool {
	if h[i].target.Priority != h[j].target.Priority {
		return h[i].target.Priority > h[j].target.Priority
	}
	return h[i].seq < h[j].seq
}

func (h targetHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *targetHeap) Push(x any) {
	q, _ := x.(queued)
	*h = append(*h, q)
}

func (h *targetHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
