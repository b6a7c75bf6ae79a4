package search

import (
	"sync"

	"github.com/katalvlaran/sokosolve/boxes"
)

// Queue is a bucketed priority queue: bucket[p] holds a FIFO of states
// whose priority is exactly p. Pop scans forward from minBucket, the
// lowest bucket that can be non-empty; Push moves minBucket back when it
// inserts below it. Concurrency is a single mutex plus a
// condition variable, mirroring the source's StateQueue: when every one
// of concurrency workers is blocked on an empty queue, the search is
// exhausted and Shutdown fires for them all.
type Queue struct {
	mu          sync.Mutex
	cond        *sync.Cond
	buckets     [][]boxes.State
	minBucket   int
	size        int
	concurrency int
	blocked     int
	running     bool
}

// NewQueue allocates a Queue for a driver running concurrency workers.
func NewQueue(concurrency int) *Queue {
	q := &Queue{concurrency: concurrency, running: true}
	q.cond = sync.NewCond(&q.mu)

	return q
}

// Push inserts s into bucket priority, waking any worker blocked on an
// empty queue.
func (q *Queue) Push(s boxes.State, priority uint32) {
	q.mu.Lock()
	for len(q.buckets) <= int(priority) {
		q.buckets = append(q.buckets, nil)
	}
	q.buckets[priority] = append(q.buckets[priority], s)
	if priority < uint32(q.minBucket) {
		q.minBucket = int(priority)
	}
	wasEmpty := q.size == 0
	q.size++
	q.mu.Unlock()

	if wasEmpty {
		q.cond.Broadcast()
	}
}

// Pop removes and returns the state in the lowest non-empty bucket,
// blocking while the queue is empty and at least one other worker is
// still active. Returns ok=false once the queue has been shut down or
// every worker (including this one) is simultaneously blocked.
func (q *Queue) Pop() (s boxes.State, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		q.blocked++
		for q.size == 0 && q.running {
			if q.blocked >= q.concurrency {
				q.running = false
				q.cond.Broadcast()
				break
			}
			q.cond.Wait()
		}
		q.blocked--
	}

	if !q.running || q.size == 0 {
		return boxes.State{}, false
	}

	for len(q.buckets[q.minBucket]) == 0 {
		q.minBucket++
	}
	bucket := q.buckets[q.minBucket]
	s, bucket = bucket[0], bucket[1:]
	q.buckets[q.minBucket] = bucket
	q.size--

	return s, true
}

// Shutdown marks the queue as exhausted and wakes every waiter.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	q.running = false
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Size returns the number of states currently queued.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.size
}
