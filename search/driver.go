package search

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/cellgraph"
	"github.com/katalvlaran/sokosolve/corral"
	"github.com/katalvlaran/sokosolve/deadlock"
	"golang.org/x/sync/errgroup"
)

// Driver runs the parallel forward push-search described in §4.H: a fixed
// pool of workers pop states from a shared priority Queue, expand their
// legal pushes against the sharded StateMap, and race to be first to push
// a state whose boxes cover every goal.
type Driver struct {
	level       *cellgraph.Level
	opts        Options
	states      *StateMap
	queue       *Queue
	db          *deadlock.DB
	goals       *boxes.Boxes
	concurrency int
	out         io.Writer

	resultMu sync.Mutex
	result   *boxes.State
}

// NewDriver allocates a Driver for level. out receives Monitor's progress
// lines (defaults to io.Discard when nil).
func NewDriver(level *cellgraph.Level, opts Options, out io.Writer) *Driver {
	concurrency := runtime.GOMAXPROCS(0)
	if opts.SingleThread {
		concurrency = 1
	}
	if out == nil {
		out = io.Discard
	}

	goals := boxes.New(level.NumAlive)
	for g := 0; g < level.NumGoals; g++ {
		goals.Set(g)
	}

	return &Driver{
		level:       level,
		opts:        opts,
		states:      NewStateMap(),
		queue:       NewQueue(concurrency),
		db:          deadlock.NewDB(level),
		goals:       goals,
		concurrency: concurrency,
		out:         out,
	}
}

// Run searches from start and returns the goal state and its StateInfo on
// success. ok is false when the problem is unsolvable or the search was
// cut short by ctx or Options.MaxTime.
func (d *Driver) Run(ctx context.Context, start boxes.State) (boxes.State, boxes.StateInfo, bool) {
	visitor := cellgraph.NewAgentVisitor(len(d.level.Cells), start.Agent)
	Normalize(d.level, &start, visitor)

	if start.Boxes.Contains(d.goals) {
		return start, boxes.StateInfo{Dir: -1, PrevAgent: -1}, true
	}

	startInfo := boxes.StateInfo{
		Heuristic: Heuristic(d.level, start.Boxes),
		Dir:       -1,
		PrevAgent: -1,
	}
	shard := Shard(start)
	d.states.Lock(shard)
	d.states.Add(shard, start, startInfo)
	d.states.Unlock(shard)
	d.queue.Push(start, startInfo.Heuristic*d.opts.HeurW)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if d.opts.MaxTime > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, d.opts.MaxTime)
		defer timeoutCancel()
	}

	// Bridges external cancellation (ctx, or Options.MaxTime) to the
	// queue's own shutdown; detached from the errgroup since it must
	// keep watching after every worker has already returned (e.g. on
	// the success path, where shutdown comes from tryEnqueue, not from
	// ctx) and the deferred cancel() above unblocks it on return.
	go func() {
		<-ctx.Done()
		d.queue.Shutdown()
	}()

	var g errgroup.Group
	for i := 0; i < d.concurrency; i++ {
		g.Go(func() error { return d.worker() })
	}
	if d.opts.Monitor && d.opts.Verbosity > 0 {
		g.Go(func() error { return d.monitor(ctx, time.Now()) })
	}

	_ = g.Wait()

	d.resultMu.Lock()
	defer d.resultMu.Unlock()
	if d.result == nil {
		return boxes.State{}, boxes.StateInfo{}, false
	}

	shard = Shard(*d.result)
	d.states.Lock(shard)
	info, _ := d.states.Query(shard, *d.result)
	d.states.Unlock(shard)

	return *d.result, info, true
}

// worker is the per-goroutine expansion loop of §4.H's worker loop: pop,
// re-check closedness, compute the PI-corral, enumerate pushes.
func (d *Driver) worker() error {
	n := len(d.level.Cells)
	agentVisitor := cellgraph.NewAgentVisitor(n, 0)
	normVisitor := cellgraph.NewAgentVisitor(n, 0)
	corrals := corral.NewAnalyzer(d.level)

	for {
		s, ok := d.queue.Pop()
		if !ok {
			return nil
		}

		shard := Shard(s)
		d.states.Lock(shard)
		info, found := d.states.Query(shard, s)
		if !found || info.Closed {
			d.states.Unlock(shard)
			continue
		}
		info.Closed = true
		d.states.Update(shard, s, info)
		d.states.Unlock(shard)

		if d.opts.Debug && d.opts.Verbosity > 0 {
			fmt.Fprintf(d.out, "popped: agent=%d distance=%d heuristic=%d\n", s.Agent, info.Distance, info.Heuristic)
		}

		pic, hasPIC := corrals.FindUnsolvedPICorral(s.Agent, s.Boxes)

		if d.expand(s, info, pic, hasPIC, agentVisitor, normVisitor) {
			return nil
		}
	}
}

// expand enumerates every legal push from s and returns true once a
// solution has been found (by this worker or another).
func (d *Driver) expand(s boxes.State, info boxes.StateInfo, pic corral.Corral, hasPIC bool, agentVisitor, normVisitor *cellgraph.AgentVisitor) bool {
	agentVisitor.Clear()
	agentVisitor.Add(s.Agent)

	for a, ok := agentVisitor.Next(); ok; a, ok = agentVisitor.Next() {
		cell := &d.level.Cells[a]
		for _, mv := range cell.Moves {
			boxCell := mv.To
			if !s.Boxes.Get(boxCell) {
				agentVisitor.Add(boxCell)
				continue
			}

			dest := d.level.Cells[boxCell].DirMod(mv.Dir)
			if dest < 0 || !d.level.Cells[dest].Alive || s.Boxes.Get(dest) {
				continue
			}
			if hasPIC && !pic[dest] {
				continue
			}

			ns := boxes.State{Agent: boxCell, Boxes: s.Boxes.Clone()}
			ns.Boxes.Move(boxCell, dest)

			if d.db.IsDeadlock(ns.Agent, ns.Boxes, dest, mv.Dir) {
				continue
			}

			Normalize(d.level, &ns, normVisitor)

			if d.tryEnqueue(ns, info, mv.Dir, a) {
				return true
			}
		}
	}

	return false
}

// tryEnqueue queries the closed-set for ns, either updating an existing
// better-distance entry or inserting a brand-new one, and reports the
// goal test. Returns true iff ns completes the level.
func (d *Driver) tryEnqueue(ns boxes.State, parent boxes.StateInfo, dir, prevAgent int) bool {
	shard := Shard(ns)
	d.states.Lock(shard)

	existing, found := d.states.Query(shard, ns)
	if found {
		newDistance := parent.Distance + 1
		if newDistance < existing.Distance {
			existing.Dir = int8(dir)
			existing.Distance = newDistance
			existing.PrevAgent = int32(prevAgent)
			d.states.Update(shard, ns, existing)
			d.states.Unlock(shard)
			d.queue.Push(ns, existing.Distance*d.opts.DistW+existing.Heuristic*d.opts.HeurW)
		} else {
			d.states.Unlock(shard)
		}

		return false
	}

	h := Heuristic(d.level, ns.Boxes)
	if h == cellgraph.Inf {
		d.states.Unlock(shard)

		return false
	}

	nsi := boxes.StateInfo{
		Dir:       int8(dir),
		Distance:  parent.Distance + 1,
		Heuristic: h,
		PrevAgent: int32(prevAgent),
	}
	d.states.Add(shard, ns, nsi)
	d.states.Unlock(shard)

	d.queue.Push(ns, nsi.Distance*d.opts.DistW+nsi.Heuristic*d.opts.HeurW)

	if !ns.Boxes.Contains(d.goals) {
		return false
	}

	d.queue.Shutdown()
	d.resultMu.Lock()
	if d.result == nil {
		r := ns
		d.result = &r
	}
	d.resultMu.Unlock()

	return true
}

// monitor periodically reports queue and closed-set sizes until the
// search context is cancelled.
func (d *Driver) monitor(ctx context.Context, start time.Time) error {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			open := d.queue.Size()
			total := d.states.Size()
			closed := total - open
			if closed < 0 {
				closed = 0
			}
			fmt.Fprintf(d.out, "elapsed %s: states %d (closed %d, open %d), patterns %d\n",
				time.Since(start).Round(time.Second), total, closed, open, d.db.Size())
		}
	}
}
