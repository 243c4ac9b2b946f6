package ai

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum agent count to use the workers.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 8

type workChunk struct {
	start, end int
}

// Pool steers agents on persistent worker goroutines. Workers only read
// the View; intents land in per-agent slots, so results do not depend on
// scheduling.
type Pool struct {
	view    *View
	agents  []Agent
	intents []Intent
	params  Params

	numWorkers int
	workChan   chan workChunk
	doneChan   chan struct{}
	stopChan   chan struct{}
	wg         sync.WaitGroup
	running    bool
}

// NewPool returns a pool with the given worker count, or GOMAXPROCS when
// workers <= 0. Workers start on first use.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{numWorkers: workers}
}

func (p *Pool) start() {
	if p.running {
		return
	}
	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i, n := 0, p.numWorkers; i < n; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.compute(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

func (p *Pool) compute(i0, i1 int) {
	for i := i0; i < i1; i++ {
		p.intents[i] = Steer(p.view, p.agents[i], p.params)
	}
}

// Steer computes one intent per agent, in agent order, reusing dst.
func (p *Pool) Steer(view *View, agents []Agent, params Params, dst []Intent) []Intent {
	n := len(agents)
	if cap(dst) < n {
		dst = make([]Intent, n)
	}
	dst = dst[:n]
	if n == 0 {
		return dst
	}

	p.view, p.agents, p.intents, p.params = view, agents, dst, params
	defer func() { p.view, p.agents, p.intents = nil, nil, nil }()

	if n < parallelThreshold || p.numWorkers == 1 {
		p.compute(0, n)
		return dst
	}

	p.start()
	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for start := 0; start < n; start += chunkSize {
		p.workChan <- workChunk{start: start, end: min(start+chunkSize, n)}
		dispatched++
	}
	for i, n := 0, dispatched; i < n; i++ {
		<-p.doneChan
	}
	return dst
}

// Close stops the workers. The pool restarts them if used again.
func (p *Pool) Close() {
	if !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}
