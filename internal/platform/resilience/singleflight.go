package resilience

import "sync"

// SingleFlight collapses concurrent calls sharing a key into a single
// execution; followers block until the leader finishes and then share its
// result. The zero value is ready to use.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightResult
}

type flightResult struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. The bool reports whether the result
// came from another caller's execution.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flightResult)
	}
	if leader, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-leader.done
		return leader.val, leader.err, true
	}

	res := &flightResult{done: make(chan struct{})}
	g.inflight[key] = res
	g.mu.Unlock()

	res.val, res.err = fn()
	close(res.done)

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return res.val, res.err, false
}
