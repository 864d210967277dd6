// Package pool runs route searches on a fixed set of worker goroutines.
//
// Navigators keep per-search scratch state and are not safe for concurrent
// use. A Pool gives each worker its own navigator and feeds all of them from
// one bounded mailbox, so any number of HTTP handlers can submit searches
// while each navigator is only ever touched by its own goroutine.
package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"sunnyway/internal/domain/entities"
	"sunnyway/internal/navigator"
)

var (
	// ErrQueueFull is returned when the mailbox has no room. It is
	// retryable; the request was not run.
	ErrQueueFull = errors.New("pool: queue is full, try again later")

	ErrPoolClosed     = errors.New("pool: closed")
	ErrNavigatorPanic = errors.New("pool: navigator panicked")
)

type result struct {
	path []entities.NavigationEdge
	err  error
}

// job pairs a request with the channel its single answer is written to. The
// channel has capacity one so a worker never blocks on a caller that stopped
// waiting.
type job struct {
	req   navigator.Request
	reply chan result
}

// Pool is a fixed-size set of navigator workers sharing one mailbox.
//
// Go Learning Note — Actors With Channels:
// Each worker goroutine owns its navigator exclusively, like an actor owns
// its state. Callers never touch the navigator; they send a message and wait
// on a private reply channel. No mutex guards the navigators because only one
// goroutine can ever reach each of them.
type Pool struct {
	name       string
	navigators []navigator.Navigator
	logger     *zap.Logger

	mailbox chan job
	quit    chan struct{}
	wg      sync.WaitGroup

	// mu orders submissions against Close: senders hold the read lock while
	// sending, Close takes the write lock to flip closed.
	mu      sync.RWMutex
	closed  bool
	started bool
}

// New creates a pool of shardCount workers, each with a navigator made by
// factory, and a mailbox holding up to queueSize waiting requests. Workers
// run once Start is called.
func New(name string, shardCount, queueSize int, factory navigator.Factory, logger *zap.Logger) *Pool {
	if shardCount < 1 {
		shardCount = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	navigators := make([]navigator.Navigator, shardCount)
	for i := range navigators {
		navigators[i] = factory()
	}

	return &Pool{
		name:       name,
		navigators: navigators,
		logger:     logger.With(zap.String("pool", name)),
		mailbox:    make(chan job, queueSize),
		quit:       make(chan struct{}),
	}
}

// Name returns the pool's name, used as its metrics label.
func (p *Pool) Name() string { return p.name }

// QueueDepth returns the number of requests waiting for a worker.
func (p *Pool) QueueDepth() int { return len(p.mailbox) }

// Start launches the workers. Calling it again, or after Close, does
// nothing.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true

	for shard, nav := range p.navigators {
		p.wg.Add(1)
		go p.worker(shard, nav)
	}
	p.logger.Info("navigator pool started",
		zap.Int("shards", len(p.navigators)),
		zap.Int("queue_size", cap(p.mailbox)),
	)
}

// EnqueueAndJoin submits req and waits for its result. It never waits for
// room in the mailbox: a full mailbox fails at once with ErrQueueFull.
//
// If ctx ends first EnqueueAndJoin returns ctx.Err(). The search itself is
// not interrupted; its result is discarded when it completes.
func (p *Pool) EnqueueAndJoin(ctx context.Context, req navigator.Request) ([]entities.NavigationEdge, error) {
	j := job{req: req, reply: make(chan result, 1)}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		requestsTotal.WithLabelValues(p.name, resultClosed).Inc()
		return nil, ErrPoolClosed
	}
	select {
	case p.mailbox <- j:
		p.mu.RUnlock()
	default:
		p.mu.RUnlock()
		requestsTotal.WithLabelValues(p.name, resultRejected).Inc()
		p.logger.Warn("navigator queue full, request rejected",
			zap.Int("queue_size", cap(p.mailbox)),
		)
		return nil, ErrQueueFull
	}
	queueDepth.WithLabelValues(p.name).Set(float64(len(p.mailbox)))

	select {
	case r := <-j.reply:
		return r.path, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the workers after their current search and fails every
// request still in the mailbox with ErrPoolClosed. Later submissions fail
// the same way. Close blocks until the workers have exited.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.quit)
	p.mu.Unlock()

	p.wg.Wait()

	drained := 0
	for {
		select {
		case j := <-p.mailbox:
			j.reply <- result{err: ErrPoolClosed}
			requestsTotal.WithLabelValues(p.name, resultClosed).Inc()
			drained++
		default:
			queueDepth.WithLabelValues(p.name).Set(0)
			p.logger.Info("navigator pool closed", zap.Int("drained", drained))
			return
		}
	}
}

func (p *Pool) worker(shard int, nav navigator.Navigator) {
	defer p.wg.Done()

	for {
		// Check quit on its own first: select picks randomly among ready
		// cases, and a closing pool must not start on queued work.
		select {
		case <-p.quit:
			return
		default:
		}

		select {
		case <-p.quit:
			return
		case j := <-p.mailbox:
			queueDepth.WithLabelValues(p.name).Set(float64(len(p.mailbox)))
			j.reply <- p.serve(shard, nav, j.req)
		}
	}
}

// serve runs one search, turning a navigator panic into an error so the
// worker survives it.
func (p *Pool) serve(shard int, nav navigator.Navigator, req navigator.Request) (r result) {
	start := time.Now()
	defer func() {
		label := resultOK
		if rec := recover(); rec != nil {
			p.logger.Error("navigator panicked",
				zap.Int("shard", shard),
				zap.Int("from", req.From),
				zap.Int("to", req.To),
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			r = result{err: fmt.Errorf("%w: %v", ErrNavigatorPanic, rec)}
			label = resultPanic
		} else if r.err != nil {
			label = resultError
		}
		searchDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
		requestsTotal.WithLabelValues(p.name, label).Inc()
	}()

	path, err := nav.Navigate(req)
	return result{path: path, err: err}
}
