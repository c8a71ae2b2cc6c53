// Package outbox delivers remote document writes in the background.
// Delivery is best effort: a failed write is logged and discarded, and local
// state stays authoritative.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/claude/liftlog/internal/storage"
)

// ErrClosed is returned by Flush after Close.
var ErrClosed = errors.New("outbox closed")

const flushTaskName = "flush"

// Task is one outbound write.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Stats counts task outcomes since the queue was created.
type Stats struct {
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
	Pending   int   `json:"pending"`
}

// Queue runs tasks one at a time on a background worker.
type Queue struct {
	tasks   chan Task
	timeout time.Duration
	log     *slog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	completed atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

// New creates a queue holding up to size pending tasks and starts its worker.
// Each task runs with its own timeout.
func New(size int, timeout time.Duration, log *slog.Logger) *Queue {
	if size <= 0 {
		size = 64
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	q := &Queue{
		tasks:   make(chan Task, size),
		timeout: timeout,
		log:     log,
	}
	q.wg.Add(1)
	go q.run()
	return q
}

// Enqueue schedules t without blocking. It reports false when the queue is
// full or closed; the task is then dropped.
func (q *Queue) Enqueue(t Task) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.dropped.Add(1)
		q.log.Warn("outbox closed, dropping task", "task", t.Name)
		return false
	}
	select {
	case q.tasks <- t:
		return true
	default:
		q.dropped.Add(1)
		q.log.Warn("outbox full, dropping task", "task", t.Name, "capacity", cap(q.tasks))
		return false
	}
}

// Flush blocks until every task enqueued before the call has run.
func (q *Queue) Flush(ctx context.Context) error {
	done := make(chan struct{})
	marker := Task{Name: flushTaskName, Run: func(context.Context) error {
		close(done)
		return nil
	}}

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrClosed
	}
	select {
	case q.tasks <- marker:
	case <-ctx.Done():
		q.mu.RUnlock()
		return ctx.Err()
	}
	q.mu.RUnlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks, runs the ones already queued and waits for
// the worker to exit.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	q.mu.Unlock()
	q.wg.Wait()
}

// Stats returns a snapshot of the task counters.
func (q *Queue) Stats() Stats {
	return Stats{
		Completed: q.completed.Load(),
		Failed:    q.failed.Load(),
		Dropped:   q.dropped.Load(),
		Pending:   len(q.tasks),
	}
}

func (q *Queue) run() {
	defer q.wg.Done()
	for t := range q.tasks {
		q.execute(t)
	}
}

func (q *Queue) execute(t Task) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	if t.Name == flushTaskName {
		t.Run(ctx)
		return
	}

	start := time.Now()
	if err := t.Run(ctx); err != nil {
		q.failed.Add(1)
		q.log.Warn("outbox task failed", "task", t.Name, "error", err)
		return
	}
	q.completed.Add(1)
	q.log.Debug("outbox task done", "task", t.Name, "duration", time.Since(start).String())
}

// Mirror turns store mutations into document writes for one user.
type Mirror struct {
	queue  *Queue
	ds     storage.DocumentStore
	userID string
	log    *slog.Logger
}

var _ storage.Syncer = (*Mirror)(nil)

// NewMirror creates a Mirror writing to ds through q.
func NewMirror(q *Queue, ds storage.DocumentStore, userID string, log *slog.Logger) *Mirror {
	return &Mirror{queue: q, ds: ds, userID: userID, log: log}
}

// Sync marshals v immediately and enqueues a whole-document overwrite.
func (m *Mirror) Sync(c storage.Collection, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		m.log.Error("outbox marshal failed", "collection", c, "error", err)
		return
	}
	ds, uid := m.ds, m.userID
	m.queue.Enqueue(Task{
		Name: "save " + string(c),
		Run: func(ctx context.Context) error {
			return ds.SetDocument(ctx, uid, c, data)
		},
	})
}
