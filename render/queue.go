package render

import (
	"sync"

	"github.com/srlehn/fbsplash/internal/consts"
	"github.com/srlehn/fbsplash/internal/errors"
)

// queue is an unbounded FIFO with many producers and one consumer.
type queue struct {
	mu     sync.Mutex
	items  []Command
	closed bool
	ready  chan struct{}
}

func newQueue() *queue { return &queue{ready: make(chan struct{}, 1)} }

func (q *queue) push(c Command) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return errors.New(consts.ErrSenderClosed)
	}
	q.items = append(q.items, c)
	q.mu.Unlock()
	q.wake()
	return nil
}

// pop blocks until a command is queued. ok is false once the queue is
// closed and drained.
func (q *queue) pop() (c Command, ok bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			c = q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return c, true
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return nil, false
		}
		<-q.ready
	}
}

// drain removes whatever the consumer did not get to.
func (q *queue) drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

func (q *queue) wake() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Sender enqueues commands for a Loop. It is safe for concurrent use and
// never blocks.
type Sender struct{ q *queue }

// Send enqueues c. Commands are applied in the order Send returned.
func (s *Sender) Send(c Command) error {
	if s == nil || s.q == nil {
		return errors.NilReceiver()
	}
	if c == nil {
		return errors.NilParam()
	}
	return s.q.push(c)
}

// Flush waits until every command sent before it was applied. If the loop
// ended first the error matches ErrClosed and carries the reason the loop
// stopped. Flush blocks until the loop runs.
func (s *Sender) Flush() error {
	ack := make(chan error, 1)
	if err := s.Send(flush{ack: ack}); err != nil {
		return err
	}
	return <-ack
}

// Close tells the loop no more commands follow. Close a sender only after
// Stop was sent, otherwise the loop reports an unexpected close.
func (s *Sender) Close() error {
	if s == nil || s.q == nil {
		return nil
	}
	s.q.close()
	return nil
}
