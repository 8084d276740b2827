package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"leasehawk/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// MatchQueue represents an in-memory queue for recomputed match batches
type MatchQueue struct {
	items    chan []*models.Match
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.Match) error
}

// NewMatchQueue creates a new match queue with the specified buffer size
func NewMatchQueue(bufferSize int, logger *logrus.Logger) *MatchQueue {
	return &MatchQueue{
		items:    make(chan []*models.Match, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]*models.Match) error, 0),
	}
}

// Push adds a batch of matches to the queue
func (q *MatchQueue) Push(matches []*models.Match) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- matches:
		q.logger.WithField("batch_size", len(matches)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *MatchQueue) Subscribe(handler func([]*models.Match) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *MatchQueue) Start() {
	go q.process()
}

// process handles the queue processing loop
func (q *MatchQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.processBatch(batch)
		}
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *MatchQueue) processBatch(batch []*models.Match) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops the queue and prevents new items from being added
func (q *MatchQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of batches in the queue
func (q *MatchQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *MatchQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
