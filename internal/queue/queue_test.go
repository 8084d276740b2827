package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"leasehawk/server/internal/models"
)

func TestNewMatchQueue(t *testing.T) {
	logger := logrus.New()
	q := NewMatchQueue(10, logger)
	assert.NotNil(t, q)
	assert.Equal(t, 10, q.maxSize)
	assert.False(t, q.IsClosed())
}

func TestMatchQueue_Push(t *testing.T) {
	logger := logrus.New()
	q := NewMatchQueue(2, logger)

	// Test successful push
	matches := []*models.Match{{ProspectusID: 1, PropertyID: 1}}
	err := q.Push(matches)
	assert.NoError(t, err)
	assert.Equal(t, 1, q.Len())

	// Test queue full
	for i := 0; i < 2; i++ {
		matches := []*models.Match{{ProspectusID: 1, PropertyID: int64(i + 2)}}
		_ = q.Push(matches)
	}
	err = q.Push(matches)
	assert.Equal(t, ErrQueueFull, err)

	// Test closed queue
	q.Close()
	err = q.Push(matches)
	assert.Equal(t, ErrQueueClosed, err)
}

func TestMatchQueue_Subscribe(t *testing.T) {
	logger := logrus.New()
	q := NewMatchQueue(10, logger)

	var processed []*models.Match
	var mu sync.Mutex

	// Add handler
	q.Subscribe(func(matches []*models.Match) error {
		mu.Lock()
		processed = append(processed, matches...)
		mu.Unlock()
		return nil
	})

	// Start queue
	q.Start()

	// Push items
	testMatches := []*models.Match{
		{ProspectusID: 1, PropertyID: 1, TotalScore: 90},
		{ProspectusID: 1, PropertyID: 2, TotalScore: 60},
	}
	err := q.Push(testMatches)
	assert.NoError(t, err)

	// Wait for processing
	time.Sleep(100 * time.Millisecond)

	// Verify processing
	mu.Lock()
	assert.Equal(t, 2, len(processed))
	assert.Equal(t, int64(1), processed[0].PropertyID)
	assert.Equal(t, int64(2), processed[1].PropertyID)
	mu.Unlock()
}

func TestMatchQueue_Close(t *testing.T) {
	logger := logrus.New()
	q := NewMatchQueue(10, logger)

	// Test first close
	err := q.Close()
	assert.NoError(t, err)
	assert.True(t, q.IsClosed())

	// Test second close (should be no-op)
	err = q.Close()
	assert.NoError(t, err)
}

func TestMatchQueue_ProcessBatch(t *testing.T) {
	logger := logrus.New()
	q := NewMatchQueue(10, logger)

	var wg sync.WaitGroup
	processedBatches := 0
	var mu sync.Mutex

	// Add multiple handlers
	for i := 0; i < 3; i++ {
		wg.Add(1)
		q.Subscribe(func(matches []*models.Match) error {
			mu.Lock()
			processedBatches++
			mu.Unlock()
			wg.Done()
			return nil
		})
	}

	// Start queue
	q.Start()

	// Push a batch
	testMatches := []*models.Match{{ProspectusID: 1, PropertyID: 1}}
	err := q.Push(testMatches)
	assert.NoError(t, err)

	// Wait for all handlers
	wg.Wait()

	// Verify all handlers processed the batch
	mu.Lock()
	assert.Equal(t, 3, processedBatches)
	mu.Unlock()
}
