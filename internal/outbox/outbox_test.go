package outbox

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliversInOrder(t *testing.T) {
	ob := New(16, nil)
	go ob.Run()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 10; i++ {
		i := i
		ob.Enqueue("op", func() error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		})
	}
	ob.Close()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	assert.Zero(t, ob.Failed())
}

func TestFailureNotifiesAndContinues(t *testing.T) {
	var failures []*PersistenceFailureError
	ob := New(4, func(f *PersistenceFailureError) {
		failures = append(failures, f)
	})
	go ob.Run()

	sinkErr := errors.New("connection refused")
	delivered := false
	ob.Enqueue("transaction.insert", func() error { return sinkErr })
	ob.Enqueue("product.stock", func() error { delivered = true; return nil })
	ob.Close()

	// The failed command is reported, the next one still runs.
	require.Len(t, failures, 1)
	assert.Equal(t, "transaction.insert", failures[0].Op)
	assert.ErrorIs(t, failures[0], sinkErr)
	assert.True(t, delivered)
	assert.Equal(t, 1, ob.Failed())
}

func TestDisabledDropsCommands(t *testing.T) {
	ob := NewDisabled()

	ran := false
	ob.Enqueue("transaction.insert", func() error { ran = true; return nil })
	ob.Enqueue("product.stock", func() error { ran = true; return nil })
	ob.Close()

	assert.False(t, ran, "offline mode must never invoke the sink")
	assert.Equal(t, 2, ob.Dropped())
}

func TestCloseDrainsQueue(t *testing.T) {
	ob := New(64, nil)

	count := 0
	for i := 0; i < 50; i++ {
		ob.Enqueue("op", func() error { count++; return nil })
	}
	// Worker starts after the queue is already full; Close must still wait
	// for every command to be delivered.
	go ob.Run()
	ob.Close()

	assert.Equal(t, 50, count)
}
