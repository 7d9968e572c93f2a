package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignalFireWakesAllSubscribers(t *testing.T) {
	s := NewSignal()
	assert.False(t, s.Fired())

	const subscribers = 5
	woken := make(chan int, subscribers)
	for i := 0; i < subscribers; i++ {
		go func(id int) {
			<-s.Done()
			woken <- id
		}(i)
	}

	s.Fire()

	for i := 0; i < subscribers; i++ {
		select {
		case <-woken:
		case <-time.After(time.Second):
			t.Fatal("subscriber did not wake within timeout")
		}
	}
	assert.True(t, s.Fired())
}

func TestSignalFireIsIdempotent(t *testing.T) {
	s := NewSignal()
	assert.NotPanics(t, func() {
		s.Fire()
		s.Fire()
		s.Fire()
	})
}

func TestDrainBarrierWaitsForAllParticipants(t *testing.T) {
	b := NewDrainBarrier()
	b.Acquire()
	b.Acquire()

	done := make(chan struct{})
	go func() {
		b.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before all participants released")
	case <-time.After(20 * time.Millisecond):
	}

	b.Release()
	b.Release()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after all participants released")
	}
}
