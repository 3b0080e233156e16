package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBrokerSubscribe(t *testing.T) {
	t.Parallel()

	t.Run("with cancellable context", func(t *testing.T) {
		t.Parallel()
		broker := NewBroker[string]()
		defer broker.Shutdown()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := broker.Subscribe(ctx)
		assert.NotNil(t, ch)
		assert.Equal(t, 1, broker.GetSubscriberCount())

		cancel()
		assert.Eventually(t, func() bool {
			return broker.GetSubscriberCount() == 0
		}, time.Second, 5*time.Millisecond)

		_, ok := <-ch
		assert.False(t, ok, "channel should be closed after cancel")
	})

	t.Run("after shutdown", func(t *testing.T) {
		t.Parallel()
		broker := NewBroker[string]()
		broker.Shutdown()

		ch := broker.Subscribe(context.Background())
		_, ok := <-ch
		assert.False(t, ok)
		assert.Equal(t, 0, broker.GetSubscriberCount())
	})
}

func TestBrokerPublish(t *testing.T) {
	t.Parallel()
	broker := NewBroker[string]()
	defer broker.Shutdown()

	ch := broker.Subscribe(context.Background())
	broker.Publish(EventTypeCreated, "suggestion shown")

	select {
	case event := <-ch:
		assert.Equal(t, EventTypeCreated, event.Type)
		assert.Equal(t, "suggestion shown", event.Payload)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestBrokerPublishAfterShutdownIsNoop(t *testing.T) {
	t.Parallel()
	broker := NewBroker[int]()
	broker.Shutdown()
	broker.Shutdown()

	assert.NotPanics(t, func() { broker.Publish(EventTypeUpdated, 1) })
}

func TestBrokerShutdown(t *testing.T) {
	t.Parallel()
	broker := NewBroker[string]()

	ch1 := broker.Subscribe(context.Background())
	ch2 := broker.Subscribe(context.Background())
	assert.Equal(t, 2, broker.GetSubscriberCount())

	broker.Shutdown()

	_, ok1 := <-ch1
	_, ok2 := <-ch2
	assert.False(t, ok1, "channel 1 should be closed")
	assert.False(t, ok2, "channel 2 should be closed")
	assert.Equal(t, 0, broker.GetSubscriberCount())
}

func TestBrokerSlowSubscriber(t *testing.T) {
	t.Parallel()
	broker := NewBroker[int]()
	defer broker.Shutdown()

	ch := broker.Subscribe(context.Background())
	total := defaultChannelBufferSize + 8
	for i := range total {
		broker.Publish(EventTypeCreated, i)
	}

	received := 0
	timeout := time.After(2 * time.Second)
	for received < total {
		select {
		case <-ch:
			received++
		case <-timeout:
			t.Fatalf("received %d of %d events", received, total)
		}
	}
}

func TestBrokerConcurrency(t *testing.T) {
	t.Parallel()
	broker := NewBroker[int]()
	defer broker.Shutdown()

	const numSubscribers = 50
	var ready, done sync.WaitGroup
	ready.Add(numSubscribers)
	done.Add(numSubscribers)

	received := make(chan int, numSubscribers)
	for i := range numSubscribers {
		go func(id int) {
			defer done.Done()
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			ch := broker.Subscribe(ctx)
			ready.Done()

			select {
			case event := <-ch:
				received <- event.Payload
			case <-time.After(time.Second):
				t.Errorf("subscriber %d timed out", id)
			}
		}(i)
	}

	ready.Wait()
	broker.Publish(EventTypeCreated, 42)
	done.Wait()
	close(received)

	count := 0
	for v := range received {
		assert.Equal(t, 42, v)
		count++
	}
	assert.Equal(t, numSubscribers, count)
	assert.Eventually(t, func() bool {
		return broker.GetSubscriberCount() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestBrokerShutdownWithStalledSubscriber(t *testing.T) {
	t.Parallel()
	broker := NewBroker[int]()

	ch := broker.Subscribe(context.Background())
	for i := range defaultChannelBufferSize + 6 {
		broker.Publish(EventTypeCreated, i)
	}

	done := make(chan struct{})
	go func() {
		broker.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(slowSubscriberTimeout / 2):
		t.Fatal("shutdown waited on a subscriber that never reads")
	}

	drained := 0
	for range ch {
		drained++
	}
	assert.LessOrEqual(t, drained, defaultChannelBufferSize+6)
}

func TestBrokerCancelWithStalledSubscriber(t *testing.T) {
	t.Parallel()
	broker := NewBroker[int]()
	defer broker.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	for i := range defaultChannelBufferSize + 6 {
		broker.Publish(EventTypeCreated, i)
	}
	cancel()

	assert.Eventually(t, func() bool {
		return broker.GetSubscriberCount() == 0
	}, slowSubscriberTimeout/2, 5*time.Millisecond)
	for range ch {
	}
}
