package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultChannelBufferSize = 64
	slowSubscriberTimeout    = 2 * time.Second
)

// subscriber owns one delivery channel. done closes when the subscription
// is removed; ch closes once every in-flight send for it has returned.
type subscriber[T any] struct {
	ch     chan Event[T]
	done   chan struct{}
	cancel context.CancelFunc
	sends  sync.WaitGroup
}

// Broker fans out events to every live subscriber. A subscription ends when
// its context is cancelled or the broker shuts down; either way its channel
// is closed exactly once. The lock is never held while sending to a slow
// subscriber or while logging, since logging may publish on this broker.
type Broker[T any] struct {
	subs     map[*subscriber[T]]struct{}
	mu       sync.RWMutex
	wg       sync.WaitGroup
	isClosed bool
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[*subscriber[T]]struct{}),
	}
}

func (b *Broker[T]) Shutdown() {
	b.mu.Lock()
	if b.isClosed {
		b.mu.Unlock()
		return
	}
	b.isClosed = true

	removed := make([]*subscriber[T], 0, len(b.subs))
	for sub := range b.subs {
		sub.cancel()
		b.remove(sub)
		removed = append(removed, sub)
	}
	b.mu.Unlock()

	for _, sub := range removed {
		sub.finish()
	}
	b.wg.Wait()
	slog.Debug("pubsub broker shut down", "type", fmt.Sprintf("%T", *new(T)))
}

func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed {
		closedCh := make(chan Event[T])
		close(closedCh)
		return closedCh
	}

	subCtx, subCancel := context.WithCancel(ctx)
	sub := &subscriber[T]{
		ch:     make(chan Event[T], defaultChannelBufferSize),
		done:   make(chan struct{}),
		cancel: subCancel,
	}
	b.subs[sub] = struct{}{}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		<-subCtx.Done()

		b.mu.Lock()
		_, ok := b.subs[sub]
		if ok {
			b.remove(sub)
		}
		b.mu.Unlock()
		if ok {
			sub.finish()
		}
	}()

	return sub.ch
}

// remove must be called with b.mu held. No send can start for sub afterwards.
func (b *Broker[T]) remove(sub *subscriber[T]) {
	delete(b.subs, sub)
	close(sub.done)
}

// finish waits for in-flight sends, then closes the channel. Call it without
// holding b.mu.
func (s *subscriber[T]) finish() {
	s.sends.Wait()
	close(s.ch)
}

func (b *Broker[T]) Publish(eventType EventType, payload T) {
	event := Event[T]{Type: eventType, Payload: payload}

	b.mu.RLock()
	if b.isClosed {
		b.mu.RUnlock()
		slog.Debug("publish on closed pubsub broker", "type", eventType)
		return
	}
	for sub := range b.subs {
		select {
		case sub.ch <- event:
			continue
		default:
		}

		// Slow subscriber: hand off so the publisher never blocks. Ordering
		// for that subscriber is no longer guaranteed.
		sub.sends.Add(1)
		b.wg.Add(1)
		go b.deliverSlow(sub, event)
	}
	b.mu.RUnlock()
}

func (b *Broker[T]) deliverSlow(sub *subscriber[T], ev Event[T]) {
	defer b.wg.Done()

	timer := time.NewTimer(slowSubscriberTimeout)
	defer timer.Stop()

	dropped := false
	select {
	case sub.ch <- ev:
	case <-sub.done:
	case <-timer.C:
		dropped = true
	}
	sub.sends.Done()

	if dropped {
		slog.Warn("pubsub: dropped event for slow subscriber", "type", ev.Type)
	}
}

func (b *Broker[T]) GetSubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
