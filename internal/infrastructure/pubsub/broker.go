// Package pubsub provides the in-process Subscription Broker used to fan
// ChangeEvents out to live GraphQL subscriptions.
package pubsub

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrBrokerClosed is returned when subscribing to a closed broker.
var ErrBrokerClosed = errors.New("broker is closed")

// SlowPolicy decides what happens when a subscriber's queue is full.
type SlowPolicy string

const (
	// PolicyDrop skips the event for that subscriber only.
	PolicyDrop SlowPolicy = "drop"
	// PolicyEvict ends the subscription of the slow subscriber.
	PolicyEvict SlowPolicy = "evict"
)

// Config configures the broker behavior.
type Config struct {
	// BufferSize is the queue length of each subscription.
	// Default: 64.
	BufferSize int

	// SlowPolicy applies when a queue is full. Default: PolicyDrop.
	SlowPolicy SlowPolicy
}

func (c Config) defaults() Config {
	if c.BufferSize <= 0 {
		c.BufferSize = 64
	}
	if c.SlowPolicy != PolicyEvict {
		c.SlowPolicy = PolicyDrop
	}
	return c
}

// Broker fans payloads of type T out to every subscription of a topic.
//
// Publish never blocks on a subscriber. Publishes are serialised, so each
// subscriber observes events of a topic in publish order. A subscription
// only sees events published after Subscribe returned.
type Broker[T any] struct {
	config Config

	mu     sync.Mutex
	topics map[string]map[*Subscription[T]]struct{}
	closed bool
}

// NewBroker creates a new in-memory broker with the given configuration.
func NewBroker[T any](config Config) *Broker[T] {
	return &Broker[T]{
		config: config.defaults(),
		topics: make(map[string]map[*Subscription[T]]struct{}),
	}
}

// Subscription is one consumer's lazy, cancellable sequence of payloads.
type Subscription[T any] struct {
	broker *Broker[T]
	topic  string
	ch     chan T
	done   chan struct{}
	once   sync.Once
}

// C returns the delivery channel. It is closed when the subscription ends.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Topic returns the subscribed topic.
func (s *Subscription[T]) Topic() string {
	return s.topic
}

// Close deregisters the subscription. Safe to call more than once.
func (s *Subscription[T]) Close() {
	s.broker.mu.Lock()
	defer s.broker.mu.Unlock()
	s.broker.removeLocked(s)
}

// Subscribe registers a subscription on topic. It is removed when ctx is
// done, when Close is called, when it is evicted, or when the broker closes.
func (b *Broker[T]) Subscribe(ctx context.Context, topic string) (*Subscription[T], error) {
	sub := &Subscription[T]{
		broker: b,
		topic:  topic,
		ch:     make(chan T, b.config.BufferSize),
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBrokerClosed
	}
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[*Subscription[T]]struct{})
		b.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	b.mu.Unlock()

	subscribersGauge.WithLabelValues(topic).Inc()

	// Client disconnect → prompt deregistration
	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()

	return sub, nil
}

// Publish delivers payload to every current subscriber of topic without
// blocking and returns the number of subscribers that received it.
func (b *Broker[T]) Publish(topic string, payload T) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}
	eventsPublishedCounter.WithLabelValues(topic).Inc()

	delivered := 0
	for sub := range b.topics[topic] {
		select {
		case sub.ch <- payload:
			delivered++
		default:
			eventsDroppedCounter.WithLabelValues(topic).Inc()
			if b.config.SlowPolicy == PolicyEvict {
				log.Warn().Str("topic", topic).Msg("evicting slow subscriber")
				b.removeLocked(sub)
			} else {
				log.Warn().Str("topic", topic).Msg("subscriber queue full, event dropped")
			}
		}
	}
	return delivered
}

// Subscribers returns the number of live subscriptions on topic.
func (b *Broker[T]) Subscribers(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}

// Close ends every subscription. Later Publish calls are no-ops and
// Subscribe fails with ErrBrokerClosed.
func (b *Broker[T]) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrokerClosed
	}
	b.closed = true

	for _, subs := range b.topics {
		for sub := range subs {
			b.removeLocked(sub)
		}
	}
	return nil
}

// removeLocked must be called with b.mu held. Closing the channel under the
// same lock Publish holds guarantees no send on a closed channel.
func (b *Broker[T]) removeLocked(sub *Subscription[T]) {
	sub.once.Do(func() {
		if subs, ok := b.topics[sub.topic]; ok {
			delete(subs, sub)
			if len(subs) == 0 {
				delete(b.topics, sub.topic)
			}
		}
		close(sub.ch)
		close(sub.done)
		subscribersGauge.WithLabelValues(sub.topic).Dec()
	})
}
