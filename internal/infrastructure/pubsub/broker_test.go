package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func receive[T any](t *testing.T, sub *Subscription[T]) T {
	t.Helper()
	select {
	case v, ok := <-sub.C():
		require.True(t, ok, "subscription closed unexpectedly")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	var zero T
	return zero
}

func waitClosed[T any](t *testing.T, sub *Subscription[T]) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-sub.C():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscription was not closed")
		}
	}
}

func TestPublishFanOut(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	b := NewBroker[string](Config{})
	defer b.Close()

	ctx := context.Background()
	s1, err := b.Subscribe(ctx, "book-added")
	require.NoError(t, err)
	s2, err := b.Subscribe(ctx, "book-added")
	require.NoError(t, err)
	other, err := b.Subscribe(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "book-added", s1.Topic())
	assert.Equal(t, "other", other.Topic())

	delivered := b.Publish("book-added", "Dune")
	assert.Equal(t, 2, delivered)

	assert.Equal(t, "Dune", receive(t, s1))
	assert.Equal(t, "Dune", receive(t, s2))

	select {
	case v := <-other.C():
		t.Fatalf("unexpected event on other topic: %v", v)
	default:
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	b := NewBroker[int](Config{})
	defer b.Close()

	assert.Equal(t, 0, b.Publish("book-added", 1))
}

func TestSubscriberOnlySeesLaterEvents(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	b := NewBroker[int](Config{})
	defer b.Close()

	b.Publish("t", 1)
	sub, err := b.Subscribe(context.Background(), "t")
	require.NoError(t, err)
	b.Publish("t", 2)

	assert.Equal(t, 2, receive(t, sub))
}

func TestPublishOrderPreserved(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	b := NewBroker[int](Config{BufferSize: 100})
	defer b.Close()

	sub, err := b.Subscribe(context.Background(), "t")
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		b.Publish("t", i)
	}
	for i := 0; i < 50; i++ {
		assert.Equal(t, i, receive(t, sub))
	}
}

func TestContextCancelDeregisters(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	b := NewBroker[int](Config{})
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := b.Subscribe(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Subscribers("t"))

	cancel()
	waitClosed(t, sub)

	assert.Equal(t, 0, b.Subscribers("t"))
	assert.Equal(t, 0, b.Publish("t", 1))
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	b := NewBroker[int](Config{})
	defer b.Close()

	sub, err := b.Subscribe(context.Background(), "t")
	require.NoError(t, err)

	sub.Close()
	sub.Close()
	waitClosed(t, sub)
	assert.Equal(t, 0, b.Subscribers("t"))
}

func TestSlowSubscriberDropPolicy(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	b := NewBroker[int](Config{BufferSize: 1, SlowPolicy: PolicyDrop})
	defer b.Close()

	slow, err := b.Subscribe(context.Background(), "t")
	require.NoError(t, err)
	fast, err := b.Subscribe(context.Background(), "t")
	require.NoError(t, err)

	assert.Equal(t, 2, b.Publish("t", 1))
	assert.Equal(t, 1, receive(t, fast))

	// slow still holds event 1
	assert.Equal(t, 1, b.Publish("t", 2))
	assert.Equal(t, 2, receive(t, fast))

	assert.Equal(t, 1, receive(t, slow))
	assert.Equal(t, 2, b.Subscribers("t"))
}

func TestSlowSubscriberEvictPolicy(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	b := NewBroker[int](Config{BufferSize: 1, SlowPolicy: PolicyEvict})
	defer b.Close()

	slow, err := b.Subscribe(context.Background(), "t")
	require.NoError(t, err)

	b.Publish("t", 1)
	b.Publish("t", 2)

	assert.Equal(t, 1, receive(t, slow))
	waitClosed(t, slow)
	assert.Equal(t, 0, b.Subscribers("t"))
}

func TestBrokerClose(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	b := NewBroker[int](Config{})
	sub, err := b.Subscribe(context.Background(), "t")
	require.NoError(t, err)

	require.NoError(t, b.Close())
	waitClosed(t, sub)

	assert.ErrorIs(t, b.Close(), ErrBrokerClosed)
	_, err = b.Subscribe(context.Background(), "t")
	assert.ErrorIs(t, err, ErrBrokerClosed)
	assert.Equal(t, 0, b.Publish("t", 1))
}

func TestConcurrentPublishAndCancel(t *testing.T) {
	t.Cleanup(func() { goleak.VerifyNone(t) })

	b := NewBroker[int](Config{BufferSize: 4})
	defer b.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		sub, err := b.Subscribe(ctx, "t")
		require.NoError(t, err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			for range sub.C() {
			}
		}()
		go func(i int) {
			time.Sleep(time.Duration(i) * time.Millisecond)
			cancel()
		}(i)
	}

	for i := 0; i < 200; i++ {
		b.Publish("t", i)
	}

	wg.Wait()
	assert.Equal(t, 0, b.Subscribers("t"))
}
