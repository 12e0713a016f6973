package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe(4)
	bus.Publish("tick")
	v := <-ch
	assert.Equal(t, "tick", v)
	bus.Unsubscribe(ch)
}

func TestBusDropsWhenFull(t *testing.T) {
	bus := New()
	_ = bus.Subscribe(1)
	bus.Publish(1)
	bus.Publish(2)
	assert.Equal(t, uint64(1), bus.Dropped())
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe(1)
	ch2 := bus.Subscribe(1)
	bus.Close()
	_, ok := <-ch1
	require.False(t, ok)
	_, ok = <-ch2
	require.False(t, ok)

	// Publish and Unsubscribe after Close must not panic.
	bus.Publish("late")
	bus.Unsubscribe(ch1)
}

func TestBusSubscribeAfterClose(t *testing.T) {
	bus := New()
	bus.Close()
	ch := bus.Subscribe(1)
	_, ok := <-ch
	assert.False(t, ok)
}
