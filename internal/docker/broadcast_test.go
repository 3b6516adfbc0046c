package docker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBroadcast_PublishFanOut(t *testing.T) {
	b := newBroadcast()

	ch1, unsub1 := b.subscribe()
	ch2, unsub2 := b.subscribe()
	defer unsub1()
	defer unsub2()

	b.publish("hello")

	select {
	case msg := <-ch1:
		assert.Equal(t, "hello", msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ch1")
	}

	select {
	case msg := <-ch2:
		assert.Equal(t, "hello", msg)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ch2")
	}
}

func TestBroadcast_UnsubscribeClosesChannel(t *testing.T) {
	b := newBroadcast()
	ch, unsubscribe := b.subscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)
}

func TestBroadcast_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := newBroadcast()
	_, unsubscribe := b.subscribe()
	defer unsubscribe()

	for i := 0; i < 1024; i++ {
		b.publish("chunk")
	}
}

func TestBroadcast_CloseClosesExistingSubscribers(t *testing.T) {
	b := newBroadcast()
	ch, unsubscribe := b.subscribe()
	defer unsubscribe()

	b.close()

	_, ok := <-ch
	assert.False(t, ok)
}

func TestBroadcast_SubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	b := newBroadcast()
	b.close()

	ch, unsubscribe := b.subscribe()
	defer unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)
}
