package hub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUnregister(t *testing.T) {
	h := New()
	a := h.Register("ada")
	b := h.Register("bob")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, h.Players())

	h.Unregister(a.ID)
	h.Unregister(a.ID)
	h.Unregister(999)
	assert.Equal(t, 1, h.Players())
}

func TestConcurrentRegistration(t *testing.T) {
	h := New()
	var wg sync.WaitGroup
	ids := make(chan int, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- h.Register("p").ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Equal(t, 50, h.Players())
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	h := New()
	handles := []*Handle{h.Register("a"), h.Register("b")}

	for _, hd := range handles {
		go func(hd *Handle) {
			<-hd.Notices
			h.Unregister(hd.ID)
		}(hd)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Zero(t, h.Shutdown(ctx))
}

func TestShutdownTimesOut(t *testing.T) {
	h := New()
	hd := h.Register("stubborn")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.Equal(t, 1, h.Shutdown(ctx))

	select {
	case n := <-hd.Notices:
		assert.Equal(t, NoticeShutdown, n)
	default:
		t.Fatal("no shutdown notice")
	}
}

func TestRegisterAfterShutdown(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Zero(t, h.Shutdown(ctx))

	hd := h.Register("late")
	assert.Equal(t, NoticeShutdown, <-hd.Notices)
}
