package refresh

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func recvSignal(t *testing.T, ch <-chan Signal, within time.Duration) (Signal, bool) {
	t.Helper()
	select {
	case sig, ok := <-ch:
		return sig, ok
	case <-time.After(within):
		return Signal{}, false
	}
}

func TestBroadcast_DeliversToSubscribers(t *testing.T) {
	svc := NewService(10*time.Millisecond, time.Millisecond, zap.NewNop())

	ch, unsubscribe := svc.Subscribe()
	defer unsubscribe()

	svc.Broadcast("test")

	sig, ok := recvSignal(t, ch, 100*time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, "test", sig.Reason)
}

func TestBroadcast_DebouncesBurst(t *testing.T) {
	svc := NewService(30*time.Millisecond, time.Millisecond, zap.NewNop())

	ch, unsubscribe := svc.Subscribe()
	defer unsubscribe()

	// First broadcast runs immediately; the burst collapses into one
	// trailing delivery at the end of the window.
	svc.Broadcast("a")
	svc.Broadcast("b")
	svc.Broadcast("c")

	_, ok := recvSignal(t, ch, 100*time.Millisecond)
	require.True(t, ok)

	_, ok = recvSignal(t, ch, 200*time.Millisecond)
	assert.True(t, ok, "expected one trailing delivery")

	_, ok = recvSignal(t, ch, 50*time.Millisecond)
	assert.False(t, ok, "burst must collapse, not replay")
}

func TestBroadcastAfterMutation_Renudges(t *testing.T) {
	svc := NewService(time.Millisecond, 5*time.Millisecond, zap.NewNop())

	ch, unsubscribe := svc.Subscribe()
	defer unsubscribe()

	svc.BroadcastAfterMutation()

	first, ok := recvSignal(t, ch, 100*time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, "mutation", first.Reason)

	second, ok := recvSignal(t, ch, 200*time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, "mutation-renudge", second.Reason)
}

func TestForceRefresh_CancelsMatchingInFlight(t *testing.T) {
	svc := NewService(time.Millisecond, time.Millisecond, zap.NewNop())

	ctx1, cancel1 := context.WithCancel(context.Background())
	release1 := svc.RegisterInFlight("event-requests", cancel1)
	defer release1()

	ctx2, cancel2 := context.WithCancel(context.Background())
	release2 := svc.RegisterInFlight("notifications", cancel2)
	defer release2()
	defer cancel2()

	svc.ForceRefresh("manual", "event-requests")

	assert.Error(t, ctx1.Err(), "matching fetch must be cancelled")
	assert.NoError(t, ctx2.Err(), "non-matching fetch must survive")
}

func TestUnsubscribe_ClosesChannel(t *testing.T) {
	svc := NewService(time.Millisecond, time.Millisecond, zap.NewNop())

	ch, unsubscribe := svc.Subscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)

	// Unsubscribing twice is harmless.
	unsubscribe()
}
