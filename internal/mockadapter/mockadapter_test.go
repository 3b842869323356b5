package mockadapter

import (
	"context"
	"testing"
	"time"
)

func TestBiosignalEmitsWithinInterval(t *testing.T) {
	b := NewBiosignal()
	b.Interval = 5 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, _ := b.Subscribe(ctx)
	select {
	case sample := <-ch:
		if sample.HeartRate == nil {
			t.Fatal("sample.HeartRate is nil, want a value")
		}
	case <-time.After(time.Second):
		t.Fatal("no biosignal sample emitted within timeout")
	}
}

func TestBehavioralCyclesEventTypes(t *testing.T) {
	b := NewBehavioral()
	b.Interval = 5 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, _ := b.Subscribe(ctx)
	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		select {
		case evt := <-ch:
			seen[string(evt.Type)] = true
		case <-time.After(time.Second):
			t.Fatal("no behavioral event emitted within timeout")
		}
	}
	if len(seen) < 2 {
		t.Errorf("got %d distinct event types, want at least 2", len(seen))
	}
}

func TestContextEmitsDeviceState(t *testing.T) {
	c := NewContext()
	c.Interval = 5 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, _ := c.Subscribe(ctx)
	select {
	case sample := <-ch:
		if sample.Device == nil || !sample.Device.Foreground {
			t.Fatal("sample.Device missing or not foreground")
		}
	case <-time.After(time.Second):
		t.Fatal("no context sample emitted within timeout")
	}
}

func TestChannelsCloseOnCancel(t *testing.T) {
	b := NewBiosignal()
	b.Interval = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	ch, errCh := b.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("ch received a value instead of closing")
		}
	case <-time.After(time.Second):
		t.Fatal("ch did not close within timeout")
	}
	select {
	case _, ok := <-errCh:
		if ok {
			t.Error("errCh received a value instead of closing")
		}
	case <-time.After(time.Second):
		t.Fatal("errCh did not close within timeout")
	}
}
