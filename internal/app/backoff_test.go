package app

import (
	"context"
	"testing"
	"time"
)

func TestBackoff_Doubles(t *testing.T) {
	b := newBackoff(time.Millisecond, 4*time.Millisecond)
	want := []time.Duration{2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond}
	for i, w := range want {
		if !b.Sleep(context.Background()) {
			t.Fatal("Sleep returned false without cancellation")
		}
		if b.Current() != w {
			t.Errorf("after sleep %d: current = %v, want %v", i+1, b.Current(), w)
		}
	}
	b.Reset()
	if b.Current() != time.Millisecond {
		t.Errorf("after Reset: current = %v", b.Current())
	}
}

func TestBackoff_Cancelled(t *testing.T) {
	b := newBackoff(time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if b.Sleep(ctx) {
		t.Fatal("Sleep returned true on a cancelled context")
	}
	if b.Current() != time.Hour {
		t.Errorf("current changed on cancelled sleep: %v", b.Current())
	}
}
