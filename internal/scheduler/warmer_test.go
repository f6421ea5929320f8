package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	applogger "QuantLab/pkg/logger"
)

func TestWarmerRunsImmediately(t *testing.T) {
	var calls atomic.Int32
	w := NewWarmer(time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, applogger.Nop())

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("warm-up pass never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWarmerDisabledWithoutInterval(t *testing.T) {
	var calls atomic.Int32
	w := NewWarmer(0, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, applogger.Nop())

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatal("disabled warmer must not run")
	}
}
