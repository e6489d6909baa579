// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-login-service/internal/config"
	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/store"
)

// countingWorker tracks how many times Run was called.
type countingWorker struct {
	runCount int
}

func (c *countingWorker) Run() {
	c.runCount++
}

func TestWorkers_Run_StartsEveryWorker(t *testing.T) {
	w1 := &countingWorker{}
	w2 := &countingWorker{}

	ws := &Workers{workers: []Worker{w1, w2}}
	ws.Run()

	for i, w := range []*countingWorker{w1, w2} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_NoWorkers(t *testing.T) {
	// Neither an empty slice nor a nil one should panic.
	(&Workers{workers: []Worker{}}).Run()
	(&Workers{}).Run()
}

func TestNewWorkers_PositiveIntervalRegistersJanitor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ws := NewWorkers(ctx, store.Storages{}, config.Workers{CleanupInterval: time.Hour}, logger.Nop())

	if len(ws.workers) != 1 {
		t.Errorf("expected 1 registered worker, got %d", len(ws.workers))
	}
}

func TestNewWorkers_NonPositiveIntervalSkipsJanitor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, interval := range []time.Duration{0, -time.Minute} {
		ws := NewWorkers(ctx, store.Storages{}, config.Workers{CleanupInterval: interval}, logger.Nop())

		if len(ws.workers) != 0 {
			t.Errorf("interval %v: expected no registered workers, got %d", interval, len(ws.workers))
		}

		// Starting an empty worker set must be a no-op, not a crash.
		ws.Run()
	}
}
