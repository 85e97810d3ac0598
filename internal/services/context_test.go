package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tabbatch/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithOperation(ctx, "search")
	ctx = services.WithBatch(ctx, 3)

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if op, ok := services.OperationFromContext(ctx); !ok || op != "search" {
		t.Fatalf("unexpected operation: %v %v", op, ok)
	}
	if batch, ok := services.BatchFromContext(ctx); !ok || batch != 3 {
		t.Fatalf("unexpected batch: %v %v", batch, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithOperation(ctx, "")
	ctx = services.WithBatch(ctx, 0)
	if _, ok := services.OperationFromContext(ctx); ok {
		t.Fatal("expected no operation value")
	}
	if _, ok := services.BatchFromContext(ctx); ok {
		t.Fatal("expected no batch value")
	}
}

func TestSleepWithContextHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := services.SleepWithContext(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("sleep did not return early")
	}
	if err := services.SleepWithContext(context.Background(), 0); err != nil {
		t.Fatalf("zero sleep: %v", err)
	}
}
