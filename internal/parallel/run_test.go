package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestRun_CallsEveryBand(t *testing.T) {
	bands := Split(600, 8)

	var calls atomic.Int64
	seen := make([]atomic.Bool, len(bands))

	err := Run(context.Background(), bands, func(_ context.Context, b Band) error {
		calls.Add(1)
		seen[b.Index].Store(true)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if calls.Load() != int64(len(bands)) {
		t.Errorf("calls = %d, want %d", calls.Load(), len(bands))
	}
	for i := range seen {
		if !seen[i].Load() {
			t.Errorf("band %d was not run", i)
		}
	}
}

func TestRun_JoinsBeforeReturn(t *testing.T) {
	rows := make([]int, 600)
	bands := Split(len(rows), 4)

	err := Run(context.Background(), bands, func(_ context.Context, b Band) error {
		for y := b.Y0; y < b.Y1; y++ {
			rows[y] = b.Index + 1
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	// Every row written by exactly its owning band, visible after Run returns.
	for _, b := range bands {
		for y := b.Y0; y < b.Y1; y++ {
			if rows[y] != b.Index+1 {
				t.Fatalf("row %d = %d, want %d", y, rows[y], b.Index+1)
			}
		}
	}
}

func TestRun_ReturnsBandError(t *testing.T) {
	errBoom := errors.New("boom")
	bands := Split(10, 2)

	err := Run(context.Background(), bands, func(_ context.Context, b Band) error {
		if b.Index == 1 {
			return errBoom
		}
		return nil
	})
	if !errors.Is(err, errBoom) {
		t.Errorf("Run() = %v, want %v", err, errBoom)
	}
}

func TestRun_RecoversPanic(t *testing.T) {
	bands := Split(10, 3)

	err := Run(context.Background(), bands, func(_ context.Context, b Band) error {
		if b.Index == 2 {
			panic("bad band")
		}
		return nil
	})

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Run() = %v, want *PanicError", err)
	}
	if pe.Band.Index != 2 {
		t.Errorf("PanicError.Band.Index = %d, want 2", pe.Band.Index)
	}
	if pe.Value != "bad band" {
		t.Errorf("PanicError.Value = %v, want %q", pe.Value, "bad band")
	}
	if len(pe.Stack) == 0 {
		t.Error("PanicError.Stack is empty")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Run(ctx, Split(10, 2), func(context.Context, Band) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if called {
		t.Error("band function called on cancelled context")
	}
}

func TestRun_Empty(t *testing.T) {
	if err := Run(context.Background(), nil, func(context.Context, Band) error { return nil }); err != nil {
		t.Errorf("Run(nil bands) = %v", err)
	}
	if err := Run(context.Background(), Split(4, 2), nil); err != nil {
		t.Errorf("Run(nil fn) = %v", err)
	}
}
