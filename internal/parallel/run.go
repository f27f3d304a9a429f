package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
)

// PanicError is returned by Run when a band function panics.
type PanicError struct {
	// Band is the band whose function panicked.
	Band Band

	// Value is the recovered panic value.
	Value any

	// Stack is the goroutine stack at the time of the panic.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("parallel: %s panicked: %v", e.Band, e.Value)
}

// Run executes fn once per band, each in its own goroutine, and waits for
// all of them to return.
//
// Goroutines are created for this call only; nothing outlives Run. A panic
// in fn is recovered and reported as a *PanicError. If ctx is already done
// before the bands start, Run returns ctx.Err() without calling fn.
// All errors are joined; the order follows the band order.
func Run(ctx context.Context, bands []Band, fn func(ctx context.Context, b Band) error) error {
	if len(bands) == 0 || fn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	errs := make([]error, len(bands))

	var wg sync.WaitGroup
	wg.Add(len(bands))
	for i, b := range bands {
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = &PanicError{Band: b, Value: r, Stack: debug.Stack()}
				}
			}()
			errs[i] = fn(ctx, b)
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}
