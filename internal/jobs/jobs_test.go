package jobs

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkers(t *testing.T) {
	tests := []struct {
		requested, n, want int
	}{
		{4, 10, 4},
		{4, 2, 2},
		{1, 0, 1},
		{-3, 1, 1},
		{0, 1000, min(runtime.NumCPU(), 1000)},
	}

	for _, tt := range tests {
		if got := Workers(tt.requested, tt.n); got != tt.want {
			t.Errorf("Workers(%d, %d) = %d, want %d", tt.requested, tt.n, got, tt.want)
		}
	}
}

func TestRun_AllTasks(t *testing.T) {
	const n = 64
	results := make([]int, n)
	var calls atomic.Int32

	errs := Run(4, n, func(i int) error {
		calls.Add(1)
		results[i] = i * i
		return nil
	})

	if int(calls.Load()) != n {
		t.Errorf("expected %d calls, got %d", n, calls.Load())
	}
	if len(errs) != n {
		t.Fatalf("expected %d error slots, got %d", n, len(errs))
	}
	for i, r := range results {
		if r != i*i {
			t.Errorf("result %d: expected %d, got %d", i, i*i, r)
		}
	}
	if err := FirstError(errs); err != nil {
		t.Errorf("expected no errors, got %v", err)
	}
}

func TestRun_ErrorsByIndex(t *testing.T) {
	errOdd := errors.New("odd")

	errs := Run(3, 6, func(i int) error {
		if i%2 == 1 {
			return errOdd
		}
		return nil
	})

	for i, err := range errs {
		if (i%2 == 1) != errors.Is(err, errOdd) {
			t.Errorf("task %d: unexpected error %v", i, err)
		}
	}
	if first := FirstError(errs); first != errs[1] {
		t.Errorf("expected first error from index 1, got %v", first)
	}
}

func TestRun_Panic(t *testing.T) {
	errs := Run(2, 3, func(i int) error {
		if i == 2 {
			panic("boom")
		}
		return nil
	})

	if errs[2] == nil {
		t.Error("expected panic to be reported as an error")
	}
	if errs[0] != nil || errs[1] != nil {
		t.Errorf("expected other tasks to succeed, got %v", errs)
	}
}

func TestRun_Empty(t *testing.T) {
	errs := Run(4, 0, func(int) error {
		t.Error("fn should not be called")
		return nil
	})
	if len(errs) != 0 {
		t.Errorf("expected no results, got %d", len(errs))
	}
}

func TestRun_ReleasesWorkers(t *testing.T) {
	before := runtime.NumGoroutine()

	for i := 0; i < 5; i++ {
		Run(4, 8, func(int) error { return nil })
	}
	Run(2, 3, func(i int) error {
		if i == 1 {
			panic("boom")
		}
		return errors.New("fail")
	})

	// Retired workers may still be unwinding when Run returns.
	deadline := time.Now().Add(2 * time.Second)
	after := runtime.NumGoroutine()
	for after > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		after = runtime.NumGoroutine()
	}

	if after > before {
		t.Errorf("expected workers to exit: %d goroutines before, %d after", before, after)
	}
}
