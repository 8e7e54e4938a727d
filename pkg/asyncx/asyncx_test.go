package asyncx_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/Abraxas-365/inkwell/pkg/asyncx"
)

func TestRunAwait(t *testing.T) {
	f := asyncx.Run(func() (int, error) {
		return 42, nil
	})

	v, err := f.Await()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
}

func TestAwait_ReturnsCachedResult(t *testing.T) {
	var calls int32
	f := asyncx.Run(func() (string, error) {
		atomic.AddInt32(&calls, 1)
		return "once", nil
	})

	for i := 0; i < 3; i++ {
		v, err := f.Await()
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if v != "once" {
			t.Fatalf("expected cached value, got %q", v)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected fn to run once, ran %d times", n)
	}
}

func TestRun_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	f := asyncx.Run(func() (int, error) {
		return 0, boom
	})

	if _, err := f.Await(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestAll_PreservesInputOrder(t *testing.T) {
	fns := make([]func(context.Context) (int, error), 5)
	for i := range fns {
		i := i
		fns[i] = func(context.Context) (int, error) {
			return i * 10, nil
		}
	}

	results, err := asyncx.All(context.Background(), fns...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range results {
		if v != i*10 {
			t.Fatalf("result %d: expected %d, got %d", i, i*10, v)
		}
	}
}

func TestAll_ReturnsFirstErrorByInputOrder(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")

	_, err := asyncx.All(context.Background(),
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context) (int, error) { return 0, errA },
		func(context.Context) (int, error) { return 0, errB },
	)
	if !errors.Is(err, errA) {
		t.Fatalf("expected first failing fn's error, got %v", err)
	}
}

func TestAllSettled_NeverShortCircuits(t *testing.T) {
	boom := errors.New("boom")

	results := asyncx.AllSettled(context.Background(),
		func(context.Context) (string, error) { return "first", nil },
		func(context.Context) (string, error) { return "", boom },
		func(context.Context) (string, error) { return "third", nil },
	)

	if len(results) != 3 {
		t.Fatalf("expected one result per fn, got %d", len(results))
	}
	if results[0].Value != "first" || results[0].Err != nil {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if !errors.Is(results[1].Err, boom) {
		t.Fatalf("expected second result to carry the error, got %+v", results[1])
	}
	if results[2].Value != "third" || results[2].Err != nil {
		t.Fatalf("unexpected third result: %+v", results[2])
	}
}
