package debounce

import (
	"sync"
	"testing"
	"time"
)

func TestBurstCollapsesToLastCall(t *testing.T) {
	d := New(50 * time.Millisecond)

	var mu sync.Mutex
	var got []string
	run := func(v string) func() {
		return func() {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		}
	}

	d.Call(run("first"))
	d.Call(run("second"))

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("ran %d times, want 1 (%v)", len(got), got)
	}
	if got[0] != "second" {
		t.Errorf("ran %q, want the superseding call", got[0])
	}
}

func TestQuiescenceDelaysRun(t *testing.T) {
	d := New(80 * time.Millisecond)
	done := make(chan struct{})
	d.Call(func() { close(done) })

	select {
	case <-done:
		t.Fatal("ran before the quiescence window elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	select {
	case <-done:
	case <-time.After(300 * time.Millisecond):
		t.Fatal("never ran")
	}
}

func TestStopCancelsPending(t *testing.T) {
	d := New(30 * time.Millisecond)
	ran := make(chan struct{}, 1)
	d.Call(func() { ran <- struct{}{} })
	d.Stop()

	select {
	case <-ran:
		t.Fatal("cancelled task still ran")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestReusableAfterStop(t *testing.T) {
	d := New(20 * time.Millisecond)
	d.Call(func() {})
	d.Stop()

	done := make(chan struct{})
	d.Call(func() { close(done) })
	select {
	case <-done:
	case <-time.After(300 * time.Millisecond):
		t.Fatal("debouncer unusable after Stop")
	}
}

func TestDefaultWindow(t *testing.T) {
	if d := New(0); d.delay != Window {
		t.Errorf("delay = %v, want %v", d.delay, Window)
	}
	if d := New(-time.Second); d.delay != Window {
		t.Errorf("delay = %v, want %v", d.delay, Window)
	}
}
