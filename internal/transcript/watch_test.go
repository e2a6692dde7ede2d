package transcript

import (
	"context"
	"os"
	"testing"
	"time"
)

func waitUpdate(t *testing.T, w *Watcher) Update {
	t.Helper()
	select {
	case u, ok := <-w.Updates():
		if !ok {
			t.Fatal("updates channel closed")
		}
		return u
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for update")
	}
	return Update{}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "log.jsonl", `{"id":"a","content":{"type":"SYSTEM","message":"one"}}`+"\n")

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	data := `{"id":"a","content":{"type":"SYSTEM","message":"one"}}` + "\n" +
		`{"id":"b","content":{"type":"SYSTEM","message":"two"}}` + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	// A write may surface as several events; wait for the final state.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		u := waitUpdate(t, w)
		if u.Err == nil && len(u.Messages) == 2 {
			return
		}
	}
	t.Fatal("never saw the two-message transcript")
}

func TestWatcherReportsParseErrors(t *testing.T) {
	path := writeFile(t, "log.json", `[]`)

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`[{"id":`), 0o644); err != nil {
		t.Fatal(err)
	}

	u := waitUpdate(t, w)
	if u.Err == nil {
		t.Errorf("expected a parse error, got %d messages", len(u.Messages))
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "log.json", `[]`)

	w, err := NewWatcher(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	other := path + ".bak"
	if err := os.WriteFile(other, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-w.Updates():
		t.Errorf("unexpected update: %+v", u)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherClosesOnCancel(t *testing.T) {
	path := writeFile(t, "log.json", `[]`)

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case _, ok := <-w.Updates():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}

	// Stop after cancel must not block.
	w.Stop()
}

func TestWatcherStopWithoutStart(t *testing.T) {
	path := writeFile(t, "log.json", `[]`)

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		w.Stop()
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() blocked on a watcher that was never started")
	}

	select {
	case _, ok := <-w.Updates():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Updates() not closed after Stop()")
	}

	if err := w.Start(context.Background()); err == nil {
		t.Error("Start() after Stop() should fail")
	}
}
