package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type SimpleRefresher struct {
	Refreshed bool
	Error     error
}

func (l *SimpleRefresher) Refresh() error {
	l.Refreshed = true
	return l.Error
}

func TestWatcher(t *testing.T) {
	w := New()
	tmp := t.TempDir()

	tables := &SimpleRefresher{}
	if err := w.Listen(tables, tmp); err != nil {
		t.Errorf("unable to setup listener: %s", err)
	}

	if err := w.Notify(); err != nil {
		t.Errorf("unable to notify listeners: %s", err)
	}
	if tables.Refreshed {
		t.Error("No changes to tmp dir yet, should not have been refreshed.")
	}

	if f, err := os.Create(filepath.Join(tmp, "routes")); err != nil {
		t.Fatal(err)
	} else {
		fmt.Fprintln(f, "/dashboard /painel")
		f.Close()
	}

	time.Sleep(1 * time.Second)

	if err := w.Notify(); err != nil {
		t.Errorf("unable to notify listeners: %s", err)
	}
	if !tables.Refreshed {
		t.Error("Should have been refreshed.")
	}
}

func TestErrorWhileRefreshing(t *testing.T) {
	w := New()
	tmp := t.TempDir()

	tables := &SimpleRefresher{Error: errors.New("routes:1: malformed route declaration")}
	if err := w.Listen(tables, tmp); err != nil {
		t.Errorf("unable to setup listener: %s", err)
	}

	if err := w.Notify(); err != nil {
		t.Errorf("unable to notify listeners: %s", err)
	}
	if tables.Refreshed {
		t.Error("No changes to tmp dir yet, should not have been refreshed.")
	}

	if f, err := os.Create(filepath.Join(tmp, "routes")); err != nil {
		t.Fatal(err)
	} else {
		fmt.Fprintln(f, "nonsense")
		f.Close()
	}

	time.Sleep(1 * time.Second)

	if err := w.Notify(); err == nil {
		t.Error("No error while refreshing")
	} else if err != tables.Error {
		t.Errorf("Wrong error seen while refreshing: %s", err)
	}
	if !tables.Refreshed {
		t.Error("Should have been refreshed.")
	}

	// Once the defect is gone, the dirty listener is retried even without a
	// new event.
	tables.Refreshed = false
	tables.Error = nil

	if err := w.Notify(); err != nil {
		t.Errorf("error not resolved yet: %s", err)
	}
	if !tables.Refreshed {
		t.Error("Should have been refreshed.")
	}
}
