// Package ledger owns the append-only text logs under system_logs/:
// the processed-invoice log, per-queue exception logs, the exceptions
// ledger, and the payments log.
package ledger

import (
	"os"
	"path/filepath"
	"sync"
)

// DefaultDir is the conventional log directory under the repo root.
const DefaultDir = "system_logs"

// Appender serializes appends per file path. Writes are atomic at record
// granularity (whole block plus trailing newline under one lock hold);
// readers are lock-free and tolerate torn tail lines.
type Appender struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAppender creates an Appender.
func NewAppender() *Appender {
	return &Appender{locks: make(map[string]*sync.Mutex)}
}

func (a *Appender) lockFor(path string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	l, ok := a.locks[path]
	if !ok {
		l = &sync.Mutex{}
		a.locks[path] = l
	}
	return l
}

// Append writes text followed by a newline to the file at path, creating
// the file and parent directories as needed.
func (a *Appender) Append(path, text string) error {
	l := a.lockFor(path)
	l.Lock()
	defer l.Unlock()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(text + "\n"); err != nil {
		return err
	}
	return f.Sync()
}
