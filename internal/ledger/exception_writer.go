package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LedgerFileName is the master exceptions ledger under the log dir.
const LedgerFileName = "exceptions_ledger.log"

// ExceptionWriter writes canonical exception records to per-queue logs and
// single-line summaries to the exceptions ledger, and reads queues back
// for reporting.
type ExceptionWriter struct {
	dir      string
	appender *Appender
	logger   *zap.Logger
}

// NewExceptionWriter creates a writer rooted at dir (the system_logs
// directory).
func NewExceptionWriter(dir string, appender *Appender, logger *zap.Logger) *ExceptionWriter {
	return &ExceptionWriter{dir: dir, appender: appender, logger: logger}
}

// QueuePath returns the log file path for a queue.
func (w *ExceptionWriter) QueuePath(queue string) string {
	return filepath.Join(w.dir, fmt.Sprintf("queue_%s.log", queue))
}

// Write appends the canonical record block to the queue log and its
// summary line to the exceptions ledger. Both appends are individually
// atomic; an IO error is fatal to the caller.
func (w *ExceptionWriter) Write(rec *ExceptionRecord) error {
	if err := w.appender.Append(w.QueuePath(rec.Queue), rec.Render()); err != nil {
		return fmt.Errorf("writing queue record: %w", err)
	}
	if err := w.appender.Append(filepath.Join(w.dir, LedgerFileName), rec.LedgerLine()); err != nil {
		return fmt.Errorf("writing ledger line: %w", err)
	}
	w.logger.Info("Exception recorded",
		zap.String("exception_id", rec.ExceptionID),
		zap.String("queue", rec.Queue),
		zap.String("priority", rec.Priority))
	return nil
}

// ReadQueue parses every record in a queue log. A missing log is an empty
// queue.
func (w *ExceptionWriter) ReadQueue(queue string) ([]ExceptionRecord, error) {
	f, err := os.Open(w.QueuePath(queue))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return ParseRecords(f)
}
