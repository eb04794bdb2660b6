package ledger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
)

// ProcessedFileName is the processed-invoice log file under the log dir.
const ProcessedFileName = "processed_invoices.log"

const processedPrefix = "PROCESSED: "

// ProcessedLog is the append-only fingerprint ledger consulted by the
// duplicate detector and written by triage, exactly once per invoice
// processed to a terminal disposition.
type ProcessedLog struct {
	path     string
	appender *Appender
	logger   *zap.Logger
}

// NewProcessedLog creates the log rooted at dir (the system_logs
// directory).
func NewProcessedLog(dir string, appender *Appender, logger *zap.Logger) *ProcessedLog {
	return &ProcessedLog{
		path:     filepath.Join(dir, ProcessedFileName),
		appender: appender,
		logger:   logger,
	}
}

// Path returns the log file path.
func (l *ProcessedLog) Path() string { return l.path }

// Append writes one record as a "PROCESSED: <json>" line.
func (l *ProcessedLog) Append(rec entity.ProcessedInvoice) error {
	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return l.appender.Append(l.path, processedPrefix+string(data))
}

// Records reads every well-formed record. Malformed or torn lines are
// skipped so that a hand-edited or mid-write file never breaks reads; a
// missing file yields an empty slice.
func (l *ProcessedLog) Records() []entity.ProcessedInvoice {
	f, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var records []entity.ProcessedInvoice
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, processedPrefix) {
			continue
		}
		var rec entity.ProcessedInvoice
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, processedPrefix)), &rec); err != nil {
			l.logger.Debug("Skipping malformed processed-invoice line", zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records
}
