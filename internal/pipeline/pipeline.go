// Package pipeline wires the resolver, validators, ledgers, and router
// into one per-invoice processing unit.
package pipeline

import (
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/config"
	"github.com/apexfin/invoice-triage/internal/docstore"
	"github.com/apexfin/invoice-triage/internal/ledger"
	"github.com/apexfin/invoice-triage/internal/resolve"
	"github.com/apexfin/invoice-triage/internal/triage"
	"github.com/apexfin/invoice-triage/internal/validate"
)

// Outcome bundles the validation report and the triage decision for one
// invoice.
type Outcome struct {
	Report   *validate.Report
	Decision *triage.Decision
}

// Pipeline processes invoices end to end. Invocations are independent;
// the shared logs are serialized inside the ledger package, so one
// Pipeline may be used from concurrent workers.
type Pipeline struct {
	Store  *docstore.Store
	Runner *validate.Runner
	Router *triage.Router
	Writer *ledger.ExceptionWriter
	LogDir string
	logger *zap.Logger
}

// New builds a Pipeline from configuration.
func New(cfg *config.Config, logger *zap.Logger) *Pipeline {
	var baseDirs []string
	for _, d := range cfg.Repo.DocumentDirs {
		if !filepath.IsAbs(d) {
			d = filepath.Join(cfg.Repo.Root, d)
		}
		baseDirs = append(baseDirs, d)
	}
	logDir := cfg.Repo.LogDir
	if !filepath.IsAbs(logDir) {
		logDir = filepath.Join(cfg.Repo.Root, logDir)
	}

	store := docstore.New(baseDirs, logger)
	resolver := resolve.NewWithThresholds(store,
		cfg.Matching.POMinConfidence, cfg.Matching.SupplierMinConfidence, logger)

	appender := ledger.NewAppender()
	processed := ledger.NewProcessedLog(logDir, appender, logger)
	payments := ledger.NewPaymentsLog(logDir, appender, logger)
	writer := ledger.NewExceptionWriter(logDir, appender, logger)

	dup := validate.NewDuplicateDetector(processed, logger)
	runner := validate.NewRunner(resolver, dup, logger)

	limits := triage.Thresholds{
		HighValue:        decimal.NewFromFloat(cfg.Triage.HighValueThreshold),
		LowConfidence:    cfg.Triage.LowConfidence,
		ReviewConfidence: cfg.Triage.ReviewConfidence,
	}
	router := triage.NewRouter(writer, processed, payments, limits, logger)

	return &Pipeline{
		Store:  store,
		Runner: runner,
		Router: router,
		Writer: writer,
		LogDir: logDir,
		logger: logger,
	}
}

// Process validates and routes a single invoice file.
func (p *Pipeline) Process(filename string) (*Outcome, error) {
	report := p.Runner.Run(filename)
	decision, err := p.Router.Route(report)
	if err != nil {
		return nil, err
	}
	return &Outcome{Report: report, Decision: decision}, nil
}
