// Package docstore gives read-only access to invoice, PO, and contract
// JSON documents laid out in named directories on disk.
package docstore

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/apexfin/invoice-triage/internal/domain/entity"
)

// Conventional directory names searched case-insensitively under each base.
const (
	InvoiceDir  = "invoices"
	PODir       = "POs"
	ContractDir = "contracts"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Store reads documents beneath one or more base directories. The store
// itself never fails the pipeline: a missing or unparseable document is
// reported to the caller as an error and treated as absent.
type Store struct {
	baseDirs []string
	logger   *zap.Logger
}

// New creates a Store over the given base directories.
func New(baseDirs []string, logger *zap.Logger) *Store {
	return &Store{baseDirs: baseDirs, logger: logger}
}

// findDirs returns every existing directory matching name
// (case-insensitively) under the base directories, in base order.
func (s *Store) findDirs(name string) []string {
	var dirs []string
	for _, base := range s.baseDirs {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() && strings.EqualFold(e.Name(), name) {
				dirs = append(dirs, filepath.Join(base, e.Name()))
			}
		}
	}
	return dirs
}

// ListJSON returns the JSON file paths in every directory matching name,
// each directory's listing in lexicographic order.
func (s *Store) ListJSON(name string) []string {
	var files []string
	for _, dir := range s.findDirs(name) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, n := range names {
			files = append(files, filepath.Join(dir, n))
		}
	}
	return files
}

// FindFile locates a document by filename within the directories matching
// dirName. Absolute paths are accepted verbatim. Relative paths are tried
// against each base directory, then the bare name against each matching
// document directory.
func (s *Store) FindFile(dirName, filename string) (string, bool) {
	if filepath.IsAbs(filename) {
		if fileExists(filename) {
			return filename, true
		}
		return "", false
	}
	for _, base := range s.baseDirs {
		p := filepath.Join(base, filename)
		if fileExists(p) {
			return p, true
		}
	}
	name := filepath.Base(filename)
	for _, dir := range s.findDirs(dirName) {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p, true
		}
	}
	return "", false
}

// readJSON decodes the file at path into v, tolerating a UTF-8 BOM.
func (s *Store) readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Debug("Skipping unparseable document",
			zap.String("path", path),
			zap.Error(err))
		return err
	}
	return nil
}

// LoadInvoice reads the invoice at path. On any IO or parse error the
// document is treated as absent and the error returned for diagnostics.
func (s *Store) LoadInvoice(path string) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := s.readJSON(path, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// LoadPOItem reads the purchase order item at path.
func (s *Store) LoadPOItem(path string) (*entity.POItem, error) {
	var po entity.POItem
	if err := s.readJSON(path, &po); err != nil {
		return nil, err
	}
	return &po, nil
}

// LoadContract reads the contract at path.
func (s *Store) LoadContract(path string) (*entity.Contract, error) {
	var c entity.Contract
	if err := s.readJSON(path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// POItems enumerates every readable PO item across the PO directories,
// in deterministic listing order. Unreadable documents are skipped.
func (s *Store) POItems() []*entity.POItem {
	var items []*entity.POItem
	for _, path := range s.ListJSON(PODir) {
		po, err := s.LoadPOItem(path)
		if err != nil {
			continue
		}
		items = append(items, po)
	}
	return items
}

// Contracts enumerates every readable contract across the contract
// directories, in deterministic listing order.
func (s *Store) Contracts() []*entity.Contract {
	var contracts []*entity.Contract
	for _, path := range s.ListJSON(ContractDir) {
		c, err := s.LoadContract(path)
		if err != nil {
			continue
		}
		contracts = append(contracts, c)
	}
	return contracts
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
