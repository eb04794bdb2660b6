package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Delimiters and fixed fields of the canonical exception record.
const (
	recordStart = "=== EXCEPTION_START ==="
	recordEnd   = "=== EXCEPTION_END ==="

	// ExceptionType is the only record type the pipeline emits.
	ExceptionType = "VALIDATION_FAILED"
	// StatusOpen is the status every freshly written record carries.
	StatusOpen = "OPEN"
)

// Field is one key: value line inside a record section. Ordered slices are
// used instead of maps so rendering is deterministic.
type Field struct {
	Key   string
	Value string
}

// DetailBlock is one group of fields under VALIDATION_DETAILS; blocks are
// separated by blank lines.
type DetailBlock []Field

// ExceptionRecord is the canonical record written to per-queue logs and
// summarized in the exceptions ledger. Records are created once and never
// mutated by the pipeline.
type ExceptionRecord struct {
	ExceptionID             string
	Type                    string
	Status                  string
	Queue                   string
	Priority                string
	Timestamp               time.Time
	InvoiceID               string
	PONumber                string           // empty renders as N/A
	Amount                  *decimal.Decimal // nil renders as N/A
	Supplier                string
	RoutingReason           string
	ManagerApprovalRequired bool
	ValidationDetails       []DetailBlock
	Context                 string
	SuggestedActions        []string
	Metadata                []Field
}

// Render serializes the record as a delimited text block.
func (r *ExceptionRecord) Render() string {
	var b strings.Builder
	b.WriteString(recordStart + "\n")
	fmt.Fprintf(&b, "EXCEPTION_ID: %s\n", r.ExceptionID)
	fmt.Fprintf(&b, "EXCEPTION_TYPE: %s\n", orDefault(r.Type, ExceptionType))
	fmt.Fprintf(&b, "STATUS: %s\n", orDefault(r.Status, StatusOpen))
	fmt.Fprintf(&b, "QUEUE: %s\n", r.Queue)
	fmt.Fprintf(&b, "PRIORITY: %s\n", r.Priority)
	fmt.Fprintf(&b, "TIMESTAMP: %s\n", r.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "INVOICE_ID: %s\n", orDefault(r.InvoiceID, "N/A"))
	fmt.Fprintf(&b, "PO_NUMBER: %s\n", orDefault(r.PONumber, "N/A"))
	if r.Amount != nil {
		fmt.Fprintf(&b, "AMOUNT: %s\n", FormatMoney(*r.Amount))
	} else {
		b.WriteString("AMOUNT: N/A\n")
	}
	fmt.Fprintf(&b, "SUPPLIER: %s\n", orDefault(r.Supplier, "N/A"))
	fmt.Fprintf(&b, "ROUTING_REASON: %s\n", r.RoutingReason)
	fmt.Fprintf(&b, "MANAGER_APPROVAL_REQUIRED: %s\n", yesNo(r.ManagerApprovalRequired))

	b.WriteString("VALIDATION_DETAILS:\n")
	for i, block := range r.ValidationDetails {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, f := range block {
			fmt.Fprintf(&b, "%s: %s\n", f.Key, f.Value)
		}
	}

	b.WriteString("\nCONTEXT:\n")
	if r.Context != "" {
		b.WriteString(strings.TrimRight(r.Context, "\n") + "\n")
	}

	b.WriteString("\nSUGGESTED_ACTIONS:\n")
	for _, a := range r.SuggestedActions {
		fmt.Fprintf(&b, "- %s\n", a)
	}

	b.WriteString("\nMETADATA:\n")
	for _, f := range r.Metadata {
		fmt.Fprintf(&b, "%s: %s\n", f.Key, f.Value)
	}
	b.WriteString(recordEnd)
	return b.String()
}

// LedgerLine is the single-line summary written to the exceptions ledger.
func (r *ExceptionRecord) LedgerLine() string {
	return fmt.Sprintf("[EXCEPTION] [%s] id=%s status=%s type=%s invoice_id=%s queue=%s",
		r.Timestamp.UTC().Format(time.RFC3339),
		r.ExceptionID,
		orDefault(r.Status, StatusOpen),
		orDefault(r.Type, ExceptionType),
		r.InvoiceID,
		r.Queue)
}

// ParseRecords reads every complete exception record from rd. The parser
// tolerates arbitrary surrounding whitespace and unknown keys; a torn
// trailing record (no end delimiter) is ignored.
func ParseRecords(rd io.Reader) ([]ExceptionRecord, error) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []ExceptionRecord
	var cur *ExceptionRecord
	section := ""
	var block DetailBlock
	var contextLines []string

	flushBlock := func() {
		if len(block) > 0 {
			cur.ValidationDetails = append(cur.ValidationDetails, block)
			block = nil
		}
	}

	for scanner.Scan() {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		switch {
		case line == recordStart:
			cur = &ExceptionRecord{}
			section = ""
			block = nil
			contextLines = nil
			continue
		case cur == nil:
			continue
		case line == recordEnd:
			flushBlock()
			cur.Context = strings.TrimRight(strings.Join(contextLines, "\n"), "\n")
			records = append(records, *cur)
			cur = nil
			continue
		}

		switch line {
		case "VALIDATION_DETAILS:":
			section = "details"
			continue
		case "CONTEXT:":
			flushBlock()
			section = "context"
			continue
		case "SUGGESTED_ACTIONS:":
			section = "actions"
			continue
		case "METADATA:":
			section = "metadata"
			continue
		}

		switch section {
		case "details":
			if line == "" {
				flushBlock()
				continue
			}
			if k, v, ok := splitField(line); ok {
				block = append(block, Field{Key: k, Value: v})
			}
		case "context":
			if line == "" && len(contextLines) == 0 {
				continue
			}
			contextLines = append(contextLines, line)
		case "actions":
			if strings.HasPrefix(line, "- ") {
				cur.SuggestedActions = append(cur.SuggestedActions, strings.TrimPrefix(line, "- "))
			}
		case "metadata":
			if k, v, ok := splitField(line); ok {
				cur.Metadata = append(cur.Metadata, Field{Key: k, Value: v})
			}
		default:
			parseHeader(cur, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return records, err
	}
	return records, nil
}

func parseHeader(r *ExceptionRecord, line string) {
	k, v, ok := splitField(line)
	if !ok {
		return
	}
	switch k {
	case "EXCEPTION_ID":
		r.ExceptionID = v
	case "EXCEPTION_TYPE":
		r.Type = v
	case "STATUS":
		r.Status = v
	case "QUEUE":
		r.Queue = v
	case "PRIORITY":
		r.Priority = v
	case "TIMESTAMP":
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			r.Timestamp = ts
		}
	case "INVOICE_ID":
		r.InvoiceID = v
	case "PO_NUMBER":
		if v != "N/A" {
			r.PONumber = v
		}
	case "AMOUNT":
		if v != "N/A" {
			if d, err := ParseMoney(v); err == nil {
				r.Amount = &d
			}
		}
	case "SUPPLIER":
		if v != "N/A" {
			r.Supplier = v
		}
	case "ROUTING_REASON":
		r.RoutingReason = v
	case "MANAGER_APPROVAL_REQUIRED":
		r.ManagerApprovalRequired = v == "YES"
	}
}

func splitField(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
