// Package recordlog keeps an append-only JSON lines log of plan runs.
package recordlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/dreamcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Record is one logged scenario run.
type Record struct {
	ID              uuid.UUID                  `json:"id"`
	RecordedAt      time.Time                  `json:"recorded_at"`
	Scenario        string                     `json:"scenario"`
	Lifestyle       domain.Lifestyle           `json:"lifestyle"`
	Feasible        bool                       `json:"feasible"`
	Reason          string                     `json:"reason,omitempty"`
	HorizonYears    int                        `json:"horizon_years,omitempty"`
	AdjustedSurplus decimal.Decimal            `json:"adjusted_surplus"`
	Capacity        decimal.Decimal            `json:"capacity"`
	TotalTarget     decimal.Decimal            `json:"total_target"`
	TotalAllocated  decimal.Decimal            `json:"total_allocated"`
	Allocations     map[string]decimal.Decimal `json:"allocations,omitempty"`
}

// FromResult builds a record from a scenario result.
func FromResult(r domain.ScenarioResult) Record {
	rec := Record{
		Scenario:  r.Name,
		Lifestyle: r.Lifestyle,
		Feasible:  r.Feasible,
		Reason:    r.Reason,
	}
	if r.Surplus != nil {
		rec.HorizonYears = r.Surplus.HorizonYears
		rec.AdjustedSurplus = r.Surplus.AdjustedSurplus
		rec.Capacity = r.Surplus.FeasibleCapacity
	}
	if r.Allocation != nil {
		rec.TotalTarget = r.Allocation.TotalTarget
		rec.TotalAllocated = r.Allocation.Total
		rec.Allocations = r.Allocation.Map()
	}
	return rec
}

// Writer appends records to a file. It is safe for concurrent use.
type Writer struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewWriter returns a writer for path, creating the parent directory.
func NewWriter(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create record log directory %s: %w", dir, err)
		}
	}
	return &Writer{path: path, now: time.Now}, nil
}

// Path returns the file the writer appends to.
func (w *Writer) Path() string { return w.path }

// Append stamps rec with an ID and time when unset and writes it as one line.
func (w *Writer) Append(rec Record) (Record, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = w.now().UTC()
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("failed to encode record: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return rec, fmt.Errorf("failed to open record log %s: %w", w.path, err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return rec, fmt.Errorf("failed to append record: %w", err)
	}
	return rec, f.Close()
}

// AppendComparison logs every scenario of a plan run.
func (w *Writer) AppendComparison(results *domain.PlanComparison) ([]Record, error) {
	out := make([]Record, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		rec, err := w.Append(FromResult(sc))
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadAll loads every record in path. A missing file yields no records.
func ReadAll(path string) ([]Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return records, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}
