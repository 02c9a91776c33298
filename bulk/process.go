package bulk

import (
	"errors"
	"fmt"
	"strings"

	"dcim/audit"
	"dcim/cache"
	"dcim/dao/model"
	"dcim/entities"
	"dcim/schemas"
	"dcim/tabular"

	"gorm.io/gorm"
)

// RowResult is the outcome of processing one input row for one entity
// kind. Chain uploads produce up to three results per input row.
type RowResult struct {
	// Row is the 1-based data row number (header excluded).
	Row         int
	EntityType  model.EntityType
	Status      model.RowStatus
	Error       string
	Data        entities.Record
	OriginalRow tabular.RawRow
}

// Summary aggregates per-kind outcome counters for one job.
type Summary struct {
	Success map[string]int
	Errors  map[string]int
	Skipped map[string]int
	// Aborted is set when skipErrors was off and a row failed; rows after
	// the failing one were not attempted.
	Aborted bool
}

func newSummary() *Summary {
	return &Summary{
		Success: map[string]int{},
		Errors:  map[string]int{},
		Skipped: map[string]int{},
	}
}

func (s *Summary) count(status model.RowStatus, kind model.EntityType) {
	switch status {
	case model.RowSuccess:
		s.Success[string(kind)]++
	case model.RowError:
		s.Errors[string(kind)]++
	case model.RowSkipped:
		s.Skipped[string(kind)]++
	}
}

// Total returns success + error + skipped across all kinds.
func (s *Summary) Total() int {
	total := 0
	for _, m := range []map[string]int{s.Success, s.Errors, s.Skipped} {
		for _, n := range m {
			total += n
		}
	}
	return total
}

// HasErrors reports whether any row errored.
func (s *Summary) HasErrors() bool {
	for _, n := range s.Errors {
		if n > 0 {
			return true
		}
	}
	return false
}

// Pipeline carries the collaborators a bulk job needs. All fields are set
// at construction and never mutated afterwards, so one Pipeline serves
// concurrent jobs.
type Pipeline struct {
	Handlers   *entities.Registry
	Schemas    *schemas.Registry
	Cache      *cache.Store
	NewSession func() (*gorm.DB, error)
	Report     Reporter
}

// Process runs every row of the table for the given upload mode.
// skipErrors selects the policy for failing rows: record and continue, or
// stop at the first failure.
func (p *Pipeline) Process(db *gorm.DB, table *tabular.Table, mode string, skipErrors bool, userName string) (*Summary, []RowResult) {
	kinds := uploadKinds(mode)
	summary := newSummary()
	var results []RowResult

	chain := mode == model.UploadModeWFD
	for i, raw := range table.Rows {
		rowNum := i + 1
		cleaned := tabular.CleanRow(raw)

		aborted := false
		for _, kind := range kinds {
			res := p.processOne(db, rowNum, cleaned, raw, kind, chain, userName)
			summary.count(res.Status, kind)
			results = append(results, res)
			if res.Status == model.RowError && !skipErrors {
				aborted = true
				break
			}
		}
		if aborted {
			summary.Aborted = true
			break
		}
	}
	return summary, results
}

// uploadKinds expands an upload mode into the kinds processed per row.
func uploadKinds(mode string) []model.EntityType {
	if mode == model.UploadModeWFD {
		return model.WFDChain
	}
	return []model.EntityType{model.EntityType(mode)}
}

// processOne handles one (row, kind) pair. Everything that touches the
// database runs inside one transaction so a failing row leaves nothing
// behind.
func (p *Pipeline) processOne(db *gorm.DB, rowNum int, cleaned map[string]any, raw tabular.RawRow, kind model.EntityType, chain bool, userName string) RowResult {
	res := RowResult{
		Row:         rowNum,
		EntityType:  kind,
		Status:      model.RowPending,
		OriginalRow: raw,
	}

	f := ExtractEntityFields(cleaned, raw, kind)

	// Chain rows legitimately leave deeper levels blank; skip those levels
	// without opening a transaction.
	if chain {
		if missing := p.Schemas.MissingRequired(f); len(missing) > 0 {
			res.Status = model.RowSkipped
			res.Error = fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", "))
			return res
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := p.Schemas.Validate(f); err != nil {
			return err
		}
		conflict, err := CheckRowUniqueness(tx, f)
		if err != nil {
			return err
		}
		if conflict != "" {
			return &entities.ConflictError{Message: conflict}
		}
		handler, ok := p.Handlers.Create(kind)
		if !ok {
			return fmt.Errorf("No handler for entity type '%s'", kind)
		}
		record, err := handler(tx, f)
		if err != nil {
			return err
		}
		res.Data = record
		return logCreate(tx, userName, kind, record)
	})
	if err != nil {
		res.Status = model.RowError
		res.Error = classifyRowError(err)
		res.Data = nil
		return res
	}

	res.Status = model.RowSuccess
	if p.Cache != nil {
		p.Cache.InvalidateListing(kind)
	}
	return res
}

func logCreate(tx *gorm.DB, userName string, kind model.EntityType, record entities.Record) error {
	return audit.LogCreate(tx, userName, kind, record.ID(), record)
}

// classifyRowError turns driver-level duplicates into the stable message
// users see; everything else keeps its handler message.
func classifyRowError(err error) string {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "Duplicate data"
	}
	return err.Error()
}
