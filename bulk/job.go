package bulk

import (
	"fmt"

	"dcim/logutils"
	"dcim/tabular"

	"github.com/google/uuid"
)

// Report is what a finished job hands to the reporter: the outcome
// counters plus the error CSV (nil when every row succeeded).
type Report struct {
	JobID         string
	Mode          string
	UserEmail     string
	Summary       *Summary
	ErrorCSV      []byte
	FailureReason string
}

// Reporter delivers the job outcome, typically by email. Implementations
// must tolerate being called from a background goroutine.
type Reporter interface {
	Deliver(report *Report)
}

// Job is one submitted bulk upload. FileData is the raw upload buffer;
// parsing happens inside Run so submission stays fast.
type Job struct {
	ID         uuid.UUID
	Mode       string
	SkipErrors bool
	FileData   []byte
	UserName   string
	UserEmail  string
}

func NewJob(mode string, skipErrors bool, fileData []byte, userName, userEmail string) *Job {
	return &Job{
		ID:         uuid.New(),
		Mode:       mode,
		SkipErrors: skipErrors,
		FileData:   fileData,
		UserName:   userName,
		UserEmail:  userEmail,
	}
}

// Run executes the job to completion and reports exactly once, whatever
// happens. It is meant to run in its own goroutine on a fresh database
// session so the submitting request's lifecycle cannot touch it.
func (p *Pipeline) Run(job *Job) {
	log := logutils.Log.WithField("job", job.ID.String()).WithField("mode", job.Mode)
	report := &Report{
		JobID:     job.ID.String(),
		Mode:      job.Mode,
		UserEmail: job.UserEmail,
	}
	defer func() {
		if r := recover(); r != nil {
			report.FailureReason = fmt.Sprintf("internal error: %v", r)
			log.Errorf("bulk job panicked: %v", r)
		}
		if p.Report != nil {
			p.Report.Deliver(report)
		}
	}()

	db, err := p.NewSession()
	if err != nil {
		report.FailureReason = fmt.Sprintf("database session unavailable: %v", err)
		log.Errorf("bulk job could not open session: %v", err)
		return
	}

	table, err := tabular.LoadRows(job.FileData)
	if err != nil {
		report.FailureReason = err.Error()
		log.Warnf("bulk job rejected input: %v", err)
		return
	}

	summary, results := p.Process(db, table, job.Mode, job.SkipErrors, job.UserName)
	report.Summary = summary

	if summary.HasErrors() {
		csvData, err := BuildErrorCSV(results, table.Columns)
		if err != nil {
			log.Errorf("bulk job could not build error report: %v", err)
		} else {
			report.ErrorCSV = csvData
		}
	}
	log.Infof("bulk job finished: %d rows processed, aborted=%v", summary.Total(), summary.Aborted)
}
