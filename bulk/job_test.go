package bulk

import (
	"testing"

	"dcim/dao/model"
	"dcim/entities"
	"dcim/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type captureReporter struct {
	reports []*Report
}

func (r *captureReporter) Deliver(report *Report) {
	r.reports = append(r.reports, report)
}

func jobPipeline(db *gorm.DB, reporter Reporter) *Pipeline {
	return &Pipeline{
		Handlers:   entities.DefaultRegistry(),
		Schemas:    schemas.Default(),
		NewSession: func() (*gorm.DB, error) { return db, nil },
		Report:     reporter,
	}
}

func TestRunReportsExactlyOnce(t *testing.T) {
	db := testDB(t)
	reporter := &captureReporter{}
	p := jobPipeline(db, reporter)

	job := NewJob(string(model.EntityLocations), true,
		[]byte("name\nL1\n"), "tester", "tester@example.com")
	p.Run(job)

	require.Len(t, reporter.reports, 1)
	report := reporter.reports[0]
	assert.Equal(t, job.ID.String(), report.JobID)
	assert.Equal(t, "tester@example.com", report.UserEmail)
	assert.Empty(t, report.FailureReason)
	require.NotNil(t, report.Summary)
	assert.Equal(t, 1, report.Summary.Success["locations"])
	assert.Nil(t, report.ErrorCSV)
}

func TestRunReportsFailureOnBadInput(t *testing.T) {
	db := testDB(t)
	reporter := &captureReporter{}
	p := jobPipeline(db, reporter)

	job := NewJob(string(model.EntityLocations), true, []byte("name\n"), "tester", "")
	p.Run(job)

	require.Len(t, reporter.reports, 1)
	assert.Equal(t, "file must have at least one data row", reporter.reports[0].FailureReason)
	assert.Nil(t, reporter.reports[0].Summary)
}

func TestRunReportsSessionFailure(t *testing.T) {
	reporter := &captureReporter{}
	p := &Pipeline{
		Handlers:   entities.DefaultRegistry(),
		Schemas:    schemas.Default(),
		NewSession: func() (*gorm.DB, error) { return nil, assert.AnError },
		Report:     reporter,
	}

	job := NewJob(string(model.EntityLocations), true, []byte("name\nL1\n"), "tester", "")
	p.Run(job)

	require.Len(t, reporter.reports, 1)
	assert.Contains(t, reporter.reports[0].FailureReason, "database session unavailable")
}

func TestRunAttachesErrorCSV(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&model.Location{Name: "L1"}).Error)
	reporter := &captureReporter{}
	p := jobPipeline(db, reporter)

	job := NewJob(string(model.EntityLocations), true,
		[]byte("name\nL1\nL2\n"), "tester", "")
	p.Run(job)

	require.Len(t, reporter.reports, 1)
	report := reporter.reports[0]
	require.NotNil(t, report.Summary)
	assert.Equal(t, 1, report.Summary.Errors["locations"])
	assert.NotEmpty(t, report.ErrorCSV)
	assert.Contains(t, string(report.ErrorCSV), "Error Message")
}

func TestRunReportsPanicAsFailure(t *testing.T) {
	reporter := &captureReporter{}
	p := &Pipeline{
		Handlers:   entities.DefaultRegistry(),
		Schemas:    schemas.Default(),
		NewSession: func() (*gorm.DB, error) { panic("broken pool") },
		Report:     reporter,
	}

	job := NewJob(string(model.EntityLocations), true, []byte("name\nL1\n"), "tester", "")
	p.Run(job)

	require.Len(t, reporter.reports, 1)
	assert.Contains(t, reporter.reports[0].FailureReason, "broken pool")
}
