package mailer

import (
	"fmt"
	"sort"
	"strings"

	"dcim/bulk"
	"dcim/logutils"
)

// UploadReporter delivers bulk job outcomes by email to the uploading
// user plus the configured standing recipients.
type UploadReporter struct {
	Mailer     *Mailer
	Recipients []string
}

var _ bulk.Reporter = (*UploadReporter)(nil)

// Deliver sends the completion email for one job. Failures are logged,
// never propagated; the job already finished.
func (r *UploadReporter) Deliver(report *bulk.Report) {
	recipients := append([]string{report.UserEmail}, r.Recipients...)

	subject := fmt.Sprintf("Bulk upload %s finished (%s)", report.JobID, report.Mode)
	body := formatBody(report)

	var attachments []Attachment
	if len(report.ErrorCSV) > 0 {
		attachments = append(attachments, Attachment{
			Filename: fmt.Sprintf("upload-errors-%s.csv", report.JobID),
			Data:     report.ErrorCSV,
		})
	}

	if err := r.Mailer.Send(recipients, subject, body, attachments...); err != nil {
		logutils.Log.Errorf("upload report delivery failed for job %s: %v", report.JobID, err)
	}
}

func formatBody(report *bulk.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bulk upload job %s (%s) has finished.\r\n\r\n", report.JobID, report.Mode)
	if report.FailureReason != "" {
		fmt.Fprintf(&b, "The job failed before processing completed: %s\r\n", report.FailureReason)
		return b.String()
	}
	if report.Summary == nil {
		b.WriteString("No rows were processed.\r\n")
		return b.String()
	}
	writeCounters(&b, "Created", report.Summary.Success)
	writeCounters(&b, "Failed", report.Summary.Errors)
	writeCounters(&b, "Skipped", report.Summary.Skipped)
	if report.Summary.Aborted {
		b.WriteString("\r\nProcessing stopped at the first failing row; later rows were not attempted.\r\n")
	}
	if len(report.ErrorCSV) > 0 {
		b.WriteString("\r\nThe failing rows are attached as CSV with an error message per row.\r\n")
	}
	return b.String()
}

func writeCounters(b *strings.Builder, label string, counters map[string]int) {
	if len(counters) == 0 {
		return
	}
	kinds := make([]string, 0, len(counters))
	for kind := range counters {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	fmt.Fprintf(b, "%s:\r\n", label)
	for _, kind := range kinds {
		fmt.Fprintf(b, "  %s: %d\r\n", kind, counters[kind])
	}
}
