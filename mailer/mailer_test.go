package mailer

import (
	"strings"
	"testing"

	"dcim/bulk"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRecipients(t *testing.T) {
	in := []string{" a@x.io ", "", "b@x.io", "A@x.io", "b@x.io", "  "}
	assert.Equal(t, []string{"a@x.io", "b@x.io"}, NormalizeRecipients(in))
}

func TestNormalizeRecipientsEmpty(t *testing.T) {
	assert.Empty(t, NormalizeRecipients(nil))
	assert.Empty(t, NormalizeRecipients([]string{"", "  "}))
}

func TestSendSkipsWithoutConfig(t *testing.T) {
	m := &Mailer{}
	assert.NoError(t, m.Send([]string{"a@x.io"}, "s", "b"))
	assert.NoError(t, (&Mailer{host: "smtp.x.io", fromEmail: "noreply@x.io"}).Send(nil, "s", "b"))
}

func TestBuildMessagePlain(t *testing.T) {
	m := &Mailer{fromEmail: "noreply@x.io"}
	msg := string(m.buildMessage([]string{"a@x.io", "b@x.io"}, "Report", "done", nil))

	assert.Contains(t, msg, "From: noreply@x.io\r\n")
	assert.Contains(t, msg, "To: a@x.io, b@x.io\r\n")
	assert.Contains(t, msg, "Subject: Report\r\n")
	assert.Contains(t, msg, "done")
	assert.NotContains(t, msg, "multipart/mixed")
}

func TestBuildMessageWithAttachment(t *testing.T) {
	m := &Mailer{fromEmail: "noreply@x.io"}
	att := Attachment{Filename: "errors.csv", Data: []byte("name,Error Message\n")}
	msg := string(m.buildMessage([]string{"a@x.io"}, "Report", "see attachment", []Attachment{att}))

	assert.Contains(t, msg, "multipart/mixed")
	assert.Contains(t, msg, `filename="errors.csv"`)
	assert.Contains(t, msg, "Content-Transfer-Encoding: base64")
	assert.True(t, strings.Contains(msg, "--"+mimeBoundary+"--"))
}

func TestFormatBodyFailure(t *testing.T) {
	body := formatBody(&bulk.Report{
		JobID: "j1", Mode: "racks", FailureReason: "file is empty",
	})
	assert.Contains(t, body, "file is empty")
	assert.NotContains(t, body, "Created")
}

func TestFormatBodyCounters(t *testing.T) {
	body := formatBody(&bulk.Report{
		JobID: "j1", Mode: "entity_wfd",
		Summary: &bulk.Summary{
			Success: map[string]int{"wings": 2, "floors": 1},
			Errors:  map[string]int{"datacenters": 1},
			Skipped: map[string]int{},
			Aborted: true,
		},
		ErrorCSV: []byte("x"),
	})
	assert.Contains(t, body, "Created:")
	assert.Contains(t, body, "wings: 2")
	assert.Contains(t, body, "Failed:")
	assert.Contains(t, body, "stopped at the first failing row")
	assert.Contains(t, body, "attached as CSV")
}
