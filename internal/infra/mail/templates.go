package mail

import (
	"bytes"
	"html/template"
	"time"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

// Inline templates so the binary carries its own mail bodies. Layout mirrors
// the branded card used across all messages: header with logo and app name,
// content block, muted footer.

const baseTmpl = `
<div style="background:#f3f6fb;padding:24px 12px;font-family:Arial,sans-serif;color:#1f2937;">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border:1px solid #e5e7eb;border-radius:12px;overflow:hidden;">
    <div style="padding:18px 20px;border-bottom:1px solid #e5e7eb;background:#f8fafc;">
      <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
        <tr>
          <td style="width:44px;vertical-align:middle;">
            {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.AppName}} logo" width="36" height="36" style="display:block;border-radius:6px;" />
            {{else}}<div style="width:36px;height:36px;border-radius:8px;background:#1d4ed8;color:#ffffff;font-family:Arial,sans-serif;font-weight:700;font-size:14px;line-height:36px;text-align:center;">CG</div>{{end}}
          </td>
          <td style="vertical-align:middle;">
            <div style="font-size:18px;font-weight:700;color:#0f172a;">{{.AppName}}</div>
          </td>
        </tr>
      </table>
    </div>
    <div style="padding:22px 20px;">
      <h2 style="margin:0 0 10px;font-size:20px;color:#0f172a;">{{.Title}}</h2>
      <p style="margin:0 0 16px;font-size:14px;line-height:1.6;color:#374151;">{{.Intro}}</p>
      {{.Content}}
    </div>
    <div style="padding:14px 20px;background:#f8fafc;border-top:1px solid #e5e7eb;">
      <p style="margin:0;font-size:12px;color:#64748b;line-height:1.5;">{{.Footer}}</p>
    </div>
  </div>
</div>`

const otpBlockTmpl = `
<div style="margin:16px 0 18px;text-align:center;">
  <div style="display:inline-block;padding:12px 16px;border:1px dashed #94a3b8;border-radius:8px;background:#f8fafc;">
    <div style="font-size:12px;color:#64748b;margin-bottom:6px;">One-Time Password</div>
    <div style="font-size:28px;letter-spacing:8px;font-weight:700;color:#0f172a;">{{.Code}}</div>
  </div>
</div>`

const reminderTmpl = `
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="font-size:14px;color:#374151;border-collapse:collapse;">
  <tr><td style="padding:6px 0;font-weight:600;width:140px;">Company</td><td style="padding:6px 0;">{{.Company}}</td></tr>
  <tr><td style="padding:6px 0;font-weight:600;">Contact</td><td style="padding:6px 0;">{{.Contact}}</td></tr>
  <tr><td style="padding:6px 0;font-weight:600;">Address</td><td style="padding:6px 0;">{{.Address}}</td></tr>
  <tr><td style="padding:6px 0;font-weight:600;">Status</td><td style="padding:6px 0;">{{.Status}}</td></tr>
  <tr><td style="padding:6px 0;font-weight:600;">Follow Up Time</td><td style="padding:6px 0;">{{.FollowUp}}</td></tr>
  <tr><td style="padding:6px 0;font-weight:600;">Notes</td><td style="padding:6px 0;">{{.Notes}}</td></tr>
</table>`

const importSummaryTmpl = `
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="font-size:14px;color:#374151;border-collapse:collapse;">
  <tr><td style="padding:6px 0;font-weight:600;width:140px;">File</td><td style="padding:6px 0;">{{.FileName}}</td></tr>
  <tr><td style="padding:6px 0;font-weight:600;">Imported</td><td style="padding:6px 0;">{{.Success}}</td></tr>
  <tr><td style="padding:6px 0;font-weight:600;">Rejected</td><td style="padding:6px 0;">{{.Failed}}</td></tr>
</table>
{{if .Rows}}
<p style="margin:14px 0 6px;font-size:13px;color:#374151;">Rejected rows:</p>
<table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="font-size:13px;color:#374151;border-collapse:collapse;">
  {{range .Rows}}<tr><td style="padding:4px 0;width:60px;">Row {{.RowNumber}}</td><td style="padding:4px 0;">{{.Reason}}</td></tr>
  {{end}}
</table>{{end}}`

var (
	baseTemplate          = template.Must(template.New("base").Parse(baseTmpl))
	otpBlockTemplate      = template.Must(template.New("otp").Parse(otpBlockTmpl))
	reminderTemplate      = template.Must(template.New("reminder").Parse(reminderTmpl))
	importSummaryTemplate = template.Must(template.New("summary").Parse(importSummaryTmpl))
)

type basePayload struct {
	AppName string
	LogoURL string
	Title   string
	Intro   string
	Content template.HTML
	Footer  string
}

func (s *EmailSender) renderBase(title, intro, footer string, content template.HTML) (string, error) {
	if footer == "" {
		footer = "This is an automated email from " + s.AppName + "."
	}
	var out bytes.Buffer
	err := baseTemplate.Execute(&out, basePayload{
		AppName: s.AppName,
		LogoURL: s.LogoURL,
		Title:   title,
		Intro:   intro,
		Content: content,
		Footer:  footer,
	})
	return out.String(), err
}

func (s *EmailSender) renderOTP(title, intro, footer, code string) (string, error) {
	var block bytes.Buffer
	if err := otpBlockTemplate.Execute(&block, struct{ Code string }{code}); err != nil {
		return "", err
	}
	return s.renderBase(title, intro, footer, template.HTML(block.String()))
}

func (s *EmailSender) renderReminder(lead *entity.Lead) (string, error) {
	var block bytes.Buffer
	err := reminderTemplate.Execute(&block, struct {
		Company, Contact, Address, Status, FollowUp, Notes string
	}{
		Company:  orNA(lead.CompanyName),
		Contact:  orNA(lead.ContactNumber),
		Address:  orNA(lead.Address),
		Status:   lead.Status.Label(),
		FollowUp: formatTime(lead.FollowUpAt),
		Notes:    orNA(lead.Notes),
	})
	if err != nil {
		return "", err
	}
	return s.renderBase("Follow-up Reminder",
		"You have a scheduled callback in the next 5 minutes.",
		"", template.HTML(block.String()))
}

func (s *EmailSender) renderImportSummary(name, fileName string, report *entity.ImportReport) (string, error) {
	var block bytes.Buffer
	err := importSummaryTemplate.Execute(&block, struct {
		FileName string
		Success  int
		Failed   int
		Rows     []entity.ImportFailure
	}{
		FileName: orNA(fileName),
		Success:  report.SuccessCount,
		Failed:   report.FailedCount,
		Rows:     report.Failed,
	})
	if err != nil {
		return "", err
	}
	intro := "Hi " + name + ", your lead import has finished. Here is how it went."
	return s.renderBase("Bulk Import Completed", intro, "", template.HTML(block.String()))
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("Jan 2, 2006 03:04 PM")
}
