package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Message is a rendered email ready for delivery
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// noticeData feeds every notification template
type noticeData struct {
	SiteName string
	Name     string
	BaseURL  string
}

var (
	submissionTemplate = template.Must(template.New("submission").Parse(layoutStart + submissionBody + layoutEnd))
	approvalTemplate   = template.Must(template.New("approval").Parse(layoutStart + approvalBody + layoutEnd))
	rejectionTemplate  = template.Must(template.New("rejection").Parse(layoutStart + rejectionBody + layoutEnd))
)

func render(tmpl *template.Template, to, subject string, data noticeData) (Message, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s email: %w", tmpl.Name(), err)
	}
	return Message{To: to, Subject: subject, HTMLBody: buf.String()}, nil
}

func buildSubmissionReceived(siteName, baseURL string, notice SubmissionNotice) (Message, error) {
	return render(submissionTemplate, notice.Email,
		fmt.Sprintf("We received your registration - %s", siteName),
		noticeData{SiteName: siteName, Name: notice.Name, BaseURL: baseURL})
}

func buildApproval(siteName, baseURL, to, name string) (Message, error) {
	return render(approvalTemplate, to,
		fmt.Sprintf("Your institution has been approved - %s", siteName),
		noticeData{SiteName: siteName, Name: name, BaseURL: baseURL})
}

func buildRejection(siteName, baseURL, to, name string) (Message, error) {
	return render(rejectionTemplate, to,
		fmt.Sprintf("Update on your registration - %s", siteName),
		noticeData{SiteName: siteName, Name: name, BaseURL: baseURL})
}

const layoutStart = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.SiteName}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f3f4f6;">
  <div style="max-width: 600px; margin: 0 auto; padding: 32px; background-color: #ffffff;">
    <h2 style="color: #333;">{{.SiteName}}</h2>
    <p>Hello {{.Name}},</p>
`

const layoutEnd = `
    <p>Best regards,<br>The {{.SiteName}} Team</p>
  </div>
</body>
</html>`

const submissionBody = `
    <p>Thank you for registering your institution. Your application is now pending review by our administrators.</p>
    <p>We will email you again as soon as a decision has been made.</p>
`

const approvalBody = `
    <p>Good news: your institution has been approved and is now active.</p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.BaseURL}}" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Go to {{.SiteName}}</a>
    </div>
`

const rejectionBody = `
    <p>After reviewing your application we are unable to approve your institution at this time.</p>
    <p>If you believe this is a mistake, please reply to this email with any additional information.</p>
`
