package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Message is a single outbound contact notification. It is built fresh for
// every submission and never reused.
type Message struct {
	Recipient string
	ReplyTo   string
	Subject   string
	Text      string
	HTML      string
}

const subjectPrefix = "Portfolio Contact: "

// contactEmailTemplate is the HTML rendering of a contact form submission.
// Interpolation goes through html/template, so the attacker-controlled name
// and message are escaped.
const contactEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Contact Form Submission</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div class="value">{{.Name}} (<a href="mailto:{{.Email}}">{{.Email}}</a>)</div>
            </div>
            <div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">
            <p>This email was sent from the {{.SiteName}} contact form.</p>
            <p>To reply, send an email to: <a href="mailto:{{.Email}}">{{.Email}}</a></p>
        </div>
    </div>
</body>
</html>`

var contactTemplate = template.Must(template.New("contact").Parse(contactEmailTemplate))

type contactTemplateData struct {
	Name     string
	Email    string
	Message  string
	SiteName string
}

// NewContactMessage builds the notification for one contact form submission.
// Name and reply-to address are stripped of CR/LF before they reach any
// header field; the message body keeps its line breaks in both renderings.
func NewContactMessage(name, senderEmail, message, recipient, siteName string) (Message, error) {
	safeName := sanitizeHeader(name)
	replyTo := sanitizeHeader(senderEmail)

	text := fmt.Sprintf(
		"New Contact Form Submission\n\n"+
			"Name: %s\n"+
			"Email: %s\n\n"+
			"Message:\n%s\n\n"+
			"---\n"+
			"Sent from %s\n",
		safeName, replyTo, message, siteName,
	)

	var html bytes.Buffer
	err := contactTemplate.Execute(&html, contactTemplateData{
		Name:     safeName,
		Email:    replyTo,
		Message:  message,
		SiteName: siteName,
	})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render email template: %w", err)
	}

	return Message{
		Recipient: recipient,
		ReplyTo:   replyTo,
		Subject:   subjectPrefix + safeName,
		Text:      text,
		HTML:      html.String(),
	}, nil
}

// sanitizeHeader removes CR/LF so attacker-controlled values cannot inject
// additional mail headers.
func sanitizeHeader(value string) string {
	clean := strings.ReplaceAll(value, "\r", " ")
	clean = strings.ReplaceAll(clean, "\n", " ")
	return strings.TrimSpace(clean)
}
