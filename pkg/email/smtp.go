package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"time"
)

// SMTPTransport delivers messages over an authenticated SMTP session with
// opportunistic STARTTLS.
type SMTPTransport struct {
	host     string
	port     string
	username string
	password string
	from     string
	dialer   *net.Dialer
}

func NewSMTPTransport(host, port, username, password, from string) (*SMTPTransport, error) {
	if host == "" || username == "" || password == "" {
		return nil, fmt.Errorf("%w: SMTP host and credentials are required", ErrNotConfigured)
	}
	if from == "" {
		from = username
	}
	return &SMTPTransport{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		dialer:   &net.Dialer{},
	}, nil
}

// Send submits the message and waits for the session to complete QUIT. The
// whole session is bounded by the context deadline.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(t.host, t.port)
	conn, err := t.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp: dial %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, t.host)
	if err != nil {
		return fmt.Errorf("smtp: handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: t.host, MinVersion: tls.VersionTLS12}
		if err := client.StartTLS(tlsCfg); err != nil {
			return fmt.Errorf("smtp: starttls: %w", err)
		}
	}

	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", t.username, t.password, t.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp: auth: %w", err)
		}
	}

	if err := client.Mail(t.from); err != nil {
		return fmt.Errorf("smtp: mail from: %w", err)
	}
	if err := client.Rcpt(msg.Recipient); err != nil {
		return fmt.Errorf("smtp: rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: data: %w", err)
	}
	if _, err := w.Write(buildMIME(msg, t.from, time.Now())); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp: data write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: data close: %w", err)
	}

	if err := client.Quit(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("smtp: quit: %w", err)
	}

	return nil
}

// buildMIME assembles the wire message. Both renderings are attached as
// multipart/alternative; a message with no HTML body goes out as plain text.
func buildMIME(msg Message, from string, now time.Time) []byte {
	var headers bytes.Buffer
	writeHeader := func(key, value string) {
		headers.WriteString(key)
		headers.WriteString(": ")
		headers.WriteString(sanitizeHeader(value))
		headers.WriteString("\r\n")
	}

	writeHeader("From", from)
	writeHeader("To", msg.Recipient)
	if msg.ReplyTo != "" {
		writeHeader("Reply-To", msg.ReplyTo)
	}
	writeHeader("Subject", msg.Subject)
	writeHeader("Date", now.UTC().Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")

	if msg.HTML == "" {
		writeHeader("Content-Type", "text/plain; charset=UTF-8")
		headers.WriteString("\r\n")
		headers.WriteString(normalizeCRLF(msg.Text))
		return headers.Bytes()
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	writeHeader("Content-Type", "multipart/alternative; boundary="+mw.Boundary())
	headers.WriteString("\r\n")

	textPart, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	_, _ = io.WriteString(textPart, normalizeCRLF(msg.Text))

	htmlPart, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	_, _ = io.WriteString(htmlPart, normalizeCRLF(msg.HTML))

	_ = mw.Close()

	headers.Write(body.Bytes())
	return headers.Bytes()
}

// normalizeCRLF converts any line ending style to the CRLF that SMTP expects.
func normalizeCRLF(body string) string {
	var out bytes.Buffer
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\r':
			out.WriteString("\r\n")
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case '\n':
			out.WriteString("\r\n")
		default:
			out.WriteByte(body[i])
		}
	}
	return out.String()
}
