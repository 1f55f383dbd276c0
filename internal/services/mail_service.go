// services/mail_service.go
package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"html"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"regexp"
	"strings"
	"time"

	"freightline/pkg/utils"
)

// Message is one outgoing email. HTML is the inner body; the relay wraps it in
// the branded layout.
type Message struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// MailRelay delivers a message. It reports only success or failure.
type MailRelay interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // e.g. 587 (STARTTLS) or 465 (SMTPS)
	Username   string // empty disables AUTH
	Password   string
	From       string // envelope from
	FromName   string // display name
	UseSSL     bool   // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool   // if true, fail if STARTTLS not available

	SiteName    string
	Location    *time.Location // for the "received" stamp
	DialTimeout time.Duration
}

type smtpMailRelay struct {
	cfg    SMTPConfig
	layout *template.Template
	now    func() time.Time
}

func NewSMTPMailRelay(cfg SMTPConfig) (MailRelay, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, errors.New("smtp relay needs a host and a from address")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	return &smtpMailRelay{
		cfg:    cfg,
		layout: template.Must(template.New("layout").Parse(layoutHTMLTemplate)),
		now:    time.Now,
	}, nil
}

// ------------------- Rendering -------------------

type layoutData struct {
	Title    string
	Body     template.HTML
	SiteName string
	Received string
	Year     int
}

const layoutHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f1f5f9; color: #0f172a; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .wrapper { width: 100%; padding: 32px 16px; box-sizing: border-box; }
    .container { max-width: 640px; margin: 0 auto; background: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 10px 30px rgba(15, 23, 42, 0.08); }
    .header { padding: 24px 28px; background: #0b3d66; color: #ffffff; }
    .brand { font-weight: 700; font-size: 20px; letter-spacing: 0.5px; text-transform: uppercase; }
    .content { padding: 28px; }
    h1 { margin: 0 0 20px; font-size: 22px; }
    p { margin: 0 0 12px; line-height: 1.6; color: #334155; }
    strong { color: #0f172a; }
    .footer { padding: 18px 28px; font-size: 12px; color: #64748b; background: #f8fafc; border-top: 1px solid #e2e8f0; }
  </style>
</head>
<body>
  <div class="wrapper">
    <div class="container">
      <div class="header"><div class="brand">{{.SiteName}}</div></div>
      <div class="content">
        <h1>{{.Title}}</h1>
        {{.Body}}
      </div>
      <div class="footer">Received {{.Received}} · © {{.Year}} {{.SiteName}}</div>
    </div>
  </div>
</body>
</html>`

var (
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	breakRe  = regexp.MustCompile(`(?i)<br\s*/?>|</p>`)
	blanksRe = regexp.MustCompile(`\n{3,}`)
)

// plainText derives the text/plain alternative from an HTML body.
func plainText(body string) string {
	s := breakRe.ReplaceAllString(body, "\n")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blanksRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func (s *smtpMailRelay) render(msg Message) (htmlBody, textBody string, err error) {
	now := s.now()
	var hb bytes.Buffer
	err = s.layout.Execute(&hb, layoutData{
		Title:    msg.Subject,
		Body:     template.HTML(msg.HTML), // already escaped by the caller's template
		SiteName: s.cfg.SiteName,
		Received: utils.FormatDisplayIn(now, s.cfg.Location),
		Year:     now.In(s.cfg.Location).Year(),
	})
	if err != nil {
		return "", "", err
	}
	return hb.String(), plainText(msg.HTML), nil
}

// buildMessage assembles the multipart/alternative MIME message.
func (s *smtpMailRelay) buildMessage(msg Message) ([]byte, error) {
	htmlBody, textBody, err := s.render(msg)
	if err != nil {
		return nil, err
	}
	now := s.now()
	boundary := fmt.Sprintf("alt_%d", now.UnixNano())

	var b bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&b, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		write("Reply-To: %s\r\n", msg.ReplyTo)
	}
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", msg.Subject))
	write("Date: %s\r\n", now.Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return b.Bytes(), nil
}

func (s *smtpMailRelay) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}

// ------------------- SMTP Send -------------------

func (s *smtpMailRelay) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("smtp: no recipients")
	}
	raw, err := s.buildMessage(msg)
	if err != nil {
		return fmt.Errorf("render message: %w", err)
	}

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	dialer := &net.Dialer{Timeout: s.cfg.DialTimeout}
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsCfg}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Close()

	if !s.cfg.UseSSL {
		// STARTTLS path (typically port 587)
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	for _, rcpt := range msg.To {
		if err = c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(raw); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
