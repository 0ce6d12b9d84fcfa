package digest

import (
	"bytes"
	"fmt"
	"html"
	"io"
	netmail "net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"

	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/domain"
)

// Sender delivers job digests over SMTP. The password comes from the
// caller (keyring-backed) so config files never hold credentials.
type Sender struct {
	Cfg      config.Config
	Password func() (string, error)
}

func ValidEmail(addr string) bool {
	a, err := netmail.ParseAddress(addr)
	return err == nil && a.Address == addr
}

// SendDigest mails the current result set, capped at digest.max_listings.
func (s Sender) SendDigest(to string, rs domain.ResultSet) error {
	if !s.Cfg.Digest.Enabled {
		return fmt.Errorf("digest is disabled in config")
	}
	if !ValidEmail(to) {
		return fmt.Errorf("invalid recipient address %q", to)
	}

	if max := s.Cfg.Digest.MaxListings; max > 0 && len(rs) > max {
		rs = rs[:max]
	}
	subject := fmt.Sprintf("Job Digest - %d New Opportunities", len(rs))
	body := renderHTML(rs)

	msg, err := composeHTML(s.Cfg.Digest.From, to, subject, body)
	if err != nil {
		return fmt.Errorf("compose digest: %w", err)
	}
	return s.send(to, msg)
}

// SendTest verifies the SMTP configuration end to end.
func (s Sender) SendTest(to string) error {
	if !ValidEmail(to) {
		return fmt.Errorf("invalid recipient address %q", to)
	}
	msg, err := composeHTML(s.Cfg.Digest.From, to, "Test Email - Job Finder",
		"<p>Email configuration is working correctly.</p>")
	if err != nil {
		return fmt.Errorf("compose test mail: %w", err)
	}
	return s.send(to, msg)
}

func (s Sender) send(to string, msg []byte) error {
	pw, err := s.Password()
	if err != nil {
		return err
	}

	user := s.Cfg.Digest.Username
	if user == "" {
		user = s.Cfg.Digest.From
	}
	addr := fmt.Sprintf("%s:%d", s.Cfg.Digest.SMTPHost, s.Cfg.Digest.SMTPPort)
	auth := smtp.PlainAuth("", user, pw, s.Cfg.Digest.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.Cfg.Digest.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func composeHTML(from, to, subject, body string) ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Name: "Job Finder", Address: from}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)

	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	tw, err := mw.CreateInline()
	if err != nil {
		return nil, err
	}
	var ph mail.InlineHeader
	ph.Set("Content-Type", "text/html; charset=utf-8")
	pw, err := tw.CreatePart(ph)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(pw, body); err != nil {
		return nil, err
	}
	_ = pw.Close()
	_ = tw.Close()
	_ = mw.Close()

	return buf.Bytes(), nil
}

func renderHTML(rs domain.ResultSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<html><body style="font-family: Arial, sans-serif;">`)
	fmt.Fprintf(&b, `<h1>Your Job Digest</h1><p>%d opportunities matching your search</p>`, len(rs))

	for _, j := range rs {
		fmt.Fprintf(&b, `<div style="border:1px solid #ddd; margin:10px 0; padding:15px; border-radius:5px;">`)
		fmt.Fprintf(&b, `<div style="font-weight:bold; font-size:18px;">%s</div>`, html.EscapeString(j.Title))
		fmt.Fprintf(&b, `<div style="color:#666;">%s &middot; %s</div>`,
			html.EscapeString(j.Company), html.EscapeString(j.Location))
		if j.IsRemote {
			fmt.Fprintf(&b, `<div style="color:#28a745;">Remote Position</div>`)
		}
		if len(j.Tags) > 0 {
			fmt.Fprintf(&b, `<div style="color:#0277bd; font-size:12px;">%s</div>`,
				html.EscapeString(strings.Join(j.Tags, ", ")))
		}
		if j.Description != "" {
			fmt.Fprintf(&b, `<div style="color:#666; margin:10px 0;">%s</div>`, html.EscapeString(j.Description))
		}
		fmt.Fprintf(&b, `<a href="%s">Apply Now</a></div>`, html.EscapeString(j.ApplyLink))
	}

	fmt.Fprintf(&b, `<p style="color:#666; font-size:0.8em;">Generated by Job Finder</p></body></html>`)
	return b.String()
}
