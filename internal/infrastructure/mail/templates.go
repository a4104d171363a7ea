package mail

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
	"time"

	"github.com/baechuer/peoplehub/internal/application/auth"
	"github.com/baechuer/peoplehub/internal/domain"
)

// Rendered is a ready-to-send message body.
type Rendered struct {
	Subject string
	Text    string
	HTML    string
}

type templateData struct {
	Username string
	Code     string
	Validity string
}

type template struct {
	subject string
	text    *texttpl.Template
	html    *htmltpl.Template
}

const verificationHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Welcome {{.Username}}!</h2>
  <p>Thank you for signing up. Please verify your email address to complete your registration.</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; text-align: center; margin: 20px 0;">
    <h3 style="color: #333; margin: 0;">Your Verification Code:</h3>
    <h1 style="color: #007bff; font-size: 32px; margin: 10px 0; letter-spacing: 5px;">{{.Code}}</h1>
  </div>
  <p>This code will expire in {{.Validity}}.</p>
  <p>If you didn't create this account, please ignore this email.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
  <p style="color: #666; font-size: 12px;">This is an automated email. Please do not reply.</p>
</div>`

const verificationText = `Welcome {{.Username}}!

Your verification code is {{.Code}}.
This code will expire in {{.Validity}}.

If you didn't create this account, please ignore this email.
`

const resetHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Password Reset Request</h2>
  <p>Hello {{.Username}},</p>
  <p>You requested to reset your password. Use the code below to reset your password:</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; text-align: center; margin: 20px 0;">
    <h3 style="color: #333; margin: 0;">Your Reset Code:</h3>
    <h1 style="color: #dc3545; font-size: 32px; margin: 10px 0; letter-spacing: 5px;">{{.Code}}</h1>
  </div>
  <p><strong>This code will expire in {{.Validity}}.</strong></p>
  <p>If you didn't request this password reset, please ignore this email and your password will remain unchanged.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
  <p style="color: #666; font-size: 12px;">This is an automated email. Please do not reply.</p>
</div>`

const resetText = `Hello {{.Username}},

Your password reset code is {{.Code}}.
This code will expire in {{.Validity}}.

If you didn't request this password reset, please ignore this email.
`

// Renderer turns a notifier message into subject and bodies.
type Renderer struct {
	templates map[domain.CodeKind]template
	validity  map[domain.CodeKind]time.Duration
}

func NewRenderer(verificationTTL, resetTTL time.Duration) *Renderer {
	return &Renderer{
		templates: map[domain.CodeKind]template{
			domain.CodeVerification: {
				subject: "Verify Your Email Address",
				text:    texttpl.Must(texttpl.New("verification.txt").Parse(verificationText)),
				html:    htmltpl.Must(htmltpl.New("verification.html").Parse(verificationHTML)),
			},
			domain.CodePasswordReset: {
				subject: "Password Reset Request",
				text:    texttpl.Must(texttpl.New("reset.txt").Parse(resetText)),
				html:    htmltpl.Must(htmltpl.New("reset.html").Parse(resetHTML)),
			},
		},
		validity: map[domain.CodeKind]time.Duration{
			domain.CodeVerification:  verificationTTL,
			domain.CodePasswordReset: resetTTL,
		},
	}
}

func (r *Renderer) Render(msg auth.Message) (Rendered, error) {
	t, ok := r.templates[msg.Kind]
	if !ok {
		return Rendered{}, PermanentError{msg: fmt.Sprintf("unknown message kind %q", msg.Kind)}
	}
	data := templateData{Username: msg.Username, Code: msg.Code, Validity: humanDuration(r.validity[msg.Kind])}

	var text, html bytes.Buffer
	if err := t.text.Execute(&text, data); err != nil {
		return Rendered{}, PermanentError{msg: "render text: " + err.Error()}
	}
	if err := t.html.Execute(&html, data); err != nil {
		return Rendered{}, PermanentError{msg: "render html: " + err.Error()}
	}
	return Rendered{Subject: t.subject, Text: text.String(), HTML: html.String()}, nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a short while"
	case d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return d.String()
	}
}
