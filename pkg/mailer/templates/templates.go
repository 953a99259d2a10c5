package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names carried in mailer.EmailJob.
const (
	VerifySignup = "verify_signup"
)

var verifySignupTmpl = template.Must(template.New(VerifySignup).Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1a1a1a;">
    <h2>{{.ClubName}}</h2>
    <p>Hi,</p>
    <p>Someone asked to create a {{.ClubName}} account for this address.
    Click the link below to choose a password and finish signing up.</p>
    <p><a href="{{.VerifyLink}}">Create your account</a></p>
    <p>The link expires in {{.ExpiresIn}}. If you did not request this,
    you can ignore this email.</p>
  </body>
</html>`))

// VerifySignupData is the payload for the signup verification email.
type VerifySignupData struct {
	ClubName   string
	VerifyLink string
	ExpiresIn  string
}

// RenderHTML renders the named template with data.
func RenderHTML(name string, data any) (string, error) {
	switch name {
	case VerifySignup:
		var buf bytes.Buffer
		if err := verifySignupTmpl.Execute(&buf, data); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown template %q", name)
	}
}

// Subject returns the subject line for a template.
func Subject(name string) string {
	switch name {
	case VerifySignup:
		return "Finish creating your account"
	default:
		return "Notification"
	}
}
