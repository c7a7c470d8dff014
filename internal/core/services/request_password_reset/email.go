package requestpasswordreset

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/golang-module/carbon/v2"
)

const EmailSubject = "Reset your WonderChain admin password"

var emailTemplate = template.Must(template.New("password-reset").Parse(`
<div style="font-family:system-ui">
  <h2>Reset your password</h2>
  <p>Click the button below to set a new password. This link expires in {{.ValidFor}} ({{.ExpiresAt}} UTC).</p>
  <p><a href="{{.ResetURL}}" style="display:inline-block;background:#0ea5e9;color:#fff;padding:10px 14px;border-radius:8px;text-decoration:none;font-weight:600">Reset Password</a></p>
  <p>If you didn't request this, you can ignore this email.</p>
</div>
`))

type emailParams struct {
	ResetURL  string
	ValidFor  string
	ExpiresAt string
}

func renderEmail(resetURL string, validFor time.Duration, expiresAt time.Time) (string, error) {
	params := emailParams{
		ResetURL:  resetURL,
		ValidFor:  formatValidFor(validFor),
		ExpiresAt: carbon.Time2Carbon(expiresAt).ToDateTimeString(carbon.UTC),
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatValidFor(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return plural(int(d/time.Hour), "hour")
	}
	return plural(int(d.Round(time.Minute)/time.Minute), "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
