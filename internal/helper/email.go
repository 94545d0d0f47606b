package helper

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
)

func GenerateEmailBody(templateFS embed.FS, templateName string, data any) (string, error) {
	t, err := template.ParseFS(templateFS, templateName)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}

// NormalizeEmail lowercases and trims an address. OTP records are keyed by the
// normalized form, so issuance and verification must agree on it.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
