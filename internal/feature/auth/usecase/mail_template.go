package usecase

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

var (
	magicLinkSubjectTmpl = template.Must(template.New("subject").Parse(
		`Sign in to {{.SiteName}}`))

	magicLinkBodyTmpl = template.Must(template.New("body").Parse(`Hello,

Use the link below to sign in to {{.SiteName}}:

{{.URL}}

This link can be used once and expires in {{.ExpiryMinutes}} minutes.
If you did not request it, you can ignore this email.
`))
)

// magicLinkMailData はメールテンプレートに渡す値です。
type magicLinkMailData struct {
	SiteName      string
	URL           string
	ExpiryMinutes int
}

// renderMagicLinkMail は確認URLと有効期限を含む件名と本文を生成します。
func renderMagicLinkMail(data magicLinkMailData) (string, string, error) {
	var subject, body bytes.Buffer
	if err := magicLinkSubjectTmpl.Execute(&subject, data); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := magicLinkBodyTmpl.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}
	return strings.TrimSpace(subject.String()), body.String(), nil
}
