package mailer

import (
	"bytes"
	"embed"
	"text/template"

	"gopkg.in/gomail.v2"
)

//go:embed "templates"
var templateFS embed.FS

type Mailer struct {
	dialer *gomail.Dialer
	sender string
}

func New(host string, port int, username, password, sender string) *Mailer {
	ndialer := gomail.NewDialer(host, port, username, password)
	return &Mailer{
		dialer: ndialer,
		sender: sender,
	}
}

// Render executes the subject, plainBody and htmlBody templates of templateFile with data.
func Render(templateFile string, data interface{}) (subject, plainBody, htmlBody string, err error) {
	parsedTpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return "", "", "", err
	}
	parts := make([]string, 0, 3)
	for _, name := range []string{"subject", "plainBody", "htmlBody"} {
		buf := new(bytes.Buffer)
		if err := parsedTpl.ExecuteTemplate(buf, name, data); err != nil {
			return "", "", "", err
		}
		parts = append(parts, buf.String())
	}
	return parts[0], parts[1], parts[2], nil
}

// Send renders templateFile with data and delivers it to recipient.
func (m Mailer) Send(recipient, templateFile string, data interface{}) error {
	subject, plainBody, htmlBody, err := Render(templateFile, data)
	if err != nil {
		return err
	}

	// AddAlternative must come after SetBody
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
