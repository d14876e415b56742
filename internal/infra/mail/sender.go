package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	welcome *template.Template
}

const welcomeBody = `Olá {{.Name}},

Recebemos o seu interesse no plano de saúde para bares e restaurantes.
Um de nossos consultores vai entrar em contato em breve para entender o
seu estabelecimento e montar a melhor proposta.

Equipe BarSaúde`

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		welcome:  template.Must(template.New("welcome").Parse(welcomeBody)),
	}
}

// SendReminder delivers a follow-up with an already-rendered body. The
// caller records the outcome; there is no retry here.
func (s *EmailSender) SendReminder(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder via SMTP: %w", err)
	}

	return nil
}

func (s *EmailSender) SendWelcome(to, name string) error {
	var body bytes.Buffer
	if err := s.welcome.Execute(&body, struct{ Name string }{Name: name}); err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Recebemos seu interesse, %s!", name))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email via SMTP: %w", err)
	}

	return nil
}
