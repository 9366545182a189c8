package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/mentoria-leads/internal/infra/queue"
)

const appointmentTemplate = "agendamento.html"

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:        host,
		Port:        port,
		User:        user,
		Password:    password,
		From:        from,
		TemplateDir: "templates",
		dialer:      gomail.NewDialer(host, port, user, password),
	}
}

// SendAppointmentConfirmation satisfaz queue.Notifier.
func (s *EmailSender) SendAppointmentConfirmation(payload queue.LeadCompletedPayload) error {
	if payload.Email == "" {
		return fmt.Errorf("lead %s sem email", payload.ApplicationID)
	}

	body, err := s.renderAppointment(AppointmentEmailData{
		Nome:    payload.Nome,
		Data:    formatDate(payload.DataAgendamento),
		Horario: payload.HorarioAgendamento,
	})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", payload.Email)
	m.SetHeader("Subject", fmt.Sprintf("%s, sua sessão de mentoria está confirmada 🗓️", payload.Nome))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

func (s *EmailSender) renderAppointment(data AppointmentEmailData) (string, error) {
	t, err := template.ParseFiles(filepath.Join(s.TemplateDir, appointmentTemplate))
	if err != nil {
		return "", fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

// formatDate troca YYYY-MM-DD por DD/MM/YYYY. Se não parsear, devolve como veio.
func formatDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}
