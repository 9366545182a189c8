package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/xavierca1/mentoria-leads/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	nonDigits = regexp.MustCompile(`\D`)
	hourRe    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidateLeadSubmission confere os campos obrigatórios da submissão final.
// A dificuldade em texto livre só é exigida quando a opção "Outro" foi escolhida.
func ValidateLeadSubmission(input entity.LeadSubmission) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Nome) == "" {
		errors = append(errors, ValidationError{"nome", "is required"})
	}

	if strings.TrimSpace(input.Telefone) == "" {
		errors = append(errors, ValidationError{"telefone", "is required"})
	} else if !isValidPhoneNumber(input.Telefone) {
		errors = append(errors, ValidationError{"telefone", "must have at least 10 digits"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	required := []struct {
		field string
		value string
	}{
		{"instagram", input.Instagram},
		{"nicho", input.Nicho},
		{"cargo", input.Cargo},
		{"faturamento", input.Faturamento},
		{"dificuldade", input.Dificuldade},
		{"investimento", input.Investimento},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errors = append(errors, ValidationError{r.field, "is required"})
		}
	}

	if input.Dificuldade == entity.DificuldadeOutro && strings.TrimSpace(input.OutraDificuldade) == "" {
		errors = append(errors, ValidationError{"outraDificuldade", "is required when dificuldade is Outro"})
	}

	if strings.TrimSpace(input.DataAgendamento) == "" {
		errors = append(errors, ValidationError{"dataAgendamento", "is required"})
	} else if !isValidDate(input.DataAgendamento) {
		errors = append(errors, ValidationError{"dataAgendamento", "must be a valid date (YYYY-MM-DD)"})
	}

	if strings.TrimSpace(input.HorarioAgendamento) == "" {
		errors = append(errors, ValidationError{"horarioAgendamento", "is required"})
	} else if !hourRe.MatchString(input.HorarioAgendamento) {
		errors = append(errors, ValidationError{"horarioAgendamento", "must be HH:MM"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	return len(nonDigits.ReplaceAllString(phone, "")) >= 10
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}

// ValidateSchedule confere se o horário escolhido é um dos oferecidos, num dia
// útil e ainda no futuro. Formato inválido já é barrado por ValidateLeadSubmission.
func ValidateSchedule(date, hour string, now time.Time) []ValidationError {
	var errors []ValidationError

	offered := false
	for _, h := range AvailableHours {
		if h == hour {
			offered = true
			break
		}
	}
	if !offered {
		errors = append(errors, ValidationError{"horarioAgendamento", "is not an offered hour"})
	}

	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return errors
	}
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		errors = append(errors, ValidationError{"dataAgendamento", "must be a business day"})
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.Before(today):
		errors = append(errors, ValidationError{"dataAgendamento", "must not be in the past"})
	case offered && day.Equal(today) && len(FilterSlots([]string{hour}, nil, day, now)) == 0:
		errors = append(errors, ValidationError{"horarioAgendamento", "must be later than now"})
	}

	return errors
}
