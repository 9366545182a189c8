package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrSlotUnavailable     = errors.New("slot already booked")
	ErrAlreadyCompleted    = errors.New("application already completed")
)

const (
	ApplicationIncomplete = "incompleto"
	ApplicationComplete   = "completo"
	ApplicationCancelled  = "cancelado"

	AppointmentConfirmed = "confirmado"

	// LastQuestion é o número da última pergunta do formulário.
	LastQuestion = 11
)

// Application é uma aplicação de mentoria (tabela aplicacoes_mentoria).
// Os campos ficam vazios enquanto o lead não responde a pergunta.
type Application struct {
	ID                 string    `json:"id"`
	Nome               string    `json:"nome,omitempty"`
	Telefone           string    `json:"telefone,omitempty"`
	Email              string    `json:"email,omitempty"`
	Instagram          string    `json:"instagram,omitempty"`
	Nicho              string    `json:"nicho,omitempty"`
	Cargo              string    `json:"cargo,omitempty"`
	Faturamento        string    `json:"faturamento,omitempty"`
	Dificuldade        string    `json:"dificuldade,omitempty"`
	Investimento       string    `json:"investimento,omitempty"`
	DataAgendamento    string    `json:"data_agendamento,omitempty"`
	HorarioAgendamento string    `json:"horario_agendamento,omitempty"`
	Status             string    `json:"status"`
	UltimaPergunta     int       `json:"ultima_pergunta"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewApplication copia uma submissão (possivelmente parcial) para o registro,
// já com a dificuldade resolvida.
func NewApplication(id string, s LeadSubmission, status string, step int) *Application {
	return &Application{
		ID:                 id,
		Nome:               s.Nome,
		Telefone:           s.Telefone,
		Email:              s.Email,
		Instagram:          s.Instagram,
		Nicho:              s.Nicho,
		Cargo:              s.Cargo,
		Faturamento:        s.Faturamento,
		Dificuldade:        s.ResolvedDifficulty(),
		Investimento:       s.Investimento,
		DataAgendamento:    s.DataAgendamento,
		HorarioAgendamento: s.HorarioAgendamento,
		Status:             status,
		UltimaPergunta:     step,
		UpdatedAt:          time.Now(),
	}
}

// Appointment é um horário reservado na agenda (tabela agendamentos).
type Appointment struct {
	ID                 string `json:"id"`
	DataAgendamento    string `json:"data_agendamento"`
	HorarioAgendamento string `json:"horario_agendamento"`
	NomeCliente        string `json:"nome_cliente"`
	EmailCliente       string `json:"email_cliente"`
	TelefoneCliente    string `json:"telefone_cliente"`
	Status             string `json:"status"`
}

type ApplicationRepositoryInterface interface {
	Upsert(ctx context.Context, app *Application) error
	Complete(ctx context.Context, app *Application) error
	Reopen(ctx context.Context, id string) error
}

type AppointmentRepositoryInterface interface {
	Create(ctx context.Context, appt *Appointment) error
	BookedSlots(ctx context.Context, date string) ([]string, error)
}
