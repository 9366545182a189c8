package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/xavierca1/mentoria-leads/internal/entity"
)

// uniqueViolation é o SQLSTATE de chave duplicada. A tabela tem índice único
// parcial em (data_agendamento, horario_agendamento) para status confirmado.
const uniqueViolation = "23505"

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	query := `
		INSERT INTO agendamentos (id, data_agendamento, horario_agendamento, nome_cliente, email_cliente, telefone_cliente, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.DataAgendamento,
		a.HorarioAgendamento,
		a.NomeCliente,
		a.EmailCliente,
		a.TelefoneCliente,
		a.Status,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.ErrSlotUnavailable
		}
		log.WithError(err).Error("Erro crítico no banco ao criar agendamento")
		return err
	}

	return nil
}

// BookedSlots devolve os horários já confirmados da data (YYYY-MM-DD).
func (r *AppointmentRepository) BookedSlots(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT horario_agendamento
		FROM agendamentos
		WHERE data_agendamento = $1 AND status = $2
	`

	rows, err := r.DB.QueryContext(ctx, query, date, entity.AppointmentConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := []string{}
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		booked = append(booked, h)
	}
	return booked, rows.Err()
}
