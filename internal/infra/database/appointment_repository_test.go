package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/mentoria-leads/internal/entity"
)

func appointment() *entity.Appointment {
	return &entity.Appointment{
		DataAgendamento:    "2025-03-10",
		HorarioAgendamento: "09:45",
		NomeCliente:        "Ana Silva",
		EmailCliente:       "ana@x.com",
		TelefoneCliente:    "11999998888",
		Status:             entity.AppointmentConfirmed,
	}
}

// TestCreateAppointment - Gera o ID quando vem vazio
func TestCreateAppointment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectExec(`INSERT INTO agendamentos`).
		WithArgs(sqlmock.AnyArg(), "2025-03-10", "09:45", "Ana Silva", "ana@x.com", "11999998888", entity.AppointmentConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	a := appointment()
	require.NoError(t, repo.Create(context.Background(), a))
	assert.NotEmpty(t, a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCreateAppointmentErrors - 23505 vira horário indisponível, o resto passa adiante
func TestCreateAppointmentErrors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{"horário ocupado", &pq.Error{Code: "23505"}, entity.ErrSlotUnavailable},
		{"outro erro", errors.New("connection reset"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewAppointmentRepository(db)

			mock.ExpectExec(`INSERT INTO agendamentos`).WillReturnError(tt.dbErr)

			err := repo.Create(context.Background(), appointment())

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NotErrorIs(t, err, entity.ErrSlotUnavailable)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestBookedSlots - Só confirmados da data
func TestBookedSlots(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectQuery(`SELECT horario_agendamento FROM agendamentos`).
		WithArgs("2025-03-10", entity.AppointmentConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"horario_agendamento"}).AddRow("09:45").AddRow("14:45"))

	slots, err := repo.BookedSlots(context.Background(), "2025-03-10")

	require.NoError(t, err)
	assert.Equal(t, []string{"09:45", "14:45"}, slots)
	assert.NoError(t, mock.ExpectationsWereMet())
}
