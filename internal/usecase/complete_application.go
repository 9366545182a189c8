package usecase

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xavierca1/mentoria-leads/internal/entity"
	"github.com/xavierca1/mentoria-leads/internal/infra/queue"
)

// CompleteApplicationUseCase fecha a aplicação e reserva o horário. O envio
// para a planilha e a notificação na fila são efeitos colaterais: se falharem,
// o erro é logado e a aplicação continua concluída.
type CompleteApplicationUseCase struct {
	AppRepo         entity.ApplicationRepositoryInterface
	AppointmentRepo entity.AppointmentRepositoryInterface
	Exporter        LeadExporter
	Queue           QueueProducerInterface
	Now             func() time.Time
}

func NewCompleteApplicationUseCase(
	appRepo entity.ApplicationRepositoryInterface,
	appointmentRepo entity.AppointmentRepositoryInterface,
	exporter LeadExporter,
	queue QueueProducerInterface,
) *CompleteApplicationUseCase {
	return &CompleteApplicationUseCase{
		AppRepo:         appRepo,
		AppointmentRepo: appointmentRepo,
		Exporter:        exporter,
		Queue:           queue,
		Now:             time.Now,
	}
}

func (uc *CompleteApplicationUseCase) Execute(ctx context.Context, id string, input entity.LeadSubmission) (*CompleteApplicationOutput, error) {
	if validationErrors := ValidateLeadSubmission(input); len(validationErrors) > 0 {
		return nil, newValidationPayloadError(validationErrors)
	}
	if scheduleErrors := ValidateSchedule(input.DataAgendamento, input.HorarioAgendamento, uc.Now()); len(scheduleErrors) > 0 {
		return nil, newValidationPayloadError(scheduleErrors)
	}

	app := entity.NewApplication(id, input, entity.ApplicationComplete, entity.LastQuestion)
	appointment := &entity.Appointment{
		DataAgendamento:    input.DataAgendamento,
		HorarioAgendamento: input.HorarioAgendamento,
		NomeCliente:        input.Nome,
		EmailCliente:       input.Email,
		TelefoneCliente:    input.Telefone,
		Status:             entity.AppointmentConfirmed,
	}

	txn := NewTransaction()

	txn.AddOperation("complete_application", func(ctx context.Context) error {
		return uc.AppRepo.Complete(ctx, app)
	})
	txn.AddCompensation("reopen_application", func(ctx context.Context) error {
		return uc.AppRepo.Reopen(ctx, app.ID)
	})

	txn.AddOperation("create_appointment", func(ctx context.Context) error {
		return uc.AppointmentRepo.Create(ctx, appointment)
	})

	if err := txn.Execute(ctx); err != nil {
		// Repetição do "concluir" (ex.: retry do front). O agendamento original
		// continua valendo e os efeitos colaterais não se repetem.
		if errors.Is(err, entity.ErrAlreadyCompleted) {
			log.WithField("application_id", app.ID).Info("Aplicação já estava concluída")
			return &CompleteApplicationOutput{ID: app.ID, Status: entity.ApplicationComplete, AlreadyCompleted: true}, nil
		}
		if errors.Is(err, entity.ErrApplicationNotFound) {
			return nil, &TechnicalError{Code: CodeNotFound, Message: "application not found", Err: err}
		}
		if errors.Is(err, entity.ErrSlotUnavailable) {
			return nil, &TechnicalError{Code: CodeSlotTaken, Message: "slot already booked", Err: err}
		}
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to complete application: " + err.Error(),
			Err:     err,
		}
	}

	output := &CompleteApplicationOutput{ID: app.ID, Status: app.Status}

	if uc.Exporter != nil {
		if _, err := uc.Exporter.Execute(ctx, input); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"application_id": app.ID,
				"code":           ErrorCode(err),
			}).Warn("⚠️ Erro ao enviar para Google Sheets (aplicação mantida)")
		} else {
			output.SheetsExported = true
		}
	}

	if uc.Queue != nil {
		payload := queue.LeadCompletedPayload{
			ApplicationID:      app.ID,
			Nome:               input.Nome,
			Email:              input.Email,
			Telefone:           input.Telefone,
			DataAgendamento:    input.DataAgendamento,
			HorarioAgendamento: input.HorarioAgendamento,
			Origin:             "FORMULARIO_MENTORIA",
		}
		if err := uc.Queue.PublishLeadCompleted(ctx, payload); err != nil {
			log.WithError(err).WithField("application_id", app.ID).
				Warn("⚠️ Aplicação concluída, mas falha ao publicar na fila")
		}
	}

	log.WithField("application_id", app.ID).Info("🚀 Aplicação de mentoria concluída")
	return output, nil
}
