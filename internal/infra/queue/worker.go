package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

// Notifier manda a confirmação do agendamento para o lead.
type Notifier interface {
	SendAppointmentConfirmation(payload LeadCompletedPayload) error
}

// Acknowledger é a parte de amqp.Delivery que o worker usa.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

// Start consome a fila até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",    // consumer
		false, // auto-ack desligado: ack manual
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.WithField("queue", queueName).Info(" [*] Worker rodando e aguardando mensagens")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.Handle(d.Body, &d)
		}
	}
}

// Handle processa uma mensagem. Uma única tentativa: falha vai pra DLQ.
func (w *Worker) Handle(body []byte, ack Acknowledger) {
	var payload LeadCompletedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.WithError(err).Error("❌ [WORKER] JSON inválido")
		ack.Nack(false, false)
		return
	}

	logger := log.WithFields(log.Fields{
		"application_id": payload.ApplicationID,
		"email":          payload.Email,
	})

	if err := w.Notifier.SendAppointmentConfirmation(payload); err != nil {
		logger.WithError(err).Error("❌ [WORKER] Falha ao enviar confirmação")
		ack.Nack(false, false)
		return
	}

	logger.Info("✅ [WORKER] Confirmação de agendamento enviada")
	ack.Ack(false)
}
