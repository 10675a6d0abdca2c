package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

// SummaryMailer sends the post-import summary. Satisfied by mail.EmailSender.
type SummaryMailer interface {
	SendImportSummary(to, name, fileName string, report *entity.ImportReport) error
}

// Worker consumes import-completed events and emails the owner a summary of
// what was accepted and what was rejected. The summary is a courtesy, so a
// send failure dead-letters the message rather than failing any request.
type Worker struct {
	Channel *amqp.Channel
	Mailer  SummaryMailer
	Logger  *zap.Logger
}

func NewWorker(ch *amqp.Channel, mailer SummaryMailer, logger *zap.Logger) *Worker {
	return &Worker{Channel: ch, Mailer: mailer, Logger: logger}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		w.Logger.Fatal("failed to register RabbitMQ consumer", zap.Error(err))
	}

	w.Logger.Info("import summary worker waiting on queue", zap.String("queue", queueName))

	for d := range msgs {
		var payload ImportCompletedPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			w.Logger.Error("dropping malformed import event", zap.Error(err))
			d.Nack(false, false)
			continue
		}

		report := &entity.ImportReport{
			SuccessCount: payload.SuccessCount,
			FailedCount:  payload.FailedCount,
			Failed:       payload.Failed,
		}

		if err := w.Mailer.SendImportSummary(payload.Email, payload.Name, payload.FileName, report); err != nil {
			w.Logger.Error("failed to send import summary",
				zap.String("to", payload.Email), zap.Error(err))
			d.Nack(false, false)
			continue
		}

		w.Logger.Info("import summary sent",
			zap.String("to", payload.Email),
			zap.Int("success", payload.SuccessCount),
			zap.Int("failed", payload.FailedCount))
		d.Ack(false)
	}
}
