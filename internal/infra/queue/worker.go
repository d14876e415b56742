package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadImporter is the contract the worker needs from the application layer.
type LeadImporter interface {
	ImportLead(ctx context.Context, payload ImportPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Importer LeadImporter
}

func NewWorker(ch *amqp.Channel, importer LeadImporter) *Worker {
	return &Worker{Channel: ch, Importer: importer}
}

// Start consumes the import queue until the channel closes. Rows that fail
// are nacked without requeue, which routes them to the DLQ.
func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"crm-import-worker",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start import consumer")
	}

	logrus.WithField("queue", queueName).Info("import worker listening")

	for msg := range msgs {
		w.handle(msg)
	}
}

func (w *Worker) handle(msg amqp.Delivery) {
	var payload ImportPayload
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		logrus.WithError(err).Error("import worker: invalid payload")
		_ = msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := w.Importer.ImportLead(ctx, payload); err != nil {
		logrus.WithError(err).WithField("name", payload.Name).Error("import worker: row rejected")
		_ = msg.Nack(false, false)
		return
	}

	_ = msg.Ack(false)
}
