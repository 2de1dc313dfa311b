package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// LeadNotifier sends the sales-inbox notification for a captured lead.
type LeadNotifier interface {
	SendLeadNotification(to, leadEmail, leadName, source string) error
}

// Worker consumes lead-captured events and fans them out to the sales
// inbox. Decoupled from the database: everything it needs rides in the
// payload.
type Worker struct {
	Channel    *amqp.Channel
	Notifier   LeadNotifier
	SalesInbox string
	Logger     *zap.Logger
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier, salesInbox string, logger *zap.Logger) *Worker {
	return &Worker{
		Channel:    ch,
		Notifier:   notifier,
		SalesInbox: salesInbox,
		Logger:     logger,
	}
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

	go func() {
		for d := range msgs {
			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				w.Logger.Error("dropping malformed lead event", zap.Error(err))
				// Malformed message: reject without requeue so it dead-letters
				// instead of wedging the queue.
				d.Nack(false, false)
				continue
			}

			if err := w.process(payload); err != nil {
				w.Logger.Error("lead notification failed",
					zap.String("lead_id", payload.LeadID), zap.Error(err))
				d.Nack(false, false)
				continue
			}

			w.Logger.Info("lead notification sent",
				zap.String("lead_id", payload.LeadID),
				zap.String("source", payload.Source))
			d.Ack(false)
		}
	}()

	w.Logger.Info("lead worker waiting on queue", zap.String("queue", queueName))
}

func (w *Worker) process(payload LeadCapturedPayload) error {
	if w.Notifier == nil || w.SalesInbox == "" {
		// Mail not configured: ack and move on, the lead itself is stored.
		return nil
	}
	return w.Notifier.SendLeadNotification(w.SalesInbox, payload.Email, payload.Name, payload.Source)
}
