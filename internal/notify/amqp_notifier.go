package notify

import (
	"context"
	"encoding/json"
	"time"

	"go-booking-engine/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const bookingConfirmedQueue = "booking.confirmed"

// AMQPNotifier publishes confirmed-booking events to RabbitMQ. It dials
// per publish so a broker restart never wedges the worker; the queue is
// durable and messages are persistent.
type AMQPNotifier struct {
	url string
}

func NewAMQPNotifier(url string) Notifier {
	return &AMQPNotifier{url: url}
}

func (n *AMQPNotifier) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	log := logger.WithComponent("notify")

	conn, err := amqp.Dial(n.url)
	if err != nil {
		log.Error("amqp dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Error("amqp channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare so publishes survive a fresh broker.
	if _, err := ch.QueueDeclare(
		bookingConfirmedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		log.Error("amqp queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Error("marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                    // default exchange
		bookingConfirmedQueue, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		pub,
	); err != nil {
		log.Error("amqp publish failed", zap.Error(err))
		return err
	}

	return nil
}
