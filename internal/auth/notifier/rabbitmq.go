package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cieslarmichal/just-join-us-auth/internal/auth/domain"
)

const emailQueue = "email_jobs"

// RabbitMQNotifier publishes email jobs to a durable queue. A downstream
// worker renders and sends the actual email; this service never waits for
// delivery.
type RabbitMQNotifier struct {
	conn *amqp.Connection
	chn  *amqp.Channel
}

func NewRabbitMQNotifier(url string) (*RabbitMQNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	chn, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := chn.QueueDeclare(
		emailQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", emailQueue, err)
	}

	return &RabbitMQNotifier{conn: conn, chn: chn}, nil
}

func (n *RabbitMQNotifier) Send(ctx context.Context, notification domain.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	return n.chn.PublishWithContext(
		ctx,
		"",         // exchange
		emailQueue, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

func (n *RabbitMQNotifier) Close() error {
	if err := n.chn.Close(); err != nil {
		return err
	}

	return n.conn.Close()
}
