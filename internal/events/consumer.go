package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"ledger-engine/internal/models"
)

// Recalculator is implemented by the average-cost service.
type Recalculator interface {
	Recalculate(ctx context.Context, beneficiary, owner *models.Operation) error
}

// Reverter is implemented by the operation service.
type Reverter interface {
	RevertOperation(ctx context.Context, id uuid.UUID) (*models.Operation, error)
}

// Consumer dispatches inbound trigger messages to the engine's use cases.
// Messages are acknowledged only after the handler succeeds; failures are
// requeued so the at-least-once contract holds (the use cases themselves are
// idempotent against duplicate delivery).
type Consumer struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	queue        string
	recalculator Recalculator
	reverter     Reverter
	log          *slog.Logger
}

func NewConsumer(url, exchange, queue string, recalculator Recalculator, reverter Reverter, log *slog.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	q, err := channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	for _, key := range []string{RoutingKeyRecalculation, RoutingKeyRevertRequest} {
		if err := channel.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to bind queue to %s: %w", key, err)
		}
	}

	return &Consumer{
		conn:         conn,
		channel:      channel,
		queue:        queue,
		recalculator: recalculator,
		reverter:     reverter,
		log:          log,
	}, nil
}

// Start consumes trigger messages until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag (auto-generated)
		false,   // auto-ack: we ack manually after the handler succeeds
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info("trigger consumer started", slog.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			c.log.Info("context cancelled, stopping trigger consumer")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := c.dispatch(ctx, msg); err != nil {
				c.log.Error("trigger handling failed",
					slog.String("routing_key", msg.RoutingKey),
					slog.String("error", err.Error()))
				msg.Nack(false, !msg.Redelivered)
				continue
			}
			msg.Ack(false)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg amqp.Delivery) error {
	switch msg.RoutingKey {
	case RoutingKeyRecalculation:
		var event RecalculationEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode recalculation event: %w", err)
		}
		return c.recalculator.Recalculate(ctx, event.BeneficiaryOperation, event.OwnerOperation)

	case RoutingKeyRevertRequest:
		var req RevertRequest
		if err := json.Unmarshal(msg.Body, &req); err != nil {
			return fmt.Errorf("failed to decode revert request: %w", err)
		}
		id, err := uuid.Parse(req.OperationID)
		if err != nil {
			return fmt.Errorf("invalid operation id %q: %w", req.OperationID, err)
		}
		_, err = c.reverter.RevertOperation(ctx, id)
		return err

	default:
		// Unknown key on our queue; drop after logging rather than requeue forever.
		c.log.Warn("unexpected routing key", slog.String("routing_key", msg.RoutingKey))
		return nil
	}
}

func (c *Consumer) Close() error {
	if err := c.channel.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}
