package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"ledger-engine/internal/models"
)

const (
	RoutingKeyReverted      = "operation.reverted"
	RoutingKeyRecalculation = "operation.accepted.recalculate"
	RoutingKeyRevertRequest = "operation.revert"
)

// RevertedEvent carries the post-revert snapshots of each side the operation
// referenced; either side may be absent.
type RevertedEvent struct {
	OwnerOperation       *models.Operation `json:"ownerOperation,omitempty"`
	BeneficiaryOperation *models.Operation `json:"beneficiaryOperation,omitempty"`
}

// RecalculationEvent triggers an average-cost recalculation for an accepted
// beneficiary-side credit. OwnerOperation is the paired reference operation
// used by the conversion price rule, when one exists.
type RecalculationEvent struct {
	BeneficiaryOperation *models.Operation `json:"beneficiaryOperation"`
	OwnerOperation       *models.Operation `json:"ownerOperation,omitempty"`
}

// RevertRequest asks the engine to revert one operation.
type RevertRequest struct {
	OperationID string `json:"operationId"`
}

// Publisher emits the engine's outbound events onto a durable topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *slog.Logger
}

func NewPublisher(url, exchange string, log *slog.Logger) (*Publisher, error) {
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

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      log,
	}, nil
}

func (p *Publisher) PublishReverted(ctx context.Context, owner, beneficiary *models.Operation) error {
	return p.publish(ctx, RoutingKeyReverted, RevertedEvent{
		OwnerOperation:       owner,
		BeneficiaryOperation: beneficiary,
	})
}

func (p *Publisher) PublishRecalculation(ctx context.Context, beneficiary, owner *models.Operation) error {
	return p.publish(ctx, RoutingKeyRecalculation, RecalculationEvent{
		BeneficiaryOperation: beneficiary,
		OwnerOperation:       owner,
	})
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	p.log.Info("event published", slog.String("routing_key", routingKey))
	return nil
}

func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
