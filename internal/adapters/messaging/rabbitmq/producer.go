package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/SscSPs/branchledger/internal/middleware"
	"github.com/rabbitmq/amqp091-go"
)

const dialTimeout = 10 * time.Second

// EventProducer publishes ledger events as JSON to a durable topic exchange.
type EventProducer struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

var _ portssvc.EventPublisher = (*EventProducer)(nil)

// EventProducerFallback is a no-op publisher used when RabbitMQ is unavailable at startup.
type EventProducerFallback struct {
	Logger *slog.Logger
}

var _ portssvc.EventPublisher = (*EventProducerFallback)(nil)

func (p *EventProducerFallback) Publish(ctx context.Context, routingKey string, payload any) error {
	logger := p.Logger
	if logger == nil {
		logger = middleware.GetLoggerFromCtx(ctx)
	}
	logger.Debug("Ledger event publish skipped", slog.String("routing_key", routingKey))
	return nil
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	// Drop stray characters in front of the scheme.
	idx := strings.Index(strings.ToLower(clean), "amqp")
	if idx > 0 {
		clean = clean[idx:]
	}
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// NewEventProducer dials RabbitMQ and declares the exchange.
func NewEventProducer(amqpURL, exchange string) (*EventProducer, error) {
	if exchange == "" {
		return nil, errors.New("exchange name is required")
	}
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, err
	}

	p := &EventProducer{conn: conn, exchange: exchange}
	if err := p.openChannel(); err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

// openChannel must be called with mu held or before the producer is shared.
func (p *EventProducer) openChannel() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	); err != nil {
		ch.Close()
		return err
	}
	p.channel = ch
	return nil
}

// Publish sends payload with the given routing key, reopening the channel once on failure.
func (p *EventProducer) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if err == nil {
		return nil
	}

	middleware.GetLoggerFromCtx(ctx).Warn("Publish failed, reopening channel",
		slog.String("exchange", p.exchange),
		slog.String("routing_key", routingKey),
		slog.String("error", err.Error()))
	if p.channel != nil {
		p.channel.Close()
	}
	if chErr := p.openChannel(); chErr != nil {
		return errors.Join(err, chErr)
	}
	return p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
}

// Close gracefully closes the channel and connection to RabbitMQ.
func (p *EventProducer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
