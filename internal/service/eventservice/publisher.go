package eventservice

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/wagslane/go-rabbitmq"
)

const (
	ExchangeName = "events.topic"
	SaleTopic    = "sale.registered"
)

type SalePublisher interface {
	PublishSaleRegistered(ctx context.Context, e SaleRegisteredEvent) error
}

type MQPublisher struct {
	pub *rabbitmq.Publisher
}

func NewMQPublisher(pub *rabbitmq.Publisher) *MQPublisher {
	return &MQPublisher{pub: pub}
}

func (p *MQPublisher) PublishSaleRegistered(ctx context.Context, e SaleRegisteredEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.New().String()
	}
	if e.EventType == "" {
		e.EventType = "sale"
	}
	if e.Version == "" {
		e.Version = "1"
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	log.Println("Publishing sale event:", e.EventID)
	return p.publishJSON(ctx, SaleTopic, e)
}

func (p *MQPublisher) publishJSON(ctx context.Context, routingKey string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.pub.PublishWithContext(
		ctx,
		body,
		[]string{routingKey},
		rabbitmq.WithPublishOptionsContentType("application/json"),
		rabbitmq.WithPublishOptionsExchange(ExchangeName),
		rabbitmq.WithPublishOptionsPersistentDelivery,
	)
}
