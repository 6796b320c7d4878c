package handlers

import (
	"context"

	"github.com/fieldsync/notifications/service"
	"github.com/streadway/amqp"
)

// MessageHandler describes the interface used to handle AMQP messages.
type MessageHandler interface {
	HandleMessage(ctx context.Context, category string, delivery amqp.Delivery) error
}

// InitMessageHandlers returns a map from routing key category to message handler.
func InitMessageHandlers(svc *service.Service) map[string]MessageHandler {
	events := NewEvents(svc)
	return map[string]MessageHandler{
		"task":    events,
		"reading": events,
		"system":  events,
	}
}
