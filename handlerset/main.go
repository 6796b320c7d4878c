package handlerset

import (
	"context"
	"strings"

	"github.com/fieldsync/notifications/common"
	"github.com/fieldsync/notifications/handlers"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

var log = logrus.WithFields(logrus.Fields{"package": "handlerset"})

// HandlerSet represents a set of AMQP message handlers attached to one queue.
type HandlerSet struct {
	settings   *common.AMQPSettings
	connection *amqp.Connection
	channel    *amqp.Channel
	handlerFor map[string]handlers.MessageHandler
}

// New creates a new handler set, establishing the AMQP connection and
// declaring the exchange.
func New(settings *common.AMQPSettings, handlerFor map[string]handlers.MessageHandler) (*HandlerSet, error) {
	wrapMsg := "unable to create the message handler set"

	// Establish the AMQP connection.
	connection, err := amqp.Dial(settings.URI)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Open a channel and declare the exchange.
	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return nil, errors.Wrap(err, wrapMsg)
	}
	err = channel.ExchangeDeclare(settings.ExchangeName, settings.ExchangeType, true, false, false, false, nil)
	if err != nil {
		connection.Close()
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Build and return the handler set.
	handlerSet := HandlerSet{
		settings:   settings,
		connection: connection,
		channel:    channel,
		handlerFor: handlerFor,
	}
	return &handlerSet, nil
}

// Close closes a message handler set.
func (hs *HandlerSet) Close() {
	hs.connection.Close()
}

// categoryFor extracts the handler category from a routing key. The category
// is the last component, for example `events.notifications.task` selects the
// `task` handler.
func categoryFor(routingKey string) string {
	components := strings.Split(routingKey, ".")
	return components[len(components)-1]
}

// handleDelivery dispatches a single delivery to the handler registered for
// its category and settles the delivery based on the outcome.
func (hs *HandlerSet) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	category := categoryFor(delivery.RoutingKey)

	// Deliveries with no registered handler are dropped.
	handler, ok := hs.handlerFor[category]
	if !ok {
		log.Errorf("no handler registered for message category `%s`", category)
		if err := delivery.Nack(false, false); err != nil {
			log.Errorf("unable to reject the message: %s", err.Error())
		}
		return
	}

	// Handle the message, requeueing it only for recoverable failures.
	err := handler.HandleMessage(ctx, category, delivery)
	switch err.(type) {
	case nil:
		if err := delivery.Ack(false); err != nil {
			log.Errorf("unable to acknowledge the message: %s", err.Error())
		}
	case handlers.RecoverableError:
		log.Errorf("requeueing message: %s", err.Error())
		if err := delivery.Nack(false, true); err != nil {
			log.Errorf("unable to requeue the message: %s", err.Error())
		}
	default:
		log.Errorf("dropping message: %s", err.Error())
		if err := delivery.Nack(false, false); err != nil {
			log.Errorf("unable to reject the message: %s", err.Error())
		}
	}
}

// Listen binds the queue to the exchange for every registered category and
// processes deliveries until the AMQP channel is closed.
func (hs *HandlerSet) Listen(ctx context.Context) error {
	wrapMsg := "unable to consume notification events"

	// Declare the queue and bind it for each category that we can handle.
	queue, err := hs.channel.QueueDeclare(hs.settings.QueueName, true, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	for category := range hs.handlerFor {
		routingKey := "events.notifications." + category
		if err := hs.channel.QueueBind(queue.Name, routingKey, hs.settings.ExchangeName, false, nil); err != nil {
			return errors.Wrap(err, wrapMsg)
		}
	}

	// Consume deliveries until the channel closes.
	deliveries, err := hs.channel.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	for delivery := range deliveries {
		hs.handleDelivery(ctx, delivery)
	}

	return nil
}
