package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fieldsync/notifications/common"
	"github.com/fieldsync/notifications/model"
	"github.com/fieldsync/notifications/service"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

var log = logrus.WithFields(logrus.Fields{"package": "handlers"})

// EventRequest represents a deserialized notification event published by one
// of the platform's internal services.
type EventRequest struct {
	User         string `json:"user"`
	Organization string `json:"organization"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	Timestamp    string `json:"timestamp"`
	TaskID       string `json:"task_id"`
	ReadingID    string `json:"reading_id"`
	Email        bool   `json:"email"`
	EmailAddress string `json:"email_address"`
}

// NotificationCreator is the part of the notification service that event
// handlers use.
type NotificationCreator interface {
	Create(ctx context.Context, input service.CreateInput) (*model.Notification, error)
}

// Events is a message handler for notification events published by the
// platform's internal services.
type Events struct {
	creator NotificationCreator
}

// NewEvents returns a new notification event handler.
func NewEvents(creator NotificationCreator) *Events {
	return &Events{creator: creator}
}

// typeForCategory maps a routing key category to a notification type.
// Unrecognized categories fall back to the generic type so that a new
// producer can't strand its events.
func typeForCategory(category string) model.NotificationType {
	switch category {
	case "task":
		return model.TypeTask
	case "reading":
		return model.TypeReading
	default:
		return model.TypeSystem
	}
}

// parseEventTimestamp converts the timestamp from an event request to a
// time.Time, returning the zero time if the request didn't carry one.
func parseEventTimestamp(timestamp string) (time.Time, error) {
	fixed, err := common.FixTimestamp(timestamp)
	if err != nil {
		return time.Time{}, err
	}
	if fixed == "" {
		return time.Time{}, nil
	}
	return common.ParseTimestamp(fixed)
}

// HandleMessage records the notification described by a single AMQP delivery.
func (h *Events) HandleMessage(ctx context.Context, category string, delivery amqp.Delivery) error {

	// Parse the message body.
	var request EventRequest
	err := json.Unmarshal(delivery.Body, &request)
	if err != nil {
		return NewUnrecoverableError("unable to parse the message body: %s", err.Error())
	}

	// Parse the timestamp.
	timeCreated, err := parseEventTimestamp(request.Timestamp)
	if err != nil {
		return NewUnrecoverableError("unable to parse the timestamp: %s", err.Error())
	}

	// Producers may request an email copy of the notification. Delivery
	// belongs to another service, but a malformed address is worth flagging
	// at the point of ingest.
	if request.Email && request.EmailAddress != "" {
		if err := common.ValidateEmailAddress(request.EmailAddress); err != nil {
			log.Warnf("ignoring invalid email address `%s`: %s", request.EmailAddress, err.Error())
		}
	}

	// Record the notification.
	_, err = h.creator.Create(ctx, service.CreateInput{
		UserID:         request.User,
		OrganizationID: request.Organization,
		Type:           typeForCategory(category),
		Title:          request.Title,
		Message:        request.Message,
		TaskID:         request.TaskID,
		ReadingID:      request.ReadingID,
		TimeCreated:    timeCreated,
	})
	switch err.(type) {
	case nil:
		return nil
	case service.ValidationError:
		return NewUnrecoverableError("invalid notification request: %s", err.Error())
	default:
		return NewRecoverableError("unable to record the notification: %s", err.Error())
	}
}
