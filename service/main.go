package service

import (
	"context"
	"time"

	"github.com/fieldsync/notifications/model"
)

// DefaultTake is the page size used by callers that don't have a preference
// of their own.
const DefaultTake = 50

// Store describes the persistence operations that the notification service
// requires. Any backend that honors these semantics can be plugged in; the
// service never depends on a concrete database client.
type Store interface {
	// Insert persists a new notification, assigning its ID. All other fields
	// are stored as given.
	Insert(ctx context.Context, notification *model.Notification) error

	// GetByID returns the notification with the given ID, or nil if no such
	// notification exists.
	GetByID(ctx context.Context, id string) (*model.Notification, error)

	// ListByUser returns one page of the user's notifications ordered by
	// creation time, most recent first.
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Notification, error)

	// CountByUser returns the total number of notifications the user owns.
	CountByUser(ctx context.Context, userID string) (int64, error)

	// CountUnreadByUser returns the number of the user's notifications that
	// haven't been marked as read.
	CountUnreadByUser(ctx context.Context, userID string) (int64, error)

	// MarkRead sets the read flag on a single notification and returns the
	// updated row.
	MarkRead(ctx context.Context, id string) (*model.Notification, error)

	// MarkAllRead sets the read flag on all of the user's unread
	// notifications, returning the number of rows affected.
	MarkAllRead(ctx context.Context, userID string) (int64, error)

	// Delete removes a single notification.
	Delete(ctx context.Context, id string) error
}

// CreateInput contains the fields used to record a new notification.
type CreateInput struct {
	UserID         string
	OrganizationID string
	Type           model.NotificationType
	Title          string
	Message        string
	TaskID         string
	ReadingID      string

	// TimeCreated is the event timestamp. The current time is used if it's
	// left unset.
	TimeCreated time.Time
}

// Service implements the notification lifecycle and ownership rules. It holds
// no state of its own beyond a reference to the store, so a single instance
// may be shared freely among goroutines.
type Service struct {
	store Store
}

// New returns a notification service backed by the given store.
func New(store Store) *Service {
	return &Service{store: store}
}

// Create records a new, unread notification for a user and returns it. The
// caller is trusted to be allowed to notify the user; only internal services
// invoke this operation.
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Notification, error) {
	switch {
	case input.UserID == "":
		return nil, NewValidationError("a user ID is required")
	case input.Type == "":
		return nil, NewValidationError("a notification type is required")
	case input.Title == "":
		return nil, NewValidationError("a title is required")
	case input.Message == "":
		return nil, NewValidationError("a message is required")
	}

	timeCreated := input.TimeCreated
	if timeCreated.IsZero() {
		timeCreated = time.Now()
	}

	notification := &model.Notification{
		UserID:         input.UserID,
		OrganizationID: input.OrganizationID,
		Type:           input.Type,
		Title:          input.Title,
		Message:        input.Message,
		TaskID:         input.TaskID,
		ReadingID:      input.ReadingID,
		IsRead:         false,
		TimeCreated:    timeCreated,
	}
	if err := s.store.Insert(ctx, notification); err != nil {
		return nil, NewStorageError(err)
	}

	return notification, nil
}

// ListForUser returns one page of the user's notifications, most recent
// first, along with pagination information. A non-positive take is rejected
// rather than being treated as "everything": the page count is derived from
// it, and a zero divisor has no sensible meaning.
func (s *Service) ListForUser(ctx context.Context, userID string, skip, take int) (*model.Listing, error) {
	switch {
	case userID == "":
		return nil, NewValidationError("a user ID is required")
	case skip < 0:
		return nil, NewValidationError("skip may not be negative")
	case take <= 0:
		return nil, NewValidationError("take must be positive")
	}

	total, err := s.store.CountByUser(ctx, userID)
	if err != nil {
		return nil, NewStorageError(err)
	}

	notifications, err := s.store.ListByUser(ctx, userID, skip, take)
	if err != nil {
		return nil, NewStorageError(err)
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}

	pages := (total + int64(take) - 1) / int64(take)
	listing := &model.Listing{
		Notifications: notifications,
		Pagination: model.Pagination{
			Total: total,
			Skip:  skip,
			Take:  take,
			Pages: pages,
		},
	}
	return listing, nil
}

// UnreadCount returns the number of the user's notifications that haven't
// been marked as read.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, NewValidationError("a user ID is required")
	}

	count, err := s.store.CountUnreadByUser(ctx, userID)
	if err != nil {
		return 0, NewStorageError(err)
	}
	return count, nil
}

// fetchAuthorized loads a notification and verifies that it belongs to the
// requesting user. Both ownership-checked operations go through this helper
// so that their behavior can't drift apart.
func (s *Service) fetchAuthorized(ctx context.Context, userID, id string) (*model.Notification, error) {
	notification, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, NewStorageError(err)
	}
	if notification == nil || notification.UserID != userID {
		return nil, NewNotFoundOrForbiddenError(id)
	}
	return notification, nil
}

// MarkAsRead marks a single notification as read on behalf of its owner and
// returns the updated notification. Marking an already-read notification
// succeeds without touching storage again.
func (s *Service) MarkAsRead(ctx context.Context, userID, id string) (*model.Notification, error) {
	notification, err := s.fetchAuthorized(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if notification.IsRead {
		return notification, nil
	}

	updated, err := s.store.MarkRead(ctx, id)
	if err != nil {
		return nil, NewStorageError(err)
	}
	return updated, nil
}

// MarkAllAsRead marks all of the user's unread notifications as read in one
// bulk operation and returns the number of notifications affected. The bulk
// update is scoped to the user, so no per-row ownership check is needed.
func (s *Service) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, NewValidationError("a user ID is required")
	}

	count, err := s.store.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, NewStorageError(err)
	}
	return count, nil
}

// Delete removes a single notification on behalf of its owner.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.fetchAuthorized(ctx, userID, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return NewStorageError(err)
	}
	return nil
}
