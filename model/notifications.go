package model

import "time"

// NotificationType categorizes a notification by the kind of event that produced it.
type NotificationType string

// The notification categories currently produced by the platform.
const (
	// TypeTask covers task assignment and task status events.
	TypeTask NotificationType = "task"
	// TypeReading covers meter reading alerts and threshold events.
	TypeReading NotificationType = "reading"
	// TypeSystem covers generic platform announcements.
	TypeSystem NotificationType = "system"
)

// Notification represents a single notification delivered to a user.
type Notification struct {
	// ID is the unique identifier assigned when the notification is recorded.
	ID string `json:"id"`

	// UserID identifies the owning user. It is set once at creation and every
	// read, update, or delete is checked against it.
	UserID string `json:"user_id"`

	// OrganizationID identifies the owning tenant. Informational only; it is
	// not consulted for access checks.
	OrganizationID string `json:"organization_id,omitempty"`

	// Type is the notification category.
	Type NotificationType `json:"type"`

	// Title is the short display text.
	Title string `json:"title"`

	// Message is the full display text.
	Message string `json:"message"`

	// TaskID optionally references the task that produced this notification.
	TaskID string `json:"task_id,omitempty"`

	// ReadingID optionally references the meter reading that produced this
	// notification.
	ReadingID string `json:"reading_id,omitempty"`

	// IsRead indicates whether the user has acknowledged the notification.
	// It only ever transitions from false to true.
	IsRead bool `json:"is_read"`

	// TimeCreated is when the notification was recorded. Listings are ordered
	// by this field, most recent first.
	TimeCreated time.Time `json:"time_created"`
}

// Pagination describes the position of a listing page within a user's full
// set of notifications.
type Pagination struct {
	// Total is the total number of notifications the user owns.
	Total int64 `json:"total"`

	// Skip is the number of notifications skipped before this page.
	Skip int `json:"skip"`

	// Take is the requested page size.
	Take int `json:"take"`

	// Pages is the total number of pages at the requested page size.
	Pages int64 `json:"pages"`
}

// Listing is one page of a user's notifications along with pagination
// information.
type Listing struct {
	Notifications []Notification `json:"notifications"`
	Pagination    Pagination     `json:"pagination"`
}
