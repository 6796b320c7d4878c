package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fieldsync/notifications/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
)

// notificationColumns lists the columns of the notifications table in the
// order that scanNotification expects them.
var notificationColumns = []string{
	"id",
	"user_id",
	"organization_id",
	"notification_type",
	"title",
	"message",
	"task_id",
	"reading_id",
	"is_read",
	"time_created",
}

// PostgresStore provides access to notifications stored in a PostgreSQL
// database. All operations are single statements; no cross-record
// transactions are required for this data model.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a notification store backed by the given database
// connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// nullableString converts an optional field to its database representation,
// storing the empty string as NULL.
func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

// scannable covers both sql.Row and sql.Rows.
type scannable interface {
	Scan(dest ...interface{}) error
}

// scanNotification reads one row of notificationColumns into a notification.
func scanNotification(row scannable) (*model.Notification, error) {
	var notification model.Notification
	var organizationID, taskID, readingID sql.NullString

	err := row.Scan(
		&notification.ID,
		&notification.UserID,
		&organizationID,
		&notification.Type,
		&notification.Title,
		&notification.Message,
		&taskID,
		&readingID,
		&notification.IsRead,
		&notification.TimeCreated,
	)
	if err != nil {
		return nil, err
	}

	notification.OrganizationID = organizationID.String
	notification.TaskID = taskID.String
	notification.ReadingID = readingID.String
	return &notification, nil
}

// Insert saves a single notification, assigning its ID.
func (s *PostgresStore) Insert(ctx context.Context, notification *model.Notification) error {
	wrapMsg := "unable to save the notification"

	notification.ID = uuid.New().String()

	// Build the statement to insert the notification.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Insert("notifications").
		Columns(notificationColumns...).
		Values(
			notification.ID,
			notification.UserID,
			nullableString(notification.OrganizationID),
			string(notification.Type),
			notification.Title,
			notification.Message,
			nullableString(notification.TaskID),
			nullableString(notification.ReadingID),
			notification.IsRead,
			notification.TimeCreated).
		ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Execute the statement.
	_, err = s.db.ExecContext(ctx, statement, args...)
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	return nil
}

// GetByID looks up a single notification. A nil notification is returned if
// no notification with the given ID exists.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	wrapMsg := "unable to look up the notification"

	// Build the query.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Query the database.
	notification, err := scanNotification(s.db.QueryRowContext(ctx, statement, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return notification, nil
}

// ListByUser returns one page of the user's notifications ordered by creation
// time, most recent first. Ties on the creation time are broken by ID so that
// the ordering is stable across queries.
func (s *PostgresStore) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Notification, error) {
	wrapMsg := "unable to list notifications"

	// Build the query.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("time_created DESC", "id").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Query the database.
	rows, err := s.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}
	defer rows.Close()

	notifications := make([]model.Notification, 0)
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, errors.Wrap(err, wrapMsg)
		}
		notifications = append(notifications, *notification)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return notifications, nil
}

// countByUser counts the user's notifications, optionally restricted to the
// unread ones.
func (s *PostgresStore) countByUser(ctx context.Context, userID string, unreadOnly bool) (int64, error) {
	wrapMsg := "unable to count notifications"

	// Build the statement to count the notifications.
	builder := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select("count(*)").
		From("notifications").
		Where(sq.Eq{"user_id": userID})
	if unreadOnly {
		builder = builder.Where(sq.Eq{"is_read": false})
	}
	statement, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, wrapMsg)
	}

	// Execute the statement.
	var total int64
	err = s.db.QueryRowContext(ctx, statement, args...).Scan(&total)
	if err != nil {
		return 0, errors.Wrap(err, wrapMsg)
	}

	return total, nil
}

// CountByUser returns the total number of notifications the user owns.
func (s *PostgresStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.countByUser(ctx, userID, false)
}

// CountUnreadByUser counts the number of notifications for the user that
// haven't been marked as read.
func (s *PostgresStore) CountUnreadByUser(ctx context.Context, userID string) (int64, error) {
	return s.countByUser(ctx, userID, true)
}

// MarkRead sets the read flag on a single notification and returns the
// updated row.
func (s *PostgresStore) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	wrapMsg := "unable to mark the notification as read"

	// Build the update statement.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(notificationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Execute the update statement, scanning the updated row.
	notification, err := scanNotification(s.db.QueryRowContext(ctx, statement, args...))
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return notification, nil
}

// MarkAllRead sets the read flag on all of the user's unread notifications,
// returning the number of rows affected.
func (s *PostgresStore) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	wrapMsg := "unable to mark the notifications as read"

	// Build the update statement.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"is_read": false}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, wrapMsg)
	}

	// Execute the update statement.
	result, err := s.db.ExecContext(ctx, statement, args...)
	if err != nil {
		return 0, errors.Wrap(err, wrapMsg)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, wrapMsg)
	}

	return rowsAffected, nil
}

// Delete removes a single notification. Deleting a notification that has
// already been removed is not an error.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	wrapMsg := "unable to delete the notification"

	// Build the delete statement.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Delete("notifications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Execute the delete statement.
	_, err = s.db.ExecContext(ctx, statement, args...)
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	return nil
}
