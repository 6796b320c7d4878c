package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// schema defines the notifications table. IDs are assigned by the store, so
// the column is plain text rather than a database-generated key.
const schema = `
CREATE TABLE IF NOT EXISTS notifications (
    id text PRIMARY KEY,
    user_id text NOT NULL,
    organization_id text,
    notification_type text NOT NULL,
    title text NOT NULL,
    message text NOT NULL,
    task_id text,
    reading_id text,
    is_read boolean NOT NULL DEFAULT FALSE,
    time_created timestamp with time zone NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS notifications_user_id_idx
    ON notifications (user_id, time_created DESC);

CREATE INDEX IF NOT EXISTS notifications_unread_idx
    ON notifications (user_id) WHERE NOT is_read;
`

// InitSchema applies the notifications schema if it hasn't been applied yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	wrapMsg := "unable to initialize the database schema"

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	return nil
}
