// Package notify delivers in-app notifications: rows in the
// notifications table, live pushes over WebSockets and Redis cache
// invalidation, all behind a single Notifier.
package notify
