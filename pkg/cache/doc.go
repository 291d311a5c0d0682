// Package cache provides a small Redis-backed cache for hot read
// paths, currently per-user unread notification counts. Redis is
// optional: without it every lookup misses and callers recompute from
// the database.
package cache
