// Package audit emits security-relevant events in RFC5424 syslog format
// and optionally persists them to a dedicated audit database.
//
// Events are written to stdout by default. Setting AUDIT_DATABASE_URL
// additionally stores each event as a row in the audit_events table so
// governance reviews can query history with SQL. Auditing can be turned
// off entirely with BOARDGURU_AUDIT_ENABLED=false.
package audit
