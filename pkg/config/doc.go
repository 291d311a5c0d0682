// Package config loads BoardGuru server configuration from
// /etc/boardguru/config/boardguru.yml with BOARDGURU_* environment variable
// overrides, tracking the source of every attribute.
package config
