package db

import "embed"

// Migrations holds the embedded SQL migration files.
//
//go:embed migrations
var Migrations embed.FS
