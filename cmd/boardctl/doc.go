// Package boardguru provides the BoardGuru board governance server.
//
// BoardGuru is a multi-tenant platform for board-of-directors work: member
// organizations, document vaults, versioned assets, meetings with RSVP
// tracking, and an admin-approved registration flow.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: Data access interfaces and GORM implementations
//   - pkg/session: RSA session token signing and verification
//   - pkg/cipher: Symmetric encryption for stored documents and keys
//   - pkg/model: Database models
//   - pkg/db: Database connection utilities
//   - pkg/notify: In-app notifications and websocket streaming
//   - pkg/scheduler: Meeting reminders and registration expiry jobs
//   - pkg/audit: Audit logging
//   - pkg/config: Configuration management
//
// # Quick Start
//
// The server is run via the boardctl CLI:
//
//	# Generate a data key for encryption
//	boardctl data-key generate > data_key
//	export BOARDGURU_DATA_KEY=$(cat data_key)
//
//	# Run database migrations
//	boardctl db migrate
//
//	# Create the first platform administrator
//	boardctl user create-admin admin@example.com
//
//	# Start the server
//	boardctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - BOARDGURU_DATA_KEY: Base64-encoded 256-bit key for data encryption
//   - BOARDGURU_REDIS_URL: Redis URL for the notification counter cache
//   - BOARDGURU_SMTP_ADDRESS: SMTP relay for transactional email
//   - BOARDGURU_LOG_LEVEL: Log level (debug, info, warn, error)
//   - PORT: Server port (default: 8000)
//
// For more information, see https://github.com/appboardguru/boardguru
package main
