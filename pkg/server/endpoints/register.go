package endpoints

import (
	"github.com/appboardguru/boardguru/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
	RegisterRegistrationEndpoints(srv)
	RegisterOrganizationEndpoints(srv)
	RegisterVaultEndpoints(srv)
	RegisterAssetEndpoints(srv)
	RegisterAnnotationEndpoints(srv)
	RegisterMeetingEndpoints(srv)
	RegisterNotificationEndpoints(srv)
}
