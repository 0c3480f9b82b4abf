// Package common contains constants shared by the transport, session and
// CLI layers of the console.
package common

// Outbound HTTP headers.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	RequestIDHeader     = "X-Request-ID"
	ContentTypeHeader   = "Content-Type"
	AcceptHeader        = "Accept"
	JSONContentType     = "application/json"
)

// Keys of the local key-value store.
const (
	TokenKey         = "token"
	AuthenticatedKey = "authenticated"
	UserProfileKey   = "user_profile"
)
