// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS, body limits). AppConfig is everything specific to the
// dungeon service: the MongoDB connection, token signing, and listing
// defaults.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer-token configuration
	JWTSecret string        // HMAC signing secret (must be strong in production)
	JWTIssuer string        // Issuer claim stamped into every token
	TokenTTL  time.Duration // Access token lifetime

	// Listing defaults
	DefaultPageSize int64 // Fallback limit for list endpoints
}
