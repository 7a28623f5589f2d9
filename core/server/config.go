package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080" validate:"required,numeric"`
	// ApiKey grants the admin role to callers presenting it in X-API-Key.
	ApiKey string `mapstructure:"api_key" default:""`
	// JWTSecret is the HMAC secret used to verify bearer tokens.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// TokenTTLMinutes is the lifetime of tokens minted by the token command.
	TokenTTLMinutes int `mapstructure:"token_ttl_minutes" default:"60" validate:"gt=0"`
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsValidRole checks if role is one the server knows how to authorize.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// AuthEnabled reports whether any credential is configured. Without one the
// server runs open and treats every caller as admin.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != "" || c.JWTSecret != ""
}
