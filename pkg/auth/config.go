package auth

import "time"

// ResetTokenTTL is the validity window of a pending password reset.
// Fixed by design: the reset secret is delivered by email and is meant to be
// consumed promptly.
const ResetTokenTTL = 10 * time.Minute

// Config holds the process-wide auth configuration: signing secret,
// lifetimes and hashing cost. Read once at startup and immutable afterwards.
type Config struct {
	JWTSecret   string        `env:"JWT_SECRET,required"`                     // JWTSecret signs session tokens; at least 32 chars in production.
	TokenTTL    time.Duration `env:"JWT_TTL" envDefault:"2160h"`              // TokenTTL is the absolute session token lifetime (default 90 days).
	CookieTTL   time.Duration `env:"JWT_COOKIE_TTL" envDefault:"2160h"`       // CookieTTL is the session cookie lifetime; never below TokenTTL.
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"12"`             // BcryptCost is the adaptive work factor for password hashing.
	CookieName  string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	Environment string        `env:"APP_ENV" envDefault:"development"`
}
