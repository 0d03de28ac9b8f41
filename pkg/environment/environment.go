// Package environment defines the application environment names used to
// switch logging and cookie behavior between development and production.
package environment

// Environment represents application environment.
type Environment string

const (
	// Development for local development.
	Development Environment = "development"
	// Staging for pre-production deployments.
	Staging Environment = "staging"
	// Production for production deployments.
	Production Environment = "production"
)

// IsProduction reports whether env names the production environment.
func IsProduction(env string) bool {
	return env == string(Production) || env == "prod"
}

// IsDevelopment reports whether env names the development environment.
func IsDevelopment(env string) bool {
	return env == string(Development) || env == "dev" || env == ""
}
