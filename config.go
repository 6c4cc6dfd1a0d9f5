package blockpress

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SiteConfig holds all configuration for a blockpress instance.
type SiteConfig struct {
	Name string // Site name used in exported page chrome (default "Personal Blog")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path for the draft slot (default "data/drafts.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Personal Blog"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/drafts.db"
	}
}

// Validate checks the required credentials are present.
func (c SiteConfig) Validate() error {
	return validation.Errors{
		"admin password": validation.Validate(c.AdminPassword, validation.Required),
		"session secret": validation.Validate(c.SessionSecret, validation.Required),
	}.Filter()
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithSessionTTL overrides how long an idle editor session is retained
// before the registry drops it (default 12h).
func WithSessionTTL(ttl time.Duration) Option {
	return func(a *App) {
		a.sessionTTL = ttl
	}
}
