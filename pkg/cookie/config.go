package cookie

import (
	"net/http"
	"strings"
)

// Config mirrors Options plus the secrets, newest first.
type Config struct {
	Secrets  []string      `env:"COOKIE_SECRETS" envSeparator:","`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"true"`
	HTTPOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // 2 is Lax
}

func DefaultConfig() Config {
	return Config{
		Path:     "/",
		Secure:   true,
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewFromConfig builds a Manager whose cookie attributes are exactly those of
// cfg, with opts applied on top. Blank secrets are ignored.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	secrets := make([]string, 0, len(cfg.Secrets))
	for _, s := range cfg.Secrets {
		secrets = append(secrets, strings.TrimSpace(s))
	}

	fromConfig := func(o *Options) {
		*o = Options{
			Path:     cfg.Path,
			Domain:   cfg.Domain,
			MaxAge:   cfg.MaxAge,
			Secure:   cfg.Secure,
			HTTPOnly: cfg.HTTPOnly,
			SameSite: cfg.SameSite,
		}
		if o.Path == "" {
			o.Path = "/"
		}
		if o.SameSite == 0 {
			o.SameSite = http.SameSiteLaxMode
		}
	}
	return New(secrets, append([]Option{fromConfig}, opts...)...)
}
