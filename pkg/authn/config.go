package authn

import (
	"time"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
	"github.com/dmitrymomot/authgate/pkg/cookie"
	"github.com/dmitrymomot/authgate/pkg/validator"
)

// Config holds gate configuration.
// Empty transport names disable that transport.
type Config struct {
	HeaderName        string        `env:"AUTHN_HEADER_NAME" envDefault:"Authorization"`
	CookieName        string        `env:"AUTHN_COOKIE_NAME" envDefault:""`
	QueryParam        string        `env:"AUTHN_QUERY_PARAM" envDefault:""`
	CheckFingerprint  bool          `env:"AUTHN_CHECK_FINGERPRINT" envDefault:"false"`
	CheckClientIP     bool          `env:"AUTHN_CHECK_CLIENT_IP" envDefault:"false"`
	ValidationTimeout time.Duration `env:"AUTHN_VALIDATION_TIMEOUT" envDefault:"2s"`
	Optional          bool          `env:"AUTHN_OPTIONAL" envDefault:"false"`
}

// DefaultConfig returns default gate configuration
func DefaultConfig() Config {
	return Config{
		HeaderName:        "Authorization",
		ValidationTimeout: 2 * time.Second,
	}
}

// NewFromConfig creates a Gate from cfg. Transports are tried header first,
// then cookie, then query. The cookie transport needs cookies to be non-nil.
// Options are applied after the configuration and take precedence.
func NewFromConfig(cfg Config, repo authenticator.Repository, engine *validator.Engine, cookies *cookie.Manager, opts ...Option) *Gate {
	var transports []Transport
	if cfg.HeaderName != "" {
		transports = append(transports, NewHeaderTransport(cfg.HeaderName))
	}
	if cfg.CookieName != "" && cookies != nil {
		transports = append(transports, NewCookieTransport(cookies, cfg.CookieName))
	}
	if cfg.QueryParam != "" {
		transports = append(transports, NewQueryTransport(cfg.QueryParam))
	}

	configOpts := make([]Option, 0, 5+len(opts))
	switch len(transports) {
	case 0:
	case 1:
		configOpts = append(configOpts, WithTransport(transports[0]))
	default:
		configOpts = append(configOpts, WithTransport(NewCompositeTransport(transports...)))
	}
	if cfg.CheckFingerprint {
		configOpts = append(configOpts, WithFingerprintCheck(nil))
	}
	if cfg.CheckClientIP {
		configOpts = append(configOpts, WithClientIPCheck())
	}
	if cfg.ValidationTimeout > 0 {
		configOpts = append(configOpts, WithValidationTimeout(cfg.ValidationTimeout))
	}
	if cfg.Optional {
		configOpts = append(configOpts, Optional())
	}

	return New(repo, engine, append(configOpts, opts...)...)
}
