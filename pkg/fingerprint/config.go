package fingerprint

// Config holds fingerprint configuration
type Config struct {
	// Secret switches the hasher to keyed BLAKE2b when set.
	Secret string `env:"FINGERPRINT_SECRET" envDefault:""`
}

// NewFromConfig returns the keyed hasher when a secret is configured and the
// default hasher otherwise.
func NewFromConfig(cfg Config) (Hasher, error) {
	if cfg.Secret == "" {
		return Default(), nil
	}
	return NewKeyed([]byte(cfg.Secret))
}
