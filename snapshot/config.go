package snapshot

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable the harness reads.
const EnvPrefix = "IDXSNAP_"

const (
	keyFullSnaps = "full_snaps"
	keyUpdate    = "update"
)

// Config is the harness configuration.
type Config struct {
	// FullSnapshots keeps the verbatim text of snapshots that get reduced to
	// a hash (IDXSNAP_FULL_SNAPS).
	FullSnapshots bool
	// Update rewrites fixture files instead of comparing (IDXSNAP_UPDATE).
	Update bool
}

// LoadConfig reads the configuration from the environment. Unset variables
// default to false; any other value than "true" or "false", including the
// empty string, is an error.
func LoadConfig() (Config, error) {
	k := koanf.New(".")
	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	var err error
	if cfg.FullSnapshots, err = lookupFlag(k, keyFullSnaps); err != nil {
		return Config{}, err
	}
	if cfg.Update, err = lookupFlag(k, keyUpdate); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// lookupFlag parses a loaded variable. Only an unset variable defaults to
// false; a variable set to the empty string is malformed.
func lookupFlag(k *koanf.Koanf, key string) (bool, error) {
	if !k.Exists(key) {
		return false, nil
	}
	v, err := ParseFlag(k.String(key))
	if err != nil {
		return false, fmt.Errorf("%s%s: %w", EnvPrefix, strings.ToUpper(key), err)
	}
	return v, nil
}

// ParseFlag accepts exactly "true" and "false".
func ParseFlag(s string) (bool, error) {
	switch s {
	case "false":
		return false, nil
	case "true":
		return true, nil
	default:
		return false, fmt.Errorf("invalid boolean %q, wanted true or false", s)
	}
}
