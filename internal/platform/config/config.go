// Package config reads typed settings from environment variables
//
// A Conf is a prefix over the environment, so a module can take cfg.Prefix("WAREHOUSE_")
// and read "TABLE" without knowing where it is mounted. Every reader takes a default:
// a missing or blank variable yields it silently, an unparsable one yields it with a warning.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Conf is a namespaced view over environment variables
type Conf struct{ prefix string }

// New returns the root view, no prefix
func New() Conf { return Conf{} }

// Prefix returns a child view, New().Prefix("CORE_API_").Prefix("X") reads CORE_API_X
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key is the full variable name for key
func (c Conf) Key(key string) string { return c.prefix + key }

// lookup returns the trimmed value, ok is false when it is unset or blank
func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.Key(key)))
	return v, v != ""
}

// may parses key with parse, falling back to def
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		log.Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).
			Msgf("config: invalid %s, using default", kind)
		return def
	}
	return v
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if s, ok := c.lookup(key); ok {
		return s
	}
	return def
}

// MayInt returns the integer value or def
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "int", strconv.Atoi)
}

// MayBool accepts the strconv.ParseBool spellings
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "bool", strconv.ParseBool)
}

// MayDuration accepts Go durations such as 300s or 1m30s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayCSV splits a comma list dropping blank items, an all blank list is def
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayPort accepts "8000" or ":8000" and returns the listen address ":8000"
func (c Conf) MayPort(key, def string) string {
	return may(c, key, def, "port", func(s string) (string, error) {
		s = strings.TrimPrefix(s, ":")
		p, err := strconv.Atoi(s)
		if err != nil {
			return "", err
		}
		if p < 1 || p > 65535 {
			return "", strconv.ErrRange
		}
		return ":" + s, nil
	})
}
