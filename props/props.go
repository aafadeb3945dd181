// Package props provides layered property access: defaults, .properties files, environment variables, and command-line flags.
//
// Lookup precedence from highest to lowest is: changed flags, environment variables, file or map values, and finally
// the default passed at the call site. Keys are dotted, lower-case property names like "server.port"; the environment
// overlay translates them to upper snake case ("SERVER_PORT", with an optional prefix).
package props

import (
	"os"
	"strings"
	"time"

	"github.com/magiconair/properties"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// Properties is a read-only view over layered property sources.
// The zero value resolves everything to defaults; use [Load] or [FromMap] to seed it.
type Properties struct {
	values    map[string]string
	envPrefix string
	envSet    bool
	flags     *pflag.FlagSet
}

// Load reads one or more .properties files, with later files overriding earlier ones.
// Keys are normalized to lower case.
func Load(filenames ...string) (*Properties, error) {
	loaded, err := properties.LoadFiles(filenames, properties.UTF8, false)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, loaded.Len())
	for _, key := range loaded.Keys() {
		val, _ := loaded.Get(key)
		values[strings.ToLower(key)] = val
	}
	return &Properties{values: values}, nil
}

// FromMap creates a [Properties] from in-memory values, normalizing keys to lower case.
func FromMap(values map[string]string) *Properties {
	normalized := make(map[string]string, len(values))
	for key, val := range values {
		normalized[strings.ToLower(key)] = val
	}
	return &Properties{values: normalized}
}

// WithEnvOverlay makes environment variables override file and map values.
// The property key "server.port" maps to the variable "SERVER_PORT", or "<PREFIX>_SERVER_PORT" when a prefix is given.
func (p *Properties) WithEnvOverlay(prefix ...string) *Properties {
	p.envSet = true
	if len(prefix) > 0 {
		p.envPrefix = strings.ToUpper(strings.TrimSuffix(prefix[0], "_"))
	}
	return p
}

// BindFlags makes flags that were changed on the command line override every other source.
// The flag name is expected to match the property key with dots replaced by dashes ("server.port" -> "server-port").
func (p *Properties) BindFlags(flags *pflag.FlagSet) *Properties {
	p.flags = flags
	return p
}

func flagName(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), ".", "-")
}

func (p *Properties) envName(key string) string {
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if len(p.envPrefix) > 0 {
		return p.envPrefix + "_" + name
	}
	return name
}

func (p *Properties) lookup(key string) (string, bool) {
	key = strings.ToLower(key)
	if p.flags != nil {
		if flag := p.flags.Lookup(flagName(key)); flag != nil && flag.Changed {
			return flag.Value.String(), true
		}
	}
	if p.envSet {
		if val, ok := os.LookupEnv(p.envName(key)); ok && len(strings.TrimSpace(val)) > 0 {
			return strings.TrimSpace(val), true
		}
	}
	val, ok := p.values[key]
	if !ok || len(strings.TrimSpace(val)) == 0 {
		return "", false
	}
	return strings.TrimSpace(val), true
}

// Keys returns the keys present in the file/map layer, in no particular order.
func (p *Properties) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for key := range p.values {
		keys = append(keys, key)
	}
	return keys
}

// Has reports whether key resolves to a non-empty value in any layer.
func (p *Properties) Has(key string) bool {
	_, ok := p.lookup(key)
	return ok
}

// Val resolves key to a string, falling back to defaultVal when no layer has a non-empty value.
func (p *Properties) Val(key string, defaultVal string) string {
	if val, ok := p.lookup(key); ok {
		return val
	}
	return defaultVal
}

// Bool resolves key to a boolean, falling back to defaultVal when the value is missing or doesn't parse.
func (p *Properties) Bool(key string, defaultVal bool) bool {
	val, ok := p.lookup(key)
	if !ok {
		return defaultVal
	}
	parsed, err := cast.ToBoolE(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// Int resolves key to an int64, falling back to defaultVal when the value is missing or doesn't parse.
func (p *Properties) Int(key string, defaultVal int64) int64 {
	val, ok := p.lookup(key)
	if !ok {
		return defaultVal
	}
	parsed, err := cast.ToInt64E(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// Float resolves key to a float64, falling back to defaultVal when the value is missing or doesn't parse.
func (p *Properties) Float(key string, defaultVal float64) float64 {
	val, ok := p.lookup(key)
	if !ok {
		return defaultVal
	}
	parsed, err := cast.ToFloat64E(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// Duration resolves key to a [time.Duration], falling back to defaultVal when the value is missing or doesn't parse.
func (p *Properties) Duration(key string, defaultVal time.Duration) time.Duration {
	val, ok := p.lookup(key)
	if !ok {
		return defaultVal
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
