package configlang

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rhino1998/configlang/pkg/interpreter"
	"github.com/rhino1998/configlang/pkg/parser"
	"gopkg.in/yaml.v3"
)

// Config bounds the variable table and tunes language behavior. Zero
// fields take their defaults during validation.
type Config struct {
	MaxVariables    int `yaml:"max_variables"`
	MaxNameLength   int `yaml:"max_name_length"`
	MaxStringLength int `yaml:"max_string_length"`

	Chain       interpreter.ChainMode `yaml:"chain"`
	StrictTypes bool                  `yaml:"strict_types"`
}

func DefaultConfig() Config {
	return Config{
		MaxVariables:    interpreter.DefaultCapacity,
		MaxNameLength:   parser.DefaultLimits.MaxNameLength,
		MaxStringLength: parser.DefaultLimits.MaxStringLength,
		Chain:           interpreter.ChainIndependent,
	}
}

func (c *Config) Validate(logger *slog.Logger) error {
	defaults := DefaultConfig()

	fields := []struct {
		name string
		val  *int
		def  int
	}{
		{"max_variables", &c.MaxVariables, defaults.MaxVariables},
		{"max_name_length", &c.MaxNameLength, defaults.MaxNameLength},
		{"max_string_length", &c.MaxStringLength, defaults.MaxStringLength},
	}

	for _, f := range fields {
		switch {
		case *f.val < 0:
			return fmt.Errorf("%s must not be negative, got %d", f.name, *f.val)
		case *f.val == 0:
			logger.Debug("using default limit", "field", f.name, "value", f.def)
			*f.val = f.def
		}
	}

	switch c.Chain {
	case interpreter.ChainIndependent, interpreter.ChainExclusive:
	default:
		return fmt.Errorf("invalid chain mode %d", int(c.Chain))
	}

	return nil
}

// Limits returns the lexer limits implied by the config.
func (c Config) Limits() parser.Limits {
	return parser.Limits{
		MaxNameLength:   c.MaxNameLength,
		MaxStringLength: c.MaxStringLength,
	}
}

func (c Config) options() interpreter.Options {
	return interpreter.Options{
		Chain:       c.Chain,
		StrictTypes: c.StrictTypes,
	}
}

// ReadConfig decodes a YAML document into a Config. An empty document yields
// the zero Config, which validates to the defaults.
func ReadConfig(r io.Reader) (Config, error) {
	var config Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return config, nil
}
