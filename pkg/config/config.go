// Package config holds the tunable constants of LowPop and loads them from
// TOML files.
//
// Defaults: values in [1, 100], denominators in [1, 10), 100 attempts per
// tile, a 1920x1080 surface and 153.5px sprites.
//
//	cfg, err := config.Load("lowpop.toml") // missing keys keep their defaults
//	if err != nil {
//	    return err
//	}
package config

import (
	"io"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/eskillate/lowpop/pkg/errors"
)

// Default values.
const (
	DefaultMinValue            = 1
	DefaultMaxValue            = 100
	DefaultDenominatorMaxValue = 10
	DefaultMaxAttempts         = 100
	DefaultFloatPrecision      = 2

	DefaultSurfaceWidth  = 1920.0
	DefaultSurfaceHeight = 1080.0
	DefaultSpriteWidth   = 153.5
	DefaultSpriteHeight  = 153.5
)

// maxFloatPrecision bounds decimal places for real operands.
const maxFloatPrecision = 6

// Generation bounds the values the expression generator may draw.
type Generation struct {
	MinValue            int `toml:"min_value" json:"min_value"`
	MaxValue            int `toml:"max_value" json:"max_value"`
	DenominatorMaxValue int `toml:"denominator_max_value" json:"denominator_max_value"`
	MaxAttempts         int `toml:"max_attempts" json:"max_attempts"`
	FloatPrecision      int `toml:"float_precision" json:"float_precision"`
}

// Size is a width/height pair in surface units.
type Size struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Config is the complete LowPop configuration.
type Config struct {
	Generation Generation `toml:"generation" json:"generation"`
	Surface    Size       `toml:"surface" json:"surface"`
	Sprite     Size       `toml:"sprite" json:"sprite"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Generation: DefaultGeneration(),
		Surface:    Size{Width: DefaultSurfaceWidth, Height: DefaultSurfaceHeight},
		Sprite:     Size{Width: DefaultSpriteWidth, Height: DefaultSpriteHeight},
	}
}

// DefaultGeneration returns the default generation bounds.
func DefaultGeneration() Generation {
	return Generation{
		MinValue:            DefaultMinValue,
		MaxValue:            DefaultMaxValue,
		DenominatorMaxValue: DefaultDenominatorMaxValue,
		MaxAttempts:         DefaultMaxAttempts,
		FloatPrecision:      DefaultFloatPrecision,
	}
}

// Validate checks the generation bounds.
func (g Generation) Validate() error {
	if g.MinValue < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_value must be >= 1 (got %d)", g.MinValue)
	}
	if g.MaxValue <= g.MinValue {
		return errors.New(errors.ErrCodeInvalidConfig, "max_value (%d) must exceed min_value (%d)", g.MaxValue, g.MinValue)
	}
	if g.DenominatorMaxValue <= g.MinValue {
		return errors.New(errors.ErrCodeInvalidConfig, "denominator_max_value (%d) must exceed min_value (%d)", g.DenominatorMaxValue, g.MinValue)
	}
	if g.MaxAttempts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_attempts must be >= 1 (got %d)", g.MaxAttempts)
	}
	if g.FloatPrecision < 0 || g.FloatPrecision > maxFloatPrecision {
		return errors.New(errors.ErrCodeInvalidConfig, "float_precision must be in [0, %d] (got %d)", maxFloatPrecision, g.FloatPrecision)
	}
	return nil
}

// Validate checks every section of the configuration.
func (c Config) Validate() error {
	if err := c.Generation.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateSize("surface", c.Surface.Width, c.Surface.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid surface")
	}
	if err := errors.ValidateSize("sprite", c.Sprite.Width, c.Sprite.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid sprite")
	}
	return nil
}

// Ratio returns the surface height/width ratio.
func (s Size) Ratio() float64 {
	if s.Width == 0 {
		return math.Inf(1)
	}
	return s.Height / s.Width
}

// Load reads a TOML file on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults and validates the result.
func Parse(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes the configuration as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
