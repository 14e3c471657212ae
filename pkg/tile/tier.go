package tile

import (
	"fmt"
	"strings"

	"github.com/eskillate/lowpop/pkg/errors"
)

// Tier selects which operations a batch may use and whether values are
// integers or reals.
type Tier int

const (
	NormalOnly Tier = iota
	IntArithmetics
	FloatArithmetics
	// ComposedExpressions currently behaves exactly like FloatArithmetics.
	// Nested-operation semantics have never been defined for it.
	ComposedExpressions
)

var tierNames = map[Tier]string{
	NormalOnly:          "normal",
	IntArithmetics:      "int",
	FloatArithmetics:    "float",
	ComposedExpressions: "composed",
}

// Tiers lists every supported tier in ascending difficulty.
func Tiers() []Tier {
	return []Tier{NormalOnly, IntArithmetics, FloatArithmetics, ComposedExpressions}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

// Integral reports whether values generated at this tier are integers.
func (t Tier) Integral() bool {
	return t == NormalOnly || t == IntArithmetics
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier resolves a tier from its name. Matching is case-insensitive.
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range tierNames {
		if n == name {
			return t, nil
		}
	}
	return 0, errors.New(errors.ErrCodeUnsupportedTier, "unknown tier %q (must be one of: normal, int, float, composed)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, errors.New(errors.ErrCodeUnsupportedTier, "unknown tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
