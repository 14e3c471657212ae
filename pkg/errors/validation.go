package errors

import "math"

// MaxTileCount caps the number of tiles a single batch may request.
// Larger requests can never satisfy the uniqueness constraint with the
// default value range and only burn attempts.
const MaxTileCount = 10_000

// ValidateTileCount rejects negative and absurdly large tile counts.
func ValidateTileCount(count int) error {
	if count < 0 {
		return New(ErrCodeInvalidInput, "tile count cannot be negative (got %d)", count)
	}
	if count > MaxTileCount {
		return New(ErrCodeInvalidInput, "tile count too large (max %d, got %d)", MaxTileCount, count)
	}
	return nil
}

// ValidateSize checks that a named width/height pair is finite and positive.
func ValidateSize(name string, width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "%s must be finite (got %vx%v)", name, width, height)
		}
		if v <= 0 {
			return New(ErrCodeInvalidInput, "%s must be positive (got %vx%v)", name, width, height)
		}
	}
	return nil
}
