package parking

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument marks malformed query parameters. Never retried
	// internally; surfaced to the caller as-is.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyDataset marks operations that need at least one record being
	// called against a zero-record index. Distinct from "no candidates in
	// range", which is a normal empty result.
	ErrEmptyDataset = errors.New("empty dataset")
)

// ValidateQueryPoint rejects NaN and out-of-range coordinates with
// ErrInvalidArgument before they reach the index.
func ValidateQueryPoint(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return fmt.Errorf("query point (%v, %v) is NaN: %w", lat, lon, ErrInvalidArgument)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("query point (%v, %v) out of range: %w", lat, lon, ErrInvalidArgument)
	}
	return nil
}
