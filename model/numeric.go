package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Story point bounds, inclusive.
const (
	MinStoryPoints = 1
	MaxStoryPoints = 21
)

var (
	// ErrStoryPointsOutOfRange is returned when story points fall outside [1, 21].
	ErrStoryPointsOutOfRange = errors.New("story points must be between 1 and 21")
	// ErrNegativeHours is returned when an hour estimate is below zero.
	ErrNegativeHours = errors.New("hours must be non-negative")
)

// StoryPoints is an estimate in the range [1, 21]. Values should only be
// produced through CreateStoryPoints or JSON decoding, both of which check
// the range.
type StoryPoints int

// CreateStoryPoints returns n as StoryPoints, or ErrStoryPointsOutOfRange.
func CreateStoryPoints(n int) (StoryPoints, error) {
	if n < MinStoryPoints || n > MaxStoryPoints {
		return 0, fmt.Errorf("%w: got %d", ErrStoryPointsOutOfRange, n)
	}
	return StoryPoints(n), nil
}

// Int returns the plain integer value.
func (s StoryPoints) Int() int {
	return int(s)
}

// UnmarshalJSON decodes and range-checks story points.
func (s *StoryPoints) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode story points: %w", err)
	}
	v, err := CreateStoryPoints(n)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Hours is a non-negative duration estimate in hours.
type Hours float64

// CreateHours returns n as Hours, or ErrNegativeHours.
func CreateHours(n float64) (Hours, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: got %g", ErrNegativeHours, n)
	}
	return Hours(n), nil
}

// Float returns the plain number.
func (h Hours) Float() float64 {
	return float64(h)
}

// UnmarshalJSON decodes and checks hours.
func (h *Hours) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode hours: %w", err)
	}
	v, err := CreateHours(n)
	if err != nil {
		return err
	}
	*h = v
	return nil
}
