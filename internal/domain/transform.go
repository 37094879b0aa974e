package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrMissingField is returned when a required key path is absent or null.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidField is returned when a key path holds a value of the wrong JSON type.
	ErrInvalidField = errors.New("invalid field")
)

// Source key paths of the four record fields.
var (
	timestampPath = []string{"timestamp"}
	latitudePath  = []string{"iss_position", "latitude"}
	longitudePath = []string{"iss_position", "longitude"}
	messagePath   = []string{"message"}
)

// TransformPosition projects a raw position response into a PositionRecord.
// Every source field must be present; there is no partial result.
func TransformPosition(raw RawResponse) (PositionRecord, error) {
	tsValue, err := lookup(raw.Fields, timestampPath...)
	if err != nil {
		return PositionRecord{}, err
	}
	ts, err := parseEpochSeconds(tsValue)
	if err != nil {
		return PositionRecord{}, fmt.Errorf("%w: timestamp: %v", ErrInvalidField, err)
	}

	lat, err := lookupScalar(raw.Fields, latitudePath...)
	if err != nil {
		return PositionRecord{}, err
	}
	lon, err := lookupScalar(raw.Fields, longitudePath...)
	if err != nil {
		return PositionRecord{}, err
	}
	msg, err := lookupScalar(raw.Fields, messagePath...)
	if err != nil {
		return PositionRecord{}, err
	}

	return PositionRecord{
		Timestamp: ts,
		Latitude:  lat,
		Longitude: lon,
		Message:   msg,
	}, nil
}

// lookup walks nested objects along path. JSON null counts as absent.
func lookup(fields map[string]any, path ...string) (any, error) {
	var current any = fields
	for i, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an object", ErrInvalidField, strings.Join(path[:i], "."))
		}
		current, ok = obj[key]
		if !ok || current == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(path[:i+1], "."))
		}
	}
	return current, nil
}

// lookupScalar returns the value at path as text. Numbers keep their JSON
// literal so "10.00" and 10.00 both render as 10.00.
func lookupScalar(fields map[string]any, path ...string) (string, error) {
	v, err := lookup(fields, path...)
	if err != nil {
		return "", err
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %s has type %T", ErrInvalidField, strings.Join(path, "."), v)
	}
}

// Representable epochs span years 1 through 9999, the range the CSV layout can render.
var (
	minEpochSeconds = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxEpochSeconds = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

func parseEpochSeconds(v any) (time.Time, error) {
	n, ok := v.(json.Number)
	if !ok {
		return time.Time{}, fmt.Errorf("want number, got %T", v)
	}

	sec, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return time.Time{}, fmt.Errorf("not a valid epoch: %s", n)
		}
		f = math.Trunc(f)
		if f < float64(minEpochSeconds) || f > float64(maxEpochSeconds) {
			return time.Time{}, fmt.Errorf("epoch out of range: %s", n)
		}
		sec = int64(f)
	}
	if sec < minEpochSeconds || sec > maxEpochSeconds {
		return time.Time{}, fmt.Errorf("epoch out of range: %s", n)
	}
	return time.Unix(sec, 0).UTC(), nil
}
