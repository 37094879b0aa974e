package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

// TimestampLayout is the CSV rendering of PositionRecord.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Header is the fixed first line of every position CSV file.
var Header = []string{"timestamp", "latitude", "longitude", "message"}

// RawResponse is an undecoded-by-schema API response. Body holds the bytes
// exactly as received; Fields is the generic decoding with numbers kept as
// json.Number so their literal text survives.
type RawResponse struct {
	Body   []byte
	Fields map[string]any
}

// PositionRecord is the flattened form of one position response.
type PositionRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Latitude  string    `json:"latitude"`
	Longitude string    `json:"longitude"`
	Message   string    `json:"message"`
}

// CSVRow returns the record in Header order.
func (r PositionRecord) CSVRow() []string {
	return []string{
		r.Timestamp.UTC().Format(TimestampLayout),
		r.Latitude,
		r.Longitude,
		r.Message,
	}
}

// HTTPStatusError reports a response outside the 2xx range.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: status %d: %s", e.URL, e.StatusCode, e.Body)
}

// ParseRawResponse decodes body, which must hold exactly one JSON object.
func ParseRawResponse(body []byte) (RawResponse, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return RawResponse{}, fmt.Errorf("parse raw response: %w", err)
	}
	if fields == nil {
		return RawResponse{}, errors.New("parse raw response: body is not a JSON object")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return RawResponse{}, errors.New("parse raw response: unexpected data after JSON object")
	}

	return RawResponse{Body: body, Fields: fields}, nil
}
