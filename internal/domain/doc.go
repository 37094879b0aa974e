// Package domain models the ISS position feed published by Open Notify and
// the public GitHub event feed.
//
// # Position feed
//
// The endpoint http://api.open-notify.org/iss-now.json answers with a single
// JSON object:
//
//	{
//	  "timestamp": 1609459200,
//	  "message": "success",
//	  "iss_position": {"latitude": "10.00", "longitude": "20.00"}
//	}
//
// timestamp is integer seconds since the Unix epoch. latitude and longitude
// are decimal strings and are carried through untouched, so the CSV keeps
// the precision the API reported.
//
// # Flat record
//
// Each successful fetch produces exactly one [PositionRecord]. The CSV form
// is fixed:
//
//	timestamp,latitude,longitude,message
//	2021-01-01 00:00:00,10.00,20.00,success
//
// Timestamps are rendered in UTC at second resolution. A response missing any
// of the four source fields never yields a record; see [ErrMissingField].
package domain
