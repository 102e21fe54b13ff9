package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Location is a trip start/end point persisted as JSONB.
type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address,omitempty"`
}

// Validate requires both coordinates and keeps them on the globe.
func (l *Location) Validate() error {
	if l == nil {
		return errors.New("location is required")
	}
	if l.Latitude == nil || l.Longitude == nil {
		return errors.New("location requires latitude and longitude")
	}
	if *l.Latitude < -90 || *l.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", *l.Latitude)
	}
	if *l.Longitude < -180 || *l.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", *l.Longitude)
	}
	return nil
}

// Value marshals the location into JSON for Postgres.
func (l Location) Value() (driver.Value, error) {
	buf, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes JSONB into the location.
func (l *Location) Scan(value interface{}) error {
	if value == nil {
		*l = Location{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("location: unsupported scan type %T", value)
	}

	var result Location
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*l = result
	return nil
}
