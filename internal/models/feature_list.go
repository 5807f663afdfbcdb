package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FeatureList serializes a slice of feature strings to a JSON text column.
type FeatureList []string

func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(f))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for FeatureList: %T", value)
	}

	if len(raw) == 0 {
		*f = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(f))
}

// DayList serializes weekday numbers the same way.
type DayList []int

func (d DayList) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DayList) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for DayList: %T", value)
	}

	if len(raw) == 0 {
		*d = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]int)(d))
}
