package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TenureOptions is the set of allowed loan tenures in months, stored as a JSON array.
type TenureOptions []int

func (t TenureOptions) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *TenureOptions) Scan(src interface{}) error {
	return scanJSON(src, t)
}

// Contains reports whether months is one of the offered tenures.
func (t TenureOptions) Contains(months int) bool {
	for _, m := range t {
		if m == months {
			return true
		}
	}
	return false
}

// MutualFunds is the fund snapshot submitted with an application, stored as JSON.
type MutualFunds []MutualFund

func (m MutualFunds) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]MutualFund(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *MutualFunds) Scan(src interface{}) error {
	return scanJSON(src, m)
}

func scanJSON(src interface{}, dest interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
