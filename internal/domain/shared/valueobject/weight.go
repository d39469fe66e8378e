package valueobject

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// WeightUnit is a unit for shipping weights
type WeightUnit string

const (
	WeightUnitG     WeightUnit = "G"
	WeightUnitKG    WeightUnit = "KG"
	WeightUnitLB    WeightUnit = "LB"
	WeightUnitOZ    WeightUnit = "OZ"
	WeightUnitTonne WeightUnit = "TONNE"
)

// DefaultWeightUnit is used when a weight is supplied without a unit
const DefaultWeightUnit = WeightUnitKG

// IsValid checks if the unit is known
func (u WeightUnit) IsValid() bool {
	switch u {
	case WeightUnitG, WeightUnitKG, WeightUnitLB, WeightUnitOZ, WeightUnitTonne:
		return true
	}
	return false
}

// ParseWeightUnit normalizes a unit code; empty input yields the default unit
func ParseWeightUnit(s string) (WeightUnit, error) {
	if s == "" {
		return DefaultWeightUnit, nil
	}
	u := WeightUnit(strings.ToUpper(s))
	if !u.IsValid() {
		return "", errors.New("unknown weight unit: " + s)
	}
	return u, nil
}

// Weight is an immutable non-negative weight
type Weight struct {
	value decimal.Decimal
	unit  WeightUnit
}

// NewWeight creates a weight; negative values are rejected
func NewWeight(value decimal.Decimal, unit WeightUnit) (Weight, error) {
	if value.IsNegative() {
		return Weight{}, errors.New("weight cannot be negative")
	}
	if !unit.IsValid() {
		return Weight{}, errors.New("unknown weight unit: " + string(unit))
	}
	return Weight{value: value, unit: unit}, nil
}

func (w Weight) Value() decimal.Decimal { return w.value }
func (w Weight) Unit() WeightUnit       { return w.unit }

// MarshalJSON encodes the weight with a numeric value, e.g. {"unit":"KG","value":10}
func (w Weight) MarshalJSON() ([]byte, error) {
	f, _ := w.value.Float64()
	return json.Marshal(struct {
		Unit  WeightUnit `json:"unit"`
		Value float64    `json:"value"`
	}{Unit: w.unit, Value: f})
}
