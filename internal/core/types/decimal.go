// Package types provides value types shared across packages.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MoneyFromValue converts a decoded JSON value into Money.
// Graph returns currency fields as JSON numbers; strings and json.Number are
// accepted too. Floats are converted through their shortest decimal text so
// 1234.1 stays 1234.1.
func MoneyFromValue(v any) (Money, error) {
	switch x := v.(type) {
	case float64:
		return NewMoneyFromString(strconv.FormatFloat(x, 'f', -1, 64))
	case json.Number:
		return NewMoneyFromString(x.String())
	case string:
		return NewMoneyFromString(x)
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	}
	return decimal.Zero, fmt.Errorf("cannot convert %T to money", v)
}

// FloatFromValue converts a decoded JSON number (or numeric string) to float64.
func FloatFromValue(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	}
	return 0, fmt.Errorf("cannot convert %T to number", v)
}

// BoolFromValue converts a decoded JSON boolean (or "true"/"false", "1"/"0") to bool.
func BoolFromValue(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(x))
	case float64:
		return x != 0, nil
	}
	return false, fmt.Errorf("cannot convert %T to boolean", v)
}
