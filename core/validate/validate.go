// Package validate normalizes and validates incoming quote parameters.
//
// Only shape and range checks live here; nothing consults the tariff. The
// rules run in a fixed order and the first failure wins, so error reporting
// is deterministic for identical input.
package validate

import (
	"strings"

	"github.com/shopspring/decimal"

	"tariff-engine/core/types"
	"tariff-engine/internal/errors"
)

// Raw carries quote parameters as delivered by the transport layer, after
// JSON decoding but before any validation. Field types are already
// concrete: a non-numeric amount or non-boolean reefer flag fails at
// decode time in the transport layer.
type Raw struct {
	CargoClassID string
	SumInsured   decimal.Decimal
	Condition    string
	Franchise    decimal.Decimal
	IsReefer     bool
	RouteZone    string
}

// minorUnitExponent is the finest amount granularity accepted: two decimal
// places, the minor unit of the supported currencies.
const minorUnitExponent = -2

// Validate applies the validation rules in order and returns a typed
// request. Unresolvable identifiers (unknown cargo class, condition or
// zone) are not checked here; they are business outcomes decided by the
// classifier, not transport faults.
func Validate(raw Raw) (types.QuoteRequest, error) {
	// Rule 1: sum insured is a positive amount at minor-unit granularity.
	if !raw.SumInsured.IsPositive() {
		return types.QuoteRequest{}, errors.Validation("sum_insured", "sum_insured must be positive")
	}
	if raw.SumInsured.Exponent() < minorUnitExponent {
		return types.QuoteRequest{}, errors.Validation("sum_insured", "sum_insured exceeds minor unit precision")
	}

	// Rule 2: franchise is non-negative and strictly below the sum insured.
	if raw.Franchise.IsNegative() {
		return types.QuoteRequest{}, errors.Validation("franchise", "franchise must not be negative")
	}
	if raw.Franchise.Exponent() < minorUnitExponent {
		return types.QuoteRequest{}, errors.Validation("franchise", "franchise exceeds minor unit precision")
	}
	if raw.Franchise.GreaterThanOrEqual(raw.SumInsured) {
		return types.QuoteRequest{}, errors.Validation("franchise", "franchise must be less than sum_insured")
	}

	// Rule 3: identifiers are present. Resolution against the tariff
	// happens later.
	cargoClass := strings.TrimSpace(raw.CargoClassID)
	if cargoClass == "" {
		return types.QuoteRequest{}, errors.Validation("cargo_class_id", "cargo_class_id must not be empty")
	}
	condition := strings.ToUpper(strings.TrimSpace(raw.Condition))
	if condition == "" {
		return types.QuoteRequest{}, errors.Validation("condition", "condition must not be empty")
	}
	zone := strings.TrimSpace(raw.RouteZone)
	if zone == "" {
		return types.QuoteRequest{}, errors.Validation("route_zone", "route_zone must not be empty")
	}

	// Rule 4: is_reefer is boolean by construction of Raw.

	return types.QuoteRequest{
		CargoClassID: cargoClass,
		SumInsured:   raw.SumInsured,
		Condition:    condition,
		Franchise:    raw.Franchise,
		IsReefer:     raw.IsReefer,
		RouteZone:    zone,
	}, nil
}
