// Package premium computes the final premium for auto-approved quotes.
//
// All arithmetic runs on decimals so identical input always reproduces the
// identical premium. Intermediate factors are never rounded; the single
// rounding step is round-half-up to the currency minor unit, applied once
// at the end.
package premium

import (
	"github.com/shopspring/decimal"

	"tariff-engine/core/tariff"
	"tariff-engine/core/types"
	"tariff-engine/internal/errors"
)

// minorUnitPlaces is the number of decimal places of the currency minor
// unit the final premium is rounded to.
const minorUnitPlaces = 2

// Premium is the priced result plus the public flags describing which
// factors were applied. The flags name the factor, never its value.
type Premium struct {
	Amount   decimal.Decimal
	Currency string
	Flags    []types.Flag
}

// Price computes the premium for a request the classifier approved:
//
//	sumInsured x baseRate x conditionMultiplier x zoneMultiplier
//	           x reeferSurcharge (if refrigerated)
//	           x franchiseDiscount(franchise / sumInsured)
//
// then one round-half-up to the minor unit, then the minimum premium
// floor. Callers must invoke it only for AUTO_OK outcomes; an unresolved
// key here indicates a classifier bypass and is reported as an error, not
// priced with a fallback.
func Price(req types.QuoteRequest, t *tariff.Tariff) (Premium, error) {
	class, ok := t.ResolveClass(req.CargoClassID)
	if !ok {
		return Premium{}, errors.NotFound("cargo class", req.CargoClassID)
	}
	condition, ok := t.ResolveCondition(req.Condition)
	if !ok {
		return Premium{}, errors.NotFound("condition", req.Condition)
	}
	zoneMultiplier, ok := t.ResolveZone(req.RouteZone)
	if !ok {
		return Premium{}, errors.NotFound("route zone", req.RouteZone)
	}

	amount := req.SumInsured.
		Mul(class.BaseRate).
		Mul(condition.Multiplier).
		Mul(zoneMultiplier)

	var flags []types.Flag

	if req.IsReefer {
		amount = amount.Mul(t.ReeferSurcharge())
		flags = append(flags, types.FlagReeferSurchargeApplied)
	}

	discount := t.FranchiseDiscount(req.FranchiseRatio())
	amount = amount.Mul(discount)
	if discount.LessThan(decimal.NewFromInt(1)) {
		flags = append(flags, types.FlagFranchiseDiscountApplied)
	}

	// The single rounding step.
	amount = amount.Round(minorUnitPlaces)

	if amount.LessThan(t.MinPremium()) {
		amount = t.MinPremium()
		flags = append(flags, types.FlagMinPremiumApplied)
	}

	return Premium{
		Amount:   amount,
		Currency: t.Currency(),
		Flags:    flags,
	}, nil
}
