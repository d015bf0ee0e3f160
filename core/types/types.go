// Package types defines the shared domain types for the quoting engine.
// These types cross component boundaries; they carry no tariff internals.
package types

import (
	"github.com/shopspring/decimal"
)

// Verdict is the underwriting decision for a quote request.
type Verdict string

const (
	// VerdictAutoOK approves automatically with a computed premium.
	VerdictAutoOK Verdict = "AUTO_OK"

	// VerdictRefer routes the request to human review.
	VerdictRefer Verdict = "REFER"

	// VerdictDecline rejects the request outright.
	VerdictDecline Verdict = "DECLINE"
)

// Valid reports whether v is one of the three known verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictAutoOK, VerdictRefer, VerdictDecline:
		return true
	}
	return false
}

// QuoteRequest is a validated quote request. It is produced only by the
// input validator; untyped transport payloads never travel past that
// boundary.
type QuoteRequest struct {
	CargoClassID string
	SumInsured   decimal.Decimal
	Condition    string
	Franchise    decimal.Decimal
	IsReefer     bool
	RouteZone    string
}

// FranchiseRatio returns franchise / sumInsured. The validator guarantees
// sumInsured > 0 before a QuoteRequest exists, so the division is total.
func (r QuoteRequest) FranchiseRatio() decimal.Decimal {
	return r.Franchise.DivRound(r.SumInsured, 12)
}

// Flag is a public, non-sensitive marker safe to surface to callers.
type Flag string

const (
	FlagReeferSurchargeApplied   Flag = "reefer_surcharge_applied"
	FlagFranchiseDiscountApplied Flag = "franchise_discount_applied"
	FlagMinPremiumApplied        Flag = "min_premium_applied"
)

// Reason is a public reason code explaining a REFER or DECLINE verdict.
// Reasons name which input was not acceptable; they never carry the
// threshold or coefficient that produced the outcome.
type Reason string

const (
	ReasonCargoNotEligible      Reason = "CARGO_NOT_ELIGIBLE"
	ReasonConditionNotSupported Reason = "CONDITION_NOT_SUPPORTED"
	ReasonConditionUninsurable  Reason = "CONDITION_UNINSURABLE"
	ReasonRouteZoneNotSupported Reason = "ROUTE_ZONE_NOT_SUPPORTED"
	ReasonReeferNotSupported    Reason = "REEFER_NOT_SUPPORTED"
	ReasonLimitExceeded         Reason = "LIMIT_EXCEEDED"
	ReasonFranchiseBelowMinimum Reason = "FRANCHISE_BELOW_MINIMUM"
)

// QuoteDecision is the outcome of a quote. Premium is set iff the verdict
// is AUTO_OK. The decision exposes only verdict, premium, public flags and
// reason codes; resolved multipliers and thresholds never appear here.
type QuoteDecision struct {
	Verdict       Verdict
	Premium       *decimal.Decimal
	Currency      string
	Flags         []Flag
	Reasons       []Reason
	TariffVersion string
}

// HasFlag reports whether the decision carries the given public flag.
func (d QuoteDecision) HasFlag(f Flag) bool {
	for _, have := range d.Flags {
		if have == f {
			return true
		}
	}
	return false
}
