// Package tariff loads and holds the confidential tariff configuration.
//
// A Tariff is immutable after load and sealed against later mutation. It is
// the only shared state in the engine; the Store swaps whole snapshots
// atomically so readers never observe a partial update. No method of this
// package serializes coefficient state back to a caller.
package tariff

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// ClassInfo describes a cargo class as resolved from the tariff.
type ClassInfo struct {
	BaseRate         decimal.Decimal
	RiskTier         string
	RiskWeight       decimal.Decimal
	ReeferCompatible bool
}

// ConditionInfo describes a shipment condition as resolved from the tariff.
type ConditionInfo struct {
	Multiplier  decimal.Decimal
	Uninsurable bool
}

// TierThresholds are the auto-approval bounds for one risk tier.
type TierThresholds struct {
	// AutoApprovalCeiling bounds effective exposure (sum insured x risk
	// weight) for automatic approval.
	AutoApprovalCeiling decimal.Decimal

	// MinFranchiseRatio is the minimum franchise/sum-insured ratio for
	// automatic approval.
	MinFranchiseRatio decimal.Decimal
}

// CurvePoint is one point of the franchise discount curve.
type CurvePoint struct {
	Ratio  decimal.Decimal
	Factor decimal.Decimal
}

// Tariff is an immutable snapshot of the tariff configuration.
// All coefficient fields are unexported; lookups return copies.
type Tariff struct {
	version  string
	currency string

	classes    map[string]ClassInfo
	conditions map[string]ConditionInfo
	zones      map[string]decimal.Decimal

	reeferSurcharge decimal.Decimal
	discountCurve   []CurvePoint // sorted by Ratio ascending
	thresholds      map[string]TierThresholds
	minPremium      decimal.Decimal

	contentHash string
	sealed      bool
}

// Version returns the tariff document version. This is the only tariff
// field that may appear in API responses.
func (t *Tariff) Version() string {
	return t.version
}

// Currency returns the premium currency code.
func (t *Tariff) Currency() string {
	return t.currency
}

// ContentHash returns the hex sha256 of the loaded document. It is logged
// at load time for operational verification; it is not part of any quote
// response.
func (t *Tariff) ContentHash() string {
	return t.contentHash
}

// ResolveClass looks up a cargo class. Pure and side-effect-free.
func (t *Tariff) ResolveClass(id string) (ClassInfo, bool) {
	info, ok := t.classes[id]
	return info, ok
}

// ResolveCondition looks up a shipment condition.
func (t *Tariff) ResolveCondition(condition string) (ConditionInfo, bool) {
	info, ok := t.conditions[condition]
	return info, ok
}

// ResolveZone looks up a route zone multiplier.
func (t *Tariff) ResolveZone(zone string) (decimal.Decimal, bool) {
	m, ok := t.zones[zone]
	return m, ok
}

// Thresholds looks up the auto-approval thresholds for a risk tier.
func (t *Tariff) Thresholds(tier string) (TierThresholds, bool) {
	th, ok := t.thresholds[tier]
	return th, ok
}

// ReeferSurcharge returns the multiplicative surcharge for refrigerated
// shipments.
func (t *Tariff) ReeferSurcharge() decimal.Decimal {
	return t.reeferSurcharge
}

// MinPremium returns the premium floor in major currency units.
func (t *Tariff) MinPremium() decimal.Decimal {
	return t.minPremium
}

// FranchiseDiscount returns the discount factor for a franchise ratio.
// The curve is a step function: the factor of the greatest point whose
// ratio does not exceed the requested ratio. The loader guarantees a point
// at ratio zero, so the lookup is total for ratio >= 0.
func (t *Tariff) FranchiseDiscount(ratio decimal.Decimal) decimal.Decimal {
	// First point above the ratio; the applicable point is the one before.
	i := sort.Search(len(t.discountCurve), func(i int) bool {
		return t.discountCurve[i].Ratio.GreaterThan(ratio)
	})
	if i == 0 {
		return t.discountCurve[0].Factor
	}
	return t.discountCurve[i-1].Factor
}

// MarshalJSON deliberately withholds coefficient state. A Tariff that ends
// up in a JSON encoder (log field, response payload) emits only its public
// identity.
func (t *Tariff) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Version  string `json:"version"`
		Currency string `json:"currency"`
	}{Version: t.version, Currency: t.currency})
}

func hashDocument(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
