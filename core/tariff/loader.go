package tariff

import (
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"

	"tariff-engine/internal/errors"
)

// document is the on-disk shape of the tariff configuration. Amounts and
// coefficients are decimal strings (JSON numbers are also accepted).
type document struct {
	Version      string                   `json:"version"`
	Currency     string                   `json:"currency"`
	CargoClasses map[string]classDoc      `json:"cargo_classes"`
	Conditions   map[string]conditionDoc  `json:"conditions"`
	Zones        map[string]decimal.Decimal `json:"zone_multipliers"`
	Reefer       decimal.Decimal          `json:"reefer_surcharge"`
	Curve        []curvePointDoc          `json:"franchise_discount_curve"`
	Thresholds   map[string]thresholdsDoc `json:"risk_thresholds"`
	MinPremium   decimal.Decimal          `json:"min_premium"`
}

type classDoc struct {
	BaseRate         decimal.Decimal `json:"base_rate"`
	RiskTier         string          `json:"risk_tier"`
	RiskWeight       decimal.Decimal `json:"risk_weight"`
	ReeferCompatible bool            `json:"reefer_compatible"`
}

type conditionDoc struct {
	Multiplier  decimal.Decimal `json:"multiplier"`
	Uninsurable bool            `json:"uninsurable"`
}

type curvePointDoc struct {
	Ratio  decimal.Decimal `json:"ratio"`
	Factor decimal.Decimal `json:"factor"`
}

type thresholdsDoc struct {
	AutoApprovalCeiling decimal.Decimal `json:"auto_approval_ceiling"`
	MinFranchiseRatio   decimal.Decimal `json:"min_franchise_ratio"`
}

// Load reads and validates the tariff document at path. Loading is
// all-or-nothing: any failure returns a CONFIG_ERROR and no snapshot.
func Load(path string) (*Tariff, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "tariff document unreadable", err).
			WithContext("path", path)
	}
	return Parse(raw)
}

// Parse validates a raw tariff document and builds a sealed snapshot.
func Parse(raw []byte) (*Tariff, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "tariff document malformed", err)
	}

	if err := validate(&doc); err != nil {
		return nil, err
	}

	t := &Tariff{
		version:         doc.Version,
		currency:        doc.Currency,
		classes:         make(map[string]ClassInfo, len(doc.CargoClasses)),
		conditions:      make(map[string]ConditionInfo, len(doc.Conditions)),
		zones:           make(map[string]decimal.Decimal, len(doc.Zones)),
		reeferSurcharge: doc.Reefer,
		discountCurve:   make([]CurvePoint, 0, len(doc.Curve)),
		thresholds:      make(map[string]TierThresholds, len(doc.Thresholds)),
		minPremium:      doc.MinPremium,
		contentHash:     hashDocument(raw),
	}

	for id, c := range doc.CargoClasses {
		t.classes[id] = ClassInfo{
			BaseRate:         c.BaseRate,
			RiskTier:         c.RiskTier,
			RiskWeight:       c.RiskWeight,
			ReeferCompatible: c.ReeferCompatible,
		}
	}
	for name, c := range doc.Conditions {
		t.conditions[name] = ConditionInfo{
			Multiplier:  c.Multiplier,
			Uninsurable: c.Uninsurable,
		}
	}
	for zone, m := range doc.Zones {
		t.zones[zone] = m
	}
	for _, p := range doc.Curve {
		t.discountCurve = append(t.discountCurve, CurvePoint{Ratio: p.Ratio, Factor: p.Factor})
	}
	for tier, th := range doc.Thresholds {
		t.thresholds[tier] = TierThresholds{
			AutoApprovalCeiling: th.AutoApprovalCeiling,
			MinFranchiseRatio:   th.MinFranchiseRatio,
		}
	}

	t.sealed = true
	return t, nil
}

// validate applies the structural invariants: required keys, strictly
// positive multipliers, a monotonic discount curve, and a known tier for
// every cargo class. Unresolved references fail the load; nothing is
// silently defaulted.
func validate(doc *document) error {
	if doc.Version == "" {
		return errors.Config("missing required key: version")
	}
	if doc.Currency == "" {
		return errors.Config("missing required key: currency")
	}
	if len(doc.CargoClasses) == 0 {
		return errors.Config("missing required key: cargo_classes")
	}
	if len(doc.Conditions) == 0 {
		return errors.Config("missing required key: conditions")
	}
	if len(doc.Zones) == 0 {
		return errors.Config("missing required key: zone_multipliers")
	}
	if len(doc.Curve) == 0 {
		return errors.Config("missing required key: franchise_discount_curve")
	}
	if len(doc.Thresholds) == 0 {
		return errors.Config("missing required key: risk_thresholds")
	}

	for id, c := range doc.CargoClasses {
		if !c.BaseRate.IsPositive() {
			return errors.Configf("cargo class %s: base_rate must be > 0", id)
		}
		if !c.RiskWeight.IsPositive() {
			return errors.Configf("cargo class %s: risk_weight must be > 0", id)
		}
		if c.RiskTier == "" {
			return errors.Configf("cargo class %s: missing risk_tier", id)
		}
		if _, ok := doc.Thresholds[c.RiskTier]; !ok {
			return errors.Configf("cargo class %s: unknown risk tier %q", id, c.RiskTier)
		}
	}

	for name, c := range doc.Conditions {
		if !c.Multiplier.IsPositive() {
			return errors.Configf("condition %s: multiplier must be > 0", name)
		}
	}

	for zone, m := range doc.Zones {
		if !m.IsPositive() {
			return errors.Configf("zone %s: multiplier must be > 0", zone)
		}
	}

	if !doc.Reefer.IsPositive() {
		return errors.Config("reefer_surcharge must be > 0")
	}

	if err := validateCurve(doc.Curve); err != nil {
		return err
	}

	for tier, th := range doc.Thresholds {
		if !th.AutoApprovalCeiling.IsPositive() {
			return errors.Configf("tier %s: auto_approval_ceiling must be > 0", tier)
		}
		if th.MinFranchiseRatio.IsNegative() || th.MinFranchiseRatio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return errors.Configf("tier %s: min_franchise_ratio must be in [0, 1)", tier)
		}
	}

	if doc.MinPremium.IsNegative() {
		return errors.Config("min_premium must be >= 0")
	}

	return nil
}

// validateCurve enforces the monotonicity invariant: ratios strictly
// increasing from zero, factors in (0, 1] and non-increasing. A
// non-increasing factor keeps the premium a well-behaved function of the
// input: a larger franchise never raises the premium, and a larger sum
// insured never lowers it.
func validateCurve(curve []curvePointDoc) error {
	one := decimal.NewFromInt(1)

	if !curve[0].Ratio.IsZero() {
		return errors.Config("franchise_discount_curve must start at ratio 0")
	}

	prev := curvePointDoc{}
	for i, p := range curve {
		if p.Ratio.IsNegative() || p.Ratio.GreaterThanOrEqual(one) {
			return errors.Configf("franchise_discount_curve[%d]: ratio must be in [0, 1)", i)
		}
		if !p.Factor.IsPositive() || p.Factor.GreaterThan(one) {
			return errors.Configf("franchise_discount_curve[%d]: factor must be in (0, 1]", i)
		}
		if i > 0 {
			if p.Ratio.LessThanOrEqual(prev.Ratio) {
				return errors.Configf("franchise_discount_curve[%d]: ratios must be strictly increasing", i)
			}
			if p.Factor.GreaterThan(prev.Factor) {
				return errors.Configf("franchise_discount_curve[%d]: factors must be non-increasing", i)
			}
		}
		prev = p
	}
	return nil
}
