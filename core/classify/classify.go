// Package classify applies the underwriting decision procedure.
//
// The procedure is an explicit, ordered rule list rather than nested
// conditionals, so its precedence is auditable and each rule is testable
// in isolation. The tie-break policy is fixed: DECLINE outranks REFER when
// both trigger, because an uninsurable risk is never downgraded to "needs
// review".
package classify

import (
	"tariff-engine/core/tariff"
	"tariff-engine/core/types"
)

// Outcome is the classifier result: a verdict plus the public reason codes
// of every rule that triggered, in rule order.
type Outcome struct {
	Verdict types.Verdict
	Reasons []types.Reason
}

// ruleContext carries the resolved tariff data a rule may consult. It is
// built once per classification, after identity resolution succeeds.
type ruleContext struct {
	req        types.QuoteRequest
	class      tariff.ClassInfo
	condition  tariff.ConditionInfo
	thresholds tariff.TierThresholds
}

// rule is one step of the decision procedure. A triggered rule demands a
// verdict; untriggered rules are skipped.
type rule struct {
	name string
	eval func(ruleContext) (types.Verdict, types.Reason, bool)
}

// rules is the decision procedure in business order. The order is part of
// the underwriting contract and must not be rearranged.
var rules = []rule{
	{
		name: "auto_approval_ceiling",
		eval: func(c ruleContext) (types.Verdict, types.Reason, bool) {
			exposure := c.req.SumInsured.Mul(c.class.RiskWeight)
			if exposure.GreaterThan(c.thresholds.AutoApprovalCeiling) {
				// Size alone never declines; it escalates to a human.
				return types.VerdictRefer, types.ReasonLimitExceeded, true
			}
			return "", "", false
		},
	},
	{
		name: "franchise_floor",
		eval: func(c ruleContext) (types.Verdict, types.Reason, bool) {
			if c.req.FranchiseRatio().LessThan(c.thresholds.MinFranchiseRatio) {
				return types.VerdictRefer, types.ReasonFranchiseBelowMinimum, true
			}
			return "", "", false
		},
	},
	{
		name: "uninsurable_condition",
		eval: func(c ruleContext) (types.Verdict, types.Reason, bool) {
			if c.condition.Uninsurable {
				return types.VerdictDecline, types.ReasonConditionUninsurable, true
			}
			return "", "", false
		},
	},
	{
		name: "reefer_compatibility",
		eval: func(c ruleContext) (types.Verdict, types.Reason, bool) {
			if c.req.IsReefer && !c.class.ReeferCompatible {
				return types.VerdictDecline, types.ReasonReeferNotSupported, true
			}
			return "", "", false
		},
	},
}

// Classify runs the decision procedure against a validated request and a
// tariff snapshot. Deterministic: a fixed (request, tariff) pair always
// yields the same outcome.
func Classify(req types.QuoteRequest, t *tariff.Tariff) Outcome {
	// Identity resolution comes first: an unknown cargo class, condition or
	// route zone is an unknown risk, and unknown risk is never approved.
	// All unresolved keys are reported, not just the first.
	var unresolved []types.Reason

	class, ok := t.ResolveClass(req.CargoClassID)
	if !ok {
		unresolved = append(unresolved, types.ReasonCargoNotEligible)
	}
	condition, ok := t.ResolveCondition(req.Condition)
	if !ok {
		unresolved = append(unresolved, types.ReasonConditionNotSupported)
	}
	if _, ok := t.ResolveZone(req.RouteZone); !ok {
		unresolved = append(unresolved, types.ReasonRouteZoneNotSupported)
	}
	if len(unresolved) > 0 {
		return Outcome{Verdict: types.VerdictDecline, Reasons: unresolved}
	}

	thresholds, ok := t.Thresholds(class.RiskTier)
	if !ok {
		// The loader guarantees every class tier resolves; an unknown tier
		// here means the snapshot invariant was broken. Treat as unknown
		// risk rather than guessing a bound.
		return Outcome{Verdict: types.VerdictDecline, Reasons: []types.Reason{types.ReasonCargoNotEligible}}
	}

	ctx := ruleContext{
		req:        req,
		class:      class,
		condition:  condition,
		thresholds: thresholds,
	}

	// Every rule is evaluated so that a DECLINE later in the list is never
	// masked by an earlier REFER.
	outcome := Outcome{Verdict: types.VerdictAutoOK}
	for _, r := range rules {
		verdict, reason, triggered := r.eval(ctx)
		if !triggered {
			continue
		}
		outcome.Reasons = append(outcome.Reasons, reason)
		if rank(verdict) > rank(outcome.Verdict) {
			outcome.Verdict = verdict
		}
	}
	return outcome
}

// rank orders verdicts by severity for the tie-break policy.
func rank(v types.Verdict) int {
	switch v {
	case types.VerdictDecline:
		return 2
	case types.VerdictRefer:
		return 1
	default:
		return 0
	}
}
