package classify

import (
	"testing"

	"github.com/shopspring/decimal"

	"tariff-engine/core/tariff"
	"tariff-engine/core/types"
)

const testDoc = `{
  "version": "test",
  "currency": "RUB",
  "cargo_classes": {
    "CARGO003": {"base_rate": "0.0016", "risk_tier": "B", "risk_weight": "1.2", "reefer_compatible": false},
    "CARGO011": {"base_rate": "0.0021", "risk_tier": "A", "risk_weight": "1.0", "reefer_compatible": true}
  },
  "conditions": {
    "NEW": {"multiplier": "1.0"},
    "USED": {"multiplier": "1.15"},
    "DAMAGED": {"multiplier": "1.6", "uninsurable": true}
  },
  "zone_multipliers": {"RU": "1.0", "CIS_RU": "1.2"},
  "reefer_surcharge": "1.25",
  "franchise_discount_curve": [
    {"ratio": "0", "factor": "1.0"},
    {"ratio": "0.002", "factor": "0.95"}
  ],
  "risk_thresholds": {
    "A": {"auto_approval_ceiling": "60000000", "min_franchise_ratio": "0"},
    "B": {"auto_approval_ceiling": "50000000", "min_franchise_ratio": "0.001"}
  },
  "min_premium": "1500"
}`

func loadTariff(t *testing.T) *tariff.Tariff {
	t.Helper()
	tr, err := tariff.Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("parsing test tariff: %v", err)
	}
	return tr
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func baseRequest() types.QuoteRequest {
	return types.QuoteRequest{
		CargoClassID: "CARGO003",
		SumInsured:   d("10000000"),
		Condition:    "NEW",
		Franchise:    d("50000"),
		IsReefer:     false,
		RouteZone:    "RU",
	}
}

func reasonsEqual(a []types.Reason, b []types.Reason) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClassifyDecisionProcedure(t *testing.T) {
	tr := loadTariff(t)

	tests := []struct {
		name        string
		mutate      func(*types.QuoteRequest)
		wantVerdict types.Verdict
		wantReasons []types.Reason
	}{
		{
			name:        "clean request auto approves",
			mutate:      func(r *types.QuoteRequest) {},
			wantVerdict: types.VerdictAutoOK,
			wantReasons: nil,
		},
		{
			name:        "unknown cargo class declines",
			mutate:      func(r *types.QuoteRequest) { r.CargoClassID = "CARGO999" },
			wantVerdict: types.VerdictDecline,
			wantReasons: []types.Reason{types.ReasonCargoNotEligible},
		},
		{
			name:        "unknown condition declines",
			mutate:      func(r *types.QuoteRequest) { r.Condition = "REFURBISHED" },
			wantVerdict: types.VerdictDecline,
			wantReasons: []types.Reason{types.ReasonConditionNotSupported},
		},
		{
			name:        "unknown zone declines",
			mutate:      func(r *types.QuoteRequest) { r.RouteZone = "MARS" },
			wantVerdict: types.VerdictDecline,
			wantReasons: []types.Reason{types.ReasonRouteZoneNotSupported},
		},
		{
			name: "all unresolved keys reported",
			mutate: func(r *types.QuoteRequest) {
				r.CargoClassID = "CARGO999"
				r.Condition = "REFURBISHED"
				r.RouteZone = "MARS"
			},
			wantVerdict: types.VerdictDecline,
			wantReasons: []types.Reason{
				types.ReasonCargoNotEligible,
				types.ReasonConditionNotSupported,
				types.ReasonRouteZoneNotSupported,
			},
		},
		{
			// exposure = 50M x 1.2 = 60M > 50M ceiling for tier B
			name:        "exposure above ceiling refers",
			mutate:      func(r *types.QuoteRequest) { r.SumInsured = d("50000000"); r.Franchise = d("50000") },
			wantVerdict: types.VerdictRefer,
			wantReasons: []types.Reason{types.ReasonLimitExceeded},
		},
		{
			// ratio 5000/10M = 0.0005 < 0.001 tier B minimum
			name:        "franchise below tier minimum refers",
			mutate:      func(r *types.QuoteRequest) { r.Franchise = d("5000") },
			wantVerdict: types.VerdictRefer,
			wantReasons: []types.Reason{types.ReasonFranchiseBelowMinimum},
		},
		{
			name:        "uninsurable condition declines",
			mutate:      func(r *types.QuoteRequest) { r.Condition = "DAMAGED" },
			wantVerdict: types.VerdictDecline,
			wantReasons: []types.Reason{types.ReasonConditionUninsurable},
		},
		{
			name:        "reefer on incompatible class declines",
			mutate:      func(r *types.QuoteRequest) { r.IsReefer = true },
			wantVerdict: types.VerdictDecline,
			wantReasons: []types.Reason{types.ReasonReeferNotSupported},
		},
		{
			name: "reefer on compatible class approves",
			mutate: func(r *types.QuoteRequest) {
				r.CargoClassID = "CARGO011"
				r.IsReefer = true
			},
			wantVerdict: types.VerdictAutoOK,
			wantReasons: nil,
		},
		{
			// Both a REFER condition (over ceiling) and a DECLINE condition
			// (uninsurable) hold; DECLINE must win.
			name: "decline outranks refer",
			mutate: func(r *types.QuoteRequest) {
				r.SumInsured = d("100000000")
				r.Franchise = d("200000")
				r.Condition = "DAMAGED"
			},
			wantVerdict: types.VerdictDecline,
			wantReasons: []types.Reason{
				types.ReasonLimitExceeded,
				types.ReasonConditionUninsurable,
			},
		},
		{
			// Franchise ratio exactly at the tier minimum is acceptable.
			name:        "franchise ratio at minimum approves",
			mutate:      func(r *types.QuoteRequest) { r.Franchise = d("10000") },
			wantVerdict: types.VerdictAutoOK,
			wantReasons: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			got := Classify(req, tr)
			if got.Verdict != tt.wantVerdict {
				t.Errorf("Verdict = %s, want %s", got.Verdict, tt.wantVerdict)
			}
			if !reasonsEqual(got.Reasons, tt.wantReasons) {
				t.Errorf("Reasons = %v, want %v", got.Reasons, tt.wantReasons)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	tr := loadTariff(t)
	req := baseRequest()
	req.Condition = "DAMAGED"
	req.SumInsured = d("100000000")

	first := Classify(req, tr)
	for i := 0; i < 100; i++ {
		got := Classify(req, tr)
		if got.Verdict != first.Verdict || !reasonsEqual(got.Reasons, first.Reasons) {
			t.Fatalf("iteration %d: outcome %v differs from first %v", i, got, first)
		}
	}
}
