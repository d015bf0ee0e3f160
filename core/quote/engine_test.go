package quote

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-engine/core/tariff"
	"tariff-engine/core/types"
	"tariff-engine/core/validate"
	"tariff-engine/internal/errors"
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
    {"ratio": "0.002", "factor": "0.95"},
    {"ratio": "0.01", "factor": "0.85"}
  ],
  "risk_thresholds": {
    "A": {"auto_approval_ceiling": "60000000", "min_franchise_ratio": "0"},
    "B": {"auto_approval_ceiling": "50000000", "min_franchise_ratio": "0.001"}
  },
  "min_premium": "1500"
}`

func newTestEngine(t *testing.T) (*Engine, *tariff.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tariff_config.json")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0600))

	store, err := tariff.NewStore(path)
	require.NoError(t, err)
	return New(store), store, path
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func baseRaw() validate.Raw {
	return validate.Raw{
		CargoClassID: "CARGO003",
		SumInsured:   d("10000000"),
		Condition:    "NEW",
		Franchise:    d("50000"),
		IsReefer:     false,
		RouteZone:    "RU",
	}
}

func TestQuoteScenarios(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	t.Run("auto approval with exact premium", func(t *testing.T) {
		decision, err := engine.Quote(baseRaw())
		require.NoError(t, err)

		assert.Equal(t, types.VerdictAutoOK, decision.Verdict)
		require.NotNil(t, decision.Premium)
		// 10_000_000 x 0.0016 x 1.0 x 1.0 x 0.95 = 15_200.00
		assert.Equal(t, "15200.00", decision.Premium.StringFixed(2))
		assert.Equal(t, "RUB", decision.Currency)
		assert.Equal(t, "test", decision.TariffVersion)
		assert.True(t, decision.HasFlag(types.FlagFranchiseDiscountApplied))
	})

	t.Run("damaged condition declines without premium", func(t *testing.T) {
		raw := baseRaw()
		raw.Condition = "DAMAGED"

		decision, err := engine.Quote(raw)
		require.NoError(t, err)

		assert.Equal(t, types.VerdictDecline, decision.Verdict)
		assert.Nil(t, decision.Premium)
		assert.Contains(t, decision.Reasons, types.ReasonConditionUninsurable)
	})

	t.Run("unknown cargo class declines without premium", func(t *testing.T) {
		raw := baseRaw()
		raw.CargoClassID = "CARGO999"

		decision, err := engine.Quote(raw)
		require.NoError(t, err)

		assert.Equal(t, types.VerdictDecline, decision.Verdict)
		assert.Nil(t, decision.Premium)
		assert.Contains(t, decision.Reasons, types.ReasonCargoNotEligible)
	})

	t.Run("sum above tier ceiling refers without premium", func(t *testing.T) {
		raw := baseRaw()
		raw.SumInsured = d("900000000")
		raw.Franchise = d("9000000")

		decision, err := engine.Quote(raw)
		require.NoError(t, err)

		assert.Equal(t, types.VerdictRefer, decision.Verdict)
		assert.Nil(t, decision.Premium)
		assert.Contains(t, decision.Reasons, types.ReasonLimitExceeded)
	})

	t.Run("franchise above sum insured is a validation error", func(t *testing.T) {
		raw := baseRaw()
		raw.Franchise = raw.SumInsured.Add(d("1"))

		decision, err := engine.Quote(raw)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.TypeValidation))
		// No verdict is computed for malformed input.
		assert.Empty(t, decision.Verdict)
	})
}

func TestQuoteIsDeterministic(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	first, err := engine.Quote(baseRaw())
	require.NoError(t, err)
	require.NotNil(t, first.Premium)

	for i := 0; i < 200; i++ {
		decision, err := engine.Quote(baseRaw())
		require.NoError(t, err)
		assert.Equal(t, first.Verdict, decision.Verdict)
		require.NotNil(t, decision.Premium)
		assert.True(t, decision.Premium.Equal(*first.Premium),
			"premium drifted: %s vs %s", decision.Premium, first.Premium)
	}
}

func TestQuoteSurvivesNoOpReload(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	before, err := engine.Quote(baseRaw())
	require.NoError(t, err)

	require.NoError(t, store.Reload())

	after, err := engine.Quote(baseRaw())
	require.NoError(t, err)

	assert.Equal(t, before.Verdict, after.Verdict)
	require.NotNil(t, after.Premium)
	assert.True(t, before.Premium.Equal(*after.Premium))
	assert.Equal(t, before.TariffVersion, after.TariffVersion)
}

func TestQuotePicksUpReloadedTariff(t *testing.T) {
	engine, store, path := newTestEngine(t)

	next := strings.Replace(testDoc, `"version": "test"`, `"version": "test-2"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(next), 0600))
	require.NoError(t, store.Reload())

	decision, err := engine.Quote(baseRaw())
	require.NoError(t, err)
	assert.Equal(t, "test-2", decision.TariffVersion)
}

// TestDecisionJSONCarriesNoTariffInternals serializes decisions for every
// verdict and asserts no coefficient, threshold or base rate from the
// tariff document appears in the payload.
func TestDecisionJSONCarriesNoTariffInternals(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	secrets := []string{
		"0.0016", "0.0021", // base rates
		"1.15", "1.6", // condition multipliers
		"1.2", "1.25", // zone multiplier, reefer surcharge
		"0.95", "0.85", // discount factors
		"50000000", "60000000", // ceilings
		"base_rate", "risk_weight", "risk_tier",
		"auto_approval_ceiling", "min_franchise_ratio",
	}

	raws := []validate.Raw{baseRaw()}

	damaged := baseRaw()
	damaged.Condition = "DAMAGED"
	raws = append(raws, damaged)

	over := baseRaw()
	over.SumInsured = d("900000000")
	over.Franchise = d("9000000")
	raws = append(raws, over)

	for _, raw := range raws {
		decision, err := engine.Quote(raw)
		require.NoError(t, err)

		var amount *string
		if decision.Premium != nil {
			s := decision.Premium.StringFixed(2)
			amount = &s
		}

		out, err := json.Marshal(struct {
			Verdict types.Verdict  `json:"verdict"`
			Premium *string        `json:"premium,omitempty"`
			Flags   []types.Flag   `json:"flags"`
			Reasons []types.Reason `json:"reasons"`
			Version string         `json:"tariff_version"`
		}{
			Verdict: decision.Verdict,
			Premium: amount,
			Flags:   decision.Flags,
			Reasons: decision.Reasons,
			Version: decision.TariffVersion,
		})
		require.NoError(t, err)

		for _, secret := range secrets {
			assert.NotContains(t, string(out), secret,
				"decision payload leaks tariff value %q", secret)
		}
	}
}

func TestQuoteConcurrentAccess(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_ = store.Reload()
		}
	}()

	for i := 0; i < 200; i++ {
		decision, err := engine.Quote(baseRaw())
		require.NoError(t, err)
		assert.Equal(t, types.VerdictAutoOK, decision.Verdict)
	}
	<-done
}
