// Package quote composes validation, classification and pricing into the
// public quoting contract.
//
// This is the only entry point callers get. The engine guarantees that a
// decision carries nothing but the verdict, the premium (for AUTO_OK), the
// public flags and reason codes, and the tariff version; resolved
// coefficients and thresholds never cross this boundary.
package quote

import (
	"tariff-engine/core/classify"
	"tariff-engine/core/premium"
	"tariff-engine/core/tariff"
	"tariff-engine/core/types"
	"tariff-engine/core/validate"
	"tariff-engine/internal/errors"
)

// Engine is the quote orchestrator. Safe for unbounded concurrent use: per
// call it reads a single immutable tariff snapshot and keeps no state
// between requests.
type Engine struct {
	store *tariff.Store
}

// New creates an engine backed by a tariff store.
func New(store *tariff.Store) *Engine {
	return &Engine{store: store}
}

// Quote runs the full pipeline: validate, classify, and price when the
// classifier auto-approves. A validation failure returns a
// VALIDATION_ERROR and no decision. The whole call is served from one
// tariff snapshot, so a concurrent reload cannot mix coefficients from two
// tariff versions inside a single quote.
func (e *Engine) Quote(raw validate.Raw) (types.QuoteDecision, error) {
	t := e.store.Current()

	req, err := validate.Validate(raw)
	if err != nil {
		return types.QuoteDecision{}, err
	}

	outcome := classify.Classify(req, t)

	decision := types.QuoteDecision{
		Verdict:       outcome.Verdict,
		Reasons:       outcome.Reasons,
		TariffVersion: t.Version(),
	}

	if outcome.Verdict != types.VerdictAutoOK {
		return decision, nil
	}

	p, err := premium.Price(req, t)
	if err != nil {
		// The classifier resolved every key on this same snapshot, so a
		// lookup failure here is an engine fault, not caller input.
		return types.QuoteDecision{}, errors.Internal("pricing failed after auto-approval", err)
	}

	amount := p.Amount
	decision.Premium = &amount
	decision.Currency = p.Currency
	decision.Flags = p.Flags
	return decision, nil
}

// TariffVersion returns the version of the currently serving snapshot.
func (e *Engine) TariffVersion() string {
	return e.store.Current().Version()
}
