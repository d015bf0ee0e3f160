// Package api is the thin HTTP layer over the quote engine.
// It is responsible for input ingestion, engine orchestration and output
// serialization only; no underwriting or pricing logic lives here.
package api

import (
	"github.com/shopspring/decimal"

	"tariff-engine/core/types"
	"tariff-engine/core/validate"
)

// QuoteRequestDTO is the body of POST /quote. Amounts are accepted as JSON
// numbers or decimal strings. Unknown fields are rejected by the decoder.
type QuoteRequestDTO struct {
	CargoClassID string          `json:"cargo_class_id" validate:"required,max=64"`
	SumInsured   decimal.Decimal `json:"sum_insured"`
	Condition    string          `json:"condition" validate:"required,max=64"`
	Franchise    decimal.Decimal `json:"franchise"`
	IsReefer     *bool           `json:"is_reefer" validate:"required"`
	RouteZone    string          `json:"route_zone" validate:"required,max=64"`
}

// toRaw converts the DTO into the validator's input shape.
func (d *QuoteRequestDTO) toRaw() validate.Raw {
	return validate.Raw{
		CargoClassID: d.CargoClassID,
		SumInsured:   d.SumInsured,
		Condition:    d.Condition,
		Franchise:    d.Franchise,
		IsReefer:     *d.IsReefer,
		RouteZone:    d.RouteZone,
	}
}

// QuoteResponseDTO is the body of a successful POST /quote. It carries the
// verdict, the premium for AUTO_OK, and public flags and reason codes; it
// never encodes tariff coefficients.
type QuoteResponseDTO struct {
	RequestID     string         `json:"request_id"`
	Verdict       types.Verdict  `json:"verdict"`
	Premium       *string        `json:"premium,omitempty"`
	Currency      string         `json:"currency,omitempty"`
	Flags         []types.Flag   `json:"flags"`
	Reasons       []types.Reason `json:"reasons"`
	TariffVersion string         `json:"tariff_version"`
}

// ErrorResponseDTO is the body of an error response. The code is generic;
// the field names the offending input without revealing the bound it was
// checked against.
type ErrorResponseDTO struct {
	Error ErrorDetailDTO `json:"error"`
}

// ErrorDetailDTO identifies what went wrong.
type ErrorDetailDTO struct {
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// HealthResponseDTO is the body of GET /health.
type HealthResponseDTO struct {
	Status        string `json:"status"`
	TariffVersion string `json:"tariff_version"`
}

func newQuoteResponse(requestID string, d types.QuoteDecision) QuoteResponseDTO {
	resp := QuoteResponseDTO{
		RequestID:     requestID,
		Verdict:       d.Verdict,
		Flags:         d.Flags,
		Reasons:       d.Reasons,
		TariffVersion: d.TariffVersion,
	}
	if resp.Flags == nil {
		resp.Flags = []types.Flag{}
	}
	if resp.Reasons == nil {
		resp.Reasons = []types.Reason{}
	}
	if d.Premium != nil {
		s := d.Premium.StringFixed(2)
		resp.Premium = &s
		resp.Currency = d.Currency
	}
	return resp
}
