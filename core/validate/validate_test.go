package validate

import (
	"testing"

	"github.com/shopspring/decimal"

	"tariff-engine/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func goodRaw() Raw {
	return Raw{
		CargoClassID: "CARGO003",
		SumInsured:   d("10000000"),
		Condition:    "NEW",
		Franchise:    d("50000"),
		IsReefer:     false,
		RouteZone:    "RU",
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	req, err := Validate(goodRaw())
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if req.CargoClassID != "CARGO003" {
		t.Errorf("CargoClassID = %q", req.CargoClassID)
	}
	if !req.SumInsured.Equal(d("10000000")) {
		t.Errorf("SumInsured = %s", req.SumInsured)
	}
}

func TestValidateNormalizesIdentifiers(t *testing.T) {
	raw := goodRaw()
	raw.CargoClassID = "  CARGO003 "
	raw.Condition = "new"
	raw.RouteZone = " RU "

	req, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if req.CargoClassID != "CARGO003" {
		t.Errorf("CargoClassID = %q, want trimmed", req.CargoClassID)
	}
	if req.Condition != "NEW" {
		t.Errorf("Condition = %q, want upper-cased", req.Condition)
	}
	if req.RouteZone != "RU" {
		t.Errorf("RouteZone = %q, want trimmed", req.RouteZone)
	}
}

func TestValidateRejectionsInOrder(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Raw)
		wantField string
	}{
		{
			name:      "zero sum insured",
			mutate:    func(r *Raw) { r.SumInsured = decimal.Zero },
			wantField: "sum_insured",
		},
		{
			name:      "negative sum insured",
			mutate:    func(r *Raw) { r.SumInsured = d("-100") },
			wantField: "sum_insured",
		},
		{
			name:      "sub minor unit sum insured",
			mutate:    func(r *Raw) { r.SumInsured = d("100.005") },
			wantField: "sum_insured",
		},
		{
			name:      "negative franchise",
			mutate:    func(r *Raw) { r.Franchise = d("-1") },
			wantField: "franchise",
		},
		{
			name:      "franchise equals sum insured",
			mutate:    func(r *Raw) { r.Franchise = r.SumInsured },
			wantField: "franchise",
		},
		{
			name:      "franchise above sum insured",
			mutate:    func(r *Raw) { r.Franchise = r.SumInsured.Add(d("1")) },
			wantField: "franchise",
		},
		{
			name:      "empty cargo class",
			mutate:    func(r *Raw) { r.CargoClassID = "   " },
			wantField: "cargo_class_id",
		},
		{
			name:      "empty condition",
			mutate:    func(r *Raw) { r.Condition = "" },
			wantField: "condition",
		},
		{
			name:      "empty route zone",
			mutate:    func(r *Raw) { r.RouteZone = "" },
			wantField: "route_zone",
		},
		{
			// Sum insured is checked before franchise: with both invalid,
			// the first rule wins.
			name: "first failure wins",
			mutate: func(r *Raw) {
				r.SumInsured = decimal.Zero
				r.Franchise = d("-1")
			},
			wantField: "sum_insured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := goodRaw()
			tt.mutate(&raw)

			_, err := Validate(raw)
			if err == nil {
				t.Fatal("Validate() accepted invalid input")
			}
			if !errors.IsType(err, errors.TypeValidation) {
				t.Errorf("error type = %v, want VALIDATION_ERROR", err)
			}
			if got := errors.Field(err); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

// TestFranchiseBoundary pins the exact boundary: one minor unit below the
// sum insured passes, equality fails.
func TestFranchiseBoundary(t *testing.T) {
	raw := goodRaw()
	raw.Franchise = raw.SumInsured.Sub(d("0.01"))
	if _, err := Validate(raw); err != nil {
		t.Errorf("franchise one minor unit below sum insured rejected: %v", err)
	}

	raw.Franchise = raw.SumInsured
	if _, err := Validate(raw); err == nil {
		t.Error("franchise equal to sum insured accepted")
	}
}

func TestValidateDoesNotConsultTariff(t *testing.T) {
	// Unknown identifiers pass validation; the classifier owns resolution.
	raw := goodRaw()
	raw.CargoClassID = "CARGO999"
	raw.RouteZone = "NOWHERE"
	raw.Condition = "REFURBISHED"

	if _, err := Validate(raw); err != nil {
		t.Errorf("Validate() rejected unresolvable identifiers: %v", err)
	}
}
