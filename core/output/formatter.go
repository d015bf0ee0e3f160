// Package output renders quote decisions for human and machine consumers.
// Renderers work from the public decision only; they have no access to the
// tariff and cannot leak what the decision itself does not carry.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"tariff-engine/core/types"
	"tariff-engine/internal/errors"
)

// Format represents an output format type
type Format string

const (
	// FormatText is a human-readable summary
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the decision to w
	Render(w io.Writer, decision types.QuoteDecision) error
}

// New returns the formatter for the requested format.
func New(format Format) (Formatter, error) {
	switch format {
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatText:
		return textFormatter{}, nil
	}
	return nil, errors.Validation("output", fmt.Sprintf("unsupported output format %q", format))
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) Render(w io.Writer, d types.QuoteDecision) error {
	type premiumBlock struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}
	doc := struct {
		Verdict       types.Verdict  `json:"verdict"`
		Premium       *premiumBlock  `json:"premium,omitempty"`
		Flags         []types.Flag   `json:"flags"`
		Reasons       []types.Reason `json:"reasons"`
		TariffVersion string         `json:"tariff_version"`
	}{
		Verdict:       d.Verdict,
		Flags:         d.Flags,
		Reasons:       d.Reasons,
		TariffVersion: d.TariffVersion,
	}
	if doc.Flags == nil {
		doc.Flags = []types.Flag{}
	}
	if doc.Reasons == nil {
		doc.Reasons = []types.Reason{}
	}
	if d.Premium != nil {
		doc.Premium = &premiumBlock{
			Amount:   d.Premium.StringFixed(2),
			Currency: d.Currency,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

type textFormatter struct{}

func (textFormatter) Format() Format { return FormatText }

func (textFormatter) Render(w io.Writer, d types.QuoteDecision) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Verdict:  %s\n", d.Verdict)
	if d.Premium != nil {
		fmt.Fprintf(&b, "Premium:  %s %s\n", d.Premium.StringFixed(2), d.Currency)
	}
	if len(d.Flags) > 0 {
		flags := make([]string, len(d.Flags))
		for i, f := range d.Flags {
			flags[i] = string(f)
		}
		fmt.Fprintf(&b, "Flags:    %s\n", strings.Join(flags, ", "))
	}
	if len(d.Reasons) > 0 {
		reasons := make([]string, len(d.Reasons))
		for i, r := range d.Reasons {
			reasons[i] = string(r)
		}
		fmt.Fprintf(&b, "Reasons:  %s\n", strings.Join(reasons, ", "))
	}
	fmt.Fprintf(&b, "Tariff:   %s\n", d.TariffVersion)

	_, err := io.WriteString(w, b.String())
	return err
}
