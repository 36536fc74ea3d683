package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/imamik/kubelab/internal/plan"
	"github.com/imamik/kubelab/internal/validation"
)

// ErrValidationFailed is returned after a report with blocking findings.
var ErrValidationFailed = errors.New("validation failed")

// ValidateOptions are the flags of the validate command.
type ValidateOptions struct {
	Strict bool
	JSON   bool
}

// Finding is the JSON form of a validation finding.
type Finding struct {
	Field      string `json:"field,omitempty"`
	Severity   string `json:"severity"`
	Level      string `json:"level"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ValidateReport is the JSON output of the validate command.
type ValidateReport struct {
	Valid    bool      `json:"valid"`
	Findings []Finding `json:"findings"`
}

// Validate runs the validation pipeline and prints every finding.
func Validate(_ context.Context, g Global, in Input, opts ValidateOptions) error {
	settings, err := loadSettings(g.SettingsPath)
	if err != nil {
		return err
	}
	specs, err := loadSpecs(in)
	if err != nil {
		return err
	}
	builder, err := plan.NewBuilder(settings)
	if err != nil {
		return err
	}

	res := builder.Validate(specs)
	failed := res.Err(opts.Strict) != nil

	if opts.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toReport(res, !failed)); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		fmt.Fprint(stdout, renderFindings(res, opts.Strict, isInteractiveTTY()))
	}

	if failed {
		return ErrValidationFailed
	}
	return nil
}

func toReport(res validation.Result, valid bool) ValidateReport {
	report := ValidateReport{Valid: valid, Findings: make([]Finding, 0, res.Len())}
	for _, e := range res.All() {
		f := Finding{
			Severity:   e.Severity.String(),
			Level:      e.Level.String(),
			Message:    e.Message,
			Suggestion: e.Suggestion,
		}
		if e.Field != nil {
			f.Field = e.Field.String()
		}
		report.Findings = append(report.Findings, f)
	}
	return report
}
