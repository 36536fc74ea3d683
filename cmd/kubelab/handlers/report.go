package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/kubelab/internal/plan"
	"github.com/imamik/kubelab/internal/validation"
)

// Status colors.
var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
)

// painter renders with lipgloss on a terminal and plain text elsewhere.
type painter struct {
	styled bool
}

func (p painter) paint(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// findingLayers is the order in which the report lists validation layers.
var findingLayers = []validation.Severity{
	validation.SeverityStructural,
	validation.SeveritySemantic,
	validation.SeverityPolicy,
}

// renderFindings produces the validation report, grouped by layer.
func renderFindings(res validation.Result, strict, styled bool) string {
	p := painter{styled: styled}
	var b strings.Builder

	if res.Len() == 0 {
		b.WriteString(p.paint(okStyle, checkMark+" specification is valid"))
		b.WriteString("\n")
		return b.String()
	}

	for _, sev := range findingLayers {
		findings := res.BySeverity(sev)
		if len(findings) == 0 {
			continue
		}
		b.WriteString(p.paint(sectionStyle, sev.String()+" checks"))
		b.WriteString("\n")
		for _, e := range findings {
			mark, style := crossMark, errorStyle
			if e.IsWarning() {
				mark, style = warnMark, warningStyle
			}
			path := ""
			if e.Field != nil {
				path = e.Field.String() + ": "
			}
			b.WriteString(p.paint(style, fmt.Sprintf("  %s %s%s", mark, path, e.Message)))
			b.WriteString("\n")
			if e.Suggestion != "" {
				b.WriteString(p.paint(dimStyle, "       fix: "+e.Suggestion))
				b.WriteString("\n")
			}
		}
	}

	summary := fmt.Sprintf("%d error(s), %d warning(s)", len(res.Errors()), len(res.Warnings()))
	switch {
	case res.HasErrors():
		b.WriteString(p.paint(errorStyle, summary))
	case strict && res.HasWarnings():
		b.WriteString(p.paint(errorStyle, summary+" (strict)"))
	default:
		b.WriteString(p.paint(okStyle, summary))
	}
	b.WriteString("\n")
	return b.String()
}

// renderSummary produces the human-readable plan overview.
func renderSummary(pl *plan.Plan, styled bool) string {
	p := painter{styled: styled}
	var b strings.Builder

	b.WriteString(p.paint(titleStyle, fmt.Sprintf("kubelab plan: %d cluster(s), %d VM(s)", len(pl.Clusters), len(pl.VMs()))))
	b.WriteString("\n")

	for _, c := range pl.Clusters {
		b.WriteString("\n")
		b.WriteString(p.paint(sectionStyle, fmt.Sprintf("  %s (%s)", c.Spec.Name, c.Spec.Engine.Tag())))
		b.WriteString("\n")
		b.WriteString(p.paint(dimStyle, "  "+strings.Repeat("─", 40)))
		b.WriteString("\n")
		for _, vm := range c.Spec.VMs {
			res := vm.Resources()
			fmt.Fprintf(&b, "    %-24s %-10s %-15s %d vCPU %d MiB\n",
				vm.Name, vm.Role.Tag(), vm.IP, res.CPUs, res.MemoryMiB())
		}
		if len(c.Installers) > 0 {
			b.WriteString(p.paint(dimStyle, "    installers: "+strings.Join(c.Installers, ", ")))
			b.WriteString("\n")
		}
	}
	return b.String()
}
